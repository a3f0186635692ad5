package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/parser"
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE",
	Short: "Summarize a local XML or HTML paper",
	Long: `Extract reads a saved paper, classifies its sections and prints the record
as JSON. The format defaults from the file extension: .xml and .nxml are
read as JATS XML, anything else as HTML.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		format := parser.FormatForFile(path)
		if v, _ := cmd.Flags().GetString("format"); v != "" {
			if format, err = document.ParseFormat(v); err != nil {
				return err
			}
		}
		link, _ := cmd.Flags().GetString("link")
		if link == "" {
			link = path
		}

		p, err := newPipeline(cmd)
		if err != nil {
			return err
		}
		rec, err := p.Process(cmd.Context(), link, &document.Source{Format: format, Body: data})
		if err != nil {
			return fmt.Errorf("extract %s: %w", path, err)
		}
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

func init() {
	extractCmd.Flags().String("format", "", "document format: structured-xml or generic-html")
	extractCmd.Flags().String("link", "", "link recorded in the output (default: the file path)")

	rootCmd.AddCommand(extractCmd)
}
