package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch URL",
	Short: "Fetch a paper by URL and summarize it",
	Long: `Fetch downloads the paper (PMC articles through NCBI E-utilities when
NCBI_API_KEY is set), extracts its sections and prints the record as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := newPipeline(cmd)
		if err != nil {
			return err
		}
		rec, err := p.Summarize(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printRecord(cmd.OutOrStdout(), rec)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of papersum",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "papersum %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(fetchCmd, versionCmd)
}
