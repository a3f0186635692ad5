// Package main is the entry point for the papersum CLI. It runs the same
// extraction and assembly as the API server against a local file or a URL.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/papersum/internal/config"
	"github.com/dgallion1/papersum/internal/document"
	"github.com/dgallion1/papersum/internal/fetch"
	"github.com/dgallion1/papersum/internal/pipeline"
	"github.com/dgallion1/papersum/internal/summarize"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "papersum",
	Short: "Extract and summarize scientific papers",
	Long: `papersum pulls the title, abstract and the introduction, methods, results
and discussion sections out of JATS XML or HTML papers and adds a plain
language summary when a model provider is configured.

Configuration comes from the same environment variables as the API server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Bool("verbose", false, "log debug output to stderr")
}

// newPipeline wires the pipeline from environment configuration. Logs go to
// stderr so stdout carries only the record.
func newPipeline(cmd *cobra.Command) (*pipeline.Pipeline, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	simp, err := summarize.NewFromConfig(cfg, log)
	if err != nil {
		return nil, err
	}
	assembler := pipeline.NewAssembler(simp, cfg.SummaryTimeout, log)
	return pipeline.New(fetch.New(cfg, log), assembler, log), nil
}

func printRecord(w io.Writer, rec *document.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(rec)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
