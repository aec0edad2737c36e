// Package main provides the promptlens CLI entry point.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/thebtf/promptlens/internal/analysis"
	"github.com/thebtf/promptlens/internal/config"
	"github.com/thebtf/promptlens/internal/markdown"
	"github.com/thebtf/promptlens/internal/prompts"
	"github.com/thebtf/promptlens/internal/render"
	"github.com/thebtf/promptlens/internal/search"
)

// Version is set at build time via ldflags.
var Version = "dev"

// Exit codes per error kind.
const (
	exitUsage  = 1
	exitFormat = 2
	exitAccess = 3
)

var (
	debug    bool
	settings config.Settings
)

var rootCmd = &cobra.Command{
	Use:     "promptlens",
	Short:   "Analyze, search, and export categorized prompt collections",
	Version: Version,
	Long: `promptlens loads a JSON file of categorized text prompts and runs one
read-only operation over it: descriptive statistics, pattern/category
search, or markdown export.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Command output goes to stdout; logs stay on stderr.
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
		if debug {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: true})

		var err error
		settings, err = config.Load()
		if err != nil {
			log.Warn().Err(err).Msg("failed to load settings, using defaults")
			settings = config.Default()
		}
	},
}

var (
	analyzeOutput string
	analyzeFormat string
	analyzeTokens bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <json-file>",
	Short: "Compute statistics over a prompt collection",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

var (
	searchPattern  string
	searchCategory string
)

var searchCmd = &cobra.Command{
	Use:   "search <json-file>",
	Short: "Filter prompts by pattern and/or category",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract <json-file>",
	Short: "Export a prompt collection as markdown",
	Args:  cobra.ExactArgs(1),
	RunE:  runExtract,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "save the report to a file")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "json", "report file format: json, md, or txt")
	analyzeCmd.Flags().BoolVar(&analyzeTokens, "tokens", false, "include token statistics")

	searchCmd.Flags().StringVarP(&searchPattern, "pattern", "p", "", "case-insensitive substring to match against prompt text")
	searchCmd.Flags().StringVarP(&searchCategory, "category", "c", "", "exact category name to filter by")

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output markdown file (default stdout)")

	rootCmd.AddCommand(analyzeCmd, searchCmd, extractCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if err := validFormat(analyzeFormat); err != nil {
		return err
	}

	collection, err := prompts.Load(args[0])
	if err != nil {
		return err
	}
	log.Debug().Str("path", args[0]).Int("entries", collection.Len()).Msg("collection loaded")

	report, err := analysis.Analyze(collection, analysis.Options{
		PreviewRunes:  settings.PreviewRunes,
		CountTokens:   analyzeTokens,
		TokenEncoding: settings.TokenEncoding,
	})
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), render.Report(report))

	if analyzeOutput != "" {
		if err := saveReport(report, analyzeOutput, analyzeFormat); err != nil {
			return err
		}
		log.Info().Str("path", analyzeOutput).Str("format", analyzeFormat).Msg("analysis saved")
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	collection, err := prompts.Load(args[0])
	if err != nil {
		return err
	}

	result := search.Find(collection, search.Query{
		Pattern:  searchPattern,
		Category: searchCategory,
	})
	fmt.Fprint(cmd.OutOrStdout(), render.SearchResults(result, settings.SearchPreviewRunes))
	return nil
}

func runExtract(cmd *cobra.Command, args []string) error {
	collection, err := prompts.Load(args[0])
	if err != nil {
		return err
	}

	extractor := markdown.Extractor{Fence: settings.Fence}
	if extractOutput == "" {
		fmt.Fprint(cmd.OutOrStdout(), extractor.Render(collection))
		return nil
	}
	if err := extractor.WriteFile(collection, extractOutput); err != nil {
		return err
	}
	log.Info().Str("path", extractOutput).Msg("markdown written")
	return nil
}

func validFormat(format string) error {
	switch format {
	case "json", "md", "txt":
		return nil
	}
	return fmt.Errorf("unknown format %q, want json, md, or txt", format)
}

func saveReport(report analysis.Report, path, format string) error {
	var data []byte
	switch format {
	case "json":
		var err error
		data, err = report.JSON()
		if err != nil {
			return fmt.Errorf("serialize report: %w", err)
		}
	case "md":
		data = []byte(report.Markdown())
	case "txt":
		data = []byte(report.Text())
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return &prompts.AccessError{Path: path, Op: "write", Err: err}
	}
	return nil
}

// exitCode maps error kinds to distinct process exit codes.
func exitCode(err error) int {
	var formatErr *prompts.FormatError
	var accessErr *prompts.AccessError
	switch {
	case errors.As(err, &formatErr):
		return exitFormat
	case errors.As(err, &accessErr):
		return exitAccess
	}
	return exitUsage
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCode(err))
	}
}
