package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devfeed/devfeed/internal/data/fetcher"
	"github.com/devfeed/devfeed/internal/data/grouper"
	"github.com/devfeed/devfeed/internal/data/parser"
	"github.com/devfeed/devfeed/internal/presentation/formatter"
	"github.com/devfeed/devfeed/internal/util"
)

var (
	// Logging related
	debug bool

	// Feed source
	source string

	// Output related
	outputFormat string
	timezone     string
	limit        int

	rootCmd = &cobra.Command{
		Use:   "devfeed [flags]",
		Short: "Developer activity feed viewer",
		Long: `devfeed ingests a comma-separated developer activity feed (commits, issues,
pull requests, forks, releases), groups it by calendar date, and displays it
most recent first.

Examples:
  devfeed --source https://example.com/activity.csv        # One-shot summary table
  devfeed --source ./activity.csv --output json            # JSON output
  devfeed --source ./activity.csv --limit 7                # Only the 7 most recent dates
  devfeed watch --source https://example.com/activity.csv  # Live incremental view`,
		RunE: runAnalyze,
	}
)

const (
	defaultLogFile = "~/.devfeed/logs/app.log"
	defaultSource  = "activity.csv"
	fetchTimeout   = 30 * time.Second
)

func init() {
	// Input data configuration
	rootCmd.PersistentFlags().StringVar(&source, "source", defaultSource,
		"Feed source (HTTP(S) URL or local file path)")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "Local",
		"Timezone setting (e.g., Asia/Shanghai, UTC)")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", "table",
		"Output format (table, json, csv)")
	rootCmd.Flags().IntVar(&limit, "limit", 0,
		"Limit number of date groups (0 = unlimited)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	initLogging()

	if err := util.InitializeTimeProvider(timezone); err != nil {
		return err
	}
	loc := util.GetTimeProvider().Location()

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	raw, err := fetcher.New(expandSource(source)).Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feed: %w", err)
	}

	records := parser.ParseFeed(raw, loc)
	snapshot := grouper.Group(records)

	if limit > 0 && len(snapshot.Groups) > limit {
		snapshot.Groups = snapshot.Groups[:limit]
	}

	f, err := formatter.New(outputFormat)
	if err != nil {
		return err
	}
	return f.Format(snapshot)
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func initLogging() {
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}
	logFile := expandPath(defaultLogFile)
	ensureDir(filepath.Dir(logFile))
	util.InitLogger(logLevel, logFile, debug)
}

func expandSource(s string) string {
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return expandPath(s)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
