package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/devfeed/devfeed/internal/application/watch"
)

var (
	// Refresh related flags
	watchInterval int

	// Disclosure related flags
	watchBatchSize int

	// Display related flags
	watchTimeFormat string
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the activity feed with incremental disclosure",
	Long: `Fetches the feed once at startup and then on a fixed interval, showing
activity grouped by date, most recent first. Dates are revealed in
fixed-size batches: press space to reveal more.

Keys:
  space/n  reveal the next batch of dates
  r        refresh the feed now
  q/ESC    quit`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().IntVar(&watchInterval, "interval", 60,
		"Feed refresh interval in seconds")
	watchCmd.Flags().IntVar(&watchBatchSize, "batch-size", 5,
		"Number of date groups revealed per batch")
	watchCmd.Flags().StringVar(&watchTimeFormat, "time-format", "24h",
		"Time format (12h or 24h)")
}

func runWatch(cmd *cobra.Command, args []string) error {
	initLogging()

	config := &watch.Config{
		Source:          expandSource(source),
		Timezone:        timezone,
		TimeFormat:      watchTimeFormat,
		BatchSize:       watchBatchSize,
		RefreshInterval: time.Duration(watchInterval) * time.Second,
	}

	orchestrator, err := watch.NewOrchestrator(config)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx)
}
