package watch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/devfeed/devfeed/internal/data/fetcher"
	"github.com/devfeed/devfeed/internal/monitoring"
	"github.com/devfeed/devfeed/internal/presentation/display"
	"github.com/devfeed/devfeed/internal/presentation/interaction"
	"github.com/devfeed/devfeed/internal/util"
)

// Orchestrator coordinates all components for the watch command: the
// refresh timer, the viewer trigger, and the optional feed-file
// watcher all feed one event loop mutating one disclosure state.
type Orchestrator struct {
	config *Config

	state       *StateManager
	refreshCtrl *RefreshController

	display  Renderer
	keyboard InputHandler
	watcher  FeedMonitor
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *Config) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	if err := util.InitializeTimeProvider(config.Timezone); err != nil {
		return nil, fmt.Errorf("failed to initialize timezone: %w", err)
	}

	feed := fetcher.New(config.Source)
	state := NewStateManager(config.BatchSize)
	refreshCtrl := NewRefreshController(feed, state, util.GetTimeProvider().Location())

	termDisplay := display.NewTerminalDisplay(&display.DisplayConfig{
		TimeFormat: config.TimeFormat,
	})

	o := &Orchestrator{
		config:      config,
		state:       state,
		refreshCtrl: refreshCtrl,
		display:     termDisplay,
	}

	// Local feeds also refresh on file change, not just on the timer
	if fileFeed, ok := feed.(*fetcher.FileFetcher); ok {
		watcher, err := monitoring.NewFeedWatcher(fileFeed.Path())
		if err != nil {
			util.LogWarn(fmt.Sprintf("Feed file watching disabled: %v", err))
		} else {
			o.watcher = watcher
		}
	}

	return o, nil
}

// Run starts the orchestrator main loop: one refresh immediately, then
// one per interval until the context is cancelled.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo(fmt.Sprintf("Watching feed %s (refresh every %s, batches of %d)",
		o.config.Source, o.config.RefreshInterval, o.config.BatchSize))

	defer o.Close()

	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard
	defer o.keyboard.Close()

	o.refresh(ctx)

	ticker := time.NewTicker(o.config.RefreshInterval)
	defer ticker.Stop()

	var watcherEvents <-chan monitoring.FileEvent
	if o.watcher != nil {
		watcherEvents = o.watcher.Events()
	}

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down watch")
			o.state.Invalidate()
			return nil

		case <-ticker.C:
			o.refresh(ctx)

		case event := <-watcherEvents:
			util.LogDebug(fmt.Sprintf("Feed file changed: %s (%s)", event.Path, event.Operation))
			o.refresh(ctx)

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(ctx, keyEvent) {
				o.state.Invalidate()
				return nil
			}
		}
	}
}

// refresh runs one pipeline pass and renders the outcome. Failures are
// fail-soft: last good state is retained and a notice is shown once.
func (o *Orchestrator) refresh(ctx context.Context) {
	batch, err := o.refreshCtrl.Refresh(ctx)
	switch {
	case err == nil:
		o.display.RenderBatch(batch)
		revealed, total := o.state.Progress()
		o.display.RenderProgress(revealed, total, revealed == total)

	case errors.Is(err, ErrRefreshInFlight):
		util.LogDebug("Refresh trigger dropped: fetch already in flight")

	case errors.Is(err, ErrSuperseded):
		// Result discarded; nothing to show

	default:
		util.LogWarn(err.Error())
		if o.state.HasSnapshot() {
			o.display.RenderNotice("feed unavailable, showing last fetched data")
		} else {
			o.display.RenderNotice("feed unavailable, retrying on next interval")
		}
	}
}

// handleKeyboard processes one key event; returns true to exit
func (o *Orchestrator) handleKeyboard(ctx context.Context, event interaction.KeyEvent) bool {
	switch event.Type {
	case interaction.KeyEscape:
		return true

	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q', 3: // 'q', 'Q', or Ctrl+C
			return true
		case ' ', 'n', 'N', 'j':
			o.nextBatch()
		case 'r', 'R':
			o.refresh(ctx)
		}
	}

	return false
}

// nextBatch discloses the next batch of groups. Redundant triggers
// after exhaustion are no-ops.
func (o *Orchestrator) nextBatch() {
	batch, exhausted := o.state.NextBatch()
	if len(batch) == 0 {
		return
	}

	o.display.RenderBatch(batch)
	revealed, total := o.state.Progress()
	o.display.RenderProgress(revealed, total, exhausted)
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			return fmt.Errorf("failed to close feed watcher: %w", err)
		}
	}
	return nil
}
