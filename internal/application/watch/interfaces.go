package watch

import (
	"github.com/devfeed/devfeed/internal/core/model"
	"github.com/devfeed/devfeed/internal/monitoring"
	"github.com/devfeed/devfeed/internal/presentation/interaction"
)

// Renderer handles visual presentation of disclosed groups. It
// performs no filtering, grouping, or ordering of its own.
type Renderer interface {
	// RenderBatch renders the given groups in the given order
	RenderBatch(groups []model.DateGroup)
	// RenderProgress shows disclosure progress
	RenderProgress(revealed, total int, exhausted bool)
	// RenderNotice shows a one-line status message
	RenderNotice(msg string)
}

// InputHandler delivers viewer trigger events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// FeedMonitor watches a local feed file for changes
type FeedMonitor interface {
	// Events returns a channel of feed change events
	Events() <-chan monitoring.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}
