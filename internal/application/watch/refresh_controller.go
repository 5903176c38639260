package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/devfeed/devfeed/internal/core/model"
	"github.com/devfeed/devfeed/internal/data/fetcher"
	"github.com/devfeed/devfeed/internal/data/grouper"
	"github.com/devfeed/devfeed/internal/data/parser"
	"github.com/devfeed/devfeed/internal/util"
)

var (
	// ErrRefreshInFlight is returned when a refresh trigger arrives
	// while a fetch is already outstanding. The trigger is dropped.
	ErrRefreshInFlight = errors.New("refresh already in flight")

	// ErrSuperseded is returned when a fetch completed after its
	// generation was invalidated; its result has been discarded.
	ErrSuperseded = errors.New("refresh superseded")
)

// RefreshController runs the fetch, parse, group pipeline and feeds the
// result into the disclosure state.
type RefreshController struct {
	fetcher  fetcher.Fetcher
	state    *StateManager
	location *time.Location

	refreshMu sync.Mutex // at most one outstanding fetch
}

// NewRefreshController creates a new RefreshController instance.
func NewRefreshController(f fetcher.Fetcher, state *StateManager, loc *time.Location) *RefreshController {
	if loc == nil {
		loc = time.Local
	}
	return &RefreshController{
		fetcher:  f,
		state:    state,
		location: loc,
	}
}

// Refresh performs one pipeline run: acquire raw text, parse, group,
// reset the disclosure cursor, and return the first batch of the new
// snapshot. On any failure the previous disclosure state is retained
// untouched and the error is surfaced to the caller.
func (rc *RefreshController) Refresh(ctx context.Context) ([]model.DateGroup, error) {
	if !rc.refreshMu.TryLock() {
		return nil, ErrRefreshInFlight
	}
	defer rc.refreshMu.Unlock()

	gen := rc.state.Generation()

	raw, err := rc.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("refresh failed: %w", err)
	}

	records := parser.ParseFeed(raw, rc.location)
	snapshot := grouper.Group(records)

	if !rc.state.Reset(gen, snapshot) {
		util.LogDebug("Discarding superseded fetch result")
		return nil, ErrSuperseded
	}

	util.LogInfo(fmt.Sprintf("Refreshed feed: %d records across %d dates",
		snapshot.RecordCount(), snapshot.GroupCount()))

	batch, _ := rc.state.NextBatch()
	return batch, nil
}
