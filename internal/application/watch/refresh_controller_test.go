package watch

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfeed/devfeed/internal/data/fetcher"
)

type fetchFunc func(ctx context.Context) (string, error)

func (f fetchFunc) Fetch(ctx context.Context) (string, error) { return f(ctx) }

const sampleFeed = "date,time,activity,repository,description\n" +
	"2024-01-02,09:00:00,commit,repoA,\"fix, cleanup\"\n" +
	"2024-01-01,10:00:00,issue,repoB,filed bug\n"

func TestRefreshInstallsSnapshotAndReturnsFirstBatch(t *testing.T) {
	state := NewStateManager(5)
	rc := NewRefreshController(fetchFunc(func(ctx context.Context) (string, error) {
		return sampleFeed, nil
	}), state, time.UTC)

	batch, err := rc.Refresh(context.Background())
	require.NoError(t, err)

	require.Len(t, batch, 2)
	assert.Equal(t, "2024-01-02", batch[0].DateKey())
	assert.Equal(t, "2024-01-01", batch[1].DateKey())
	assert.Equal(t, "fix, cleanup", batch[0].Records[0].Description)

	revealed, total := state.Progress()
	assert.Equal(t, 2, revealed)
	assert.Equal(t, 2, total)
}

func TestRefreshResetsDisclosureMidStream(t *testing.T) {
	state := NewStateManager(1)
	rc := NewRefreshController(fetchFunc(func(ctx context.Context) (string, error) {
		return sampleFeed, nil
	}), state, time.UTC)

	_, err := rc.Refresh(context.Background())
	require.NoError(t, err)

	// One group revealed by the refresh itself; now refresh again
	batch, err := rc.Refresh(context.Background())
	require.NoError(t, err)

	// Cursor rewound to zero, so the first batch is the most recent date
	require.Len(t, batch, 1)
	assert.Equal(t, "2024-01-02", batch[0].DateKey())
	revealed, _ := state.Progress()
	assert.Equal(t, 1, revealed)
}

func TestRefreshFailureRetainsState(t *testing.T) {
	state := NewStateManager(5)

	var failing bool
	rc := NewRefreshController(fetchFunc(func(ctx context.Context) (string, error) {
		if failing {
			return "", fetcher.ErrFeedUnavailable
		}
		return sampleFeed, nil
	}), state, time.UTC)

	_, err := rc.Refresh(context.Background())
	require.NoError(t, err)

	before := state.Snapshot()
	revealedBefore, totalBefore := state.Progress()

	failing = true
	_, err = rc.Refresh(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, fetcher.ErrFeedUnavailable)

	// DisclosureState identical to its value before the failed attempt
	assert.Equal(t, before, state.Snapshot())
	revealedAfter, totalAfter := state.Progress()
	assert.Equal(t, revealedBefore, revealedAfter)
	assert.Equal(t, totalBefore, totalAfter)
}

func TestRefreshDropsTriggerWhileFetchInFlight(t *testing.T) {
	state := NewStateManager(5)

	started := make(chan struct{})
	release := make(chan struct{})
	rc := NewRefreshController(fetchFunc(func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return sampleFeed, nil
	}), state, time.UTC)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := rc.Refresh(context.Background())
		assert.NoError(t, err)
	}()

	<-started
	_, err := rc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrRefreshInFlight)

	close(release)
	wg.Wait()

	_, total := state.Progress()
	assert.Equal(t, 2, total)
}

func TestRefreshDiscardsSupersededResult(t *testing.T) {
	state := NewStateManager(5)

	rc := NewRefreshController(fetchFunc(func(ctx context.Context) (string, error) {
		// Teardown happens while the fetch is in flight
		state.Invalidate()
		return sampleFeed, nil
	}), state, time.UTC)

	_, err := rc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrSuperseded)
	assert.False(t, state.HasSnapshot())
}

func TestRefreshDropsMalformedRowsNotBatch(t *testing.T) {
	feed := "date,time,activity,repository,description\n" +
		"2024-01-02,09:00:00,commit,repoA,good\n" +
		"bogus,row,here,x,y\n"

	state := NewStateManager(5)
	rc := NewRefreshController(fetchFunc(func(ctx context.Context) (string, error) {
		return feed, nil
	}), state, time.UTC)

	batch, err := rc.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, 1, len(batch[0].Records))
}

func TestRefreshControllerNilLocationDefaults(t *testing.T) {
	rc := NewRefreshController(fetchFunc(func(ctx context.Context) (string, error) {
		return "", errors.New("unused")
	}), NewStateManager(5), nil)

	assert.Equal(t, time.Local, rc.location)
}
