package watch

import (
	"sync"

	"github.com/devfeed/devfeed/internal/core/model"
)

// StateManager tracks how much of the current snapshot has been
// disclosed to the viewer. All pipeline state is mutated only here,
// under one mutex, at refresh completion or inside NextBatch.
type StateManager struct {
	mu sync.Mutex

	snapshot    model.LogSnapshot
	hasSnapshot bool
	revealed    int
	batchSize   int

	// generation guards against installing results of superseded
	// fetches: bumped on every reset and on teardown.
	generation uint64
}

// NewStateManager creates a StateManager with the given batch size.
func NewStateManager(batchSize int) *StateManager {
	if batchSize <= 0 {
		batchSize = 5
	}
	return &StateManager{batchSize: batchSize}
}

// Generation returns the current generation token. A refresh captures
// it before fetching and passes it back to Reset.
func (sm *StateManager) Generation() uint64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.generation
}

// Invalidate bumps the generation so any in-flight fetch result is
// discarded when it arrives. Called at session teardown.
func (sm *StateManager) Invalidate() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.generation++
}

// Reset installs a new snapshot with the disclosure cursor rewound to
// zero, provided gen still matches the current generation. Returns
// false when the fetch that produced the snapshot was superseded, in
// which case state is left untouched.
func (sm *StateManager) Reset(gen uint64, snapshot model.LogSnapshot) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if gen != sm.generation {
		return false
	}

	sm.snapshot = snapshot
	sm.hasSnapshot = true
	sm.revealed = 0
	sm.generation++
	return true
}

// NextBatch returns up to batchSize consecutive unrevealed groups in
// snapshot order and advances the cursor by the number returned. The
// second result reports exhaustion: true once every group has been
// revealed. Calling when already exhausted is a no-op.
func (sm *StateManager) NextBatch() ([]model.DateGroup, bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	total := len(sm.snapshot.Groups)
	if sm.revealed >= total {
		return nil, true
	}

	end := sm.revealed + sm.batchSize
	if end > total {
		end = total
	}

	batch := make([]model.DateGroup, end-sm.revealed)
	copy(batch, sm.snapshot.Groups[sm.revealed:end])
	sm.revealed = end

	return batch, sm.revealed == total
}

// Progress returns how many groups have been revealed out of the total.
func (sm *StateManager) Progress() (revealed, total int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.revealed, len(sm.snapshot.Groups)
}

// HasSnapshot reports whether a first successful fetch has occurred.
func (sm *StateManager) HasSnapshot() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.hasSnapshot
}

// Snapshot returns a copy of the current snapshot's group slice.
func (sm *StateManager) Snapshot() model.LogSnapshot {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	groups := make([]model.DateGroup, len(sm.snapshot.Groups))
	copy(groups, sm.snapshot.Groups)
	return model.LogSnapshot{Groups: groups}
}
