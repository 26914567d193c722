package tournament

import (
	"context"
	"sync"
)

// recordingNotifier keeps every published view.
type recordingNotifier struct {
	mu    sync.Mutex
	views []MatchView
}

func (n *recordingNotifier) Publish(_ string, v MatchView) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.views = append(n.views, v)
}

// clearingStore clears one score just before every SetValidated reaches the
// underlying store, the way a scorer correcting a card at the same moment would.
type clearingStore struct {
	*MemoryStore
	clear ScoreEntry
}

func (c *clearingStore) SetValidated(ctx context.Context, e ValidationEntry) error {
	if err := c.MemoryStore.SetGross(ctx, c.clear); err != nil {
		return err
	}
	return c.MemoryStore.SetValidated(ctx, e)
}
