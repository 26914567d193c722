package websocket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/golf-cup/internal/tournament"
)

func startHub(t *testing.T) (*Hub, context.CancelFunc) {
	t.Helper()
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)
	t.Cleanup(cancel)
	return h, cancel
}

func receive(t *testing.T, c *Client) []byte {
	t.Helper()
	select {
	case msg := <-c.Send:
		return msg
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestHub_PublishReachesMatchWatchers(t *testing.T) {
	h, _ := startHub(t)
	watcher := NewClient("m1")
	other := NewClient("m2")
	h.Register(watcher)
	h.Register(other)

	h.Publish("m1", tournament.MatchView{Match: tournament.Match{ID: "m1", Flight: 2}})

	var got tournament.MatchView
	require.NoError(t, json.Unmarshal(receive(t, watcher), &got))
	assert.Equal(t, "m1", got.Match.ID)
	assert.Equal(t, 2, got.Match.Flight)

	select {
	case <-other.Send:
		t.Fatal("client of another match got the update")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_Unregister(t *testing.T) {
	h, _ := startHub(t)
	c := NewClient("m1")
	h.Register(c)
	assert.Equal(t, 1, h.ClientCount("m1"))

	h.Unregister(c)
	_, open := <-c.Send
	assert.False(t, open)
	assert.Equal(t, 0, h.ClientCount("m1"))

	// A second unregister is harmless.
	h.Unregister(c)
}

func TestHub_DropsSlowClient(t *testing.T) {
	h, _ := startHub(t)
	c := NewClient("m1")
	h.Register(c)

	for i := 0; i <= SendBuffer; i++ {
		h.Broadcast("m1", []byte("x"))
	}

	assert.Eventually(t, func() bool { return h.ClientCount("m1") == 0 }, time.Second, 10*time.Millisecond)
}

func TestHub_StopClosesClients(t *testing.T) {
	h, cancel := startHub(t)
	c := NewClient("m1")
	h.Register(c)

	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, open := <-c.Send:
			return !open
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	// Calls after shutdown return instead of blocking.
	h.Register(NewClient("m2"))
	h.Unregister(c)
	h.Broadcast("m1", []byte("late"))
}
