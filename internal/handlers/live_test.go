package handlers_test

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	wsclient "github.com/fasthttp/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trentd187/golf-cup/internal/config"
	"github.com/trentd187/golf-cup/internal/handicap"
	"github.com/trentd187/golf-cup/internal/handlers"
	"github.com/trentd187/golf-cup/internal/scoring"
	"github.com/trentd187/golf-cup/internal/tournament"
	"github.com/trentd187/golf-cup/internal/websocket"
)

func readView(t *testing.T, conn *wsclient.Conn) tournament.MatchView {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var view tournament.MatchView
	require.NoError(t, json.Unmarshal(data, &view))
	return view
}

func TestLiveMatch_SnapshotThenUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hub := websocket.NewHub(nil)
	go hub.Run(ctx)
	svc := tournament.NewService(tournament.NewMemoryStore(), handicap.DefaultRegistry(), scoring.DefaultPoints(),
		tournament.WithNotifier(hub))

	var ids []string
	for _, team := range []string{tournament.TeamA, tournament.TeamB} {
		p, err := svc.AddPlayer(ctx, tournament.NewPlayer{Name: team, HandicapIndex: 0})
		require.NoError(t, err)
		require.NoError(t, svc.AssignPlayer(ctx, team, p.ID))
		ids = append(ids, p.ID)
	}
	layout := handicap.DefaultLayout()
	course, err := svc.AddCourse(ctx, tournament.NewCourse{Name: "Home", Pars: layout.Pars, StrokeIndexes: layout.StrokeIndexes})
	require.NoError(t, err)
	day, err := svc.AddDay(ctx, tournament.NewDay{
		Date: time.Date(2026, 9, 25, 0, 0, 0, 0, time.UTC), CourseID: course.ID,
		Format: scoring.FormatSingles, Basis: scoring.BasisStrokes,
	})
	require.NoError(t, err)
	m, err := svc.LockPairing(ctx, day.ID, tournament.NewMatch{TeeKey: "yellow", TeamA: ids[:1], TeamB: ids[1:]})
	require.NoError(t, err)

	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	handlers.Routes(app, &config.Config{Env: "production", JWTSecret: secret}, svc, hub)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() { _ = app.Listener(ln) }()
	t.Cleanup(func() { _ = app.Shutdown() })

	conn, _, err := wsclient.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws/matches/"+m.ID, nil)
	require.NoError(t, err)
	defer conn.Close()

	snapshot := readView(t, conn)
	assert.Equal(t, m.ID, snapshot.Match.ID)
	assert.Zero(t, snapshot.Score.Players[0].Holes[0].Gross)

	// The snapshot is only sent once the client is registered, so the next
	// score reaches it.
	_, err = svc.RecordScore(ctx, tournament.ScoreEntry{MatchID: m.ID, PlayerID: ids[0], Hole: 1, Gross: 4})
	require.NoError(t, err)

	update := readView(t, conn)
	assert.Equal(t, 4, update.Score.Players[0].Holes[0].Gross)
}
