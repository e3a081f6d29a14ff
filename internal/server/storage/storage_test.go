package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "chess.db"), false)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func flush(t *testing.T, s *Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("Flush: %v", err)
	}
}

func TestGameAndMoveLifecycle(t *testing.T) {
	s := newTestStore(t)

	s.RecordNewGame(GameRecord{
		GameID:       "g1",
		InitialFEN:   "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		StartTimeUTC: time.Now().UTC(),
	})
	moves := []string{"e2e4", "e7e5", "g1f3"}
	for i, m := range moves {
		color := "w"
		if i%2 == 1 {
			color = "b"
		}
		s.RecordMove(MoveRecord{
			GameID:       "g1",
			MoveNumber:   i + 1,
			MoveUCI:      m,
			FENAfterMove: "fen",
			PlayerColor:  color,
			MoveTimeUTC:  time.Now().UTC(),
		})
	}
	flush(t, s)

	games, err := s.QueryGames("g1", "")
	if err != nil {
		t.Fatalf("QueryGames: %v", err)
	}
	if len(games) != 1 || games[0].Source != "api" || games[0].Result != "ONGOING" {
		t.Fatalf("games = %+v", games)
	}
	if games[0].EndTimeUTC != nil {
		t.Error("ongoing game should have no end time")
	}

	got, err := s.QueryMoves("g1")
	if err != nil {
		t.Fatalf("QueryMoves: %v", err)
	}
	if len(got) != 3 || got[2].MoveUCI != "g1f3" {
		t.Fatalf("moves = %+v", got)
	}

	s.DeleteUndoneMoves("g1", 1)
	s.UpdateResult("g1", "WIN_WHITE", true)
	flush(t, s)

	got, _ = s.QueryMoves("g1")
	if len(got) != 1 {
		t.Errorf("after undo: %d moves, want 1", len(got))
	}
	games, _ = s.QueryGames("*", "WIN_WHITE")
	if len(games) != 1 || games[0].EndTimeUTC == nil {
		t.Errorf("finished games = %+v", games)
	}

	s.ResetGame("g1", "4k3/8/8/8/8/8/8/4K3 w - - 0 1")
	flush(t, s)
	games, _ = s.QueryGames("g1", "")
	if len(games) != 1 || games[0].Result != "ONGOING" || games[0].InitialFEN != "4k3/8/8/8/8/8/8/4K3 w - - 0 1" {
		t.Errorf("after reset: %+v", games)
	}
	if got, _ := s.QueryMoves("g1"); len(got) != 0 {
		t.Errorf("after reset: %d moves, want 0", len(got))
	}

	s.DeleteGame("g1")
	flush(t, s)
	if games, _ := s.QueryGames("", ""); len(games) != 0 {
		t.Errorf("after delete: %+v", games)
	}
	if !s.IsHealthy() {
		t.Error("store should be healthy")
	}
}

func TestFailedWriteDegradesStore(t *testing.T) {
	s := newTestStore(t)

	// No parent game: the foreign key rejects the insert.
	s.RecordMove(MoveRecord{GameID: "missing", MoveNumber: 1, MoveUCI: "e2e4", FENAfterMove: "x", PlayerColor: "w"})

	deadline := time.Now().Add(5 * time.Second)
	for s.IsHealthy() && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if s.IsHealthy() {
		t.Fatal("store should degrade after a failed write")
	}
}

func TestDeleteDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chess.db")
	s, err := NewStore(path, true)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.InitDB(); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	if err := s.DeleteDB(); err != nil {
		t.Fatalf("DeleteDB: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("database file still present: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
