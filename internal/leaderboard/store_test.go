package leaderboard

import (
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "leaderboard.json"))
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	return s
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)
	board := s.Load()
	if len(board) != 0 {
		t.Errorf("expected empty board, got %v", board)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty", ""},
		{"garbage", "not json at all"},
		{"non-list", `{"name":"Ann","score":3}`},
		{"truncated", `[{"name":"Ann",`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(t)
			if err := os.WriteFile(s.path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			board := s.Load()
			if len(board) != 0 {
				t.Errorf("expected empty board for %s content, got %v", tt.name, board)
			}
		})
	}
}

func TestAddFirstEntry(t *testing.T) {
	s := newTestStore(t)

	// Board has room and score is positive, so 3 qualifies.
	if !s.IsTop(3) {
		t.Error("IsTop(3) should be true on an empty board")
	}

	board, err := s.Add("Ann", 3)
	if err != nil {
		t.Fatalf("Add() failed: %v", err)
	}
	if len(board) != 1 || board[0] != (Entry{Name: "Ann", Score: 3}) {
		t.Errorf("unexpected board: %v", board)
	}
}

func TestFullBoardRejectsLowScore(t *testing.T) {
	s := newTestStore(t)
	full := Board{
		{Name: "A", Score: 10},
		{Name: "B", Score: 8},
		{Name: "C", Score: 6},
		{Name: "D", Score: 4},
		{Name: "E", Score: 2},
	}
	if err := s.Save(full); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	if s.IsTop(2) {
		t.Error("IsTop(2) should be false: equal to current minimum")
	}
	if !s.IsTop(3) {
		t.Error("IsTop(3) should be true: above current minimum")
	}
}

func TestAddTruncatesToTopN(t *testing.T) {
	s := newTestStore(t)
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		if _, err := s.Add(name, i+1); err != nil {
			t.Fatalf("Add() failed: %v", err)
		}
	}

	board := s.Load()
	if len(board) != TopN {
		t.Fatalf("expected %d entries, got %d", TopN, len(board))
	}
	for i := 1; i < len(board); i++ {
		if board[i].Score > board[i-1].Score {
			t.Errorf("board not sorted descending: %v", board)
		}
	}
	if board[0].Score != 7 || board[TopN-1].Score != 3 {
		t.Errorf("unexpected board after truncation: %v", board)
	}
}

func TestEqualScoreKeepsExistingRank(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Add("First", 5); err != nil {
		t.Fatal(err)
	}
	board, err := s.Add("Second", 5)
	if err != nil {
		t.Fatal(err)
	}
	if board[0].Name != "First" || board[1].Name != "Second" {
		t.Errorf("equal score should not displace existing entry: %v", board)
	}
}

func TestIsTopMonotonic(t *testing.T) {
	s := newTestStore(t)
	full := Board{
		{Name: "A", Score: 10},
		{Name: "B", Score: 8},
		{Name: "C", Score: 6},
		{Name: "D", Score: 4},
		{Name: "E", Score: 2},
	}
	if err := s.Save(full); err != nil {
		t.Fatal(err)
	}

	// Once a score qualifies, every higher score must too.
	qualified := false
	for score := 0; score <= 12; score++ {
		top := s.IsTop(score)
		if qualified && !top {
			t.Errorf("IsTop not monotonic at score %d", score)
		}
		if top {
			qualified = true
		}
	}
}

func TestLoadSaveIdempotent(t *testing.T) {
	s := newTestStore(t)
	board := Board{
		{Name: "A", Score: 9},
		{Name: "B", Score: 5},
		{Name: "C", Score: 1},
	}
	if err := s.Save(board); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Save(s.Load()); err != nil {
		t.Fatal(err)
	}
	second, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatal(err)
	}

	if string(first) != string(second) {
		t.Errorf("load/save round trip changed the file:\n%s\nvs\n%s", first, second)
	}
}

func TestNewStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "board.json")
	s, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore() failed: %v", err)
	}
	if err := s.Save(Board{{Name: "A", Score: 1}}); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}
}
