// Package leaderboard persists the top game scores to a small JSON file.
// The file holds at most TopN entries, sorted by score descending; a
// missing or corrupt file reads back as an empty board.
package leaderboard

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

const (
	// TopN is the maximum number of entries kept on the board.
	TopN = 5

	// MaxNameLen caps submitted player names.
	MaxNameLen = 20
)

// Entry is a single leaderboard row.
type Entry struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Board is an ordered list of entries, highest score first.
type Board []Entry

// sortDesc orders the board by score descending. The sort is stable so
// earlier entries keep their rank over later ones with an equal score.
func (b Board) sortDesc() {
	sort.SliceStable(b, func(i, j int) bool {
		return b[i].Score > b[j].Score
	})
}

// Store reads and writes the leaderboard file.
type Store struct {
	path string
}

// NewStore creates a store for the given file path, expanding a leading
// ~ and creating parent directories as needed.
func NewStore(path string) (*Store, error) {
	if path != "" && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("leaderboard: cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("leaderboard: cannot create directory %s: %w", dir, err)
		}
	}
	return &Store{path: path}, nil
}

// Load returns the persisted board, sorted descending and truncated to
// TopN. A missing, empty, corrupt, or non-list file yields an empty
// board; Load never fails.
func (s *Store) Load() Board {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Board{}
	}
	var board Board
	if err := json.Unmarshal(data, &board); err != nil {
		return Board{}
	}
	board.sortDesc()
	if len(board) > TopN {
		board = board[:TopN]
	}
	return board
}

// Save persists exactly the given entries, replacing prior content. The
// file is written to a temp path and renamed so readers never observe a
// partial write.
func (s *Store) Save(board Board) error {
	data, err := json.MarshalIndent(board, "", "  ")
	if err != nil {
		return fmt.Errorf("leaderboard: marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("leaderboard: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("leaderboard: rename: %w", err)
	}
	return nil
}

// IsTop reports whether score would place on the board: any positive
// score while the board has room, otherwise strictly more than the
// current lowest entry. Equal scores do not displace existing entries.
func (s *Store) IsTop(score int) bool {
	board := s.Load()
	if len(board) < TopN {
		return score > 0
	}
	return score > board[len(board)-1].Score
}

// Add inserts a score, re-sorts, truncates to TopN and persists. The
// returned board is the new persisted state.
func (s *Store) Add(name string, score int) (Board, error) {
	board := s.Load()
	board = append(board, Entry{Name: name, Score: score})
	board.sortDesc()
	if len(board) > TopN {
		board = board[:TopN]
	}
	if err := s.Save(board); err != nil {
		return nil, err
	}
	return board, nil
}
