package savestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"

	"netchess/internal/board"
)

const keyPrefix = "position:"

var (
	ErrNotFound    = errors.New("saved position not found")
	ErrInvalidName = errors.New("invalid save name")
)

// SavedPosition is a position with the moves that led to it from InitialFEN.
type SavedPosition struct {
	Name       string    `json:"name"`
	InitialFEN string    `json:"initial_fen"`
	Moves      []string  `json:"moves"`
	FEN        string    `json:"fen"`
	SavedAt    time.Time `json:"saved_at"`
}

// Store wraps BadgerDB for saved positions
type Store struct {
	db *badger.DB
}

// Open opens or creates the store in dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open save store: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenDefault opens the store under the platform data directory, or under
// dataDir when it is set.
func OpenDefault(dataDir string) (*Store, error) {
	if dataDir == "" {
		var err error
		if dataDir, err = DataDir(); err != nil {
			return nil, err
		}
	}
	dbDir, err := DatabaseDir(dataDir)
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func validName(name string) bool {
	if name == "" || len(name) > 64 {
		return false
	}
	for _, r := range name {
		if r <= ' ' || r == 0x7f {
			return false
		}
	}
	return true
}

// Save stores a position under name, replacing any previous save. The FEN
// must parse.
func (s *Store) Save(name, initialFEN string, moves []string, fen string) error {
	if !validName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if _, err := board.ParseFEN(fen); err != nil {
		return err
	}

	rec := SavedPosition{
		Name:       name,
		InitialFEN: initialFEN,
		Moves:      append([]string(nil), moves...),
		FEN:        fen,
		SavedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyPrefix+name), data)
	})
}

// Load returns the position saved under name.
func (s *Store) Load(name string) (*SavedPosition, error) {
	var rec SavedPosition

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + name))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List returns all saves ordered by name.
func (s *Store) List() ([]SavedPosition, error) {
	var out []SavedPosition

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var rec SavedPosition
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", strings.TrimPrefix(string(it.Item().Key()), keyPrefix), err)
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes a save. Deleting a missing name returns ErrNotFound.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(keyPrefix + name)
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return fmt.Errorf("%w: %s", ErrNotFound, name)
			}
			return err
		}
		return txn.Delete(key)
	})
}
