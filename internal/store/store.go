package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/cole/shophours/internal/domain"
)

var (
	// ErrImportValidation means a backup blob failed shape validation
	ErrImportValidation = errors.New("backup is missing required data arrays")

	// ErrFutureSchema means the blob was written by a newer release.
	// Loading it would silently drop fields, so we refuse instead.
	ErrFutureSchema = errors.New("state was written by a newer schema version")
)

// Store owns the single application state value. Every mutation replaces
// the whole state and persists it; reads hand out deep-copied snapshots.
type Store struct {
	path string
	log  *slog.Logger

	mu    sync.Mutex
	state *domain.AppState
}

// Open loads the state blob at path, applying any pending migrations.
// A missing file yields an empty default state. A corrupt, unparseable
// blob also falls back to the default state (logged); this is the only
// case where stored data is discarded.
func Open(path string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{path: path, log: log}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			// Unreadable file is a persistence failure, not corruption:
			// surface it rather than clobbering the blob on next save.
			return nil, fmt.Errorf("failed to read state file: %w", err)
		}
		s.state = domain.DefaultState()
		return s, nil
	}

	state, err := decode(data)
	if err != nil {
		if errors.Is(err, ErrFutureSchema) {
			return nil, err
		}
		log.Error("state file is corrupt, starting empty", "path", path, "error", err)
		s.state = domain.DefaultState()
		return s, nil
	}

	s.state = state
	return s, nil
}

// decode parses and migrates a raw blob into a current-schema state
func decode(data []byte) (*domain.AppState, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse state blob: %w", err)
	}

	raw, err := migrate(raw)
	if err != nil {
		return nil, err
	}

	migrated, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to re-encode migrated state: %w", err)
	}

	state := domain.DefaultState()
	if err := json.Unmarshal(migrated, state); err != nil {
		return nil, fmt.Errorf("failed to decode state: %w", err)
	}
	return state, nil
}

// State returns a deep-copied snapshot of the current state
func (s *Store) State() *domain.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Update produces the next state from the current one. The mutator runs
// on a copy; only when it succeeds does the copy replace the live state
// and get persisted. A persistence failure is logged, not rolled back:
// the session stays usable on the in-memory state.
func (s *Store) Update(fn func(st *domain.AppState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	s.state = next
	s.persist()
	return nil
}

// Save forces the current state to disk
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.write()
}

// persist is the fire-and-forget save after a state replacement
func (s *Store) persist() {
	if err := s.write(); err != nil {
		s.log.Error("failed to persist state", "path", s.path, "error", err)
	}
}

// write serializes the state atomically (temp file + rename). Callers
// hold s.mu.
func (s *Store) write() error {
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}

// Export serializes the whole state for backup
func (s *Store) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to export state: %w", err)
	}
	return data, nil
}

// Import replaces the state with a backup blob. The blob goes through
// the same shape validation and migration chain as a normal load, and
// the existing state is untouched when validation fails.
func (s *Store) Import(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrImportValidation, err)
	}
	if _, ok := raw["clients"].([]any); !ok {
		return fmt.Errorf("%w: clients", ErrImportValidation)
	}
	if _, ok := raw["entries"].([]any); !ok {
		return fmt.Errorf("%w: entries", ErrImportValidation)
	}

	state, err := decode(data)
	if err != nil {
		if errors.Is(err, ErrFutureSchema) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrImportValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = state
	s.persist()
	return nil
}
