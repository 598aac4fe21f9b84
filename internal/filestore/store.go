// Package filestore implements the flat-file storage backend: every live
// entity sits in one in-process map keyed by "{Kind}.{id}", mirrored to a
// single JSON file on Save.
//
// Several processes sharing one file are not coordinated. Each Save writes a
// full snapshot, so the last writer wins.
package filestore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// Store implements types.Engine on top of a JSON file.
type Store struct {
	mu      sync.RWMutex
	path    string
	objects map[string]types.Entity
}

// New creates an empty store backed by the file at path. Nothing is read
// until Reload.
func New(path string) *Store {
	return &Store{
		path:    path,
		objects: make(map[string]types.Entity),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// All returns the tracked entities, filtered to kind when kind is non-empty.
func (s *Store) All(kind types.Kind) (map[string]types.Entity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]types.Entity)
	for key, e := range s.objects {
		if kind == "" || e.Kind() == kind {
			result[key] = e
		}
	}
	return result, nil
}

// New registers e under its composite key. An existing entry is replaced.
func (s *Store) New(e types.Entity) {
	if e == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[types.Key(e)] = e
}

// Delete removes e if it is tracked. Idempotent.
func (s *Store) Delete(e types.Entity) {
	if e == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.objects, types.Key(e))
}

// Save writes every tracked entity, password included, to the backing file.
func (s *Store) Save() error {
	s.mu.RLock()
	records := make(map[string]map[string]any, len(s.objects))
	for key, e := range s.objects {
		records[key] = e.ToMap(true)
	}
	s.mu.RUnlock()

	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", s.path, err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("saving %s: %w", s.path, err)
	}
	return nil
}

// Reload replaces the tracked entities with the records in the backing file,
// so registrations that were never saved are dropped. A missing file is not
// an error and leaves the store empty. A file that cannot be parsed, or that
// holds a record with an unknown __class__, returns an error wrapping
// types.ErrCorruptStore and leaves the store untouched.
func (s *Store) Reload() error {
	loaded, err := s.read()
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = loaded
	return nil
}

func (s *Store) read() (map[string]types.Entity, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return make(map[string]types.Entity), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}

	var records map[string]map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", types.ErrCorruptStore, s.path, err)
	}

	loaded := make(map[string]types.Entity, len(records))
	for key, rec := range records {
		e, err := types.FromRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: record %q: %w", types.ErrCorruptStore, s.path, key, err)
		}
		loaded[types.Key(e)] = e
	}
	return loaded, nil
}

// Close is a no-op kept for symmetry with the relational backend.
func (s *Store) Close() error {
	return nil
}

var _ types.Engine = (*Store)(nil)
