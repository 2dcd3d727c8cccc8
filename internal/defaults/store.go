// Package defaults persists the answers a user saved per project.
package defaults

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/re-cinq/instruct/internal/fileutil"
)

// ErrNoProjectID is returned when a config has nothing to key saved answers by.
var ErrNoProjectID = errors.New("config has no $id or title to save defaults under")

// IsNoProjectID reports whether err indicates a missing project id.
func IsNoProjectID(err error) bool {
	return errors.Is(err, ErrNoProjectID)
}

// Store keeps saved answers keyed by project id.
type Store interface {
	Get(id string) (map[string]any, error)
	Put(id string, values map[string]any) error
	Delete(id string) (bool, error)
	List() ([]string, error)
	// Update replaces the record for id with fn's result in one locked step.
	// A nil or empty result removes the record.
	Update(id string, fn func(current map[string]any) map[string]any) error
}

// FileStore is a Store backed by one JSON file. Writers hold an exclusive
// lock on a sibling .lock file for the whole read-modify-write.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore returns a store reading and writing path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(id string) (map[string]any, error) {
	var rec map[string]any
	err := s.locked(false, func(all map[string]map[string]any) (bool, error) {
		rec = all[id]
		return false, nil
	})
	return rec, err
}

func (s *FileStore) Put(id string, values map[string]any) error {
	return s.Update(id, func(map[string]any) map[string]any { return values })
}

func (s *FileStore) Delete(id string) (bool, error) {
	var found bool
	err := s.locked(false, func(all map[string]map[string]any) (bool, error) {
		_, found = all[id]
		delete(all, id)
		return found, nil
	})
	return found, err
}

func (s *FileStore) List() ([]string, error) {
	var ids []string
	err := s.locked(false, func(all map[string]map[string]any) (bool, error) {
		for id := range all {
			ids = append(ids, id)
		}
		return false, nil
	})
	sort.Strings(ids)
	return ids, err
}

func (s *FileStore) Update(id string, fn func(current map[string]any) map[string]any) error {
	if id == "" {
		return fmt.Errorf("%w", ErrNoProjectID)
	}
	return s.locked(true, func(all map[string]map[string]any) (bool, error) {
		next := fn(all[id])
		if len(next) == 0 {
			delete(all, id)
		} else {
			all[id] = next
		}
		return true, nil
	})
}

// locked runs fn on the decoded file while holding the lock and writes the
// result back when fn reports a change. Unless create is set, a missing file
// is read as empty without touching the directory or the lock.
func (s *FileStore) locked(create bool, fn func(all map[string]map[string]any) (bool, error)) error {
	if !create {
		if _, err := os.Stat(s.path); os.IsNotExist(err) {
			_, err := fn(make(map[string]map[string]any))
			return err
		}
	}
	if err := fileutil.EnsureDir(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("creating defaults directory: %w", err)
	}
	unlock, err := acquireLock(s.path + ".lock")
	if err != nil {
		return err
	}
	defer unlock()

	all, err := s.read()
	if err != nil {
		return err
	}
	changed, err := fn(all)
	if err != nil || !changed {
		return err
	}
	return s.write(all)
}

func (s *FileStore) read() (map[string]map[string]any, error) {
	all := make(map[string]map[string]any)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return all, nil
		}
		return nil, fmt.Errorf("reading defaults: %w", err)
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("parsing defaults %s: %w", s.path, err)
	}
	return all, nil
}

// write stores all, removing the file once no project is left.
func (s *FileStore) write(all map[string]map[string]any) error {
	if len(all) == 0 {
		if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing defaults: %w", err)
		}
		return nil
	}
	out, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling defaults: %w", err)
	}
	if err := os.WriteFile(s.path, append(out, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing defaults: %w", err)
	}
	return nil
}
