package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

const DefaultUsername = "guest"

// Username trims name and falls back to DefaultUsername when it is blank.
func Username(name string) string {
	if name = strings.TrimSpace(name); name == "" {
		return DefaultUsername
	}
	return name
}

// Store keeps one array per username. Get returns nil with no error when
// the user has nothing saved.
type Store interface {
	Put(ctx context.Context, username string, values []int) error
	Get(ctx context.Context, username string) ([]int, error)
	// Users lists usernames with a saved array in name order.
	Users(ctx context.Context) ([]string, error)
	Close() error
}

// OpenStore opens a store by kind: "file", "sqlite" or "memory".
func OpenStore(kind, path string) (Store, error) {
	switch kind {
	case "", "file":
		return NewFileStore(path)
	case "sqlite":
		return NewSQLiteStore(path)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("unknown store kind %q", kind)
}

type MemoryStore struct {
	mu     sync.RWMutex
	arrays map[string][]int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{arrays: make(map[string][]int)}
}

func (m *MemoryStore) Put(_ context.Context, username string, values []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.arrays[username] = cloneInts(values)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, username string) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.arrays[username]
	if !ok {
		return nil, nil
	}
	return cloneInts(v), nil
}

func cloneInts(v []int) []int {
	out := make([]int, len(v))
	copy(out, v)
	return out
}

func (m *MemoryStore) Users(context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.arrays), nil
}

func (m *MemoryStore) Close() error { return nil }

// FileStore keeps every array in one JSON object file, keyed by username.
// The file is read and rewritten on each call.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates the file with an empty object when it does not
// exist yet.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		return nil, errors.New("file store: empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte("{}"), 0644); err != nil {
			return nil, fmt.Errorf("create store file: %w", err)
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) read() (map[string][]int, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	sessions := make(map[string][]int)
	if len(strings.TrimSpace(string(data))) == 0 {
		return sessions, nil
	}
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}
	return sessions, nil
}

func (s *FileStore) Put(ctx context.Context, username string, values []int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read()
	if err != nil {
		return err
	}
	if values == nil {
		values = []int{}
	}
	sessions[username] = values

	data, err := json.Marshal(sessions)
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Get(ctx context.Context, username string) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read()
	if err != nil {
		return nil, err
	}
	return sessions[username], nil
}

func (s *FileStore) Users(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sessions, err := s.read()
	if err != nil {
		return nil, err
	}
	return sortedKeys(sessions), nil
}

func (s *FileStore) Close() error { return nil }

func sortedKeys(m map[string][]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
