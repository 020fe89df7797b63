// Package session holds the bearer token and user record between calls,
// backed by a pluggable key-value storage so the credential survives process
// restarts when a durable backend is used.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/keepclone/keep.go/pkg/models"
)

// Fixed storage keys. Token and user are always cleared together on logout.
const (
	keyToken = "token"
	keyUser  = "user"
)

// ErrNotFound is returned by Storage.Get when the key has no value.
var ErrNotFound = errors.New("session: key not found")

// Storage is a minimal durable key-value store. Implementations must be safe
// for concurrent use.
type Storage interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Store exposes the session values on top of a Storage. Token and user are
// independent: the token may be set before the user is known, e.g. in the
// middle of an OAuth exchange.
type Store struct {
	storage Storage
}

// New creates a session store over the given storage backend.
func New(storage Storage) *Store {
	return &Store{storage: storage}
}

// Token returns the held bearer token, or "" with no error when none is held.
func (s *Store) Token() (string, error) {
	v, err := s.storage.Get(keyToken)
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return v, err
}

// SetToken stores the bearer token.
func (s *Store) SetToken(token string) error {
	return s.storage.Set(keyToken, token)
}

// User returns the held user record, or nil when none is held.
func (s *Store) User() (*models.User, error) {
	v, err := s.storage.Get(keyUser)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var u models.User
	if err := json.Unmarshal([]byte(v), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetUser stores the user record as JSON.
func (s *Store) SetUser(u *models.User) error {
	b, err := json.Marshal(u)
	if err != nil {
		return err
	}
	return s.storage.Set(keyUser, string(b))
}

// Clear removes both token and user. Clearing an empty store is a no-op.
func (s *Store) Clear() error {
	if err := s.storage.Delete(keyToken); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := s.storage.Delete(keyUser); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

// Authenticated reports whether a token is held.
func (s *Store) Authenticated() bool {
	t, err := s.Token()
	return err == nil && t != ""
}

// MemoryStorage is an in-process Storage, used as the default backend and as
// a test double.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

// FileStorage persists values as a single JSON document on disk, so a CLI
// session survives process restarts. Writes go through a temp file rename.
type FileStorage struct {
	mu   sync.Mutex
	path string
}

// NewFileStorage creates a file-backed storage at path. Parent directories
// are created on first write.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

func (f *FileStorage) load() (map[string]string, error) {
	b, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (f *FileStorage) save(values map[string]string) error {
	b, err := json.Marshal(values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStorage) Get(key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *FileStorage) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	values, err := f.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return f.save(values)
}
