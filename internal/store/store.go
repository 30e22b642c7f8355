// Package store persists the calculator inputs as plain string key/value
// pairs, the terminal counterpart of browser local storage.
//
// Persistence is best-effort: callers log failures and keep working with the
// in-memory values.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/chasinglogic/appdirs"
	"github.com/juju/mutex/v2"

	"github.com/treykane/cli-gearing/internal/logging"
)

const (
	appName     = "cli-gearing"
	fileName    = "store.json"
	lockName    = "cli-gearing-store"
	lockDelay   = 20 * time.Millisecond
	lockTimeout = 2 * time.Second
	filePerm    = 0o600
	dirPerm     = 0o700
)

var log = logging.New("store")

// KV is a string key/value store.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// DefaultPath returns the store location inside the user data directory.
func DefaultPath() string {
	return filepath.Join(appdirs.New(appName).UserData(), fileName)
}

// File is a KV backed by a JSON object on disk. The whole object is rewritten
// on every Set while holding a machine-wide lock, so concurrent instances
// merge rather than clobber each other's keys.
type File struct {
	path string

	mu     sync.Mutex
	values map[string]string
}

// Open loads the store at path. A missing file yields an empty store.
func Open(path string) (*File, error) {
	f := &File{path: path, values: map[string]string{}}
	values, err := readFile(path)
	if err != nil {
		return f, err
	}
	f.values = values
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// Get returns the value stored under key.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.values[key]
	return v, ok
}

// Set stores value under key and writes the file. The in-memory value is
// updated even when the write fails.
func (f *File) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value

	releaser, err := mutex.Acquire(mutex.Spec{
		Name:    lockName,
		Clock:   wallClock{},
		Delay:   lockDelay,
		Timeout: lockTimeout,
	})
	if err != nil {
		return fmt.Errorf("acquire store lock: %w", err)
	}
	defer releaser.Release()

	onDisk, err := readFile(f.path)
	if err != nil {
		log.Warn("discarding unreadable store", "path", f.path, "error", err)
		onDisk = map[string]string{}
	}
	for k, v := range onDisk {
		if _, ok := f.values[k]; !ok {
			f.values[k] = v
		}
	}
	f.values[key] = value

	if err := writeFile(f.path, f.values); err != nil {
		return err
	}
	log.Debug("stored value", "key", key)
	return nil
}

func readFile(path string) (map[string]string, error) {
	values := map[string]string{}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return values, nil
		}
		return values, fmt.Errorf("read store %q: %w", path, err)
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(data, &values); err != nil {
		return map[string]string{}, fmt.Errorf("parse store %q: %w", path, err)
	}
	return values, nil
}

func writeFile(path string, values map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), ".store-*.json")
	if err != nil {
		return fmt.Errorf("write store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write store: %w", err)
	}
	return nil
}

type wallClock struct{}

func (wallClock) After(d time.Duration) <-chan time.Time { return time.After(d) }
func (wallClock) Now() time.Time { return time.Now() }

// Memory is an in-process KV. The zero value is ready to use.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// Get returns the value stored under key.
func (m *Memory) Get(key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

// Set stores value under key. It never fails.
func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = map[string]string{}
	}
	m.values[key] = value
	return nil
}
