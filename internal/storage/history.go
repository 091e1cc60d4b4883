package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/gofrs/flock"

	"github.com/genc-murat/memprobe/internal/core/models"
)

// maxLineSize bounds a single history record.
const maxLineSize = 1 << 20

// History is an append-only log of results, one JSON object per line. A
// sidecar lock file serializes writers across processes.
type History struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
}

func NewHistory(path string) *History {
	return &History{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (h *History) Append(entries ...models.HistoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return &models.PersistenceError{Path: h.path, Err: err}
	}
	if err := h.lock.Lock(); err != nil {
		return &models.PersistenceError{Path: h.path, Err: fmt.Errorf("error locking history: %w", err)}
	}
	defer h.lock.Unlock()

	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &models.PersistenceError{Path: h.path, Err: err}
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, entry := range entries {
		if err := enc.Encode(entry); err != nil {
			return &models.PersistenceError{Path: h.path, Err: err}
		}
	}
	if err := w.Flush(); err != nil {
		return &models.PersistenceError{Path: h.path, Err: err}
	}
	if err := f.Sync(); err != nil {
		return &models.PersistenceError{Path: h.path, Err: err}
	}
	return nil
}

// Read replays every stored entry in append order. A missing log is empty.
func (h *History) Read(callback func(entry models.HistoryEntry)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	f, err := os.Open(h.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	if err := h.lock.RLock(); err != nil {
		return fmt.Errorf("error locking history: %w", err)
	}
	defer h.lock.Unlock()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	line := 0
	for scanner.Scan() {
		line++
		raw := scanner.Bytes()
		if len(raw) == 0 {
			continue
		}
		var entry models.HistoryEntry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return fmt.Errorf("%s:%d: %w", h.path, line, err)
		}
		callback(entry)
	}
	return scanner.Err()
}
