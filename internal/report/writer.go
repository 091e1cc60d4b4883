package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/genc-murat/memprobe/internal/core/models"
)

const (
	fileTimestampLayout = "2006-01-02T15-04-05"
	defaultSuffix       = "-memory-test.json"
)

// Writer stores result sequences as JSON documents inside a report directory.
type Writer struct {
	dir    string
	now    func() time.Time
	logger *slog.Logger
}

type WriterOption func(*Writer)

func WithWriterClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		w.now = now
	}
}

func WithWriterLogger(logger *slog.Logger) WriterOption {
	return func(w *Writer) {
		w.logger = logger
	}
}

func NewWriter(dir string, opts ...WriterOption) *Writer {
	w := &Writer{
		dir:    dir,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path resolves where a report goes. An absolute output is used as is, a
// relative one is placed in the report directory, and an empty one gets a
// name derived from the current time.
func (w *Writer) Path(output string) string {
	if output != "" {
		if filepath.IsAbs(output) {
			return output
		}
		return filepath.Join(w.dir, output)
	}
	name := w.now().UTC().Format(fileTimestampLayout) + defaultSuffix
	return filepath.Join(w.dir, name)
}

// Write serializes results as an indented JSON array. The document is written
// to a temporary file first and renamed into place.
func (w *Writer) Write(results []models.Result, path string) error {
	if results == nil {
		results = []models.Result{}
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}
	data = append(data, '\n')

	if err := writeFileAtomic(path, data); err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}

	w.logger.Info("report written", "path", path, "results", len(results))
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating report directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("error writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("error syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("error setting report permissions: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}
