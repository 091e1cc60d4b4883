package ports

import "github.com/genc-murat/memprobe/internal/core/models"

// ResultSink receives each result as soon as its scenario finishes.
type ResultSink interface {
	Add(result models.Result)
}

type ReportWriter interface {
	Write(results []models.Result, path string) error
}

type History interface {
	Append(entries ...models.HistoryEntry) error
	Read(callback func(entry models.HistoryEntry)) error
}
