// Package app wires configuration, scenario resolution, measurement and the
// report sinks into the memprobe commands.
package app

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	assets "github.com/genc-murat/memprobe/config"
	"github.com/genc-murat/memprobe/internal/cli"
	"github.com/genc-murat/memprobe/internal/config"
	"github.com/genc-murat/memprobe/internal/core/models"
	"github.com/genc-murat/memprobe/internal/core/ports"
	"github.com/genc-murat/memprobe/internal/measure"
	"github.com/genc-murat/memprobe/internal/metrics"
	"github.com/genc-murat/memprobe/internal/report"
	"github.com/genc-murat/memprobe/internal/runner"
	"github.com/genc-murat/memprobe/internal/sampler"
	"github.com/genc-murat/memprobe/internal/scenario"
	"github.com/genc-murat/memprobe/internal/storage"
	"github.com/genc-murat/memprobe/internal/util"
	"github.com/genc-murat/memprobe/pkg/utils/pattern"
)

type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	out      io.Writer
	styled   bool
	sampler  ports.Sampler
	engine   ports.Engine
	history  ports.History
	now      func() time.Time
	runID    func() string
	hostname func() (string, error)
}

type Option func(*App)

func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithOutput sets where tables go and whether they are styled.
func WithOutput(out io.Writer, styled bool) Option {
	return func(a *App) {
		a.out = out
		a.styled = styled
	}
}

func WithSampler(s ports.Sampler) Option {
	return func(a *App) {
		a.sampler = s
	}
}

func WithEngine(e ports.Engine) Option {
	return func(a *App) {
		a.engine = e
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

func WithRunID(next func() string) Option {
	return func(a *App) {
		a.runID = next
	}
}

func WithHostname(hostname func() (string, error)) Option {
	return func(a *App) {
		a.hostname = hostname
	}
}

func New(cfg *config.Config, opts ...Option) *App {
	a := &App{
		cfg:      cfg,
		logger:   slog.Default(),
		out:      os.Stdout,
		now:      time.Now,
		runID:    uuid.NewString,
		hostname: os.Hostname,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.sampler == nil {
		a.sampler = sampler.New()
	}
	if a.engine == nil {
		a.engine = measure.NewEngine()
	}
	a.history = storage.NewHistory(cfg.HistoryPath())
	return a
}

// RunSummary describes a finished benchmark run.
type RunSummary struct {
	RunID       string
	ReportPath  string
	MetricsPath string
	Results     []models.Result
}

// Run resolves the scenarios, measures them one after another and persists the
// report. Only resolution and report persistence failures are returned; history
// and metrics problems are logged.
func (a *App) Run(opts cli.Options) (*RunSummary, error) {
	scenariosPath := a.cfg.ScenariosPath()
	if v, ok := opts.Get(cli.KeyConfig); ok && v != "" {
		scenariosPath = v
	}

	configured := scenario.NewLoader(a.logger).Load(scenariosPath)
	scenarios, err := scenario.Resolve(opts, configured)
	if err != nil {
		return nil, err
	}

	if named, ok := a.sampler.(interface{ FaultCounterName() string }); ok {
		a.logger.Debug("fault counter selected", "provider", named.FaultCounterName())
	}
	a.logger.Info("starting benchmark", "scenarios", len(scenarios))

	aggregator := report.NewAggregator()
	renderer := report.NewRenderer(a.out, a.styled)
	sinks := []ports.ResultSink{aggregator, renderer}

	metricsPath := a.metricsPath(opts)
	var recorder *metrics.Recorder
	if metricsPath != "" {
		recorder = metrics.NewRecorder()
		sinks = append(sinks, recorder)
	}

	r := runner.New(a.sampler, a.engine, runner.WithLogger(a.logger), runner.WithClock(a.now))
	r.RunAll(scenarios, sinks...)

	results := aggregator.Results()
	renderer.Summary(results)

	writer := report.NewWriter(a.cfg.ReportDir(), report.WithWriterClock(a.now), report.WithWriterLogger(a.logger))
	output, _ := opts.Get(cli.KeyOutput)
	summary := &RunSummary{
		RunID:      a.runID(),
		ReportPath: writer.Path(output),
		Results:    results,
	}
	if err := a.writeReport(writer, results, summary.ReportPath); err != nil {
		return nil, err
	}
	fmt.Fprintf(a.out, "Report saved to %s\n", summary.ReportPath)

	if a.cfg.Report.HistoryEnabled && !opts.Bool(cli.KeyNoHistory) {
		a.appendHistory(summary.RunID, results)
	}

	if recorder != nil {
		if err := recorder.WriteTextfile(metricsPath); err != nil {
			a.logger.Warn("could not write metrics", "path", metricsPath, "error", err)
		} else {
			summary.MetricsPath = metricsPath
			a.logger.Info("metrics written", "path", metricsPath, "scenarios", recorder.Recorded())
		}
	}

	return summary, nil
}

func (a *App) writeReport(w ports.ReportWriter, results []models.Result, path string) error {
	return w.Write(results, path)
}

// metricsPath is empty when no textfile should be written. A bare
// --metrics-file enables the configured location.
func (a *App) metricsPath(opts cli.Options) string {
	if v, ok := opts.Get(cli.KeyMetricsFile); ok && v != "" && v != "true" {
		return v
	}
	if a.cfg.Metrics.Enabled || opts.Bool(cli.KeyMetricsFile) {
		return a.cfg.MetricsPath()
	}
	return ""
}

func (a *App) appendHistory(runID string, results []models.Result) {
	host, _ := a.hostname()

	entries := make([]models.HistoryEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, models.HistoryEntry{RunID: runID, Host: host, Result: r})
	}
	if err := a.history.Append(entries...); err != nil {
		a.logger.Warn("could not append history", "path", a.cfg.HistoryPath(), "error", err)
		return
	}
	a.logger.Debug("history appended", "path", a.cfg.HistoryPath(), "entries", len(entries))
}

// History prints stored entries whose scenario id matches the --scenario
// globs, keeping only the last --limit of them.
func (a *App) History(opts cli.Options) ([]models.HistoryEntry, error) {
	var globs []string
	if v, ok := opts.Get(cli.KeyScenario); ok {
		globs = util.SplitList(v)
	}
	filter, err := pattern.Compile(globs)
	if err != nil {
		return nil, &models.InvalidArgumentError{Key: cli.KeyScenario, Value: opts[cli.KeyScenario], Err: err}
	}

	limit := 0
	if v, ok := opts.Get(cli.KeyLimit); ok {
		if limit, err = util.ParsePositiveInt(v); err != nil {
			return nil, &models.InvalidArgumentError{Key: cli.KeyLimit, Value: v, Err: err}
		}
	}

	var entries []models.HistoryEntry
	err = a.history.Read(func(e models.HistoryEntry) {
		if !filter.Match(e.Result.ScenarioID) {
			return
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) > limit {
			entries = entries[1:]
		}
	})
	if err != nil {
		return nil, fmt.Errorf("error reading history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Fprintf(a.out, "No history entries in %s\n", a.cfg.HistoryPath())
		return entries, nil
	}
	report.NewRenderer(a.out, a.styled).History(entries)
	return entries, nil
}

// Compare prints the comparison of two report files.
func (a *App) Compare(baselinePath, candidatePath string) (*report.Comparison, error) {
	c, err := report.CompareFiles(baselinePath, candidatePath)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("reports compared", "baseline", baselinePath, "candidate", candidatePath, "scenarios", len(c.Scenarios))
	report.NewRenderer(a.out, a.styled).Comparison(c)
	return c, nil
}

// Init writes the embedded default files into dir/config, leaving existing
// files untouched. It returns the paths it created.
func Init(dir string, logger *slog.Logger) ([]string, error) {
	target := filepath.Join(dir, "config")
	if err := os.MkdirAll(target, 0o755); err != nil {
		return nil, fmt.Errorf("error creating %s: %w", target, err)
	}

	var created []string
	for _, name := range []string{assets.DefaultFileName, assets.ScenariosFileName} {
		path := filepath.Join(target, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			logger.Info("file exists, skipping", "path", path)
			continue
		}
		if err != nil {
			return created, &models.PersistenceError{Path: path, Err: err}
		}
		_, werr := f.Write(assets.Files()[name])
		cerr := f.Close()
		if werr != nil {
			return created, &models.PersistenceError{Path: path, Err: werr}
		}
		if cerr != nil {
			return created, &models.PersistenceError{Path: path, Err: cerr}
		}
		created = append(created, path)
	}
	return created, nil
}
