// Package publish writes manifests to disk, once or on a schedule.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron/v2"

	"git.home.luguber.info/inful/designpreview/internal/design"
	ferrors "git.home.luguber.info/inful/designpreview/internal/foundation/errors"
	"git.home.luguber.info/inful/designpreview/internal/logfields"
)

// Source describes the manifest to publish.
type Source struct {
	Root        string
	Title       string
	Description string
}

// Publisher builds a manifest and writes it atomically to Output.
type Publisher struct {
	builder *design.Builder
	source  Source
	output  string
	logger  *slog.Logger
}

// NewPublisher creates a publisher. A nil builder uses design defaults.
func NewPublisher(builder *design.Builder, source Source, output string, logger *slog.Logger) *Publisher {
	if builder == nil {
		builder = design.NewBuilder()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{builder: builder, source: source, output: output, logger: logger}
}

// Publish performs a full scan and replaces the output file.
func (p *Publisher) Publish() (*design.Manifest, error) {
	m, err := p.builder.Build(p.source.Root, p.source.Title, p.source.Description)
	if err != nil {
		return nil, design.Classify(err, p.source.Root)
	}
	data, err := m.ToJSON()
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode manifest").Build()
	}
	if err := writeAtomic(p.output, append(data, '\n')); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryFileSystem, "failed to write manifest").
			WithRetry(ferrors.RetryBackoff).
			WithContext("output", p.output).
			Build()
	}
	p.logger.Info("Manifest published",
		logfields.Output(p.output),
		logfields.Count(m.ItemCount()))
	return m, nil
}

// writeAtomic writes data to a sibling temp file and renames it over path,
// so readers never observe a partially written manifest.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename %s: %w", tmpName, err)
	}
	return nil
}

// Scheduler republishes a manifest on a fixed interval.
type Scheduler struct {
	scheduler gocron.Scheduler
	publisher *Publisher
	logger    *slog.Logger
}

// NewScheduler creates a scheduler that runs publisher every interval.
// Overlapping runs are skipped rather than queued.
func NewScheduler(publisher *Publisher, interval time.Duration) (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}
	sched := &Scheduler{scheduler: s, publisher: publisher, logger: publisher.logger}

	_, err = s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(sched.run),
		gocron.WithName("publish-manifest"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = s.Shutdown()
		return nil, fmt.Errorf("failed to create publish job: %w", err)
	}
	return sched, nil
}

func (s *Scheduler) run() {
	if _, err := s.publisher.Publish(); err != nil {
		s.logger.Error("Scheduled publish failed", logfields.Output(s.publisher.output), logfields.Error(err))
	}
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info("Starting publish scheduler")
	s.scheduler.Start()
	<-ctx.Done()
	s.logger.Info("Stopping publish scheduler")
	return s.scheduler.Shutdown()
}
