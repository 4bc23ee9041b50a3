package design

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/designpreview/internal/logfields"
	"git.home.luguber.info/inful/designpreview/internal/metrics"
)

// Builder assembles manifests. Every Build performs a full scan; nothing is cached.
type Builder struct {
	discovery *Discovery
	logger    *slog.Logger
	recorder  metrics.Recorder
	now       func() time.Time
}

// NewBuilder creates a manifest builder.
func NewBuilder(opts ...Option) *Builder {
	o := applyOptions(opts)
	return &Builder{
		discovery: &Discovery{logger: o.logger, recorder: o.recorder},
		logger:    o.logger,
		recorder:  o.recorder,
		now:       o.now,
	}
}

// BuildManifest scans root and wraps the result with the given metadata.
func BuildManifest(root, title, description string) (*Manifest, error) {
	return NewBuilder().Build(root, title, description)
}

// Build scans root and wraps the result with the given metadata.
func (b *Builder) Build(root, title, description string) (*Manifest, error) {
	start := time.Now()
	defer func() { b.recorder.ObserveBuildDuration(time.Since(start)) }()

	versions, err := b.discovery.DiscoverVersions(root)
	if err != nil {
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		b.logger.Error("Manifest build failed", logfields.Root(root), logfields.Error(err))
		return nil, err
	}

	generatedAt := b.now().Format(GeneratedAtLayout)
	m, err := NewManifest(title, description, generatedAt, root, versions)
	if err != nil {
		b.recorder.IncBuildOutcome(metrics.OutcomeFailed)
		return nil, err
	}

	count := m.ItemCount()
	b.recorder.SetDiscoveredItems(count)
	if count == 0 {
		b.recorder.IncBuildOutcome(metrics.OutcomeEmpty)
	} else {
		b.recorder.IncBuildOutcome(metrics.OutcomeSuccess)
	}
	b.logger.Debug("Manifest built",
		logfields.Root(root),
		logfields.Count(count),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return m, nil
}
