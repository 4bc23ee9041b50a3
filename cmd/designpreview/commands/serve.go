package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/designpreview/internal/config"
	"git.home.luguber.info/inful/designpreview/internal/design"
	"git.home.luguber.info/inful/designpreview/internal/logfields"
	"git.home.luguber.info/inful/designpreview/internal/metrics"
	"git.home.luguber.info/inful/designpreview/internal/publish"
	"git.home.luguber.info/inful/designpreview/internal/server/httpserver"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Root      string        `short:"r" help:"Directory to serve (overrides config root)"`
	Host      string        `help:"Listen host (overrides server.host)"`
	Port      int           `short:"p" help:"Listen port (overrides server.port)"`
	Publish   time.Duration `help:"Republish the manifest file at this interval (overrides publish.interval)"`
	NoMetrics bool          `name:"no-metrics" help:"Disable the /metrics endpoint"`
}

func (s *ServeCmd) Run(global *Global, root *CLI) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	s.apply(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return RunServe(ctx, global, cfg)
}

func (s *ServeCmd) apply(cfg *config.Config) {
	cfg.Root = override(cfg.Root, s.Root)
	cfg.Server.Host = override(cfg.Server.Host, s.Host)
	if s.Port > 0 {
		cfg.Server.Port = s.Port
	}
	if s.Publish > 0 {
		cfg.Publish.Interval = s.Publish
	}
	if s.NoMetrics {
		cfg.Server.Metrics = false
	}
}

// RunServe serves cfg.Root until ctx is done. When a publish interval is
// configured the manifest file is also rewritten on that schedule.
func RunServe(ctx context.Context, global *Global, cfg *config.Config) error {
	logger := global.logger()
	if _, err := design.DiscoverVersions(cfg.Root); err != nil {
		return design.Classify(err, cfg.Root)
	}

	opts := []design.Option{design.WithLogger(logger)}
	var reg *prom.Registry
	if cfg.Server.Metrics {
		reg = prom.NewRegistry()
		opts = append(opts, design.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	}
	builder := design.NewBuilder(opts...)

	var publisher *publish.Publisher
	if cfg.Publish.Interval > 0 {
		publisher = publish.NewPublisher(builder, publish.Source{
			Root:        cfg.Root,
			Title:       cfg.Title,
			Description: cfg.Description,
		}, cfg.Output, logger)
		if _, err := publisher.Publish(); err != nil {
			return err
		}
	}

	srv := httpserver.New(httpserver.Options{
		Root:        cfg.Root,
		Title:       cfg.Title,
		Description: cfg.Description,
		Builder:     builder,
		Registry:    reg,
		Logger:      logger,
	})
	if err := srv.Start(ctx, cfg.Addr()); err != nil {
		return err
	}

	// Scheduling starts only after the listener is bound.
	schedDone := make(chan error, 1)
	if publisher != nil {
		sched, err := publish.NewScheduler(publisher, cfg.Publish.Interval)
		if err != nil {
			_ = srv.Stop(context.WithoutCancel(ctx))
			return err
		}
		logger.Info("Scheduled manifest publishing",
			logfields.Output(cfg.Output),
			slog.Duration("interval", cfg.Publish.Interval))
		go func() { schedDone <- sched.Run(ctx) }()
	} else {
		schedDone <- nil
	}
	_, _ = fmt.Fprintf(global.out(), "Serving %s at http://%s/\n", cfg.Root, srv.Addr())

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	serverErr := srv.Stop(shutdownCtx)
	if err := <-schedDone; err != nil && serverErr == nil {
		serverErr = fmt.Errorf("stop publish scheduler: %w", err)
	}
	return serverErr
}
