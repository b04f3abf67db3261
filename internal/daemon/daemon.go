package daemon

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spotter-app/spotter/internal/api"
	"github.com/spotter-app/spotter/internal/app/scoring"
	"github.com/spotter-app/spotter/internal/app/tracker"
	"github.com/spotter-app/spotter/internal/domain"
	_ "github.com/spotter-app/spotter/internal/infra/metrics" // Register Prometheus metrics
	"github.com/spotter-app/spotter/internal/infra/sqlite"
	"github.com/spotter-app/spotter/internal/infra/textgen"
)

// Daemon is the core Spotter runtime. It wires together all services.
type Daemon struct {
	Config  Config
	DB      *sqlite.DB
	Tracker *tracker.Tracker
	Server  *api.Server
	cancel  context.CancelFunc
}

// New creates and initializes a Daemon with all services wired.
func New(version string) (*Daemon, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return NewWithConfig(cfg, version)
}

// NewWithConfig creates a Daemon with the given configuration.
func NewWithConfig(cfg Config, version string) (*Daemon, error) {
	dir := cfg.Storage.Dir
	if dir == "" {
		dir = spotterHome()
	}
	db, err := sqlite.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Message generator; a disabled generator pins nudges to the static
	// fallback templates. The typed-nil check matters: a nil *Client
	// boxed in the interface would dodge the nil guard downstream.
	var gen domain.TextGenerator
	if c := textgen.New(cfg.Generator); c != nil {
		gen = c
	}

	scoringCfg := cfg.Scoring
	if scoringCfg.BasePoints == 0 {
		scoringCfg = scoring.DefaultConfig()
	}

	tr := tracker.New(db, gen, scoringCfg)

	srv := api.NewServer(tr, db, version)
	if cfg.Telemetry.Prometheus {
		srv.EnableMetrics()
	}

	return &Daemon{
		Config:  cfg,
		DB:      db,
		Tracker: tr,
		Server:  srv,
	}, nil
}

// Serve starts the HTTP server and blocks until shutdown.
func (d *Daemon) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	addr := fmt.Sprintf("%s:%d", d.Config.Server.Host, d.Config.Server.Port)

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      d.Server.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	// Graceful shutdown on signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-ctx.Done():
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		_ = httpServer.Shutdown(shutdownCtx)
		_ = d.DB.Close()
	}()

	fmt.Printf("Spotter serving on http://%s\n", addr)
	if d.Config.Generator.Enabled {
		fmt.Printf("  Generator: %s (%s)\n", d.Config.Generator.Endpoint, d.Config.Generator.Model)
	}
	if d.Config.Telemetry.Prometheus {
		fmt.Printf("  Metrics: http://%s/metrics\n", addr)
	}

	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Close shuts down all daemon resources.
func (d *Daemon) Close() {
	if d.cancel != nil {
		d.cancel()
	}
	if d.DB != nil {
		_ = d.DB.Close()
	}
}
