package serverrun

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	cfgpkg "github.com/calderhq/syncline/internal/config"
	"github.com/calderhq/syncline/internal/metrics"
	"github.com/calderhq/syncline/internal/runtime"
	httpserver "github.com/calderhq/syncline/internal/server/http"
	pebblestore "github.com/calderhq/syncline/internal/storage/pebble"
	logpkg "github.com/calderhq/syncline/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing; replaced by os.Getenv at build time
var getenv = func(key string) string { return os.Getenv(key) }

type Options struct {
	DataDir       string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	// Registerer defaults to the process-wide Prometheus registry. Tests
	// inject their own to avoid duplicate-collector panics.
	Registerer prometheus.Registerer
}

// Run starts the HTTP server and blocks until ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context
	// or if signal delivery needs to be observed here. We layer a
	// local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	m := metrics.New(opts.Registerer)

	// Build process-wide logger using env/ApplyConfig; defaults: level=info, format=text
	cfg := &logpkg.Config{
		Level:  getenvDefault("SYNCLINE_LOG_LEVEL", opts.Config.Log.Level),
		Format: getenvDefault("SYNCLINE_LOG_FORMAT", opts.Config.Log.Format),
	}
	procLogger, err := logpkg.ApplyConfig(cfg)
	if err != nil {
		// Fallback to a sane default
		lvl := logpkg.InfoLevel
		if l, e := logpkg.ParseLevel(cfg.Level); e == nil {
			lvl = l
		}
		procLogger = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}))
	}

	// Redirect stdlib logs (e.g., Pebble) to our logger
	logpkg.RedirectStdLog(procLogger)

	archiveDir := filepath.Join(opts.DataDir, "archive")
	rt, err := runtime.Open(runtime.Options{
		DataDir:       archiveDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Config:        opts.Config,
		Metrics:       m,
		Logger:        procLogger.With(logpkg.Component("runtime")),
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	procLogger.Info("Starting syncline server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("level", cfg.Level),
		logpkg.Str("format", cfg.Format),
		logpkg.Int("retention_cap", opts.Config.RetentionCap),
		logpkg.Bool("archive", opts.Config.ArchiveEvicted),
	)

	hsrv := httpserver.New(rt, procLogger.With(logpkg.Component("http")), m)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			log.Printf("http error: %v", err)
		}
	}()

	<-sctx.Done()
	// Initiate graceful shutdown of the server before closing the runtime/DB to avoid races.
	hsrv.Close()
	wg.Wait()
	return nil
}
