package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	clientcmd "github.com/calderhq/syncline/internal/cmd/client"
	serverrun "github.com/calderhq/syncline/internal/cmd/server"
	cfgpkg "github.com/calderhq/syncline/internal/config"
	pebblestore "github.com/calderhq/syncline/internal/storage/pebble"
	logpkg "github.com/calderhq/syncline/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	// initialize logger for CLI
	// Respect SYNCLINE_LOG_LEVEL for both CLI and server start output
	level := os.Getenv("SYNCLINE_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "syncline",
		Short: "Syncline runtime CLI",
		Long:  "Syncline is a single-binary sync backend. This CLI manages the server and basic operations.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start syncline server (HTTP)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data-dir")
			httpAddr, _ := cmd.Flags().GetString("http")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			configPath, _ := cmd.Flags().GetString("config")
			retentionCap, _ := cmd.Flags().GetInt("retention-cap")
			archive, _ := cmd.Flags().GetBool("archive")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "interval":
				mode = pebblestore.FsyncModeInterval
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return err
			}
			cfgpkg.FromEnv(&cfg)
			if cmd.Flags().Changed("retention-cap") {
				cfg.RetentionCap = retentionCap
			}
			if cmd.Flags().Changed("archive") {
				cfg.ArchiveEvicted = archive
			}
			if logLevel != "" {
				_ = os.Setenv("SYNCLINE_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("SYNCLINE_LOG_FORMAT", logFormat)
			}
			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       dataDir,
				HTTPAddr:      httpAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(fsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("http", ":8080", "HTTP listen address")
	serverStartCmd.Flags().String("config", "", "Config file path (JSON)")
	serverStartCmd.Flags().Int("retention-cap", 0, "Per-resource retained event cap (default 10000)")
	serverStartCmd.Flags().Bool("archive", false, "Persist evicted events to the on-disk archive")
	serverStartCmd.Flags().String("fsync", "always", "Archive fsync mode: always|interval|never")
	serverStartCmd.Flags().Int("fsync-interval-ms", 5, "When --fsync=interval, group-commit window in ms (default 5)")
	serverStartCmd.Flags().String("log-level", os.Getenv("SYNCLINE_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("SYNCLINE_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// events commands (poll, token, record, archive)
	eventsCmd := clientcmd.NewEventsCommand(apiURL)
	rootCmd.AddCommand(eventsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("SYNCLINE_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
