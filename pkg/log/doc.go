// Package log provides structured logging for syncline components.
//
// Loggers are constructed explicitly and passed via dependency injection;
// there is no package-level default. A small slog bridge lets slog users
// share the same formatter/output pipeline, and RedirectStdLog routes
// legacy "log" output (e.g. Pebble's) through it.
//
// Typical construction:
//
//	logger := log.NewLogger(
//		log.WithLevel(log.InfoLevel),
//		log.WithFormatter(&log.TextFormatter{}),
//	).With(log.Component("changefeed"))
//	logger.Info("store opened", log.Int("retention_cap", 10000))
package log
