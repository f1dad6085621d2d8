// Package logger provides structured logging for the worker.
//
// It wraps Uber's Zap logger with a simplified method set used across the
// codebase: every log call takes a message, an optional error, and optional
// structured field maps.
//
// Basic Usage:
//
//	log := logger.NewLoggerClient(logger.Config{Level: "info"})
//
//	log.Info("schedule updated", nil, map[string]interface{}{
//		"schedule_id": 42,
//	})
//
//	log.Error("enrichment call failed", err, map[string]interface{}{
//		"drug": "aspirin",
//	})
//
// FX Module Integration:
//
//	app := fx.New(
//		logger.FXModule,
//		// ... other modules
//	)
//	app.Run()
//
// Configuration:
//
//	ZAP_LOGGER_LEVEL=debug   # Log level (debug, info, warning, error)
//
// Thread Safety:
//
// All methods on Logger are safe for concurrent use by multiple goroutines.
package logger
