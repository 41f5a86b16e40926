// Package logging configures the process-wide controller-runtime logger and
// defines the verbosity levels used across the operator. Call sites log
// through ctrl.Log or ctrl.LoggerFrom(ctx) and select verbosity with
// V(logging.DEBUG) or V(logging.TRACE).
package logging

import (
	"strings"

	"github.com/go-logr/logr"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

// Verbosity levels for logr V(). INFO is always emitted; DEBUG and TRACE
// require the matching level at setup time.
const (
	INFO  = 0
	DEBUG = 1
	TRACE = 2
)

// Setup installs the global logger. level is one of "error", "info",
// "debug" or "trace" (unknown values fall back to "info"); dev selects the
// human-readable development encoder.
func Setup(level string, dev bool) logr.Logger {
	logger := zap.New(
		zap.UseDevMode(dev),
		zap.Level(parseLevel(level)),
	)
	ctrl.SetLogger(logger)
	return logger
}

// NewTestLogger routes controller-runtime logging to a development-mode
// logger at trace verbosity. Test suites call it once before running specs.
func NewTestLogger() logr.Logger {
	logger := zap.New(
		zap.UseDevMode(true),
		zap.Level(zapcore.Level(-TRACE)),
	)
	ctrl.SetLogger(logger)
	return logger
}

// parseLevel maps a level name to a zap enabler. logr verbosity n
// corresponds to zap level -n.
func parseLevel(level string) zapcore.LevelEnabler {
	switch strings.ToLower(level) {
	case "error":
		return zapcore.ErrorLevel
	case "debug":
		return zapcore.Level(-DEBUG)
	case "trace":
		return zapcore.Level(-TRACE)
	default:
		return zapcore.InfoLevel
	}
}
