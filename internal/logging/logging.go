package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates the application logger. Output goes to stderr so it never
// interleaves with command output on stdout. Verbose enables debug level.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// NewNop returns a logger that discards everything. Used in tests and
// as a safe fallback when logger construction fails.
func NewNop() *zap.Logger {
	return zap.NewNop()
}
