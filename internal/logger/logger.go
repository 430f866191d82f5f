package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Init configures the global zap logger. Verbose enables human-readable
// debug output; otherwise logs are JSON at info level. Both write to stderr
// so stdout stays clean for command output.
func Init(verbose bool) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	l, err := cfg.Build()
	if err != nil {
		l = zap.NewNop()
	}
	zap.ReplaceGlobals(l)
}

// Sync flushes any buffered log entries
func Sync() {
	_ = zap.L().Sync()
}
