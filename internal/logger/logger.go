// Package logger holds the process-wide structured logger.
package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is safe to use before Init; it starts as a no-op logger.
var Log = zap.NewNop()

// Init replaces Log. Setting KUSAMA_DEBUG=1 (or debug=true) switches to
// the human-readable development encoder at debug level.
func Init(debug bool) error {
	if os.Getenv("KUSAMA_DEBUG") == "1" {
		debug = true
	}

	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync flushes buffered entries. Errors from syncing a terminal are ignored.
func Sync() {
	_ = Log.Sync()
}
