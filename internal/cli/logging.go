package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// LogParams selects the logger configuration
type LogParams struct {
	Debug bool
	JSON  bool
}

// SetupLogging configures the global logger. Console output goes to
// stderr so generated text written to stdout stays clean.
func SetupLogging(p LogParams) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr}
	if p.JSON {
		out = os.Stderr
	}
	level := zerolog.InfoLevel
	if p.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

// utility
func absPath(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	abs, _ := filepath.Abs(p)
	return abs
}
