package logging

import (
	"os"
	"strings"

	"github.com/phuslu/log"
)

// Setup configures the process-wide logger. console switches to the
// human-readable writer; otherwise one JSON object per line goes to stderr.
func Setup(level string, console bool) {
	lvl := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if level == "" {
		lvl = log.InfoLevel
	}

	logger := log.Logger{
		Level:      lvl,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	if console {
		logger.Writer = &log.ConsoleWriter{ColorOutput: true, Writer: os.Stderr}
	} else {
		logger.Writer = &log.IOWriter{Writer: os.Stderr}
	}
	log.DefaultLogger = logger
}
