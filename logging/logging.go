package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// EnvLevel names the environment variable read by GlobalLogger.
const EnvLevel = "LOG_LEVEL"

var (
	globalLogger log.Logger
	loggerInit   sync.Once
)

// GlobalLogger is the process logger of the binaries, filtered by $LOG_LEVEL (info when
// unset or invalid). Library packages take a logger argument instead.
func GlobalLogger() log.Logger {
	loggerInit.Do(func() {
		lvl, err := ParseLevel(os.Getenv(EnvLevel))
		globalLogger = NewLogger(os.Stderr, lvl)
		if err != nil {
			_ = level.Warn(globalLogger).Log("msg", "invalid log level, using info", "err", err)
		}
	})
	return globalLogger
}

// NewLogger returns a JSON logger writing to w, with caller and timestamp, that drops
// everything below lvl.
func NewLogger(w io.Writer, lvl level.Option) log.Logger {
	logger := log.NewJSONLogger(log.NewSyncWriter(w))
	logger = log.With(logger, "caller", log.DefaultCaller, "ts", log.DefaultTimestamp)
	return level.NewFilter(logger, lvl)
}

// ParseLevel maps debug, info, warn and error to a filter option. Empty means info.
func ParseLevel(s string) (level.Option, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return level.AllowDebug(), nil
	case "", "info":
		return level.AllowInfo(), nil
	case "warn", "warning":
		return level.AllowWarn(), nil
	case "error":
		return level.AllowError(), nil
	case "none":
		return level.AllowNone(), nil
	}
	return level.AllowInfo(), fmt.Errorf("unknown log level %q", s)
}
