package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// AppName names the state directory and the log file.
const AppName = "wpstack"

// verbosityLevels maps the count of -v flags onto a level. Anything past the
// end of the table logs everything.
var verbosityLevels = []zerolog.Level{
	zerolog.WarnLevel,
	zerolog.InfoLevel,
	zerolog.DebugLevel,
}

func levelFor(verbosity int) zerolog.Level {
	if verbosity < 0 {
		verbosity = 0
	}
	if verbosity >= len(verbosityLevels) {
		return zerolog.TraceLevel
	}
	return verbosityLevels[verbosity]
}

// SetupLogger installs the global logger. Records go to stderr and are
// appended to wpstack.log under the XDG state home. The log file and its
// directory are only created once a record passes the level filter, so a
// quiet run leaves no state behind.
func SetupLogger(verbosity int) {
	zerolog.SetGlobalLevel(levelFor(verbosity))

	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	ctx := zerolog.New(io.MultiWriter(console, &lazyLogFile{})).With().Timestamp()
	if verbosity >= 2 {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()

	log.Debug().Int("verbosity", verbosity).Str("log_file", logFilePath()).Msg("logger ready")
}

// lazyLogFile opens the log file on its first write. When that fails the
// file sink is dropped after one notice on stderr.
type lazyLogFile struct {
	once sync.Once
	f    *os.File
}

func (l *lazyLogFile) Write(p []byte) (int, error) {
	l.once.Do(func() {
		path, f, err := openLogFile()
		if err != nil {
			fmt.Fprintf(os.Stderr, "wpstack: log file %s unavailable, logging to stderr only: %v\n", path, err)
			return
		}
		l.f = f
	})
	if l.f == nil {
		return len(p), nil
	}
	return l.f.Write(p)
}

// GetLogger returns the global logger tagged with a component name.
func GetLogger(component string) zerolog.Logger {
	return log.With().Str("component", component).Logger()
}

// logFilePath is $XDG_STATE_HOME/wpstack/wpstack.log.
func logFilePath() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

func openLogFile() (string, *os.File, error) {
	path, err := xdg.StateFile(filepath.Join(AppName, AppName+".log"))
	if err != nil {
		return logFilePath(), nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return path, nil, err
	}
	return path, f, nil
}

// LogOperationStart records the start of operation at debug level. Calling
// the returned func records its end along with the elapsed time.
func LogOperationStart(logger zerolog.Logger, operation string) func() {
	began := time.Now()
	logger.Debug().Str("operation", operation).Msg("Operation started")
	return func() {
		logger.Debug().
			Str("operation", operation).
			Dur("duration", time.Since(began)).
			Msg("Operation completed")
	}
}
