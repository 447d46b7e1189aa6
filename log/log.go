package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/btcsuite/btclog"
	"github.com/jrick/logrotate/rotator"
)

// logWriter implements an io.Writer that outputs to both standard output and
// the write-end pipe of an initialized log rotator.
type logWriter struct {
	rotator *rotator.Rotator
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	os.Stdout.Write(p)
	if w.rotator != nil {
		w.rotator.Write(p)
	}
	return len(p), nil
}

// Loggers holds one logger per subsystem, all writing to a single backend.
// Loggers can not write to a file before InitRotator has been called; until
// then they only write to standard output.
type Loggers struct {
	writer  *logWriter
	backend *btclog.Backend
	subs    map[string]btclog.Logger
}

// New creates a backend and a logger for each of the passed subsystem tags.
func New(subsystems ...string) *Loggers {
	w := &logWriter{}
	l := &Loggers{
		writer:  w,
		backend: btclog.NewBackend(w),
		subs:    make(map[string]btclog.Logger, len(subsystems)),
	}
	for _, tag := range subsystems {
		l.subs[tag] = l.backend.Logger(tag)
	}
	return l
}

// Logger returns the logger of a subsystem, or a disabled logger for an
// unknown tag.
func (l *Loggers) Logger(tag string) btclog.Logger {
	if logger, ok := l.subs[tag]; ok {
		return logger
	}
	return btclog.Disabled
}

// Subsystems returns the registered subsystem tags in sorted order.
func (l *Loggers) Subsystems() []string {
	tags := make([]string, 0, len(l.subs))
	for tag := range l.subs {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// InitRotator initializes the logging rotator to write logs to logFile and
// create roll files in the same directory.  It must be called before the
// package-global log rotator variables are used.
func (l *Loggers) InitRotator(logFile string, maxSizeKB int64, maxRolls int) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := rotator.New(logFile, maxSizeKB, false, maxRolls)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}
	l.writer.rotator = r
	return nil
}

// Close closes the log rotator, if any.
func (l *Loggers) Close() error {
	if l.writer.rotator == nil {
		return nil
	}
	return l.writer.rotator.Close()
}

// SetLogLevels applies a debug level specification.  It is either a single
// level applied to all subsystems, such as "debug", or a comma separated
// list of SUBSYS=level pairs.
func (l *Loggers) SetLogLevels(spec string) error {
	if !strings.Contains(spec, "=") {
		level, ok := btclog.LevelFromString(spec)
		if !ok {
			return fmt.Errorf("the specified debug level [%v] is invalid",
				spec)
		}
		for _, logger := range l.subs {
			logger.SetLevel(level)
		}
		return nil
	}

	for _, pair := range strings.Split(spec, ",") {
		fields := strings.Split(pair, "=")
		if len(fields) != 2 {
			return fmt.Errorf("the specified debug level contains an "+
				"invalid subsystem/level pair [%v]", pair)
		}
		logger, ok := l.subs[fields[0]]
		if !ok {
			return fmt.Errorf("the specified subsystem [%v] is invalid "+
				"-- supported subsystems %v", fields[0],
				l.Subsystems())
		}
		level, ok := btclog.LevelFromString(fields[1])
		if !ok {
			return fmt.Errorf("the specified debug level [%v] is "+
				"invalid", fields[1])
		}
		logger.SetLevel(level)
	}
	return nil
}
