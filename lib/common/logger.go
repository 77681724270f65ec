package common

import (
	"fmt"
	"github.com/lmittmann/tint"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/mattn/go-isatty"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// --------------------------------------------------------------------------
// Custom Logger (implements dragonboats logger.ILogger)
// --------------------------------------------------------------------------

// dFarmLogger implements the ILogger interface on top of a slog handler
type dFarmLogger struct {
	mu     sync.RWMutex
	level  logger.LogLevel
	logger *slog.Logger
}

func (l *dFarmLogger) SetLevel(level logger.LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

func (l *dFarmLogger) enabled(level logger.LogLevel) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.level >= level
}

func (l *dFarmLogger) Debugf(format string, args ...interface{}) {
	if l.enabled(logger.DEBUG) {
		l.logger.Debug(fmt.Sprintf(format, args...))
	}
}

func (l *dFarmLogger) Infof(format string, args ...interface{}) {
	if l.enabled(logger.INFO) {
		l.logger.Info(fmt.Sprintf(format, args...))
	}
}

func (l *dFarmLogger) Warningf(format string, args ...interface{}) {
	if l.enabled(logger.WARNING) {
		l.logger.Warn(fmt.Sprintf(format, args...))
	}
}

func (l *dFarmLogger) Errorf(format string, args ...interface{}) {
	if l.enabled(logger.ERROR) {
		l.logger.Error(fmt.Sprintf(format, args...))
	}
}

func (l *dFarmLogger) Panicf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	l.logger.Error(message)
	panic(message)
}

// --------------------------------------------------------------------------
// Logger Factory
// --------------------------------------------------------------------------

var (
	output     io.Writer = os.Stderr
	handler    slog.Handler
	handlerMu  sync.Mutex
	factoryOne sync.Once
)

// newHandler creates the tint handler used by all loggers. Colors are only used on terminals.
func newHandler(w io.Writer) slog.Handler {
	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}
	return tint.NewHandler(w, &tint.Options{
		Level:      slog.LevelDebug, // filtering happens per package in dFarmLogger
		TimeFormat: "15:04:05.000",
		NoColor:    noColor,
	})
}

// CreateLogger implements dragonboats logger.Factory
func CreateLogger(pkgName string) logger.ILogger {
	handlerMu.Lock()
	if handler == nil {
		handler = newHandler(output)
	}
	h := handler
	handlerMu.Unlock()

	return &dFarmLogger{
		level:  logger.INFO,
		logger: slog.New(h).With("pkg", pkgName),
	}
}

// SetOutput redirects all loggers created afterward to w (used by tests and the CLI).
func SetOutput(w io.Writer) {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	output = w
	handler = newHandler(w)
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// ParseLogLevel converts a string level to logger.LogLevel
func ParseLogLevel(level string) (logger.LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return logger.DEBUG, nil
	case "info", "":
		return logger.INFO, nil
	case "warning", "warn":
		return logger.WARNING, nil
	case "error":
		return logger.ERROR, nil
	default:
		return logger.INFO, fmt.Errorf("invalid log level: %s. must be one of debug, info, warn, error", level)
	}
}

// --------------------------------------------------------------------------
// Logger initialization
// --------------------------------------------------------------------------

// Packages are the names of all loggers used by dFarm
var Packages = []string{"farm", "store", "cache", "catalog", "lockmgr", "cmd"}

// InitLoggers installs the custom logger factory and sets the level of all dFarm loggers
func InitLoggers(level string) error {
	lvl, err := ParseLogLevel(level)
	if err != nil {
		return err
	}

	// Set as the global logger factory (only once, dragonboat rebinds existing loggers)
	factoryOne.Do(func() {
		logger.SetLoggerFactory(CreateLogger)
	})

	for _, pkg := range Packages {
		logger.GetLogger(pkg).SetLevel(lvl)
	}
	return nil
}
