// Package logging provides categorized file-based logging for PawPal.
// Logs are written to <state dir>/logs with one file per category per day.
// Logging is controlled by debug_mode in the config file; when disabled the
// whole package is a silent no-op.
package logging

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Category represents a log category/system.
type Category string

const (
	CategoryBoot    Category = "boot"    // Startup and shutdown
	CategorySession Category = "session" // Navigation, preferences
	CategoryCatalog Category = "catalog" // Store mutations, journal
	CategorySearch  Category = "search"  // Filter engine
	CategoryOps     Category = "ops"     // Async operation lifecycles
	CategoryAssist  Category = "assist"  // Generative AI calls
	CategoryGeo     Category = "geo"     // Geolocation and place search
	CategoryUI      Category = "ui"      // Page controllers
)

// Log levels.
const (
	LevelDebug = 0
	LevelInfo  = 1
	LevelWarn  = 2
	LevelError = 3
)

var (
	loggers   = make(map[Category]*Logger)
	loggersMu sync.RWMutex

	stateMu  sync.RWMutex
	logsDir  string
	enabled  bool
	logLevel = LevelInfo
)

// Logger writes to one category's log file.
type Logger struct {
	category Category
	logger   *log.Logger
	file     *os.File
}

// Initialize sets up the logging directory. Called once at startup with the
// app state directory (e.g. ~/.pawpal). A no-op when debug is false.
func Initialize(stateDir string, debug bool, level string) error {
	stateMu.Lock()
	enabled = debug
	switch level {
	case "debug":
		logLevel = LevelDebug
	case "warn", "warning":
		logLevel = LevelWarn
	case "error":
		logLevel = LevelError
	default:
		logLevel = LevelInfo
	}
	logsDir = filepath.Join(stateDir, "logs")
	dir := logsDir
	stateMu.Unlock()

	if !debug {
		return nil
	}
	if stateDir == "" {
		return fmt.Errorf("state directory required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	Boot("=== PawPal logging initialized (level=%s) ===", level)
	return nil
}

// Enabled reports whether debug logging is active.
func Enabled() bool {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return enabled
}

// Get returns (or creates) a logger for the given category. Returns a no-op
// logger when logging is disabled or the file cannot be opened.
func Get(category Category) *Logger {
	if !Enabled() {
		return &Logger{category: category}
	}

	loggersMu.RLock()
	if l, ok := loggers[category]; ok {
		loggersMu.RUnlock()
		return l
	}
	loggersMu.RUnlock()

	loggersMu.Lock()
	defer loggersMu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	// Date prefix keeps rotation a matter of deleting old files.
	filename := fmt.Sprintf("%s_%s.log", time.Now().Format("2006-01-02"), category)
	stateMu.RLock()
	logPath := filepath.Join(logsDir, filename)
	stateMu.RUnlock()

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[logging] could not open %s: %v\n", logPath, err)
		return &Logger{category: category}
	}

	l := &Logger{
		category: category,
		file:     file,
		logger:   log.New(file, "", log.Ldate|log.Ltime|log.Lmicroseconds),
	}
	loggers[category] = l
	return l
}

func (l *Logger) Debug(format string, args ...any) {
	if l.logger == nil || logLevel > LevelDebug {
		return
	}
	l.logger.Printf("[DEBUG] %s", fmt.Sprintf(format, args...))
}

func (l *Logger) Info(format string, args ...any) {
	if l.logger == nil || logLevel > LevelInfo {
		return
	}
	l.logger.Printf("[INFO] %s", fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	if l.logger == nil || logLevel > LevelWarn {
		return
	}
	l.logger.Printf("[WARN] %s", fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	if l.logger == nil {
		return
	}
	l.logger.Printf("[ERROR] %s", fmt.Sprintf(format, args...))
}

// CloseAll closes all open log files (call at shutdown).
func CloseAll() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	for _, l := range loggers {
		if l.file != nil {
			l.file.Close()
		}
	}
	loggers = make(map[Category]*Logger)
}

// Convenience functions; no-ops when logging is disabled.

func Boot(format string, args ...any)    { Get(CategoryBoot).Info(format, args...) }
func Session(format string, args ...any) { Get(CategorySession).Info(format, args...) }
func Catalog(format string, args ...any) { Get(CategoryCatalog).Info(format, args...) }
func Search(format string, args ...any)  { Get(CategorySearch).Debug(format, args...) }
func Ops(format string, args ...any)     { Get(CategoryOps).Info(format, args...) }
func Assist(format string, args ...any)  { Get(CategoryAssist).Info(format, args...) }
func Geo(format string, args ...any)     { Get(CategoryGeo).Info(format, args...) }
func UI(format string, args ...any)      { Get(CategoryUI).Debug(format, args...) }

func BootError(format string, args ...any)   { Get(CategoryBoot).Error(format, args...) }
func CatalogWarn(format string, args ...any) { Get(CategoryCatalog).Warn(format, args...) }
func OpsWarn(format string, args ...any)     { Get(CategoryOps).Warn(format, args...) }
func OpsError(format string, args ...any)    { Get(CategoryOps).Error(format, args...) }
func AssistWarn(format string, args ...any)  { Get(CategoryAssist).Warn(format, args...) }
func AssistError(format string, args ...any) { Get(CategoryAssist).Error(format, args...) }
func GeoError(format string, args ...any)    { Get(CategoryGeo).Error(format, args...) }
