package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// RotatingLogger writes log output to weekly files with a retention window
// and an optional per-file size cap.
type RotatingLogger struct {
	logDir      string
	currentFile *os.File
	currentWeek string
	retention   time.Duration
	maxFileSize int64
	currentSize atomic.Int64
	mu          sync.Mutex
	ctx         context.Context
	cancel      context.CancelFunc
	cleanupDone chan struct{}
}

// NewRotatingLogger creates a rotating logger with a 100MB per-file cap.
func NewRotatingLogger(logDir string, retentionWeeks int) *RotatingLogger {
	return NewRotatingLoggerWithSizeLimit(logDir, retentionWeeks, 100*1024*1024)
}

// NewRotatingLoggerWithSizeLimit creates a rotating logger with a custom
// per-file size cap. A cap of zero disables size rotation.
func NewRotatingLoggerWithSizeLimit(logDir string, retentionWeeks int, maxFileSize int64) *RotatingLogger {
	ctx, cancel := context.WithCancel(context.Background())
	return &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		ctx:         ctx,
		cancel:      cancel,
		cleanupDone: make(chan struct{}),
	}
}

// getWeekKey returns the ISO week key in YYYY-Www format
func getWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

var numberedLogRe = regexp.MustCompile(`catalog-\d{4}-W\d{2}_(\d{2})\.log$`)

// doRotate switches to the log file for targetWeek (caller must hold mu)
func (rl *RotatingLogger) doRotate(targetWeek string) error {
	if rl.currentFile != nil {
		if err := rl.currentFile.Close(); err != nil {
			slog.Warn("Failed to close log file during rotation", "error", err)
		}
	}

	fileName, freshFile := rl.pickLogFile(targetWeek)
	logPath := filepath.Join(rl.logDir, fileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	rl.currentFile = file
	rl.currentWeek = targetWeek

	if freshFile {
		rl.currentSize.Store(0)
	} else if info, err := os.Stat(logPath); err == nil {
		rl.currentSize.Store(info.Size())
	}

	return nil
}

// pickLogFile chooses the file to write for the given week. When the base
// weekly file is over the size cap it moves on to numbered continuation
// files, resuming the newest one that still has room.
func (rl *RotatingLogger) pickLogFile(targetWeek string) (string, bool) {
	baseName := fmt.Sprintf("catalog-%s.log", targetWeek)
	info, err := os.Stat(filepath.Join(rl.logDir, baseName))
	if err != nil || rl.maxFileSize == 0 || info.Size() < rl.maxFileSize {
		return baseName, err != nil
	}

	highest := 0
	var lastName string
	var lastSize int64
	pattern := fmt.Sprintf("catalog-%s_??.log", targetWeek)
	matches, _ := filepath.Glob(filepath.Join(rl.logDir, pattern))
	for _, match := range matches {
		sub := numberedLogRe.FindStringSubmatch(filepath.Base(match))
		if len(sub) < 2 {
			continue
		}
		num, _ := strconv.Atoi(sub[1])
		if num > highest {
			highest = num
			lastName = filepath.Base(match)
			if fi, err := os.Stat(match); err == nil {
				lastSize = fi.Size()
			}
		}
	}

	if lastName != "" && lastSize < rl.maxFileSize {
		return lastName, false
	}
	return fmt.Sprintf("catalog-%s_%02d.log", targetWeek, highest+1), true
}

// Write writes data to the current log file, rotating first when the week
// changed or the size cap would be exceeded.
func (rl *RotatingLogger) Write(p []byte) (n int, err error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	currentWeek := getWeekKey(time.Now())
	needsRotation := rl.currentWeek != currentWeek
	if !needsRotation && rl.maxFileSize > 0 {
		if rl.currentSize.Load()+int64(len(p)) > rl.maxFileSize {
			needsRotation = true
		}
	}

	if needsRotation {
		if err = rl.doRotate(currentWeek); err != nil {
			return 0, err
		}
	}

	if rl.currentFile == nil {
		return 0, fmt.Errorf("no log file available")
	}

	n, err = rl.currentFile.Write(p)
	rl.currentSize.Add(int64(n))
	return n, err
}

// cleanupOldLogs removes log files older than the retention period
func (rl *RotatingLogger) cleanupOldLogs() error {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-rl.retention)
	deleted := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), "catalog-") || !strings.HasSuffix(entry.Name(), ".log") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rl.logDir, entry.Name())); err == nil {
				deleted++
			}
		}
	}

	if deleted > 0 {
		// Console output here, logging through slog would recurse
		fmt.Printf("Cleaned up %d old log files\n", deleted)
	}
	return nil
}

// Close stops the cleanup goroutine and closes the current log file
func (rl *RotatingLogger) Close() error {
	rl.cancel()

	select {
	case <-rl.cleanupDone:
	case <-time.After(5 * time.Second):
		fmt.Printf("Warning: log cleanup goroutine did not shutdown gracefully\n")
	}

	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.currentFile != nil {
		return rl.currentFile.Close()
	}
	return nil
}

// SetupLogger configures slog to write text to the console and JSON to a
// weekly rotating file, keeping four weeks of history.
func SetupLogger(logDir string) *slog.Logger {
	return SetupLoggerWithOptions(logDir, 4, 100*1024*1024, slog.LevelInfo)
}

// SetupLoggerWithOptions configures slog with explicit retention, file size
// cap, and minimum level. When the log directory cannot be prepared it falls
// back to a console-only logger.
func SetupLoggerWithOptions(logDir string, retentionWeeks int, maxFileSize int64, level slog.Level) *slog.Logger {
	consoleHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})

	if err := os.MkdirAll(logDir, 0755); err != nil {
		consoleLogger := slog.New(consoleHandler)
		consoleLogger.Error("Failed to create logs directory", "error", err)
		return consoleLogger
	}

	rotatingLogger := NewRotatingLoggerWithSizeLimit(logDir, retentionWeeks, maxFileSize)
	rotatingLogger.mu.Lock()
	rotateErr := rotatingLogger.doRotate(getWeekKey(time.Now()))
	rotatingLogger.mu.Unlock()
	if rotateErr != nil {
		consoleLogger := slog.New(consoleHandler)
		consoleLogger.Error("Failed to initialize rotating logger", "error", rotateErr)
		return consoleLogger
	}

	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		defer close(rotatingLogger.cleanupDone)

		for {
			select {
			case <-rotatingLogger.ctx.Done():
				return
			case <-ticker.C:
				if err := rotatingLogger.cleanupOldLogs(); err != nil {
					slog.Warn("Failed to cleanup old logs", "error", err)
				}
			}
		}
	}()

	fileHandler := slog.NewJSONHandler(rotatingLogger, &slog.HandlerOptions{Level: level})

	return slog.New(&multiHandler{handlers: []slog.Handler{consoleHandler, fileHandler}})
}

// multiHandler fans a record out to every underlying handler
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: newHandlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		newHandlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: newHandlers}
}
