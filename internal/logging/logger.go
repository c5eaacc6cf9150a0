// Package logging provides leveled, optionally colored logging with an
// optional file sink. Console lines carry a colored level tag; the file sink
// always receives the plain line.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fatih/color"

	"segmv/internal/config"
)

// Level tags. fatih/color resolves TTY detection and NO_COLOR; when colors
// are disabled the Sprintf output is the plain tag.
var (
	infoTag    = color.New(color.FgHiBlue, color.Bold)
	successTag = color.New(color.FgHiGreen, color.Bold)
	warnTag    = color.New(color.FgHiYellow, color.Bold)
	errorTag   = color.New(color.FgHiRed, color.Bold)
	debugTag   = color.New(color.FgHiCyan, color.Bold)
)

// Logger provides leveled logging with optional file sink.
type Logger struct {
	mu       sync.Mutex
	file     *os.File
	filePath string
}

// NewLogger resolves the color mode from cfg and optionally opens LogFile in
// append mode. Call Close() when done if LogFile was set.
func NewLogger(cfg *config.Config) (*Logger, error) {
	switch cfg.ColorMode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	case config.ColorAuto:
		// Keep fatih/color's own TTY + NO_COLOR detection.
	}

	l := &Logger{}
	if cfg.LogFile != "" {
		dir := filepath.Dir(cfg.LogFile)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		l.file = f
		l.filePath = cfg.LogFile
	}
	return l, nil
}

// Close closes the log file if one was opened.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		return err
	}
	return nil
}

func (l *Logger) line(level string, tag *color.Color, text string) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	plain := ts + " [" + level + "] " + text + "\n"
	out := os.Stdout
	if level == "ERROR" {
		out = os.Stderr
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if color.NoColor {
		_, _ = io.WriteString(out, plain)
	} else {
		_, _ = io.WriteString(out, ts+" "+tag.Sprintf("[%s]", level)+" "+text+"\n")
	}
	if l.file != nil {
		_, _ = io.WriteString(l.file, plain)
	}
}

// Info logs at INFO level (blue).
func (l *Logger) Info(format string, args ...interface{}) {
	l.line("INFO", infoTag, fmt.Sprintf(format, args...))
}

// Success logs at SUCCESS level (green).
func (l *Logger) Success(format string, args ...interface{}) {
	l.line("SUCCESS", successTag, fmt.Sprintf(format, args...))
}

// Warn logs at WARN level (yellow).
func (l *Logger) Warn(format string, args ...interface{}) {
	l.line("WARN", warnTag, fmt.Sprintf(format, args...))
}

// Error logs at ERROR level (red), also to stderr.
func (l *Logger) Error(format string, args ...interface{}) {
	l.line("ERROR", errorTag, fmt.Sprintf(format, args...))
}

// Debug logs at DEBUG level (cyan) only when verbose; no-op otherwise.
func (l *Logger) Debug(verbose bool, format string, args ...interface{}) {
	if !verbose {
		return
	}
	l.line("DEBUG", debugTag, fmt.Sprintf(format, args...))
}
