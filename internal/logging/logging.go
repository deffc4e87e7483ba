package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.Mutex
	logFile *os.File
	console io.Writer = os.Stderr

	warnPrefix = color.New(color.FgYellow, color.Bold).SprintFunc()
)

// Init routes the standard logger to stderr and, when logPath is set, to an
// append-only log file as well. Stdout is left untouched for command output.
func Init(logPath string) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	var writers []io.Writer
	writers = append(writers, console)

	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// SetConsole replaces the console writer used by subsequent Init calls.
func SetConsole(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	console = w
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	log.SetOutput(console)
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// LogWarning logs a non-fatal condition with a highlighted prefix.
func LogWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(warnPrefix("Warning:") + " " + msg)
}
