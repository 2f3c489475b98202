package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// DefaultMaxBackups is the number of rotated log generations kept on disk.
const DefaultMaxBackups = 14

// DailyFile is a log file that rotates whenever the calendar day changes.
// Backups are managed by lumberjack and pruned down to MaxBackups.
type DailyFile struct {
	mu      sync.Mutex
	logger  *lumberjack.Logger
	day     string
	dayFunc func() string
}

// OpenDailyFile prepares <dir>/<name>.log. If the existing file was last written
// on an earlier day it is rotated before the first write of this process.
func OpenDailyFile(dir, name string, maxBackups int) (*DailyFile, error) {
	if maxBackups <= 0 {
		maxBackups = DefaultMaxBackups
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	f := &DailyFile{
		logger: &lumberjack.Logger{
			Filename:   filepath.Join(dir, name+".log"),
			MaxSize:    100, // MB, only a safety net
			MaxBackups: maxBackups,
			LocalTime:  true,
		},
		dayFunc: func() string { return now().Format(time.DateOnly) },
	}

	info, err := os.Stat(f.logger.Filename)
	switch {
	case err == nil:
		f.day = info.ModTime().Format(time.DateOnly)
	case errors.Is(err, os.ErrNotExist):
		f.day = f.dayFunc()
	default:
		return nil, fmt.Errorf("failed to stat log file: %w", err)
	}

	return f, nil
}

// Filename returns the path of the active log file.
func (f *DailyFile) Filename() string {
	return f.logger.Filename
}

// Write implements io.Writer.
func (f *DailyFile) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if today := f.dayFunc(); today != f.day {
		if err := f.logger.Rotate(); err != nil {
			return 0, err
		}
		f.day = today
	}
	return f.logger.Write(p)
}

// Close implements io.Closer.
func (f *DailyFile) Close() error {
	return f.logger.Close()
}

// SetupFile opens a daily-rotated log file and attaches it as the file sink.
func SetupFile(dir, name string, maxBackups int) (io.Closer, error) {
	f, err := OpenDailyFile(dir, name, maxBackups)
	if err != nil {
		return nil, err
	}
	SetOutputFile(f, name)
	return f, nil
}
