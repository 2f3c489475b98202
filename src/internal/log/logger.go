package log

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

const (
	levelDebug = iota
	levelInfo
	levelWarn
	levelError
)

const fileTimeLayout = "2006-01-02 15:04:05,000"

var (
	verbose     = false
	disableLogs = false
	quiet       = false
	logPrefixes = map[int]string{
		levelDebug: "\033[37m[DBG]\033[0m", // White
		levelInfo:  "\033[36m[INF]\033[0m", // Cyan
		levelWarn:  "\033[33m[WRN]\033[0m", // Yellow
		levelError: "\033[31m[ERR]\033[0m", // Red
	}

	sinkMu     sync.Mutex
	fileSink   io.Writer
	loggerName = "autoconnect"
	now        = time.Now
)

// SetVerbose sets the logging verbosity. If true, all log levels are displayed.
func SetVerbose(v bool) {
	verbose = v
}

// IsVerbose returns true if verbose logging is enabled.
func IsVerbose() bool {
	return verbose
}

// SetQuiet suppresses console output. The file sink, if any, still receives every message.
func SetQuiet(q bool) {
	quiet = q
}

// DisableLogs disables all logging.
func DisableLogs() {
	disableLogs = true
}

// EnableLogs undoes DisableLogs.
func EnableLogs() {
	disableLogs = false
}

// IsDisabled returns true if logging is disabled.
func IsDisabled() bool {
	return disableLogs
}

// SetOutputFile tees every message to w using the "<time> - [<name>] - <message>" line format.
// Passing a nil writer detaches the file sink.
func SetOutputFile(w io.Writer, name string) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	fileSink = w
	if name != "" {
		loggerName = name
	}
}

// Debugf logs a debug message if verbose is true.
func Debugf(format string, args ...interface{}) {
	if verbose {
		logMessage(levelDebug, format, args...)
	}
}

// Infof logs an info message.
func Infof(format string, args ...interface{}) {
	logMessage(levelInfo, format, args...)
}

// Warnf logs a warning message.
func Warnf(format string, args ...interface{}) {
	logMessage(levelWarn, format, args...)
}

// Errorf logs an error message.
func Errorf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
}

// Detailf records diagnostic detail such as raw subprocess or HTTP output.
// It always goes to the file sink and reaches the console only in verbose mode,
// so operators never see it on stderr.
func Detailf(format string, args ...interface{}) {
	if disableLogs {
		return
	}
	message := fmt.Sprintf(format, args...)
	writeFile(message)
	if verbose && !quiet {
		_, _ = os.Stdout.WriteString(logPrefixes[levelDebug] + " " + message + "\n")
	}
}

// Fatalf logs an error message and exits the program.
func Fatalf(format string, args ...interface{}) {
	logMessage(levelError, format, args...)
	os.Exit(1)
}

// logMessage formats and writes a log message with the specified log level.
func logMessage(level int, format string, args ...interface{}) {
	if disableLogs {
		return
	}
	message := fmt.Sprintf(format, args...)
	writeFile(message)

	if quiet {
		return
	}
	output := logPrefixes[level] + " " + message + "\n"

	if level == levelError {
		_, _ = os.Stderr.WriteString(output)
	} else {
		_, _ = os.Stdout.WriteString(output)
	}
}

func writeFile(message string) {
	sinkMu.Lock()
	defer sinkMu.Unlock()
	if fileSink == nil {
		return
	}
	line := fmt.Sprintf("%s - [%s] - %s\n", now().Format(fileTimeLayout), loggerName, message)
	_, _ = io.WriteString(fileSink, line)
}
