// Package logger provides the console logger used by the lycan commands.
// Output is timestamped, level-filtered, and colored when attached to a
// terminal. The logger is safe for concurrent use by batch workers.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Log level constants for filtering.
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

var levelNames = map[string]int{
	"trace": levelTrace,
	"debug": levelDebug,
	"info":  levelInfo,
	"warn":  levelWarn,
	"error": levelError,
}

// Console logs to a writer with [HH:MM:SS] prefixes and level filtering.
type Console struct {
	writer   io.Writer
	minLevel int
	mu       sync.Mutex
	colored  bool
}

// NewConsole creates a Console writing to w. An empty or unknown level
// defaults to "info". Color is enabled only when w is a terminal and the
// color library has not been globally disabled (NO_COLOR).
func NewConsole(w io.Writer, level string) *Console {
	min, ok := levelNames[strings.ToLower(strings.TrimSpace(level))]
	if !ok {
		min = levelInfo
	}
	return &Console{
		writer:   w,
		minLevel: min,
		colored:  isTerminal(w) && !color.NoColor,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Tracef logs at trace level.
func (c *Console) Tracef(format string, args ...any) { c.logf(levelTrace, nil, format, args...) }

// Debugf logs at debug level.
func (c *Console) Debugf(format string, args ...any) { c.logf(levelDebug, nil, format, args...) }

// Infof logs at info level.
func (c *Console) Infof(format string, args ...any) { c.logf(levelInfo, nil, format, args...) }

// Warnf logs at warn level, in yellow on terminals.
func (c *Console) Warnf(format string, args ...any) {
	c.logf(levelWarn, color.New(color.FgYellow), format, args...)
}

// Errorf logs at error level, in red on terminals.
func (c *Console) Errorf(format string, args ...any) {
	c.logf(levelError, color.New(color.FgRed), format, args...)
}

// Successf logs at info level, in green on terminals.
func (c *Console) Successf(format string, args ...any) {
	c.logf(levelInfo, color.New(color.FgGreen), format, args...)
}

func (c *Console) logf(level int, col *color.Color, format string, args ...any) {
	if c.writer == nil || level < c.minLevel {
		return
	}
	message := fmt.Sprintf(format, args...)
	if c.colored && col != nil {
		message = col.Sprint(message)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.writer, "[%s] %s\n", time.Now().Format("15:04:05"), message)
}
