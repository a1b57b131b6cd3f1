// Package logx is the diagnostic channel: a small leveled logger that keeps
// the most recent lines in memory and only writes to stderr when asked, so
// it never corrupts table output or the TUI.
package logx

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	default:
		return "ERROR"
	}
}

var (
	mu       sync.Mutex
	level    = Info
	buf      = make([]string, 0, 256)
	maxLines = 256
	// mirror is nil unless PROCTAB_LOG_STDERR is set or SetOutput is called
	mirror io.Writer
)

func SetLevel(l Level) { mu.Lock(); level = l; mu.Unlock() }

// SetOutput mirrors every accepted line to w; nil disables mirroring.
func SetOutput(w io.Writer) { mu.Lock(); mirror = w; mu.Unlock() }

func SetLevelFromEnv() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PROCTAB_LOG_LEVEL"))) {
	case "debug":
		SetLevel(Debug)
	case "info":
		SetLevel(Info)
	case "warn", "warning":
		SetLevel(Warn)
	case "error":
		SetLevel(Error)
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("PROCTAB_LOG_STDERR"))); v != "" {
		if v != "0" && v != "false" && v != "no" {
			SetOutput(os.Stderr)
		}
	}
}

func Debugf(format string, a ...any) { logf(Debug, format, a...) }
func Infof(format string, a ...any)  { logf(Info, format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, format, a...) }
func Errorf(format string, a ...any) { logf(Error, format, a...) }

func logf(l Level, format string, a ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	ts := time.Now().Format("2006-01-02T15:04:05.000Z07:00")
	line := fmt.Sprintf("%s %-5s %s", ts, l, fmt.Sprintf(format, a...))
	if len(buf) >= maxLines {
		copy(buf[0:], buf[1:])
		buf = buf[:len(buf)-1]
	}
	buf = append(buf, line)
	if mirror != nil {
		fmt.Fprintln(mirror, line)
	}
}

// Lines returns a copy of the buffered lines, oldest first.
func Lines() []string {
	mu.Lock()
	defer mu.Unlock()
	out := make([]string, len(buf))
	copy(out, buf)
	return out
}

func Dump() string { return strings.Join(Lines(), "\n") }

// Reset drops buffered lines. Tests use it to start from a clean slate.
func Reset() {
	mu.Lock()
	buf = buf[:0]
	mu.Unlock()
}
