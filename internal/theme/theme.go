// Package theme decides whether colors should suit a dark or a light
// terminal background.
package theme

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"

	"proctab/internal/util/logx"
)

type Theme string

const (
	Auto  Theme = "auto"
	Dark  Theme = "dark"
	Light Theme = "light"
)

func Parse(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case "", Auto:
		return Auto, nil
	case Dark:
		return Dark, nil
	case Light:
		return Light, nil
	}
	return Auto, fmt.Errorf("unknown theme %q (want auto|dark|light)", s)
}

const (
	maxLatency = time.Second
	minTimeout = 100 * time.Millisecond
)

// Prober talks to the terminal. Both calls must give up by their bound.
type Prober interface {
	Latency(max time.Duration) (time.Duration, error)
	Background(timeout time.Duration) (Theme, error)
}

type Env struct {
	// Interactive reports whether stdin, stdout and stderr are terminals.
	Interactive func() bool
	Prober      Prober
}

func DefaultEnv() Env {
	return Env{Interactive: stdioIsTerminal, Prober: NewTTYProber()}
}

// Resolve picks the theme for this run: override, then the configured
// value, then a live probe. Anything inconclusive is Dark.
func Resolve(override, configured Theme, env Env) Theme {
	for _, t := range []Theme{override, configured} {
		if t == Dark || t == Light {
			return t
		}
	}
	if env.Interactive == nil || !env.Interactive() || env.Prober == nil {
		return Dark
	}
	latency, err := env.Prober.Latency(maxLatency)
	if err != nil {
		logx.Debugf("theme: latency probe failed: %v", err)
		return Dark
	}
	timeout := 2 * latency
	if timeout < minTimeout {
		timeout = minTimeout
	}
	t, err := env.Prober.Background(timeout)
	if err != nil {
		logx.Debugf("theme: background probe failed after %v: %v", timeout, err)
		return Dark
	}
	logx.Infof("theme: detected %s background (latency %v)", t, latency)
	return t
}

func stdioIsTerminal() bool {
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		fd := f.Fd()
		if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
			return false
		}
	}
	return true
}

var errNoReply = errors.New("no background color in reply")

// parseReply extracts the color from an OSC 11 reply such as
// "\x1b]11;rgb:1e1e/1e1e/2e2e\x1b\\" and classifies it.
func parseReply(reply string) (Theme, error) {
	i := strings.Index(reply, "]11;")
	if i < 0 {
		return "", errNoReply
	}
	body := reply[i+len("]11;"):]
	if j := strings.IndexAny(body, "\x07\x1b"); j >= 0 {
		body = body[:j]
	}
	c, err := parseColor(body)
	if err != nil {
		return "", err
	}
	return classify(c), nil
}

// parseColor accepts the X11 forms terminals answer with: rgb:R/G/B and
// rgba:R/G/B/A with 1-4 hex digits per component, or #rrggbb.
func parseColor(s string) (colorful.Color, error) {
	if strings.HasPrefix(s, "#") {
		return colorful.Hex(s)
	}
	spec, ok := strings.CutPrefix(s, "rgb:")
	if !ok {
		spec, ok = strings.CutPrefix(s, "rgba:")
	}
	if !ok {
		return colorful.Color{}, fmt.Errorf("unsupported color %q", s)
	}
	parts := strings.Split(spec, "/")
	if len(parts) < 3 {
		return colorful.Color{}, fmt.Errorf("malformed color %q", s)
	}
	var v [3]float64
	for k := 0; k < 3; k++ {
		p := parts[k]
		if len(p) == 0 || len(p) > 4 {
			return colorful.Color{}, fmt.Errorf("malformed component %q", p)
		}
		n, err := strconv.ParseUint(p, 16, 16)
		if err != nil {
			return colorful.Color{}, fmt.Errorf("malformed component %q: %w", p, err)
		}
		v[k] = float64(n) / float64(uint64(1)<<(4*len(p))-1)
	}
	return colorful.Color{R: v[0], G: v[1], B: v[2]}, nil
}

func classify(c colorful.Color) Theme {
	l, _, _ := c.Lab()
	if l >= 0.5 {
		return Light
	}
	return Dark
}
