//go:build unix

package theme

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const (
	queryDA1 = "\x1b[c"
	queryBG  = "\x1b]11;?\x1b\\"
)

// TTYProber queries the controlling terminal directly so stdio redirection
// and the terminal's reply never mix with program input.
type TTYProber struct {
	Path string
}

func NewTTYProber() *TTYProber { return &TTYProber{Path: "/dev/tty"} }

// Latency times a primary device attributes round trip, which every
// terminal answers.
func (p *TTYProber) Latency(max time.Duration) (time.Duration, error) {
	start := time.Now()
	if _, err := p.roundTrip(queryDA1, start.Add(max)); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// Background asks for the background color. The trailing DA1 query makes
// terminals without OSC 11 support answer something, so we can stop
// waiting early.
func (p *TTYProber) Background(timeout time.Duration) (Theme, error) {
	reply, err := p.roundTrip(queryBG+queryDA1, time.Now().Add(timeout))
	if err != nil {
		return "", err
	}
	return parseReply(string(reply))
}

// roundTrip writes q in raw mode and reads until the DA1 reply ends.
func (p *TTYProber) roundTrip(q string, deadline time.Time) ([]byte, error) {
	fd, err := unix.Open(p.Path, unix.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", p.Path, err)
	}
	// a non-blocking descriptor makes the File pollable, so deadlines apply
	tty := os.NewFile(uintptr(fd), p.Path)
	defer tty.Close()

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	defer term.Restore(fd, state)

	if _, err := tty.WriteString(q); err != nil {
		return nil, fmt.Errorf("write query: %w", err)
	}
	if err := tty.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}
	var reply []byte
	buf := make([]byte, 256)
	for {
		n, err := tty.Read(buf)
		reply = append(reply, buf[:n]...)
		if da1Done(reply) {
			return reply, nil
		}
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return reply, fmt.Errorf("terminal did not answer in time: %w", err)
			}
			return reply, err
		}
	}
}

// da1Done reports whether reply holds a complete "ESC [ ? ... c".
func da1Done(reply []byte) bool {
	i := bytes.LastIndex(reply, []byte("\x1b[?"))
	return i >= 0 && bytes.IndexByte(reply[i:], 'c') > 0
}
