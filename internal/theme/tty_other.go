//go:build !unix

package theme

import (
	"errors"
	"time"
)

var errUnsupported = errors.New("terminal probing is not supported on this platform")

type TTYProber struct{}

func NewTTYProber() *TTYProber { return &TTYProber{} }

func (p *TTYProber) Latency(time.Duration) (time.Duration, error) { return 0, errUnsupported }

func (p *TTYProber) Background(time.Duration) (Theme, error) { return "", errUnsupported }
