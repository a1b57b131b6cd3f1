package theme

import (
	"errors"
	"testing"
	"time"
)

type fakeProber struct {
	latency    time.Duration
	latencyErr error
	bg         Theme
	bgErr      error

	latencyCalls int
	gotMax       time.Duration
	gotTimeout   time.Duration
}

func (f *fakeProber) Latency(max time.Duration) (time.Duration, error) {
	f.latencyCalls++
	f.gotMax = max
	return f.latency, f.latencyErr
}

func (f *fakeProber) Background(timeout time.Duration) (Theme, error) {
	f.gotTimeout = timeout
	return f.bg, f.bgErr
}

func interactive(v bool) func() bool { return func() bool { return v } }

func TestResolvePriority(t *testing.T) {
	p := &fakeProber{bg: Light}
	env := Env{Interactive: interactive(true), Prober: p}
	if got := Resolve(Dark, Light, env); got != Dark {
		t.Fatalf("override: %s", got)
	}
	if got := Resolve(Auto, Light, env); got != Light {
		t.Fatalf("configured: %s", got)
	}
	if got := Resolve("", Dark, env); got != Dark {
		t.Fatalf("configured dark: %s", got)
	}
	if p.latencyCalls != 0 {
		t.Fatalf("probe ran although a theme was fixed")
	}
}

func TestResolveNonInteractiveSkipsProbe(t *testing.T) {
	p := &fakeProber{bg: Light}
	if got := Resolve(Auto, Auto, Env{Interactive: interactive(false), Prober: p}); got != Dark {
		t.Fatalf("got %s", got)
	}
	if p.latencyCalls != 0 {
		t.Fatalf("probe invoked in non-interactive context")
	}
}

func TestResolveTimeout(t *testing.T) {
	p := &fakeProber{latency: 10 * time.Millisecond, bg: Light}
	if got := Resolve(Auto, Auto, Env{Interactive: interactive(true), Prober: p}); got != Light {
		t.Fatalf("got %s", got)
	}
	if p.gotMax != time.Second {
		t.Fatalf("latency ceiling: %v", p.gotMax)
	}
	if p.gotTimeout != minTimeout {
		t.Fatalf("timeout floor: %v", p.gotTimeout)
	}
	p = &fakeProber{latency: 300 * time.Millisecond, bg: Dark}
	Resolve(Auto, Auto, Env{Interactive: interactive(true), Prober: p})
	if p.gotTimeout != 600*time.Millisecond {
		t.Fatalf("timeout: %v", p.gotTimeout)
	}
}

func TestResolveProbeFailures(t *testing.T) {
	env := Env{Interactive: interactive(true), Prober: &fakeProber{latencyErr: errors.New("timeout"), bg: Light}}
	if got := Resolve(Auto, Auto, env); got != Dark {
		t.Fatalf("latency failure: %s", got)
	}
	env.Prober = &fakeProber{bgErr: errNoReply, bg: Light}
	if got := Resolve(Auto, Auto, env); got != Dark {
		t.Fatalf("background failure: %s", got)
	}
}

func TestParseReply(t *testing.T) {
	tests := []struct {
		reply string
		want  Theme
	}{
		{"\x1b]11;rgb:0000/0000/0000\x1b\\\x1b[?62;22c", Dark},
		{"\x1b]11;rgb:ffff/ffff/ffff\x07", Light},
		{"\x1b]11;rgb:fd/f6/e3\x1b\\", Light},
		{"\x1b]11;rgb:2/2/3\x07", Dark},
		{"\x1b]11;rgba:eeee/eeee/eeee/ffff\x07", Light},
		{"\x1b]11;#1e1e2e\x07", Dark},
		// mid greys either side of L* 0.5 (about #777777)
		{"\x1b]11;rgb:80/80/80\x07", Light},
		{"\x1b]11;rgb:70/70/70\x07", Dark},
	}
	for _, tt := range tests {
		got, err := parseReply(tt.reply)
		if err != nil {
			t.Fatalf("%q: %v", tt.reply, err)
		}
		if got != tt.want {
			t.Fatalf("%q: got %s want %s", tt.reply, got, tt.want)
		}
	}
	for _, bad := range []string{"\x1b[?62c", "\x1b]11;hsl:1/2/3\x07", "\x1b]11;rgb:zz/00/00\x07", "\x1b]11;rgb:00000/0/0\x07"} {
		if _, err := parseReply(bad); err == nil {
			t.Fatalf("%q: expected error", bad)
		}
	}
}

func TestParse(t *testing.T) {
	if th, err := Parse("LIGHT"); err != nil || th != Light {
		t.Fatalf("got %v %v", th, err)
	}
	if th, err := Parse(""); err != nil || th != Auto {
		t.Fatalf("got %v %v", th, err)
	}
	if _, err := Parse("solarized"); err == nil {
		t.Fatalf("expected error")
	}
}
