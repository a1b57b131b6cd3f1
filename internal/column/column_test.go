package column

import (
	"errors"
	"os/user"
	"strings"
	"testing"

	"github.com/prometheus/procfs"

	"proctab/internal/proc"
	"proctab/internal/util/logx"
)

type fakeSource struct {
	args  []string
	err   error
	raw   string
	short string
}

func (f fakeSource) Args() ([]string, error) { return f.args, f.err }
func (f fakeSource) RawCommand() (string, bool) {
	return f.raw, f.raw != ""
}
func (f fakeSource) ShortName() string { return f.short }

func TestCommandFallbacks(t *testing.T) {
	tests := []struct {
		name string
		src  proc.CommandSource
		want string
	}{
		{"empty args", fakeSource{short: "kthreadd"}, "[kthreadd]"},
		{"joined args", fakeSource{args: []string{"a", "b c"}}, "a b c"},
		{"newline and tab", fakeSource{args: []string{"sh", "-c", "x\ny\tz"}}, "sh -c x y z"},
		{"raw command", fakeSource{raw: `C:\app.exe /q`, short: "app.exe"}, `C:\app.exe /q`},
		{"read error", fakeSource{err: errors.New("denied"), short: "secret"}, "secret"},
		{"linux backend", proc.LinuxCommand{Proc: procfs.Proc{PID: 1}, Comm: "init"}, "init"},
		{"windows backend", proc.WindowsCommand{ExeName: "idle"}, "[idle]"},
		{"freebsd backend", proc.FreeBSDCommand{Argv: []string{"sh", "-i"}, Comm: []byte("sh\x00")}, "sh -i"},
		{"darwin backend", proc.DarwinCommand{Name: "launchd"}, "[launchd]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCommand("", false)
			c.Add(&proc.Snapshot{Pid: 1, Command: tt.src})
			if got := c.Raw(1); got != tt.want {
				t.Fatalf("raw = %q, want %q", got, tt.want)
			}
			if got := c.Display(1); got != tt.want {
				t.Fatalf("formatted = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandAbbreviatesFormattedOnly(t *testing.T) {
	t.Setenv("HOME", "/home/alice")
	c := NewCommand("", true)
	c.Add(&proc.Snapshot{Pid: 9, Command: fakeSource{args: []string{"/home/alice/bin/tool", "arg"}}})
	if got := c.Display(9); got != "~/bin/tool arg" {
		t.Fatalf("formatted = %q", got)
	}
	if got := c.Raw(9); got != "/home/alice/bin/tool arg" {
		t.Fatalf("raw = %q", got)
	}
	if !c.FindPartial(9, "/home/alice", false) {
		t.Fatalf("search must use the raw value")
	}
}

func TestAddOverwritesAndWidth(t *testing.T) {
	c := NewCommand("", false)
	c.Add(&proc.Snapshot{Pid: 1, Command: fakeSource{args: []string{"a-long-command"}}})
	c.Add(&proc.Snapshot{Pid: 2, Command: fakeSource{args: []string{"short"}}})
	if c.Width() != len("a-long-command") {
		t.Fatalf("width %d", c.Width())
	}
	c.Add(&proc.Snapshot{Pid: 1, Command: fakeSource{args: []string{"日本"}}})
	if c.Width() != 5 {
		t.Fatalf("width after overwrite %d", c.Width())
	}
	if len(c.fmt) != len(c.raw) || len(c.raw) != 2 {
		t.Fatalf("key sets diverged: %d %d", len(c.fmt), len(c.raw))
	}
	c.Reset()
	if c.Width() != 0 || c.Display(1) != "" || c.FindPartial(1, "", false) {
		t.Fatalf("reset left state behind")
	}
}

func TestFind(t *testing.T) {
	c := NewCommand("", false)
	c.Add(&proc.Snapshot{Pid: 3, Command: fakeSource{args: []string{"XABCY"}}})
	if !c.FindPartial(3, "abc", true) {
		t.Fatalf("folded partial")
	}
	if c.FindPartial(3, "abc", false) {
		t.Fatalf("sensitive partial matched")
	}
	if !c.FindExact(3, "xabcy", true) || c.FindExact(3, "XABC", false) {
		t.Fatalf("exact")
	}
	if c.FindPartial(4, "", true) {
		t.Fatalf("unknown pid matched")
	}
}

func TestNumericColumns(t *testing.T) {
	pid := NewPid("")
	rss := NewRSS("Mem")
	el := NewElapsed("")
	cpu := NewCPU("")
	for _, s := range []proc.Snapshot{
		{Pid: 10, RSS: 2048, Elapsed: 61, CPU: 1.25},
		{Pid: 2, RSS: 512, Elapsed: 86400, CPU: 50},
		{Pid: 7, RSS: 2048, Elapsed: 0, CPU: 0},
	} {
		s := s
		pid.Add(&s)
		rss.Add(&s)
		el.Add(&s)
		cpu.Add(&s)
	}
	if !pid.FindExact(10, "10", false) || pid.FindExact(10, "1", false) {
		t.Fatalf("pid exact")
	}
	if rss.Header() != "Mem" || rss.Unit() != "[bytes]" || rss.Display(10) != "2.000K" {
		t.Fatalf("rss: %q %q %q", rss.Header(), rss.Unit(), rss.Display(10))
	}
	if el.Display(2) != "1.0days" || el.Display(10) != "00:01:01" {
		t.Fatalf("elapsed: %q %q", el.Display(2), el.Display(10))
	}
	if cpu.Display(10) != "1.2" && cpu.Display(10) != "1.3" {
		t.Fatalf("cpu: %q", cpu.Display(10))
	}
	if got := rss.SortedPids(true); got[0] != 7 || got[1] != 10 || got[2] != 2 {
		t.Fatalf("rss desc order: %v", got)
	}
	if got := pid.SortedPids(false); got[0] != 2 || got[2] != 10 {
		t.Fatalf("pid asc order: %v", got)
	}
	if v, ok := cpu.Value(2); !ok || v.(float64) != 50 {
		t.Fatalf("cpu value: %v", v)
	}
}

func TestUserColumnUsesSharedCache(t *testing.T) {
	users := proc.NewUserCache()
	c := NewUser("", users)
	c.Add(&proc.Snapshot{Pid: 1, UID: 0})
	name := c.Display(1)
	if name == "" {
		t.Fatalf("empty user name")
	}
	if name != users.Name(0) {
		t.Fatalf("column and cache disagree: %q vs %q", name, users.Name(0))
	}
	if u, err := user.LookupId("0"); err == nil && u.Username != name {
		t.Fatalf("expected %q, got %q", u.Username, name)
	}
}

func TestFindKind(t *testing.T) {
	logx.Reset()
	if k, ok := FindKind("CPU"); !ok || k != KindCPU {
		t.Fatalf("exact: %v %v", k, ok)
	}
	if k, ok := FindKind("pu"); !ok || k != KindCPU {
		t.Fatalf("substring: %v %v", k, ok)
	}
	if k, ok := FindKind("elapsed"); !ok || k != KindElapsed {
		t.Fatalf("substring elapsed: %v %v", k, ok)
	}
	if _, ok := FindKind("nonexistent"); ok {
		t.Fatalf("unexpected match")
	}
	if !strings.Contains(logx.Dump(), "can't find column kind: nonexistent") {
		t.Fatalf("miss not logged: %q", logx.Dump())
	}
}

func TestNewEveryKind(t *testing.T) {
	for _, ki := range KindList {
		c, err := New(ki.Kind, "", Options{})
		if err != nil {
			t.Fatalf("%s: %v", ki.Kind, err)
		}
		if c.Kind() != ki.Kind || c.Header() != ki.Name {
			t.Fatalf("%s: kind %s header %s", ki.Kind, c.Kind(), c.Header())
		}
	}
	if _, err := New("bogus", "", Options{}); err == nil {
		t.Fatalf("expected error")
	}
}
