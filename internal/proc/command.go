package proc

import (
	"bytes"
	"fmt"

	"github.com/prometheus/procfs"
)

// LinuxCommand reads /proc/<pid>/cmdline lazily, so a failure only affects
// the column that asked for it.
type LinuxCommand struct {
	Proc procfs.Proc
	Comm string
}

func (c LinuxCommand) Args() ([]string, error) {
	args, err := c.Proc.CmdLine()
	if err != nil {
		return nil, fmt.Errorf("read cmdline of %d: %w", c.Proc.PID, err)
	}
	// a cmdline of only NULs splits into one empty word
	if len(args) == 1 && args[0] == "" {
		return nil, nil
	}
	return args, nil
}

func (c LinuxCommand) RawCommand() (string, bool) { return "", false }
func (c LinuxCommand) ShortName() string          { return c.Comm }

// DarwinCommand carries the argument vector from KERN_PROCARGS2.
type DarwinCommand struct {
	Argv []string
	Name string
}

func (c DarwinCommand) Args() ([]string, error)    { return c.Argv, nil }
func (c DarwinCommand) RawCommand() (string, bool) { return "", false }
func (c DarwinCommand) ShortName() string          { return c.Name }

// WindowsCommand carries the PEB command line, which Windows only exposes
// as one string.
type WindowsCommand struct {
	CommandLine string
	ExeName     string
}

func (c WindowsCommand) Args() ([]string, error) { return nil, nil }

func (c WindowsCommand) RawCommand() (string, bool) {
	return c.CommandLine, c.CommandLine != ""
}

func (c WindowsCommand) ShortName() string { return c.ExeName }

// FreeBSDCommand carries kvm_getargv output and ki_comm. Comm is the raw
// NUL-padded buffer.
type FreeBSDCommand struct {
	Argv []string
	Comm []byte
}

func (c FreeBSDCommand) Args() ([]string, error)    { return c.Argv, nil }
func (c FreeBSDCommand) RawCommand() (string, bool) { return "", false }

func (c FreeBSDCommand) ShortName() string {
	if i := bytes.IndexByte(c.Comm, 0); i >= 0 {
		return string(c.Comm[:i])
	}
	return string(c.Comm)
}
