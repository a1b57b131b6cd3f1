package column

import (
	"strings"

	"proctab/internal/proc"
	"proctab/internal/util/cmdpath"
	"proctab/internal/util/logx"
	"proctab/internal/util/text"
)

// Command shows the full command line. Abbreviation only touches the
// formatted value.
type Command struct {
	*store[string]
	abbrPath bool
}

func NewCommand(header string, abbrPath bool) *Command {
	return &Command{
		store:    newStore[string](KindCommand, header, "", text.Left, false),
		abbrPath: abbrPath,
	}
}

func (c *Command) Add(s *proc.Snapshot) {
	raw := commandLine(s)
	c.put(s.Pid, cmdpath.FormatCommand(raw, c.abbrPath), raw)
}

var argWhitespace = strings.NewReplacer("\n", " ", "\t", " ")

// commandLine is the same for every platform: joined arguments, else the
// platform's raw command string, else the bracketed short name. A read
// error degrades to the bare short name.
func commandLine(s *proc.Snapshot) string {
	src := s.Command
	if src == nil {
		return "[" + s.Name + "]"
	}
	args, err := src.Args()
	if err != nil {
		logx.Debugf("command: pid %d: %v", s.Pid, err)
		return src.ShortName()
	}
	if len(args) > 0 {
		return argWhitespace.Replace(strings.Join(args, " "))
	}
	if raw, ok := src.RawCommand(); ok {
		return raw
	}
	return "[" + src.ShortName() + "]"
}
