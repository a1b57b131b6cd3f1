package column

import (
	"fmt"
	"strconv"

	"proctab/internal/proc"
	"proctab/internal/util/text"
	"proctab/internal/util/units"
)

type Pid struct{ *store[int] }

func NewPid(header string) *Pid {
	return &Pid{newStore[int](KindPid, header, "", text.Right, true)}
}

func (c *Pid) Add(s *proc.Snapshot) { c.put(s.Pid, strconv.Itoa(s.Pid), s.Pid) }

// User resolves uids through a cache owned by the caller.
type User struct {
	*store[string]
	users *proc.UserCache
}

func NewUser(header string, users *proc.UserCache) *User {
	return &User{store: newStore[string](KindUser, header, "", text.Left, false), users: users}
}

func (c *User) Add(s *proc.Snapshot) {
	name := c.users.Name(s.UID)
	c.put(s.Pid, name, name)
}

type State struct{ *store[string] }

func NewState(header string) *State {
	return &State{newStore[string](KindState, header, "", text.Left, false)}
}

func (c *State) Add(s *proc.Snapshot) { c.put(s.Pid, s.State, s.State) }

type CPU struct{ *store[float64] }

func NewCPU(header string) *CPU {
	return &CPU{newStore[float64](KindCPU, header, "[%]", text.Right, true)}
}

func (c *CPU) Add(s *proc.Snapshot) { c.put(s.Pid, fmt.Sprintf("%.1f", s.CPU), s.CPU) }

type RSS struct{ *store[uint64] }

func NewRSS(header string) *RSS {
	return &RSS{newStore[uint64](KindRSS, header, "[bytes]", text.Right, true)}
}

func (c *RSS) Add(s *proc.Snapshot) { c.put(s.Pid, units.Bytify(s.RSS), s.RSS) }

type Elapsed struct{ *store[uint64] }

func NewElapsed(header string) *Elapsed {
	return &Elapsed{newStore[uint64](KindElapsed, header, "", text.Right, true)}
}

func (c *Elapsed) Add(s *proc.Snapshot) { c.put(s.Pid, units.ParseTime(s.Elapsed), s.Elapsed) }

// Options carries what constructors need beyond a kind and a header.
type Options struct {
	AbbrPath bool
	Users    *proc.UserCache
}

// New builds the column for kind. An empty header uses the kind's display
// name.
func New(kind Kind, header string, opt Options) (Column, error) {
	switch kind {
	case KindPid:
		return NewPid(header), nil
	case KindUser:
		users := opt.Users
		if users == nil {
			users = proc.NewUserCache()
		}
		return NewUser(header, users), nil
	case KindState:
		return NewState(header), nil
	case KindCPU:
		return NewCPU(header), nil
	case KindRSS:
		return NewRSS(header), nil
	case KindElapsed:
		return NewElapsed(header), nil
	case KindCommand:
		return NewCommand(header, opt.AbbrPath), nil
	}
	return nil, fmt.Errorf("unknown column kind %q", kind)
}
