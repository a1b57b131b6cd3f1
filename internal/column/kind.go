package column

import (
	"strings"

	"proctab/internal/util/logx"
)

// Kind is the token naming a column type in config files and filter
// expressions.
type Kind string

const (
	KindPid     Kind = "pid"
	KindUser    Kind = "user"
	KindState   Kind = "state"
	KindCPU     Kind = "cpu"
	KindRSS     Kind = "rss"
	KindElapsed Kind = "elapsed"
	KindCommand Kind = "command"
)

type KindInfo struct {
	Kind        Kind
	Name        string
	Description string
}

// KindList is every known column kind, in default display order.
var KindList = []KindInfo{
	{KindPid, "PID", "Process ID"},
	{KindUser, "User", "User name"},
	{KindState, "State", "Process state"},
	{KindCPU, "CPU", "CPU usage since the previous refresh"},
	{KindRSS, "RSS", "Resident set size"},
	{KindElapsed, "ElapsedTime", "Time since the process started"},
	{KindCommand, "Command", "Command line"},
}

// Info returns the catalog entry for k.
func (k Kind) Info() (KindInfo, bool) {
	for _, ki := range KindList {
		if ki.Kind == k {
			return ki, true
		}
	}
	return KindInfo{}, false
}

// FindKind resolves free text to a kind: an exact case-insensitive match
// on a display name wins over any substring match. A miss is reported on
// the diagnostic log.
func FindKind(pat string) (Kind, bool) {
	p := strings.ToLower(pat)
	for _, ki := range KindList {
		if strings.ToLower(ki.Name) == p {
			return ki.Kind, true
		}
	}
	for _, ki := range KindList {
		if strings.Contains(strings.ToLower(ki.Name), p) {
			return ki.Kind, true
		}
	}
	logx.Warnf("can't find column kind: %s", pat)
	return "", false
}
