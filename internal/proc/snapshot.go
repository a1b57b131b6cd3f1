// Package proc produces one Snapshot per process per refresh cycle.
package proc

// Snapshot is what columns ingest for one process in one cycle.
type Snapshot struct {
	Pid     int
	Command CommandSource
	// Name is the short process name (comm).
	Name    string
	UID     uint32
	State   string
	RSS     uint64 // bytes
	Elapsed uint64 // seconds since the process started
	CPU     float64
}

// CommandSource hides how a platform exposes a process command line.
// Columns only rely on this capability, never on the platform record.
type CommandSource interface {
	// Args returns the argument vector. An error means it could not be
	// read for this process (permissions, process exited).
	Args() ([]string, error)
	// RawCommand returns a pre-joined command line where the platform
	// only provides one.
	RawCommand() (string, bool)
	// ShortName is the fallback when neither is available.
	ShortName() string
}
