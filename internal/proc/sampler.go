package proc

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/prometheus/procfs"

	"proctab/internal/util/logx"
)

// userHZ is the tick rate /proc reports times in. Linux fixes it at 100
// for userspace regardless of the kernel HZ.
const userHZ = 100

// Sampler walks a procfs tree. CPU usage is the share of total CPU ticks a
// process used since the previous Sample, so the first one reports zero.
type Sampler struct {
	root      string
	now       func() time.Time
	prevTotal uint64
	prevTicks map[int]uint64
}

func NewSampler(root string) *Sampler {
	if root == "" {
		root = procfs.DefaultMountPoint
	}
	return &Sampler{
		root:      root,
		now:       time.Now,
		prevTicks: map[int]uint64{},
	}
}

// Sample returns one snapshot per live process. A process that vanishes
// or cannot be read is skipped; only an unreadable root is an error.
func (s *Sampler) Sample(ctx context.Context) ([]Snapshot, error) {
	fs, err := procfs.NewFS(s.root)
	if err != nil {
		return nil, fmt.Errorf("open procfs %s: %w", s.root, err)
	}
	procs, err := fs.AllProcs()
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.root, err)
	}
	var total, bootTime uint64
	if st, err := fs.Stat(); err != nil {
		logx.Debugf("proc: system stat: %v", err)
	} else {
		total = totalTicks(st.CPUTotal)
		bootTime = st.BootTime
	}
	sysDelta := uint64(1)
	if total > s.prevTotal && s.prevTotal > 0 {
		sysDelta = total - s.prevTotal
	}
	now := uint64(s.now().Unix())

	ticks := make(map[int]uint64, len(s.prevTicks))
	out := make([]Snapshot, 0, len(procs))
	for _, p := range procs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if p.PID <= 0 {
			continue
		}
		st, err := p.Stat()
		if err != nil {
			logx.Debugf("proc: skip %d: %v", p.PID, err)
			continue
		}
		snap := Snapshot{
			Pid:     p.PID,
			Name:    st.Comm,
			State:   st.State,
			RSS:     uint64(max(st.ResidentMemory(), 0)),
			UID:     readUID(p),
			Command: LinuxCommand{Proc: p, Comm: st.Comm},
		}
		if start := bootTime + st.Starttime/userHZ; bootTime > 0 && now > start {
			snap.Elapsed = now - start
		}
		cur := uint64(st.UTime + st.STime)
		if prev, ok := s.prevTicks[p.PID]; ok && cur >= prev {
			snap.CPU = float64(cur-prev) * 100 / float64(sysDelta)
		}
		ticks[p.PID] = cur
		out = append(out, snap)
	}
	s.prevTicks = ticks
	s.prevTotal = total
	return out, nil
}

// totalTicks converts the aggregate cpu line back to ticks so deltas stay
// integral.
func totalTicks(c procfs.CPUStat) uint64 {
	sum := c.User + c.Nice + c.System + c.Idle + c.Iowait + c.IRQ + c.SoftIRQ + c.Steal
	return uint64(math.Round(sum * userHZ))
}

// readUID returns the real uid, or 0 when status is unreadable.
func readUID(p procfs.Proc) uint32 {
	st, err := p.NewStatus()
	if err != nil {
		logx.Debugf("proc: status of %d: %v", p.PID, err)
		return 0
	}
	return uint32(st.UIDs[0])
}
