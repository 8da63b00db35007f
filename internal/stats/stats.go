// Package stats collects a point-in-time process and host snapshot for
// the /stats command.
package stats

import (
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

var startTime = time.Now()

// Snapshot is one reading; nothing is accumulated between calls.
type Snapshot struct {
	Uptime     time.Duration
	Goroutines int

	ProcessRSS uint64

	HostMemUsed  uint64
	HostMemTotal uint64

	CPUCount   int
	CPUPercent float64
}

// Collect gathers the snapshot. Fields that fail to read are left at
// zero rather than failing the whole command.
func Collect() *Snapshot {
	s := &Snapshot{
		Uptime:     time.Since(startTime).Round(time.Second),
		Goroutines: runtime.NumGoroutine(),
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if info, err := p.MemoryInfo(); err == nil {
			s.ProcessRSS = info.RSS
		}
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		s.HostMemUsed = vm.Used
		s.HostMemTotal = vm.Total
	}

	if n, err := cpu.Counts(true); err == nil {
		s.CPUCount = n
	}
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		s.CPUPercent = pct[0]
	}

	return s
}
