package hostinfo

import (
	"runtime"

	"github.com/mackerelio/go-osstat/memory"
	log "github.com/sirupsen/logrus"
)

// Info describes the host the index is running on.
type Info struct {
	CPUs        int    `json:"cpus"`
	MemoryTotal uint64 `json:"memory_total_bytes,omitempty"`
	MemoryUsed  uint64 `json:"memory_used_bytes,omitempty"`
}

// Collect gathers host facts. Memory stats are best effort: on platforms
// without an osstat backend they stay zero.
func Collect() Info {
	info := Info{CPUs: runtime.NumCPU()}

	mem, err := memory.Get()
	if nil != err {
		log.Debugf("Unable to read memory stats: %v", err)

		return info
	}
	info.MemoryTotal = mem.Total
	info.MemoryUsed = mem.Used

	return info
}
