package observability

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ResourceUsage contains resource usage information
type ResourceUsage struct {
	CPUPercent            float64
	MemoryRSS             uint64
	MemoryVMS             uint64
	HeapAlloc             uint64
	SystemMemoryPercent   float64
	SystemMemoryAvailable uint64
	GoroutineCount        int
	ThreadCount           int32
}

// String renders the usage on one line with sizes in MiB.
func (u *ResourceUsage) String() string {
	return fmt.Sprintf("cpu=%.1f%% rss=%.1fMiB heap=%.1fMiB goroutines=%d threads=%d",
		u.CPUPercent, mib(u.MemoryRSS), mib(u.HeapAlloc), u.GoroutineCount, u.ThreadCount)
}

func mib(n uint64) float64 { return float64(n) / (1 << 20) }

// ResourceMonitor samples the resources used by the current process.
type ResourceMonitor struct {
	process      *process.Process
	startCPUTime float64
	startTime    time.Time
	mu           sync.Mutex
}

// NewResourceMonitor creates a resource monitor for this process
func NewResourceMonitor() (*ResourceMonitor, error) {
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return nil, fmt.Errorf("failed to open process: %w", err)
	}
	rm := &ResourceMonitor{process: proc, startTime: time.Now()}
	if times, err := proc.Times(); err == nil {
		rm.startCPUTime = times.Total()
	}
	return rm, nil
}

// Usage returns current resource usage. CPU is averaged since the monitor
// was created. Fields the platform cannot report stay zero.
func (rm *ResourceMonitor) Usage() (*ResourceUsage, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	usage := &ResourceUsage{}

	if times, err := rm.process.Times(); err == nil {
		if elapsed := time.Since(rm.startTime).Seconds(); elapsed > 0 {
			usage.CPUPercent = (times.Total() - rm.startCPUTime) / elapsed * 100
		}
	}

	memInfo, err := rm.process.MemoryInfo()
	if err != nil {
		return nil, fmt.Errorf("failed to read process memory: %w", err)
	}
	usage.MemoryRSS = memInfo.RSS
	usage.MemoryVMS = memInfo.VMS

	if vm, err := mem.VirtualMemory(); err == nil {
		usage.SystemMemoryPercent = vm.UsedPercent
		usage.SystemMemoryAvailable = vm.Available
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	usage.HeapAlloc = memStats.HeapAlloc
	usage.GoroutineCount = runtime.NumGoroutine()
	usage.ThreadCount, _ = rm.process.NumThreads()

	return usage, nil
}
