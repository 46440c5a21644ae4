package profiler

import (
	"context"
	"runtime"

	"github.com/c2h5oh/datasize"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Host describes the machine frames are rendered on. Fields the platform cannot report stay zero.
type Host struct {
	OS              string            `json:"os"`
	Platform        string            `json:"platform,omitempty"`
	PlatformVersion string            `json:"platform_version,omitempty"`
	Arch            string            `json:"arch"`
	CPUModel        string            `json:"cpu_model,omitempty"`
	CPUCount        int               `json:"cpu_count"`
	MemoryTotal     datasize.ByteSize `json:"memory_total"`
	MemoryAvailable datasize.ByteSize `json:"memory_available"`
	GPUAdapter      string            `json:"gpu_adapter,omitempty"`
}

// HostInfo gathers CPU, memory and OS information. Probe failures leave the affected fields at their
// runtime fallbacks rather than failing the call.
//
// Parameters:
//   - ctx: bounds the system queries
//
// Returns:
//   - Host: the host description
func HostInfo(ctx context.Context) Host {
	h := Host{
		OS:       runtime.GOOS,
		Arch:     runtime.GOARCH,
		CPUCount: runtime.NumCPU(),
	}

	if n, err := cpu.CountsWithContext(ctx, true); err == nil && n > 0 {
		h.CPUCount = n
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		h.CPUModel = infos[0].ModelName
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		h.MemoryTotal = datasize.ByteSize(vm.Total)
		h.MemoryAvailable = datasize.ByteSize(vm.Available)
	}
	if info, err := host.InfoWithContext(ctx); err == nil {
		h.Platform = info.Platform
		h.PlatformVersion = info.PlatformVersion
		if info.KernelArch != "" {
			h.Arch = info.KernelArch
		}
	}
	return h
}

// RecommendedWorkers returns the number of PNG encoders to run beside the render goroutine:
// one less than the logical CPU count, at least 1.
//
// Parameters:
//   - h: the host description
//
// Returns:
//   - int: the worker count
func RecommendedWorkers(h Host) int {
	return max(h.CPUCount-1, 1)
}
