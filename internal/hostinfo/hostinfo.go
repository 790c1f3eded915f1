package hostinfo

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const unknown = "Unknown"

// Host describes the machine a run happened on
type Host struct {
	CPUModel   string `json:"cpu_model" yaml:"cpu_model"`
	CPUThreads int    `json:"cpu_threads" yaml:"cpu_threads"`
	CPUCores   int    `json:"cpu_cores" yaml:"cpu_cores"`
	RAMBytes   uint64 `json:"ram_bytes" yaml:"ram_bytes"`
	OS         string `json:"os" yaml:"os"`
	Arch       string `json:"architecture" yaml:"architecture"`
	GoVersion  string `json:"go_version" yaml:"go_version"`
}

// CPUTime is processor time consumed by this process, in seconds
type CPUTime struct {
	User   float64 `json:"user_seconds" yaml:"user_seconds"`
	System float64 `json:"system_seconds" yaml:"system_seconds"`
}

// Total returns user plus system time
func (c CPUTime) Total() float64 {
	return c.User + c.System
}

// Sub returns the CPU time spent between two samples
func (c CPUTime) Sub(earlier CPUTime) CPUTime {
	return CPUTime{
		User:   nonNegative(c.User - earlier.User),
		System: nonNegative(c.System - earlier.System),
	}
}

// Detect describes the current host. Fields gopsutil cannot read fall
// back to runtime values or "Unknown"; Detect never fails.
func Detect() *Host {
	h := &Host{
		CPUModel:   unknown,
		CPUThreads: runtime.NumCPU(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		GoVersion:  runtime.Version(),
	}

	if infos, err := cpu.Info(); err == nil && len(infos) > 0 {
		if model := strings.TrimSpace(infos[0].ModelName); model != "" {
			h.CPUModel = model
		}
	}
	if threads, err := cpu.Counts(true); err == nil && threads > 0 {
		h.CPUThreads = threads
	}
	if cores, err := cpu.Counts(false); err == nil && cores > 0 {
		h.CPUCores = cores
	}
	if vmem, err := mem.VirtualMemory(); err == nil {
		h.RAMBytes = vmem.Total
	}

	return h
}

// ProcessCPU samples the CPU time used so far by this process
func ProcessCPU() (CPUTime, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return CPUTime{}, fmt.Errorf("failed to open own process: %w", err)
	}
	times, err := p.Times()
	if err != nil {
		return CPUTime{}, fmt.Errorf("failed to read process cpu times: %w", err)
	}
	return CPUTime{User: times.User, System: times.System}, nil
}

// FormatRAM formats bytes as GB
func FormatRAM(bytes uint64) string {
	if bytes == 0 {
		return unknown
	}
	gb := float64(bytes) / (1024 * 1024 * 1024)
	return fmt.Sprintf("%.1f GB", gb)
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
