package hostinfo

import (
	"runtime"
	"testing"
)

func TestDetect(t *testing.T) {
	h := Detect()

	if h.OS != runtime.GOOS {
		t.Errorf("OS = %q, expected %q", h.OS, runtime.GOOS)
	}
	if h.Arch != runtime.GOARCH {
		t.Errorf("Arch = %q, expected %q", h.Arch, runtime.GOARCH)
	}
	if h.CPUThreads < 1 {
		t.Errorf("CPUThreads = %d, expected at least 1", h.CPUThreads)
	}
	if h.CPUModel == "" {
		t.Error("CPUModel should never be empty")
	}
	if h.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q, expected %q", h.GoVersion, runtime.Version())
	}
}

func TestFormatRAM(t *testing.T) {
	tests := []struct {
		bytes    uint64
		expected string
	}{
		{0, "Unknown"},
		{8 * 1024 * 1024 * 1024, "8.0 GB"},
		{1536 * 1024 * 1024, "1.5 GB"},
	}

	for _, tt := range tests {
		if got := FormatRAM(tt.bytes); got != tt.expected {
			t.Errorf("FormatRAM(%d) = %q, expected %q", tt.bytes, got, tt.expected)
		}
	}
}

func TestCPUTimeSub(t *testing.T) {
	tests := []struct {
		desc     string
		later    CPUTime
		earlier  CPUTime
		expected CPUTime
	}{
		{"normal", CPUTime{User: 3, System: 1}, CPUTime{User: 1, System: 0.5}, CPUTime{User: 2, System: 0.5}},
		{"no change", CPUTime{User: 1}, CPUTime{User: 1}, CPUTime{}},
		{"counter reset", CPUTime{User: 1}, CPUTime{User: 2}, CPUTime{}},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := tt.later.Sub(tt.earlier)
			if got != tt.expected {
				t.Errorf("Sub() = %+v, expected %+v", got, tt.expected)
			}
			if got.Total() != tt.expected.User+tt.expected.System {
				t.Errorf("Total() = %f, expected %f", got.Total(), tt.expected.User+tt.expected.System)
			}
		})
	}
}

func TestProcessCPU(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		t.Skip("process cpu times only checked on linux and darwin")
	}

	before, err := ProcessCPU()
	if err != nil {
		t.Fatalf("ProcessCPU() error: %v", err)
	}
	after, err := ProcessCPU()
	if err != nil {
		t.Fatalf("ProcessCPU() error: %v", err)
	}
	if after.Sub(before).Total() < 0 {
		t.Error("cpu time went backwards")
	}
}
