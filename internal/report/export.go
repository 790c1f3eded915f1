package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/psantana5/speedloop/internal/hostinfo"
)

// Format selects how a Result is written
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatYAML       Format = "yaml"
	FormatTable      Format = "table"
	FormatPrometheus Format = "prometheus"
)

// ErrUnknownFormat is returned for an output format Write does not know
var ErrUnknownFormat = errors.New("unknown output format")

// Formats lists every supported format
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatTable, FormatPrometheus}
}

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "" {
		return FormatText, nil
	}
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// Write renders r to w in the given format
func Write(w io.Writer, format Format, r *Result) error {
	switch format {
	case FormatText, "":
		_, err := fmt.Fprintln(w, r.Line())
		return err

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(r)

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(r); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()

	case FormatTable:
		return writeTable(w, r)

	case FormatPrometheus:
		m := NewMetrics()
		m.Observe(r)
		return m.WriteText(w)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func writeTable(w io.Writer, r *Result) error {
	table := tablewriter.NewWriter(w)
	table.Header("Property", "Value")

	table.Append([]string{"Run ID", r.RunID})
	table.Append([]string{"Label", r.Label})
	table.Append([]string{"Cycles", strconv.Itoa(r.Cycles)})
	table.Append([]string{"Duration", fmt.Sprintf("%.3f s", r.Seconds)})
	table.Append([]string{"Per Cycle", fmt.Sprintf("%.3f ns", r.NsPerCycle)})
	if r.CPU != nil {
		table.Append([]string{"CPU User", fmt.Sprintf("%.3f s", r.CPU.User)})
		table.Append([]string{"CPU System", fmt.Sprintf("%.3f s", r.CPU.System)})
	}
	if r.Host != nil {
		appendHostRows(table, r.Host)
	}

	return table.Render()
}

// WriteHost renders a host description in text/table, json or yaml
func WriteHost(w io.Writer, format Format, h *hostinfo.Host) error {
	switch format {
	case FormatTable, FormatText, "":
		table := tablewriter.NewWriter(w)
		table.Header("Property", "Value")
		appendHostRows(table, h)
		return table.Render()

	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(h)

	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(h); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()

	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func appendHostRows(table *tablewriter.Table, h *hostinfo.Host) {
	cpuInfo := fmt.Sprintf("%d threads", h.CPUThreads)
	if h.CPUCores > 0 {
		cpuInfo = fmt.Sprintf("%d cores / %d threads", h.CPUCores, h.CPUThreads)
	}

	table.Append([]string{"CPU Model", h.CPUModel})
	table.Append([]string{"CPU", cpuInfo})
	table.Append([]string{"RAM", hostinfo.FormatRAM(h.RAMBytes)})
	table.Append([]string{"OS/Arch", h.OS + "/" + h.Arch})
	table.Append([]string{"Go", h.GoVersion})
}
