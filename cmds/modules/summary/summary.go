package summary

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/threefoldtech/smbios/pkg/smbios"
)

// Summary is a short hardware overview built from a decoded table
type Summary struct {
	Version      smbios.Version
	BIOS         string
	System       string
	UUID         string
	Board        string
	Sockets      int
	Cores        uint64
	Threads      uint64
	Processors   []string
	MemorySlots  int
	MemoryUsed   int
	MemoryBytes  uint64
	MemoryTypes  []string
	Capacity     uint64
	Problems     int
	unknownCores bool
}

func join(parts ...*string) string {
	var values []string
	for _, p := range parts {
		if p == nil {
			continue
		}
		if v := strings.TrimSpace(*p); len(v) != 0 {
			values = append(values, v)
		}
	}

	return strings.Join(values, " ")
}

// Summarize builds the summary of result
func Summarize(result *smbios.Result) Summary {
	s := Summary{
		Version:  result.Version,
		Problems: len(result.Diagnostics),
	}

	processors := map[string]struct{}{}
	types := map[string]struct{}{}

	for _, structure := range result.Structures {
		switch v := structure.(type) {
		case *smbios.BIOSInformation:
			s.BIOS = join(v.Vendor, v.Version, v.ReleaseDate)
		case *smbios.SystemInformation:
			s.System = join(v.Manufacturer, v.ProductName)
			if v.UUID != nil && !v.UUID.IsZero() && !v.UUID.IsUnset() {
				s.UUID = v.UUID.Format(result.Version)
			}
		case *smbios.BaseboardInformation:
			if len(s.Board) == 0 {
				s.Board = join(v.Manufacturer, v.Product)
			}
		case *smbios.ProcessorInformation:
			if v.Status == nil || !v.Status.Populated() {
				continue
			}
			s.Sockets++
			if cores, ok := v.Cores(); ok {
				s.Cores += uint64(cores)
			} else {
				s.unknownCores = true
			}
			if threads, ok := v.Threads(); ok {
				s.Threads += uint64(threads)
			}
			if name := join(v.Version); len(name) != 0 {
				processors[name] = struct{}{}
			}
		case *smbios.PhysicalMemoryArray:
			if size, ok := v.CapacityBytes(); ok {
				s.Capacity += size
			}
		case *smbios.MemoryDevice:
			s.MemorySlots++
			size, ok := v.SizeBytes()
			if !ok || size == 0 {
				continue
			}
			s.MemoryUsed++
			s.MemoryBytes += size
			if v.MemoryType != nil {
				types[v.MemoryType.String()] = struct{}{}
			}
		}
	}

	s.Processors = keys(processors)
	s.MemoryTypes = keys(types)

	return s
}

func keys(m map[string]struct{}) []string {
	values := make([]string, 0, len(m))
	for k := range m {
		values = append(values, k)
	}
	sort.Strings(values)
	return values
}

// Print writes the summary in a human readable form
func (s Summary) Print(w io.Writer) error {
	version := "unknown"
	if !s.Version.IsZero() {
		version = s.Version.String()
	}

	cores := fmt.Sprint(s.Cores)
	if s.unknownCores {
		cores += "+"
	}

	lines := []struct {
		key, value string
	}{
		{"SMBIOS", version},
		{"BIOS", s.BIOS},
		{"System", s.System},
		{"UUID", s.UUID},
		{"Board", s.Board},
		{"Processors", strings.Join(s.Processors, ", ")},
		{"Sockets", fmt.Sprint(s.Sockets)},
		{"Cores", cores},
		{"Threads", fmt.Sprint(s.Threads)},
		{"Memory", fmt.Sprintf("%s in %d of %d slots", humanize.IBytes(s.MemoryBytes), s.MemoryUsed, s.MemorySlots)},
		{"Memory Types", strings.Join(s.MemoryTypes, ", ")},
		{"Max Memory", humanize.IBytes(s.Capacity)},
		{"Problems", fmt.Sprint(s.Problems)},
	}

	for _, line := range lines {
		if len(line.value) == 0 {
			continue
		}
		if _, err := fmt.Fprintf(w, "%-13s %s\n", line.key+":", line.value); err != nil {
			return err
		}
	}

	return nil
}
