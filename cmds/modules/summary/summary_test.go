package summary

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threefoldtech/smbios/pkg/smbios"
)

func ptr[T any](v T) *T {
	return &v
}

func TestSummarize(t *testing.T) {
	populated := smbios.ProcessorStatus(0x41)
	empty := smbios.ProcessorStatus(0x00)
	ddr4 := smbios.MemoryType(0x1A)

	result := &smbios.Result{
		Version: smbios.Version{Major: 3, Minor: 2},
		Structures: []smbios.Structure{
			&smbios.BIOSInformation{
				Header:      smbios.Header{Type: smbios.TypeBIOS, Length: 0x18},
				Vendor:      ptr("SeaBIOS"),
				Version:     ptr("1.16.0"),
				ReleaseDate: ptr("04/01/2014"),
			},
			&smbios.SystemInformation{
				Header:       smbios.Header{Type: smbios.TypeSystem, Length: 0x1B, Handle: 0x0100},
				Manufacturer: ptr("QEMU"),
				ProductName:  ptr("Standard PC"),
				UUID:         &smbios.UUID{},
			},
			&smbios.ProcessorInformation{
				Header:      smbios.Header{Type: smbios.TypeProcessor, Length: 0x30, Handle: 0x0400},
				Version:     ptr("Xeon "),
				Status:      &populated,
				CoreCount:   ptr(uint8(8)),
				ThreadCount: ptr(uint8(16)),
			},
			&smbios.ProcessorInformation{
				Header:    smbios.Header{Type: smbios.TypeProcessor, Length: 0x30, Handle: 0x0401},
				Status:    &empty,
				CoreCount: ptr(uint8(8)),
			},
			&smbios.PhysicalMemoryArray{
				Header:          smbios.Header{Type: smbios.TypePhysicalMemoryArray, Length: 0x17, Handle: 0x1000},
				MaximumCapacity: ptr(uint32(64 << 20)),
			},
			&smbios.MemoryDevice{
				Header:     smbios.Header{Type: smbios.TypeMemoryDevice, Length: 0x28, Handle: 0x1100},
				Size:       ptr(smbios.MemorySize(16384)),
				MemoryType: &ddr4,
			},
			&smbios.MemoryDevice{
				Header: smbios.Header{Type: smbios.TypeMemoryDevice, Length: 0x28, Handle: 0x1101},
				Size:   ptr(smbios.MemorySize(0)),
			},
		},
	}

	s := Summarize(result)
	assert.Equal(t, "SeaBIOS 1.16.0 04/01/2014", s.BIOS)
	assert.Equal(t, "QEMU Standard PC", s.System)
	assert.Empty(t, s.UUID)
	assert.Equal(t, 1, s.Sockets)
	assert.EqualValues(t, 8, s.Cores)
	assert.EqualValues(t, 16, s.Threads)
	assert.Equal(t, []string{"Xeon"}, s.Processors)
	assert.Equal(t, 2, s.MemorySlots)
	assert.Equal(t, 1, s.MemoryUsed)
	assert.EqualValues(t, 16<<30, s.MemoryBytes)
	assert.Equal(t, []string{"DDR4"}, s.MemoryTypes)
	assert.EqualValues(t, 64<<30, s.Capacity)

	var buf bytes.Buffer
	require.NoError(t, s.Print(&buf))
	out := buf.String()
	assert.Contains(t, out, "SMBIOS:       3.2\n")
	assert.Contains(t, out, "Memory:       16 GiB in 1 of 2 slots\n")
	assert.Contains(t, out, "Max Memory:   64 GiB\n")
	assert.NotContains(t, out, "UUID")
}

func TestSummarizeEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Summarize(&smbios.Result{}).Print(&buf))
	assert.Contains(t, buf.String(), "SMBIOS:       unknown\n")
	assert.Contains(t, buf.String(), "Memory:       0 B in 0 of 0 slots\n")
}
