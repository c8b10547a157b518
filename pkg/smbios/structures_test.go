package smbios

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeOne decodes a table holding a single structure
func decodeOne(t *testing.T, version Version, typ Type, data []byte, strs ...string) (Structure, []Diagnostic) {
	t.Helper()

	table := (&tableBuilder{}).add(typ, 0x0100, data, strs...).end().bytes()
	result := Decode(table, version)
	require.Len(t, result.Structures, 1)

	return result.Structures[0], result.Diagnostics
}

func TestSystemUUID(t *testing.T) {
	uuid := []byte{
		0x50, 0x6a, 0x3e, 0xcb, 0x7b, 0xa7, 0x11, 0xe0,
		0x88, 0xe9, 0xb8, 0x70, 0xf4, 0x16, 0x57, 0x34,
	}
	s, diags := decodeOne(t, Version{2, 6}, TypeSystem, formatted(0x1B, func(f fields) {
		f.u8(0x04, 1)
		f.u8(0x05, 2)
		copy(f[0x08:], uuid)
		f.u8(0x18, 0x06)
		f.u8(0x19, 3)
		f.u8(0x1A, 4)
	}), "LENOVO", "20042", "Calpella_CRB", "Intel_Mobile")
	require.Empty(t, diags)

	system := s.(*SystemInformation)
	assert.Equal(t, "LENOVO", *system.Manufacturer)
	assert.Equal(t, "20042", *system.ProductName)
	assert.Nil(t, system.Version)
	assert.Equal(t, "Calpella_CRB", *system.SKUNumber)
	assert.Equal(t, "Intel_Mobile", *system.Family)

	require.NotNil(t, system.UUID)
	assert.False(t, system.UUID.IsZero())
	assert.False(t, system.UUID.IsUnset())
	assert.Equal(t, "CB3E6A50-A77B-E011-88E9-B870F4165734", system.UUID.Format(Version{2, 6}))
	assert.Equal(t, "506A3ECB-7BA7-11E0-88E9-B870F4165734", system.UUID.Format(Version{2, 5}))

	var unset UUID
	for i := range unset {
		unset[i] = 0xff
	}
	assert.True(t, unset.IsUnset())
	assert.True(t, UUID{}.IsZero())
}

func TestBaseboard(t *testing.T) {
	s, diags := decodeOne(t, Version{3, 0}, TypeBaseboard, formatted(0x13, func(f fields) {
		f.u8(0x04, 1)
		f.u8(0x07, 2)
		f.u8(0x09, uint8(BoardHosting|BoardReplaceable))
		f.u16(0x0B, 0x0003)
		f.u8(0x0D, 0x0A)
		f.u8(0x0E, 2)
		f.u16(0x0F, 0x0010)
		f.u16(0x11, 0x0011)
	}), "Supermicro", "0123456789")
	require.Empty(t, diags)

	board := s.(*BaseboardInformation)
	assert.Equal(t, "Supermicro", *board.Manufacturer)
	assert.Equal(t, "0123456789", *board.SerialNumber)
	assert.True(t, board.Features.Has(BoardHosting))
	assert.False(t, board.Features.Has(BoardRemovable))
	assert.Equal(t, []string{"Board is a hosting board", "Board is replaceable"}, board.Features.Names())
	assert.EqualValues(t, 0x0003, *board.ChassisHandle)
	assert.Equal(t, "Motherboard", board.BoardType.String())
	assert.Equal(t, []uint16{0x0010, 0x0011}, board.ContainedObjectHandles)
	assert.Nil(t, board.Tail)
}

func TestBaseboardHandlesOverrun(t *testing.T) {
	s, diags := decodeOne(t, Version{}, TypeBaseboard, formatted(0x11, func(f fields) {
		f.u8(0x0E, 4)
	}))

	board := s.(*BaseboardInformation)
	assert.Nil(t, board.ContainedObjectHandles)
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], ErrOutOfBounds))
}

func TestChassis(t *testing.T) {
	s, diags := decodeOne(t, Version{2, 7}, TypeChassis, formatted(0x15+2*3+1, func(f fields) {
		f.u8(0x04, 1)
		f.u8(0x05, 0x80|0x17)
		f.u8(0x09, 0x03)
		f.u8(0x0C, 0x03)
		f.u8(0x11, 2)
		f.u8(0x12, 1)
		f.u8(0x13, 2)
		f.u8(0x14, 3)
		copy(f[0x15:], []byte{0x91, 1, 2, 0x03, 0, 4})
		f.u8(0x1B, 2)
	}), "Dell Inc.", "SKU-42")
	require.Empty(t, diags)

	chassis := s.(*ChassisInformation)
	assert.Equal(t, TypeChassis, chassis.Record().Type)
	require.NotNil(t, chassis.Type)
	assert.True(t, chassis.Type.Locked())
	assert.Equal(t, "Rack Mount Chassis", chassis.Type.String())
	assert.EqualValues(t, 2, *chassis.Height)

	require.Len(t, chassis.ContainedElements, 2)
	assert.True(t, chassis.ContainedElements[0].IsStructureType())
	assert.EqualValues(t, 0x91, chassis.ContainedElements[0].Type)
	assert.False(t, chassis.ContainedElements[1].IsStructureType())
	assert.EqualValues(t, 4, chassis.ContainedElements[1].Maximum)

	require.NotNil(t, chassis.SKUNumber)
	assert.Equal(t, "SKU-42", *chassis.SKUNumber)
	assert.Nil(t, chassis.Tail)
}

func TestChassisWithoutElements(t *testing.T) {
	s, diags := decodeOne(t, Version{2, 1}, TypeChassis, formatted(0x0D, func(f fields) {
		f.u8(0x05, 0x03)
	}))
	require.Empty(t, diags)

	chassis := s.(*ChassisInformation)
	assert.Equal(t, "Desktop", chassis.Type.String())
	assert.False(t, chassis.Type.Locked())
	assert.Nil(t, chassis.OEMDefined)
	assert.Nil(t, chassis.ContainedElements)
	assert.Nil(t, chassis.SKUNumber)
}

func TestProcessor(t *testing.T) {
	s, diags := decodeOne(t, Version{3, 0}, TypeProcessor, formatted(0x30, func(f fields) {
		f.u8(0x04, 1)
		f.u8(0x05, 0x03)
		f.u8(0x06, uint8(familyUseFamily2))
		f.u8(0x07, 2)
		f.u64(0x08, 0xbfebfbff000306f2)
		f.u8(0x11, 0x80|18)
		f.u16(0x14, 4000)
		f.u16(0x16, 2400)
		f.u8(0x18, 0x41)
		f.u16(0x1A, 0x0040)
		f.u16(0x1C, 0x0041)
		f.u16(0x1E, 0xffff)
		f.u8(0x23, 0xff)
		f.u8(0x24, 12)
		f.u8(0x25, 0xff)
		f.u16(0x26, uint16(Processor64Bit))
		f.u16(0x28, 0xB3)
		f.u16(0x2A, 384)
		f.u16(0x2E, 0)
	}), "CPU1", "Intel(R) Corporation")
	require.Empty(t, diags)

	cpu := s.(*ProcessorInformation)
	assert.Equal(t, "CPU1", *cpu.SocketDesignation)
	assert.Equal(t, "Central Processor", cpu.ProcessorType.String())

	family, ok := cpu.EffectiveFamily()
	require.True(t, ok)
	assert.Equal(t, "Xeon", family.String())

	volts, ok := cpu.Voltage.Volts()
	require.True(t, ok)
	assert.InDelta(t, 1.8, volts, 0.001)

	assert.True(t, cpu.Status.Populated())
	assert.Equal(t, "Populated, Enabled", cpu.Status.String())
	assert.EqualValues(t, 0xffff, *cpu.L3CacheHandle)

	cores, ok := cpu.Cores()
	require.True(t, ok)
	assert.EqualValues(t, 384, cores)

	enabled, ok := cpu.EnabledCores()
	require.True(t, ok)
	assert.EqualValues(t, 12, enabled)

	threads, ok := cpu.Threads()
	require.True(t, ok)
	assert.EqualValues(t, 0xff, threads)

	assert.True(t, cpu.Characteristics.Has(Processor64Bit))
	assert.Nil(t, cpu.SocketType)
}

func TestProcessorVoltageLegacy(t *testing.T) {
	v := ProcessorVoltage(0x03)
	assert.True(t, v.Legacy())
	assert.Equal(t, "5.0 V, 3.3 V", v.String())
	assert.Equal(t, "Unknown", ProcessorVoltage(0).String())
	assert.Equal(t, "Unpopulated", ProcessorStatus(0x01).String())
}

func TestCache(t *testing.T) {
	s, diags := decodeOne(t, Version{3, 2}, TypeCache, formatted(0x1B, func(f fields) {
		f.u8(0x04, 1)
		f.u16(0x05, 0x0180|0x0002)
		f.u16(0x07, 0xffff)
		f.u16(0x09, 0x8000|512)
		f.u16(0x0B, 0x0002)
		f.u8(0x10, 0x05)
		f.u8(0x11, 0x05)
		f.u8(0x12, 0x08)
		f.u32(0x13, 0x80000000|1024)
		f.u32(0x17, 32768)
	}), "L3 Cache")
	require.Empty(t, diags)

	cache := s.(*CacheInformation)
	assert.Equal(t, 3, cache.Configuration.Level())
	assert.True(t, cache.Configuration.Enabled())
	assert.False(t, cache.Configuration.Socketed())
	assert.Equal(t, "Internal", cache.Configuration.Location())
	assert.Equal(t, "Write Back", cache.Configuration.Mode())

	assert.True(t, cache.MaximumSize.Extended())
	assert.EqualValues(t, 64<<20, cache.MaximumSize2.Bytes())
	assert.Equal(t, Granularity64K, cache.InstalledSize.Granularity())
	assert.EqualValues(t, 32<<20, cache.InstalledSize.Bytes())
	assert.EqualValues(t, 32<<20, cache.InstalledSize2.Bytes())

	assert.Equal(t, []string{"Unknown"}, cache.SupportedSRAM.Names())
	assert.Equal(t, "Single-bit ECC", cache.ErrorCorrection.String())
	assert.Equal(t, "16-way Set-associative", cache.Associativity.String())
}

func TestSystemSlot(t *testing.T) {
	s, diags := decodeOne(t, Version{3, 4}, TypeSystemSlots, formatted(0x13+slotPeerLen+5, func(f fields) {
		f.u8(0x04, 1)
		f.u8(0x05, 0xA5)
		f.u8(0x06, 0x0D)
		f.u8(0x07, 0x04)
		f.u8(0x08, 0x04)
		f.u16(0x09, 7)
		f.u16(0x0D, 0)
		f.u8(0x0F, 0x3b)
		f.u8(0x10, 0x0a)
		f.u8(0x11, 0x0D)
		f.u8(0x12, 1)
		copy(f[0x13:], []byte{0x00, 0x00, 0x5e, 0x00, 0x0B})
		f.u8(0x18, 0x01)
		f.u8(0x19, 0x0D)
		f.u16(0x1A, 1270)
		f.u8(0x1C, 0x02)
	}), "PCIE7")
	require.Empty(t, diags)

	slot := s.(*SystemSlot)
	assert.Equal(t, "PCIE7", *slot.Designation)
	assert.Equal(t, "PCI Express", slot.SlotType.String())
	assert.Equal(t, "x16", slot.DataBusWidth.String())
	assert.Equal(t, "In Use", slot.CurrentUsage.String())
	assert.Equal(t, "01.2", slot.DeviceFunction.String())

	require.Len(t, slot.PeerDevices, 1)
	assert.EqualValues(t, 0x5e, slot.PeerDevices[0].Bus)
	assert.EqualValues(t, 0x0B, slot.PeerDevices[0].DataBusWidth)

	assert.EqualValues(t, 1, *slot.Information)
	assert.Equal(t, "x16", slot.PhysicalWidth.String())
	assert.EqualValues(t, 1270, *slot.Pitch)
	assert.EqualValues(t, 2, *slot.Height)
	assert.Nil(t, slot.Tail)
}

func TestSystemSlotLegacy(t *testing.T) {
	s, diags := decodeOne(t, Version{2, 1}, TypeSystemSlots, formatted(0x0D, func(f fields) {
		f.u8(0x05, 0x04)
	}))
	require.Empty(t, diags)

	slot := s.(*SystemSlot)
	assert.Equal(t, "MCA", slot.SlotType.String())
	assert.Nil(t, slot.SegmentGroup)
	assert.Nil(t, slot.PeerDevices)
	assert.Nil(t, slot.Information)
}

func TestOEMStrings(t *testing.T) {
	s, diags := decodeOne(t, Version{3, 0}, TypeOEMStrings, formatted(0x05, func(f fields) {
		f.u8(0x04, 3)
	}), "Dell System", "1[0748]", "3[1.0]")
	require.Empty(t, diags)

	oem := s.(*OEMStrings)
	assert.EqualValues(t, 3, *oem.Count)
	assert.Equal(t, []string{"Dell System", "1[0748]", "3[1.0]"}, oem.Strings)
}

func TestOEMStringsCountMismatch(t *testing.T) {
	s, diags := decodeOne(t, Version{}, TypeOEMStrings, formatted(0x05, func(f fields) {
		f.u8(0x04, 2)
	}), "only")

	oem := s.(*OEMStrings)
	assert.Equal(t, []string{"only"}, oem.Strings)
	require.Len(t, diags, 1)
	assert.True(t, errors.Is(diags[0], ErrStringIndex))
}

func TestSystemBoot(t *testing.T) {
	s, diags := decodeOne(t, Version{2, 3}, TypeSystemBoot, formatted(0x0E, func(f fields) {
		f.u8(0x0A, 0x00)
		f.u8(0x0B, 0xaa)
		f.u8(0x0D, 0xbb)
	}))
	require.Empty(t, diags)

	boot := s.(*SystemBootInformation)
	assert.Equal(t, "No errors detected", boot.Status.String())
	assert.Equal(t, []byte{0xaa, 0x00, 0xbb}, boot.Data)

	assert.Equal(t, "OEM-specific (130)", BootStatus(130).String())
	assert.Equal(t, "Product-specific (200)", BootStatus(200).String())
	assert.Equal(t, "Reserved (0x10)", BootStatus(0x10).String())
}
