package smbios

import (
	"fmt"
	"strings"
)

// ProcessorInformation is structure type 4
type ProcessorInformation struct {
	Header `yaml:",inline"`

	SocketDesignation *string          `json:"socket_designation,omitempty" yaml:"socket_designation,omitempty"`
	ProcessorType     *ProcessorType   `json:"processor_type,omitempty" yaml:"processor_type,omitempty"`
	Family            *ProcessorFamily `json:"family,omitempty" yaml:"family,omitempty"`
	Manufacturer      *string          `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	// ID is the raw processor identification, on x86 the CPUID leaf 1
	// EAX and EDX values
	ID              *uint64                   `json:"id,omitempty" yaml:"id,omitempty"`
	Version         *string                   `json:"version,omitempty" yaml:"version,omitempty"`
	Voltage         *ProcessorVoltage         `json:"voltage,omitempty" yaml:"voltage,omitempty"`
	ExternalClock   *uint16                   `json:"external_clock,omitempty" yaml:"external_clock,omitempty"`
	MaxSpeed        *uint16                   `json:"max_speed,omitempty" yaml:"max_speed,omitempty"`
	CurrentSpeed    *uint16                   `json:"current_speed,omitempty" yaml:"current_speed,omitempty"`
	Status          *ProcessorStatus          `json:"status,omitempty" yaml:"status,omitempty"`
	Upgrade         *ProcessorUpgrade         `json:"upgrade,omitempty" yaml:"upgrade,omitempty"`
	L1CacheHandle   *uint16                   `json:"l1_cache_handle,omitempty" yaml:"l1_cache_handle,omitempty"`
	L2CacheHandle   *uint16                   `json:"l2_cache_handle,omitempty" yaml:"l2_cache_handle,omitempty"`
	L3CacheHandle   *uint16                   `json:"l3_cache_handle,omitempty" yaml:"l3_cache_handle,omitempty"`
	SerialNumber    *string                   `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	AssetTag        *string                   `json:"asset_tag,omitempty" yaml:"asset_tag,omitempty"`
	PartNumber      *string                   `json:"part_number,omitempty" yaml:"part_number,omitempty"`
	CoreCount       *uint8                    `json:"core_count,omitempty" yaml:"core_count,omitempty"`
	CoreEnabled     *uint8                    `json:"core_enabled,omitempty" yaml:"core_enabled,omitempty"`
	ThreadCount     *uint8                    `json:"thread_count,omitempty" yaml:"thread_count,omitempty"`
	Characteristics *ProcessorCharacteristics `json:"characteristics,omitempty" yaml:"characteristics,omitempty"`
	Family2         *ProcessorFamily          `json:"family2,omitempty" yaml:"family2,omitempty"`
	CoreCount2      *uint16                   `json:"core_count2,omitempty" yaml:"core_count2,omitempty"`
	CoreEnabled2    *uint16                   `json:"core_enabled2,omitempty" yaml:"core_enabled2,omitempty"`
	ThreadCount2    *uint16                   `json:"thread_count2,omitempty" yaml:"thread_count2,omitempty"`
	ThreadEnabled   *uint16                   `json:"thread_enabled,omitempty" yaml:"thread_enabled,omitempty"`
	SocketType      *string                   `json:"socket_type,omitempty" yaml:"socket_type,omitempty"`
	Tail            []byte                    `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var processorLayouts = []layout{
	{since: Version{2, 0}, length: 0x1A},
	{since: Version{2, 1}, length: 0x20},
	{since: Version{2, 3}, length: 0x23},
	{since: Version{2, 5}, length: 0x28},
	{since: Version{2, 6}, length: 0x2A},
	{since: Version{3, 0}, length: 0x30},
	{since: Version{3, 6}, length: 0x32},
	{since: Version{3, 8}, length: 0x33},
}

var processorFields = []field[ProcessorInformation]{
	str(0x04, func(s *ProcessorInformation) **string { return &s.SocketDesignation }),
	u8(0x05, func(s *ProcessorInformation) **ProcessorType { return &s.ProcessorType }),
	at(0x06, 1, func(_ *record, b []byte, s *ProcessorInformation) {
		f := ProcessorFamily(b[0])
		s.Family = &f
	}),
	str(0x07, func(s *ProcessorInformation) **string { return &s.Manufacturer }),
	u64(0x08, func(s *ProcessorInformation) **uint64 { return &s.ID }),
	str(0x10, func(s *ProcessorInformation) **string { return &s.Version }),
	u8(0x11, func(s *ProcessorInformation) **ProcessorVoltage { return &s.Voltage }),
	u16(0x12, func(s *ProcessorInformation) **uint16 { return &s.ExternalClock }),
	u16(0x14, func(s *ProcessorInformation) **uint16 { return &s.MaxSpeed }),
	u16(0x16, func(s *ProcessorInformation) **uint16 { return &s.CurrentSpeed }),
	u8(0x18, func(s *ProcessorInformation) **ProcessorStatus { return &s.Status }),
	u8(0x19, func(s *ProcessorInformation) **ProcessorUpgrade { return &s.Upgrade }),
	u16(0x1A, func(s *ProcessorInformation) **uint16 { return &s.L1CacheHandle }),
	u16(0x1C, func(s *ProcessorInformation) **uint16 { return &s.L2CacheHandle }),
	u16(0x1E, func(s *ProcessorInformation) **uint16 { return &s.L3CacheHandle }),
	str(0x20, func(s *ProcessorInformation) **string { return &s.SerialNumber }),
	str(0x21, func(s *ProcessorInformation) **string { return &s.AssetTag }),
	str(0x22, func(s *ProcessorInformation) **string { return &s.PartNumber }),
	u8(0x23, func(s *ProcessorInformation) **uint8 { return &s.CoreCount }),
	u8(0x24, func(s *ProcessorInformation) **uint8 { return &s.CoreEnabled }),
	u8(0x25, func(s *ProcessorInformation) **uint8 { return &s.ThreadCount }),
	u16(0x26, func(s *ProcessorInformation) **ProcessorCharacteristics { return &s.Characteristics }),
	u16(0x28, func(s *ProcessorInformation) **ProcessorFamily { return &s.Family2 }),
	u16(0x2A, func(s *ProcessorInformation) **uint16 { return &s.CoreCount2 }),
	u16(0x2C, func(s *ProcessorInformation) **uint16 { return &s.CoreEnabled2 }),
	u16(0x2E, func(s *ProcessorInformation) **uint16 { return &s.ThreadCount2 }),
	u16(0x30, func(s *ProcessorInformation) **uint16 { return &s.ThreadEnabled }),
	str(0x32, func(s *ProcessorInformation) **string { return &s.SocketType }),
}

func decodeProcessor(r *record) *ProcessorInformation {
	r.checkLayout(processorLayouts)

	s := &ProcessorInformation{Header: r.Header}
	known := decodeFields(r, s, processorFields)
	s.Tail = r.bytes(known)

	return s
}

// EffectiveFamily returns Family, or Family2 when Family says so (0xFE)
func (p *ProcessorInformation) EffectiveFamily() (ProcessorFamily, bool) {
	if p.Family == nil {
		return 0, false
	}

	if *p.Family == familyUseFamily2 && p.Family2 != nil {
		return *p.Family2, true
	}

	return *p.Family, true
}

// Cores returns the number of cores, preferring the 2 bytes count when the
// 1 byte count is saturated (0xFF). ok is false if the count is unknown.
func (p *ProcessorInformation) Cores() (count uint16, ok bool) {
	return extendedCount(p.CoreCount, p.CoreCount2)
}

// EnabledCores works like Cores for the enabled cores count
func (p *ProcessorInformation) EnabledCores() (count uint16, ok bool) {
	return extendedCount(p.CoreEnabled, p.CoreEnabled2)
}

// Threads works like Cores for the thread count
func (p *ProcessorInformation) Threads() (count uint16, ok bool) {
	return extendedCount(p.ThreadCount, p.ThreadCount2)
}

// extendedCount resolves counts split over a byte and a word: 0 in either
// means unknown, 0xFF in the byte defers to the word.
func extendedCount(short *uint8, long *uint16) (uint16, bool) {
	if short == nil || *short == 0 {
		return 0, false
	}

	if *short != 0xff {
		return uint16(*short), true
	}

	if long == nil || *long == 0 || *long == 0xffff {
		return 0xff, true
	}

	return *long, true
}

// ProcessorType enumeration
type ProcessorType uint8

var processorTypeNames = map[ProcessorType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Central Processor",
	0x04: "Math Processor",
	0x05: "DSP Processor",
	0x06: "Video Processor",
}

func (t ProcessorType) String() string {
	return named(processorTypeNames, t)
}

// ProcessorFamily enumeration. Values above 0xFF are only found in the
// Family2 field.
type ProcessorFamily uint16

const familyUseFamily2 ProcessorFamily = 0xFE

var processorFamilyNames = map[ProcessorFamily]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "8086",
	0x04: "80286",
	0x05: "80386",
	0x06: "80486",
	0x07: "8087",
	0x08: "80287",
	0x09: "80387",
	0x0A: "80487",
	0x0B: "Pentium",
	0x0C: "Pentium Pro",
	0x0D: "Pentium II",
	0x0E: "Pentium MMX",
	0x0F: "Celeron",
	0x10: "Pentium II Xeon",
	0x11: "Pentium III",
	0x12: "M1",
	0x13: "M2",
	0x14: "Celeron M",
	0x15: "Pentium 4 HT",
	0x18: "Duron",
	0x19: "K5",
	0x1A: "K6",
	0x1B: "K6-2",
	0x1C: "K6-3",
	0x1D: "Athlon",
	0x1E: "AMD29000",
	0x1F: "K6-2+",
	0x28: "Core Duo",
	0x29: "Core Duo Mobile",
	0x2A: "Core Solo Mobile",
	0x2B: "Atom",
	0x2C: "Core M",
	0x2D: "Core m3",
	0x2E: "Core m5",
	0x2F: "Core m7",
	0x6B: "Zen",
	0x83: "Athlon 64",
	0x84: "Opteron",
	0x85: "Sempron",
	0x86: "Turion 64",
	0x87: "Dual-Core Opteron",
	0x88: "Athlon 64 X2",
	0x89: "Turion 64 X2",
	0x8A: "Quad-Core Opteron",
	0x8B: "Third-Generation Opteron",
	0xB3: "Xeon",
	0xB5: "Xeon MP",
	0xB6: "Athlon XP",
	0xB7: "Athlon MP",
	0xB8: "Itanium 2",
	0xB9: "Pentium M",
	0xBA: "Celeron D",
	0xBB: "Pentium D",
	0xBC: "Pentium EE",
	0xBD: "Core Solo",
	0xBF: "Core 2 Duo",
	0xC0: "Core 2 Solo",
	0xC1: "Core 2 Extreme",
	0xC2: "Core 2 Quad",
	0xC3: "Core 2 Extreme Mobile",
	0xC4: "Core 2 Duo Mobile",
	0xC5: "Core 2 Solo Mobile",
	0xC6: "Core i7",
	0xC7: "Dual-Core Celeron",
	0xCD: "Core i5",
	0xCE: "Core i3",
	0xCF: "Core i9",
	0xFE: "Family 2",

	0x100: "ARMv7",
	0x101: "ARMv8",
	0x102: "ARMv9",
	0x118: "ARM",
	0x119: "StrongARM",
	0x200: "RISC-V RV32",
	0x201: "RISC-V RV64",
	0x202: "RISC-V RV128",
}

func (f ProcessorFamily) String() string {
	return named(processorFamilyNames, f)
}

// ProcessorVoltage is either a legacy bit field of supported voltages
// (bit 7 clear) or the current voltage times 10 in bits 6:0 (bit 7 set)
type ProcessorVoltage uint8

// Legacy is true if the value is the legacy bit field
func (v ProcessorVoltage) Legacy() bool {
	return v&0x80 == 0
}

// Volts returns the current voltage, ok is false for legacy values
func (v ProcessorVoltage) Volts() (float64, bool) {
	if v.Legacy() {
		return 0, false
	}

	return float64(v&0x7f) / 10, true
}

var processorVoltageNames = []string{"5.0 V", "3.3 V", "2.9 V"}

func (v ProcessorVoltage) String() string {
	if volts, ok := v.Volts(); ok {
		return fmt.Sprintf("%.1f V", volts)
	}

	names := flags(v, processorVoltageNames)
	if len(names) == 0 {
		return "Unknown"
	}

	return strings.Join(names, ", ")
}

// ProcessorStatus holds the socket population in bit 6 and the CPU status
// in bits 2:0
type ProcessorStatus uint8

// Populated is true if the socket holds a processor
func (s ProcessorStatus) Populated() bool {
	return s&0x40 != 0
}

var cpuStatusNames = map[uint8]string{
	0x00: "Unknown",
	0x01: "Enabled",
	0x02: "Disabled By User",
	0x03: "Disabled By BIOS",
	0x04: "Idle",
	0x07: "Other",
}

// CPUStatus returns the name of the status in bits 2:0
func (s ProcessorStatus) CPUStatus() string {
	return named(cpuStatusNames, uint8(s)&0x07)
}

func (s ProcessorStatus) String() string {
	if !s.Populated() {
		return "Unpopulated"
	}

	return "Populated, " + s.CPUStatus()
}

// ProcessorUpgrade is the socket type
type ProcessorUpgrade uint8

var processorUpgradeNames = map[ProcessorUpgrade]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Daughter Board",
	0x04: "ZIF Socket",
	0x05: "Replaceable Piggy Back",
	0x06: "None",
	0x07: "LIF Socket",
	0x08: "Slot 1",
	0x09: "Slot 2",
	0x0A: "370-pin Socket",
	0x0B: "Slot A",
	0x0C: "Slot M",
	0x0D: "Socket 423",
	0x0E: "Socket A (Socket 462)",
	0x0F: "Socket 478",
	0x10: "Socket 754",
	0x11: "Socket 940",
	0x12: "Socket 939",
	0x13: "Socket mPGA604",
	0x14: "Socket LGA771",
	0x15: "Socket LGA775",
	0x16: "Socket S1",
	0x17: "Socket AM2",
	0x18: "Socket F (1207)",
	0x19: "Socket LGA1366",
	0x1A: "Socket G34",
	0x1B: "Socket AM3",
	0x1C: "Socket C32",
	0x1D: "Socket LGA1156",
	0x1E: "Socket LGA1567",
	0x1F: "Socket PGA988A",
	0x20: "Socket BGA1288",
	0x21: "Socket rPGA988B",
	0x22: "Socket BGA1023",
	0x23: "Socket BGA1224",
	0x24: "Socket LGA1155",
	0x25: "Socket LGA1356",
	0x26: "Socket LGA2011",
	0x27: "Socket FS1",
	0x28: "Socket FS2",
	0x29: "Socket FM1",
	0x2A: "Socket FM2",
	0x2B: "Socket LGA2011-3",
	0x2C: "Socket LGA1356-3",
	0x2D: "Socket LGA1150",
	0x2E: "Socket BGA1168",
	0x2F: "Socket BGA1234",
	0x30: "Socket BGA1364",
	0x31: "Socket AM4",
	0x32: "Socket LGA1151",
	0x33: "Socket BGA1356",
	0x34: "Socket BGA1440",
	0x35: "Socket BGA1515",
	0x36: "Socket LGA3647-1",
	0x37: "Socket SP3",
	0x38: "Socket SP3r2",
	0x39: "Socket LGA2066",
	0x3A: "Socket BGA1392",
	0x3B: "Socket BGA1510",
	0x3C: "Socket BGA1528",
	0x3D: "Socket LGA4189",
	0x3E: "Socket LGA1200",
	0x3F: "Socket LGA4677",
}

func (u ProcessorUpgrade) String() string {
	return named(processorUpgradeNames, u)
}

// ProcessorCharacteristics flags
type ProcessorCharacteristics uint16

// Processor characteristics bits
const (
	Processor64Bit             ProcessorCharacteristics = 1 << 2
	ProcessorMultiCore         ProcessorCharacteristics = 1 << 3
	ProcessorHardwareThread    ProcessorCharacteristics = 1 << 4
	ProcessorExecuteProtection ProcessorCharacteristics = 1 << 5
	ProcessorVirtualization    ProcessorCharacteristics = 1 << 6
)

var processorCharacteristicNames = []string{
	1: "Unknown",
	2: "64-bit capable",
	3: "Multi-Core",
	4: "Hardware Thread",
	5: "Execute Protection",
	6: "Enhanced Virtualization",
	7: "Power/Performance Control",
	8: "128-bit Capable",
	9: "Arm64 SoC ID",
}

// Has checks if all bits of f are set
func (c ProcessorCharacteristics) Has(f ProcessorCharacteristics) bool {
	return c&f == f
}

// Names of the characteristics that are set
func (c ProcessorCharacteristics) Names() []string {
	return flags(c, processorCharacteristicNames)
}
