package smbios

// BIOSInformation is structure type 0
type BIOSInformation struct {
	Header `yaml:",inline"`

	Vendor  *string `json:"vendor,omitempty" yaml:"vendor,omitempty"`
	Version *string `json:"version,omitempty" yaml:"version,omitempty"`
	// StartingSegment of the BIOS runtime image, 0 on UEFI systems
	StartingSegment *uint16 `json:"starting_segment,omitempty" yaml:"starting_segment,omitempty"`
	ReleaseDate     *string `json:"release_date,omitempty" yaml:"release_date,omitempty"`
	// ROMSize is encoded as 64K * (n+1). 0xFF means the size is 16M or
	// more and ExtendedROMSize holds the actual value.
	ROMSize                *uint8                   `json:"rom_size,omitempty" yaml:"rom_size,omitempty"`
	Characteristics        *BIOSCharacteristics     `json:"characteristics,omitempty" yaml:"characteristics,omitempty"`
	CharacteristicsExt1    *BIOSCharacteristicsExt1 `json:"characteristics_ext1,omitempty" yaml:"characteristics_ext1,omitempty"`
	CharacteristicsExt2    *BIOSCharacteristicsExt2 `json:"characteristics_ext2,omitempty" yaml:"characteristics_ext2,omitempty"`
	SystemBIOSMajorRelease *uint8                   `json:"system_bios_major_release,omitempty" yaml:"system_bios_major_release,omitempty"`
	SystemBIOSMinorRelease *uint8                   `json:"system_bios_minor_release,omitempty" yaml:"system_bios_minor_release,omitempty"`
	ControllerMajorRelease *uint8                   `json:"controller_major_release,omitempty" yaml:"controller_major_release,omitempty"`
	ControllerMinorRelease *uint8                   `json:"controller_minor_release,omitempty" yaml:"controller_minor_release,omitempty"`
	ExtendedROMSize        *ExtendedROMSize         `json:"extended_rom_size,omitempty" yaml:"extended_rom_size,omitempty"`
	Tail                   []byte                   `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var biosLayouts = []layout{
	{since: Version{2, 0}, length: 0x12},
	{since: Version{2, 4}, length: 0x18},
	{since: Version{3, 1}, length: 0x1A},
}

var biosFields = []field[BIOSInformation]{
	str(0x04, func(s *BIOSInformation) **string { return &s.Vendor }),
	str(0x05, func(s *BIOSInformation) **string { return &s.Version }),
	u16(0x06, func(s *BIOSInformation) **uint16 { return &s.StartingSegment }),
	str(0x08, func(s *BIOSInformation) **string { return &s.ReleaseDate }),
	u8(0x09, func(s *BIOSInformation) **uint8 { return &s.ROMSize }),
	u64(0x0A, func(s *BIOSInformation) **BIOSCharacteristics { return &s.Characteristics }),
	u8(0x12, func(s *BIOSInformation) **BIOSCharacteristicsExt1 { return &s.CharacteristicsExt1 }),
	u8(0x13, func(s *BIOSInformation) **BIOSCharacteristicsExt2 { return &s.CharacteristicsExt2 }),
	u8(0x14, func(s *BIOSInformation) **uint8 { return &s.SystemBIOSMajorRelease }),
	u8(0x15, func(s *BIOSInformation) **uint8 { return &s.SystemBIOSMinorRelease }),
	u8(0x16, func(s *BIOSInformation) **uint8 { return &s.ControllerMajorRelease }),
	u8(0x17, func(s *BIOSInformation) **uint8 { return &s.ControllerMinorRelease }),
	u16(0x18, func(s *BIOSInformation) **ExtendedROMSize { return &s.ExtendedROMSize }),
}

func decodeBIOS(r *record) *BIOSInformation {
	r.checkLayout(biosLayouts)

	s := &BIOSInformation{Header: r.Header}
	known := decodeFields(r, s, biosFields)
	s.Tail = r.bytes(known)

	return s
}

// ROMSizeBytes returns the size of the BIOS ROM, taking the extended size
// into account. ok is false if the size cannot be computed.
func (b *BIOSInformation) ROMSizeBytes() (size uint64, ok bool) {
	if b.ROMSize == nil {
		return 0, false
	}

	if *b.ROMSize != 0xff {
		return (uint64(*b.ROMSize) + 1) << 16, true
	}

	if b.ExtendedROMSize == nil {
		return 0, false
	}

	return b.ExtendedROMSize.Bytes()
}

// ExtendedROMSize is the raw extended BIOS ROM size: bits 15:14 hold the
// unit, bits 13:0 the size.
type ExtendedROMSize uint16

// SizeUnit of an extended size
type SizeUnit uint8

// Size units
const (
	UnitMiB SizeUnit = iota
	UnitGiB
)

var sizeUnitNames = map[SizeUnit]string{
	UnitMiB: "MB",
	UnitGiB: "GB",
}

func (u SizeUnit) String() string {
	return named(sizeUnitNames, u)
}

// Value returns the size in Unit
func (e ExtendedROMSize) Value() uint16 {
	return uint16(e) & 0x3fff
}

// Unit of Value
func (e ExtendedROMSize) Unit() SizeUnit {
	return SizeUnit(e >> 14)
}

// Bytes returns the size in bytes, ok is false for reserved units
func (e ExtendedROMSize) Bytes() (uint64, bool) {
	switch e.Unit() {
	case UnitMiB:
		return uint64(e.Value()) << 20, true
	case UnitGiB:
		return uint64(e.Value()) << 30, true
	}

	return 0, false
}

// BIOSCharacteristics flags
type BIOSCharacteristics uint64

// BIOS characteristics bits
const (
	BIOSCharacteristicsNotSupported BIOSCharacteristics = 1 << 3
	BIOSPCISupported                BIOSCharacteristics = 1 << 7
	BIOSPnPSupported                BIOSCharacteristics = 1 << 9
	BIOSUpgradeable                 BIOSCharacteristics = 1 << 11
	BIOSShadowingAllowed            BIOSCharacteristics = 1 << 12
	BIOSBootFromCDSupported         BIOSCharacteristics = 1 << 15
	BIOSSelectableBootSupported     BIOSCharacteristics = 1 << 16
)

var biosCharacteristicNames = []string{
	3:  "BIOS characteristics not supported",
	4:  "ISA is supported",
	5:  "MCA is supported",
	6:  "EISA is supported",
	7:  "PCI is supported",
	8:  "PC Card (PCMCIA) is supported",
	9:  "PNP is supported",
	10: "APM is supported",
	11: "BIOS is upgradeable",
	12: "BIOS shadowing is allowed",
	13: "VLB is supported",
	14: "ESCD support is available",
	15: "Boot from CD is supported",
	16: "Selectable boot is supported",
	17: "BIOS ROM is socketed",
	18: "Boot from PC Card (PCMCIA) is supported",
	19: "EDD is supported",
	20: "Japanese floppy for NEC 9800 1.2 MB is supported (int 13h)",
	21: "Japanese floppy for Toshiba 1.2 MB is supported (int 13h)",
	22: "5.25\"/360 kB floppy services are supported (int 13h)",
	23: "5.25\"/1.2 MB floppy services are supported (int 13h)",
	24: "3.5\"/720 kB floppy services are supported (int 13h)",
	25: "3.5\"/2.88 MB floppy services are supported (int 13h)",
	26: "Print screen service is supported (int 5h)",
	27: "8042 keyboard services are supported (int 9h)",
	28: "Serial services are supported (int 14h)",
	29: "Printer services are supported (int 17h)",
	30: "CGA/mono video services are supported (int 10h)",
	31: "NEC PC-98",
}

// Has checks if all bits of f are set
func (c BIOSCharacteristics) Has(f BIOSCharacteristics) bool {
	return c&f == f
}

// Names of the characteristics that are set. Bits 32-63 are reserved for
// the BIOS and system vendors and have no name.
func (c BIOSCharacteristics) Names() []string {
	return flags(c, biosCharacteristicNames)
}

// BIOSCharacteristicsExt1 is the first characteristics extension byte
type BIOSCharacteristicsExt1 uint8

// Extension byte 1 bits
const (
	BIOSACPISupported      BIOSCharacteristicsExt1 = 1 << 0
	BIOSUSBLegacySupported BIOSCharacteristicsExt1 = 1 << 1
)

var biosExt1Names = []string{
	"ACPI is supported",
	"USB legacy is supported",
	"AGP is supported",
	"I2O boot is supported",
	"LS-120 boot is supported",
	"ATAPI Zip drive boot is supported",
	"IEEE 1394 boot is supported",
	"Smart battery is supported",
}

// Has checks if all bits of f are set
func (c BIOSCharacteristicsExt1) Has(f BIOSCharacteristicsExt1) bool {
	return c&f == f
}

// Names of the characteristics that are set
func (c BIOSCharacteristicsExt1) Names() []string {
	return flags(c, biosExt1Names)
}

// BIOSCharacteristicsExt2 is the second characteristics extension byte
type BIOSCharacteristicsExt2 uint8

// Extension byte 2 bits
const (
	BIOSBootSpecificationSupported BIOSCharacteristicsExt2 = 1 << 0
	BIOSUEFISupported              BIOSCharacteristicsExt2 = 1 << 3
	BIOSVirtualMachine             BIOSCharacteristicsExt2 = 1 << 4
)

var biosExt2Names = []string{
	"BIOS boot specification is supported",
	"Function key-initiated network boot is supported",
	"Targeted content distribution is supported",
	"UEFI is supported",
	"System is a virtual machine",
	"Manufacturing mode is supported",
	"Manufacturing mode is enabled",
}

// Has checks if all bits of f are set
func (c BIOSCharacteristicsExt2) Has(f BIOSCharacteristicsExt2) bool {
	return c&f == f
}

// Names of the characteristics that are set
func (c BIOSCharacteristicsExt2) Names() []string {
	return flags(c, biosExt2Names)
}
