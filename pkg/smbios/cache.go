package smbios

// CacheInformation is structure type 7
type CacheInformation struct {
	Header `yaml:",inline"`

	SocketDesignation *string             `json:"socket_designation,omitempty" yaml:"socket_designation,omitempty"`
	Configuration     *CacheConfiguration `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	MaximumSize       *CacheSize          `json:"maximum_size,omitempty" yaml:"maximum_size,omitempty"`
	InstalledSize     *CacheSize          `json:"installed_size,omitempty" yaml:"installed_size,omitempty"`
	SupportedSRAM     *SRAMType           `json:"supported_sram_type,omitempty" yaml:"supported_sram_type,omitempty"`
	CurrentSRAM       *SRAMType           `json:"current_sram_type,omitempty" yaml:"current_sram_type,omitempty"`
	// Speed in nanoseconds, 0 if unknown
	Speed           *uint8              `json:"speed,omitempty" yaml:"speed,omitempty"`
	ErrorCorrection *ErrorCorrection    `json:"error_correction,omitempty" yaml:"error_correction,omitempty"`
	SystemType      *CacheSystemType    `json:"system_type,omitempty" yaml:"system_type,omitempty"`
	Associativity   *CacheAssociativity `json:"associativity,omitempty" yaml:"associativity,omitempty"`
	MaximumSize2    *CacheSize2         `json:"maximum_size2,omitempty" yaml:"maximum_size2,omitempty"`
	InstalledSize2  *CacheSize2         `json:"installed_size2,omitempty" yaml:"installed_size2,omitempty"`
	Tail            []byte              `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var cacheLayouts = []layout{
	{since: Version{2, 0}, length: 0x0F},
	{since: Version{2, 1}, length: 0x13},
	{since: Version{3, 1}, length: 0x1B},
}

var cacheFields = []field[CacheInformation]{
	str(0x04, func(s *CacheInformation) **string { return &s.SocketDesignation }),
	u16(0x05, func(s *CacheInformation) **CacheConfiguration { return &s.Configuration }),
	u16(0x07, func(s *CacheInformation) **CacheSize { return &s.MaximumSize }),
	u16(0x09, func(s *CacheInformation) **CacheSize { return &s.InstalledSize }),
	u16(0x0B, func(s *CacheInformation) **SRAMType { return &s.SupportedSRAM }),
	u16(0x0D, func(s *CacheInformation) **SRAMType { return &s.CurrentSRAM }),
	u8(0x0F, func(s *CacheInformation) **uint8 { return &s.Speed }),
	u8(0x10, func(s *CacheInformation) **ErrorCorrection { return &s.ErrorCorrection }),
	u8(0x11, func(s *CacheInformation) **CacheSystemType { return &s.SystemType }),
	u8(0x12, func(s *CacheInformation) **CacheAssociativity { return &s.Associativity }),
	u32(0x13, func(s *CacheInformation) **CacheSize2 { return &s.MaximumSize2 }),
	u32(0x17, func(s *CacheInformation) **CacheSize2 { return &s.InstalledSize2 }),
}

func decodeCache(r *record) *CacheInformation {
	r.checkLayout(cacheLayouts)

	s := &CacheInformation{Header: r.Header}
	known := decodeFields(r, s, cacheFields)
	s.Tail = r.bytes(known)

	return s
}

// CacheConfiguration bit field
type CacheConfiguration uint16

// Level of the cache, 1 to 8
func (c CacheConfiguration) Level() int {
	return int(c&0x07) + 1
}

// Socketed is true if the cache is socketed
func (c CacheConfiguration) Socketed() bool {
	return c&0x08 != 0
}

// Enabled is true if the cache is enabled at boot time
func (c CacheConfiguration) Enabled() bool {
	return c&0x80 != 0
}

var cacheLocationNames = map[uint8]string{
	0x00: "Internal",
	0x01: "External",
	0x03: "Unknown",
}

// Location of the cache relative to the processor
func (c CacheConfiguration) Location() string {
	return named(cacheLocationNames, uint8(c>>5)&0x03)
}

var cacheModeNames = map[uint8]string{
	0x00: "Write Through",
	0x01: "Write Back",
	0x02: "Varies With Memory Address",
	0x03: "Unknown",
}

// Mode is the operational mode of the cache
func (c CacheConfiguration) Mode() string {
	return named(cacheModeNames, uint8(c>>8)&0x03)
}

// CacheGranularity is the unit a cache size is expressed in
type CacheGranularity uint32

// Cache size granularities
const (
	Granularity1K  CacheGranularity = 1 << 10
	Granularity64K CacheGranularity = 64 << 10
)

// CacheSize is the raw 2 bytes cache size: bit 15 selects the granularity,
// bits 14:0 hold the size. A value of 0xFFFF on SMBIOS 3.1+ tables means
// the size is found in the matching 4 bytes field.
type CacheSize uint16

// Value of the size in Granularity units
func (c CacheSize) Value() uint16 {
	return uint16(c) & 0x7fff
}

// Granularity of Value
func (c CacheSize) Granularity() CacheGranularity {
	if c&0x8000 != 0 {
		return Granularity64K
	}

	return Granularity1K
}

// Extended is true if the actual size is found in the 4 bytes field
func (c CacheSize) Extended() bool {
	return c == 0xffff
}

// Bytes returns the cache size in bytes
func (c CacheSize) Bytes() uint64 {
	return uint64(c.Value()) * uint64(c.Granularity())
}

// CacheSize2 is the raw 4 bytes cache size: bit 31 selects the granularity,
// bits 30:0 hold the size.
type CacheSize2 uint32

// Value of the size in Granularity units
func (c CacheSize2) Value() uint32 {
	return uint32(c) & 0x7fffffff
}

// Granularity of Value
func (c CacheSize2) Granularity() CacheGranularity {
	if c&0x80000000 != 0 {
		return Granularity64K
	}

	return Granularity1K
}

// Bytes returns the cache size in bytes
func (c CacheSize2) Bytes() uint64 {
	return uint64(c.Value()) * uint64(c.Granularity())
}

// SRAMType flags
type SRAMType uint16

var sramTypeNames = []string{
	"Other",
	"Unknown",
	"Non-burst",
	"Burst",
	"Pipeline Burst",
	"Synchronous",
	"Asynchronous",
}

// Names of the SRAM types that are set
func (t SRAMType) Names() []string {
	return flags(t, sramTypeNames)
}

// ErrorCorrection type, shared by caches and memory arrays
type ErrorCorrection uint8

var errorCorrectionNames = map[ErrorCorrection]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "None",
	0x04: "Parity",
	0x05: "Single-bit ECC",
	0x06: "Multi-bit ECC",
	0x07: "CRC",
}

func (e ErrorCorrection) String() string {
	return named(errorCorrectionNames, e)
}

// CacheSystemType enumeration
type CacheSystemType uint8

var cacheSystemTypeNames = map[CacheSystemType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Instruction",
	0x04: "Data",
	0x05: "Unified",
}

func (t CacheSystemType) String() string {
	return named(cacheSystemTypeNames, t)
}

// CacheAssociativity enumeration
type CacheAssociativity uint8

var cacheAssociativityNames = map[CacheAssociativity]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Direct Mapped",
	0x04: "2-way Set-associative",
	0x05: "4-way Set-associative",
	0x06: "Fully Associative",
	0x07: "8-way Set-associative",
	0x08: "16-way Set-associative",
	0x09: "12-way Set-associative",
	0x0A: "24-way Set-associative",
	0x0B: "32-way Set-associative",
	0x0C: "48-way Set-associative",
	0x0D: "64-way Set-associative",
	0x0E: "20-way Set-associative",
}

func (a CacheAssociativity) String() string {
	return named(cacheAssociativityNames, a)
}
