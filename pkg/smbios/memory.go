package smbios

// PhysicalMemoryArray is structure type 16
type PhysicalMemoryArray struct {
	Header `yaml:",inline"`

	Location        *MemoryArrayLocation `json:"location,omitempty" yaml:"location,omitempty"`
	Use             *MemoryArrayUse      `json:"use,omitempty" yaml:"use,omitempty"`
	ErrorCorrection *ErrorCorrection     `json:"error_correction,omitempty" yaml:"error_correction,omitempty"`
	// MaximumCapacity in KiB. 0x80000000 means the capacity is found in
	// ExtendedMaximumCapacity.
	MaximumCapacity *uint32 `json:"maximum_capacity,omitempty" yaml:"maximum_capacity,omitempty"`
	// ErrorHandle references the last memory error structure. 0xFFFE means
	// not provided, 0xFFFF means no error was detected.
	ErrorHandle     *uint16 `json:"error_handle,omitempty" yaml:"error_handle,omitempty"`
	NumberOfDevices *uint16 `json:"number_of_devices,omitempty" yaml:"number_of_devices,omitempty"`
	// ExtendedMaximumCapacity in bytes
	ExtendedMaximumCapacity *uint64 `json:"extended_maximum_capacity,omitempty" yaml:"extended_maximum_capacity,omitempty"`
	Tail                    []byte  `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var memoryArrayLayouts = []layout{
	{since: Version{2, 1}, length: 0x0F},
	{since: Version{2, 7}, length: 0x17},
}

var memoryArrayFields = []field[PhysicalMemoryArray]{
	u8(0x04, func(s *PhysicalMemoryArray) **MemoryArrayLocation { return &s.Location }),
	u8(0x05, func(s *PhysicalMemoryArray) **MemoryArrayUse { return &s.Use }),
	u8(0x06, func(s *PhysicalMemoryArray) **ErrorCorrection { return &s.ErrorCorrection }),
	u32(0x07, func(s *PhysicalMemoryArray) **uint32 { return &s.MaximumCapacity }),
	u16(0x0B, func(s *PhysicalMemoryArray) **uint16 { return &s.ErrorHandle }),
	u16(0x0D, func(s *PhysicalMemoryArray) **uint16 { return &s.NumberOfDevices }),
	u64(0x0F, func(s *PhysicalMemoryArray) **uint64 { return &s.ExtendedMaximumCapacity }),
}

func decodePhysicalMemoryArray(r *record) *PhysicalMemoryArray {
	r.checkLayout(memoryArrayLayouts)

	s := &PhysicalMemoryArray{Header: r.Header}
	known := decodeFields(r, s, memoryArrayFields)
	s.Tail = r.bytes(known)

	return s
}

// CapacityBytes returns the maximum capacity of the array in bytes
func (a *PhysicalMemoryArray) CapacityBytes() (uint64, bool) {
	if a.MaximumCapacity == nil {
		return 0, false
	}

	if *a.MaximumCapacity != 0x80000000 {
		return uint64(*a.MaximumCapacity) << 10, true
	}

	if a.ExtendedMaximumCapacity == nil {
		return 0, false
	}

	return *a.ExtendedMaximumCapacity, true
}

// MemoryArrayLocation enumeration
type MemoryArrayLocation uint8

var memoryArrayLocationNames = map[MemoryArrayLocation]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "System Board Or Motherboard",
	0x04: "ISA Add-on Card",
	0x05: "EISA Add-on Card",
	0x06: "PCI Add-on Card",
	0x07: "MCA Add-on Card",
	0x08: "PCMCIA Add-on Card",
	0x09: "Proprietary Add-on Card",
	0x0A: "NuBus",
	0xA0: "PC-98/C20 Add-on Card",
	0xA1: "PC-98/C24 Add-on Card",
	0xA2: "PC-98/E Add-on Card",
	0xA3: "PC-98/Local Bus Add-on Card",
	0xA4: "CXL Add-on Card",
}

func (l MemoryArrayLocation) String() string {
	return named(memoryArrayLocationNames, l)
}

// MemoryArrayUse enumeration
type MemoryArrayUse uint8

var memoryArrayUseNames = map[MemoryArrayUse]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "System Memory",
	0x04: "Video Memory",
	0x05: "Flash Memory",
	0x06: "Non-volatile RAM",
	0x07: "Cache Memory",
}

func (u MemoryArrayUse) String() string {
	return named(memoryArrayUseNames, u)
}

// MemoryDevice is structure type 17
type MemoryDevice struct {
	Header `yaml:",inline"`

	// ArrayHandle references the physical memory array (type 16)
	ArrayHandle *uint16 `json:"array_handle,omitempty" yaml:"array_handle,omitempty"`
	ErrorHandle *uint16 `json:"error_handle,omitempty" yaml:"error_handle,omitempty"`
	// TotalWidth and DataWidth are in bits, 0xFFFF if unknown
	TotalWidth    *uint16           `json:"total_width,omitempty" yaml:"total_width,omitempty"`
	DataWidth     *uint16           `json:"data_width,omitempty" yaml:"data_width,omitempty"`
	Size          *MemorySize       `json:"size,omitempty" yaml:"size,omitempty"`
	FormFactor    *MemoryFormFactor `json:"form_factor,omitempty" yaml:"form_factor,omitempty"`
	DeviceSet     *uint8            `json:"device_set,omitempty" yaml:"device_set,omitempty"`
	DeviceLocator *string           `json:"device_locator,omitempty" yaml:"device_locator,omitempty"`
	BankLocator   *string           `json:"bank_locator,omitempty" yaml:"bank_locator,omitempty"`
	MemoryType    *MemoryType       `json:"memory_type,omitempty" yaml:"memory_type,omitempty"`
	TypeDetail    *MemoryTypeDetail `json:"type_detail,omitempty" yaml:"type_detail,omitempty"`
	// Speed in MT/s. 0 means unknown, 0xFFFF means the speed is found in
	// ExtendedSpeed.
	Speed        *uint16 `json:"speed,omitempty" yaml:"speed,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	SerialNumber *string `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	AssetTag     *string `json:"asset_tag,omitempty" yaml:"asset_tag,omitempty"`
	PartNumber   *string `json:"part_number,omitempty" yaml:"part_number,omitempty"`
	// Attributes holds the rank in bits 3:0, 0 if unknown
	Attributes *uint8 `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	// ExtendedSize in MiB, bits 30:0. Only valid when Size is 0x7FFF.
	ExtendedSize    *uint32 `json:"extended_size,omitempty" yaml:"extended_size,omitempty"`
	ConfiguredSpeed *uint16 `json:"configured_speed,omitempty" yaml:"configured_speed,omitempty"`
	// voltages are in millivolts, 0 if unknown
	MinimumVoltage                    *uint16               `json:"minimum_voltage,omitempty" yaml:"minimum_voltage,omitempty"`
	MaximumVoltage                    *uint16               `json:"maximum_voltage,omitempty" yaml:"maximum_voltage,omitempty"`
	ConfiguredVoltage                 *uint16               `json:"configured_voltage,omitempty" yaml:"configured_voltage,omitempty"`
	Technology                        *MemoryTechnology     `json:"technology,omitempty" yaml:"technology,omitempty"`
	OperatingModeCapability           *MemoryOperatingModes `json:"operating_mode_capability,omitempty" yaml:"operating_mode_capability,omitempty"`
	FirmwareVersion                   *string               `json:"firmware_version,omitempty" yaml:"firmware_version,omitempty"`
	ModuleManufacturerID              *uint16               `json:"module_manufacturer_id,omitempty" yaml:"module_manufacturer_id,omitempty"`
	ModuleProductID                   *uint16               `json:"module_product_id,omitempty" yaml:"module_product_id,omitempty"`
	SubsystemControllerManufacturerID *uint16               `json:"subsystem_controller_manufacturer_id,omitempty" yaml:"subsystem_controller_manufacturer_id,omitempty"`
	SubsystemControllerProductID      *uint16               `json:"subsystem_controller_product_id,omitempty" yaml:"subsystem_controller_product_id,omitempty"`
	// sizes in bytes. 0xFFFFFFFFFFFFFFFF means unknown, 0 means the
	// portion does not exist.
	NonVolatileSize *uint64 `json:"non_volatile_size,omitempty" yaml:"non_volatile_size,omitempty"`
	VolatileSize    *uint64 `json:"volatile_size,omitempty" yaml:"volatile_size,omitempty"`
	CacheSize       *uint64 `json:"cache_size,omitempty" yaml:"cache_size,omitempty"`
	LogicalSize     *uint64 `json:"logical_size,omitempty" yaml:"logical_size,omitempty"`
	// extended speeds in MT/s, bits 30:0
	ExtendedSpeed           *uint32 `json:"extended_speed,omitempty" yaml:"extended_speed,omitempty"`
	ExtendedConfiguredSpeed *uint32 `json:"extended_configured_speed,omitempty" yaml:"extended_configured_speed,omitempty"`
	PMIC0ManufacturerID     *uint16 `json:"pmic0_manufacturer_id,omitempty" yaml:"pmic0_manufacturer_id,omitempty"`
	PMIC0Revision           *uint16 `json:"pmic0_revision,omitempty" yaml:"pmic0_revision,omitempty"`
	RCDManufacturerID       *uint16 `json:"rcd_manufacturer_id,omitempty" yaml:"rcd_manufacturer_id,omitempty"`
	RCDRevision             *uint16 `json:"rcd_revision,omitempty" yaml:"rcd_revision,omitempty"`
	Tail                    []byte  `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var memoryDeviceLayouts = []layout{
	{since: Version{2, 1}, length: 0x15},
	{since: Version{2, 3}, length: 0x1B},
	{since: Version{2, 6}, length: 0x1C},
	{since: Version{2, 7}, length: 0x22},
	{since: Version{2, 8}, length: 0x28},
	{since: Version{3, 2}, length: 0x54},
	{since: Version{3, 3}, length: 0x5C},
	{since: Version{3, 7}, length: 0x64},
}

var memoryDeviceFields = []field[MemoryDevice]{
	u16(0x04, func(s *MemoryDevice) **uint16 { return &s.ArrayHandle }),
	u16(0x06, func(s *MemoryDevice) **uint16 { return &s.ErrorHandle }),
	u16(0x08, func(s *MemoryDevice) **uint16 { return &s.TotalWidth }),
	u16(0x0A, func(s *MemoryDevice) **uint16 { return &s.DataWidth }),
	u16(0x0C, func(s *MemoryDevice) **MemorySize { return &s.Size }),
	u8(0x0E, func(s *MemoryDevice) **MemoryFormFactor { return &s.FormFactor }),
	u8(0x0F, func(s *MemoryDevice) **uint8 { return &s.DeviceSet }),
	str(0x10, func(s *MemoryDevice) **string { return &s.DeviceLocator }),
	str(0x11, func(s *MemoryDevice) **string { return &s.BankLocator }),
	u8(0x12, func(s *MemoryDevice) **MemoryType { return &s.MemoryType }),
	u16(0x13, func(s *MemoryDevice) **MemoryTypeDetail { return &s.TypeDetail }),
	u16(0x15, func(s *MemoryDevice) **uint16 { return &s.Speed }),
	str(0x17, func(s *MemoryDevice) **string { return &s.Manufacturer }),
	str(0x18, func(s *MemoryDevice) **string { return &s.SerialNumber }),
	str(0x19, func(s *MemoryDevice) **string { return &s.AssetTag }),
	str(0x1A, func(s *MemoryDevice) **string { return &s.PartNumber }),
	u8(0x1B, func(s *MemoryDevice) **uint8 { return &s.Attributes }),
	u32(0x1C, func(s *MemoryDevice) **uint32 { return &s.ExtendedSize }),
	u16(0x20, func(s *MemoryDevice) **uint16 { return &s.ConfiguredSpeed }),
	u16(0x22, func(s *MemoryDevice) **uint16 { return &s.MinimumVoltage }),
	u16(0x24, func(s *MemoryDevice) **uint16 { return &s.MaximumVoltage }),
	u16(0x26, func(s *MemoryDevice) **uint16 { return &s.ConfiguredVoltage }),
	u8(0x28, func(s *MemoryDevice) **MemoryTechnology { return &s.Technology }),
	u16(0x29, func(s *MemoryDevice) **MemoryOperatingModes { return &s.OperatingModeCapability }),
	str(0x2B, func(s *MemoryDevice) **string { return &s.FirmwareVersion }),
	u16(0x2C, func(s *MemoryDevice) **uint16 { return &s.ModuleManufacturerID }),
	u16(0x2E, func(s *MemoryDevice) **uint16 { return &s.ModuleProductID }),
	u16(0x30, func(s *MemoryDevice) **uint16 { return &s.SubsystemControllerManufacturerID }),
	u16(0x32, func(s *MemoryDevice) **uint16 { return &s.SubsystemControllerProductID }),
	u64(0x34, func(s *MemoryDevice) **uint64 { return &s.NonVolatileSize }),
	u64(0x3C, func(s *MemoryDevice) **uint64 { return &s.VolatileSize }),
	u64(0x44, func(s *MemoryDevice) **uint64 { return &s.CacheSize }),
	u64(0x4C, func(s *MemoryDevice) **uint64 { return &s.LogicalSize }),
	u32(0x54, func(s *MemoryDevice) **uint32 { return &s.ExtendedSpeed }),
	u32(0x58, func(s *MemoryDevice) **uint32 { return &s.ExtendedConfiguredSpeed }),
	u16(0x5C, func(s *MemoryDevice) **uint16 { return &s.PMIC0ManufacturerID }),
	u16(0x5E, func(s *MemoryDevice) **uint16 { return &s.PMIC0Revision }),
	u16(0x60, func(s *MemoryDevice) **uint16 { return &s.RCDManufacturerID }),
	u16(0x62, func(s *MemoryDevice) **uint16 { return &s.RCDRevision }),
}

func decodeMemoryDevice(r *record) *MemoryDevice {
	r.checkLayout(memoryDeviceLayouts)

	s := &MemoryDevice{Header: r.Header}
	known := decodeFields(r, s, memoryDeviceFields)
	s.Tail = r.bytes(known)

	return s
}

// SizeBytes applies the size sentinels and returns the size of the device
// in bytes. ok is false if the size is unknown. A size of 0 means no
// device is installed in the socket.
func (m *MemoryDevice) SizeBytes() (size uint64, ok bool) {
	if m.Size == nil {
		return 0, false
	}

	switch {
	case m.Size.Unknown():
		return 0, false
	case m.Size.Extended():
		if m.ExtendedSize == nil {
			return 0, false
		}
		return uint64(*m.ExtendedSize&0x7fffffff) << 20, true
	}

	return m.Size.Bytes(), true
}

// Rank of the device, ok is false if unknown
func (m *MemoryDevice) Rank() (rank uint8, ok bool) {
	if m.Attributes == nil || *m.Attributes&0x0f == 0 {
		return 0, false
	}

	return *m.Attributes & 0x0f, true
}

// MemorySize is the raw 2 bytes memory device size.
//
//	0x0000  no device installed
//	0xFFFF  size unknown
//	0x7FFF  size is in the extended size field
//
// Otherwise bit 15 is the granularity (0 for MiB, 1 for KiB) and bits 14:0
// hold the value.
type MemorySize uint16

// Installed is false if the size says the socket is empty
func (s MemorySize) Installed() bool {
	return s != 0
}

// Unknown is true if the size is not known
func (s MemorySize) Unknown() bool {
	return s == 0xffff
}

// Extended is true if the size is found in the extended size field
func (s MemorySize) Extended() bool {
	return s == 0x7fff
}

// Value of the size in Unit
func (s MemorySize) Value() uint16 {
	return uint16(s) & 0x7fff
}

// MemorySizeUnit is the granularity of a memory size
type MemorySizeUnit uint8

// Memory size units
const (
	MemoryUnitMiB MemorySizeUnit = iota
	MemoryUnitKiB
)

// Unit of Value
func (s MemorySize) Unit() MemorySizeUnit {
	if s&0x8000 != 0 {
		return MemoryUnitKiB
	}

	return MemoryUnitMiB
}

// Bytes returns Value in bytes, ignoring the sentinels
func (s MemorySize) Bytes() uint64 {
	if s.Unit() == MemoryUnitKiB {
		return uint64(s.Value()) << 10
	}

	return uint64(s.Value()) << 20
}

// MemoryFormFactor enumeration
type MemoryFormFactor uint8

var memoryFormFactorNames = map[MemoryFormFactor]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "SIMM",
	0x04: "SIP",
	0x05: "Chip",
	0x06: "DIP",
	0x07: "ZIP",
	0x08: "Proprietary Card",
	0x09: "DIMM",
	0x0A: "TSOP",
	0x0B: "Row Of Chips",
	0x0C: "RIMM",
	0x0D: "SODIMM",
	0x0E: "SRIMM",
	0x0F: "FB-DIMM",
	0x10: "Die",
	0x11: "CAMM",
}

func (f MemoryFormFactor) String() string {
	return named(memoryFormFactorNames, f)
}

// MemoryType enumeration
type MemoryType uint8

var memoryTypeNames = map[MemoryType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "DRAM",
	0x04: "EDRAM",
	0x05: "VRAM",
	0x06: "SRAM",
	0x07: "RAM",
	0x08: "ROM",
	0x09: "Flash",
	0x0A: "EEPROM",
	0x0B: "FEPROM",
	0x0C: "EPROM",
	0x0D: "CDRAM",
	0x0E: "3DRAM",
	0x0F: "SDRAM",
	0x10: "SGRAM",
	0x11: "RDRAM",
	0x12: "DDR",
	0x13: "DDR2",
	0x14: "DDR2 FB-DIMM",
	0x18: "DDR3",
	0x19: "FBD2",
	0x1A: "DDR4",
	0x1B: "LPDDR",
	0x1C: "LPDDR2",
	0x1D: "LPDDR3",
	0x1E: "LPDDR4",
	0x1F: "Logical non-volatile device",
	0x20: "HBM",
	0x21: "HBM2",
	0x22: "DDR5",
	0x23: "LPDDR5",
	0x24: "HBM3",
}

func (t MemoryType) String() string {
	return named(memoryTypeNames, t)
}

// MemoryTypeDetail flags
type MemoryTypeDetail uint16

// Memory type detail bits
const (
	MemorySynchronous MemoryTypeDetail = 1 << 7
	MemoryNonVolatile MemoryTypeDetail = 1 << 12
	MemoryRegistered  MemoryTypeDetail = 1 << 13
	MemoryUnbuffered  MemoryTypeDetail = 1 << 14
)

var memoryTypeDetailNames = []string{
	1:  "Other",
	2:  "Unknown",
	3:  "Fast-paged",
	4:  "Static Column",
	5:  "Pseudo-static",
	6:  "RAMBus",
	7:  "Synchronous",
	8:  "CMOS",
	9:  "EDO",
	10: "Window DRAM",
	11: "Cache DRAM",
	12: "Non-Volatile",
	13: "Registered (Buffered)",
	14: "Unbuffered (Unregistered)",
	15: "LRDIMM",
}

// Has checks if all bits of f are set
func (d MemoryTypeDetail) Has(f MemoryTypeDetail) bool {
	return d&f == f
}

// Names of the details that are set
func (d MemoryTypeDetail) Names() []string {
	return flags(d, memoryTypeDetailNames)
}

// MemoryTechnology enumeration
type MemoryTechnology uint8

var memoryTechnologyNames = map[MemoryTechnology]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "DRAM",
	0x04: "NVDIMM-N",
	0x05: "NVDIMM-F",
	0x06: "NVDIMM-P",
	0x07: "Intel Optane persistent memory",
}

func (t MemoryTechnology) String() string {
	return named(memoryTechnologyNames, t)
}

// MemoryOperatingModes flags
type MemoryOperatingModes uint16

var memoryOperatingModeNames = []string{
	1: "Other",
	2: "Unknown",
	3: "Volatile memory",
	4: "Byte-accessible persistent memory",
	5: "Block-accessible persistent memory",
}

// Names of the modes that are set
func (m MemoryOperatingModes) Names() []string {
	return flags(m, memoryOperatingModeNames)
}

// MemoryArrayMappedAddress is structure type 19
type MemoryArrayMappedAddress struct {
	Header `yaml:",inline"`

	// StartingAddress and EndingAddress are in KiB. A starting address of
	// 0xFFFFFFFF means the extended addresses must be used.
	StartingAddress *uint32 `json:"starting_address,omitempty" yaml:"starting_address,omitempty"`
	EndingAddress   *uint32 `json:"ending_address,omitempty" yaml:"ending_address,omitempty"`
	ArrayHandle     *uint16 `json:"array_handle,omitempty" yaml:"array_handle,omitempty"`
	PartitionWidth  *uint8  `json:"partition_width,omitempty" yaml:"partition_width,omitempty"`
	// ExtendedStartingAddress and ExtendedEndingAddress are in bytes
	ExtendedStartingAddress *uint64 `json:"extended_starting_address,omitempty" yaml:"extended_starting_address,omitempty"`
	ExtendedEndingAddress   *uint64 `json:"extended_ending_address,omitempty" yaml:"extended_ending_address,omitempty"`
	Tail                    []byte  `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var mappedAddressLayouts = []layout{
	{since: Version{2, 1}, length: 0x0F},
	{since: Version{2, 7}, length: 0x1F},
}

var mappedAddressFields = []field[MemoryArrayMappedAddress]{
	u32(0x04, func(s *MemoryArrayMappedAddress) **uint32 { return &s.StartingAddress }),
	u32(0x08, func(s *MemoryArrayMappedAddress) **uint32 { return &s.EndingAddress }),
	u16(0x0C, func(s *MemoryArrayMappedAddress) **uint16 { return &s.ArrayHandle }),
	u8(0x0E, func(s *MemoryArrayMappedAddress) **uint8 { return &s.PartitionWidth }),
	u64(0x0F, func(s *MemoryArrayMappedAddress) **uint64 { return &s.ExtendedStartingAddress }),
	u64(0x17, func(s *MemoryArrayMappedAddress) **uint64 { return &s.ExtendedEndingAddress }),
}

func decodeMemoryArrayMappedAddress(r *record) *MemoryArrayMappedAddress {
	r.checkLayout(mappedAddressLayouts)

	s := &MemoryArrayMappedAddress{Header: r.Header}
	known := decodeFields(r, s, mappedAddressFields)
	s.Tail = r.bytes(known)

	return s
}

// Range returns the mapped range in bytes, using the extended addresses
// when the 32 bits ones say so. end is inclusive.
func (m *MemoryArrayMappedAddress) Range() (start, end uint64, ok bool) {
	if m.StartingAddress == nil || m.EndingAddress == nil {
		return 0, 0, false
	}

	if *m.StartingAddress != 0xffffffff {
		return uint64(*m.StartingAddress) << 10, uint64(*m.EndingAddress)<<10 + 0x3ff, true
	}

	if m.ExtendedStartingAddress == nil || m.ExtendedEndingAddress == nil {
		return 0, 0, false
	}

	return *m.ExtendedStartingAddress, *m.ExtendedEndingAddress, true
}
