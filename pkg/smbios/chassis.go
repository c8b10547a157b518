package smbios

import "bytes"

// ChassisInformation is structure type 3
type ChassisInformation struct {
	Header `yaml:",inline"`

	Manufacturer *string `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	// Type holds the chassis type in bits 6:0 and the lock presence in bit 7
	Type         *ChassisType    `json:"chassis_type,omitempty" yaml:"chassis_type,omitempty"`
	Version      *string         `json:"version,omitempty" yaml:"version,omitempty"`
	SerialNumber *string         `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	AssetTag     *string         `json:"asset_tag,omitempty" yaml:"asset_tag,omitempty"`
	BootUpState  *ChassisState   `json:"boot_up_state,omitempty" yaml:"boot_up_state,omitempty"`
	PowerSupply  *ChassisState   `json:"power_supply_state,omitempty" yaml:"power_supply_state,omitempty"`
	Thermal      *ChassisState   `json:"thermal_state,omitempty" yaml:"thermal_state,omitempty"`
	Security     *SecurityStatus `json:"security_status,omitempty" yaml:"security_status,omitempty"`
	OEMDefined   *uint32         `json:"oem_defined,omitempty" yaml:"oem_defined,omitempty"`
	// Height in rack units (1.75"), 0 means unspecified
	Height            *uint8             `json:"height,omitempty" yaml:"height,omitempty"`
	PowerCords        *uint8             `json:"power_cords,omitempty" yaml:"power_cords,omitempty"`
	ContainedElements []ContainedElement `json:"contained_elements,omitempty" yaml:"contained_elements,omitempty"`
	SKUNumber         *string            `json:"sku_number,omitempty" yaml:"sku_number,omitempty"`
	Tail              []byte             `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var chassisLayouts = []layout{
	{since: Version{2, 0}, length: 0x09},
	{since: Version{2, 1}, length: 0x0D},
	{since: Version{2, 3}, length: 0x15},
}

var chassisFields = []field[ChassisInformation]{
	str(0x04, func(s *ChassisInformation) **string { return &s.Manufacturer }),
	u8(0x05, func(s *ChassisInformation) **ChassisType { return &s.Type }),
	str(0x06, func(s *ChassisInformation) **string { return &s.Version }),
	str(0x07, func(s *ChassisInformation) **string { return &s.SerialNumber }),
	str(0x08, func(s *ChassisInformation) **string { return &s.AssetTag }),
	u8(0x09, func(s *ChassisInformation) **ChassisState { return &s.BootUpState }),
	u8(0x0A, func(s *ChassisInformation) **ChassisState { return &s.PowerSupply }),
	u8(0x0B, func(s *ChassisInformation) **ChassisState { return &s.Thermal }),
	u8(0x0C, func(s *ChassisInformation) **SecurityStatus { return &s.Security }),
	u32(0x0D, func(s *ChassisInformation) **uint32 { return &s.OEMDefined }),
	u8(0x11, func(s *ChassisInformation) **uint8 { return &s.Height }),
	u8(0x12, func(s *ChassisInformation) **uint8 { return &s.PowerCords }),
}

func decodeChassis(r *record) *ChassisInformation {
	r.checkLayout(chassisLayouts)

	s := &ChassisInformation{Header: r.Header}
	known := decodeFields(r, s, chassisFields)

	// element count (n) and element size (m) are followed by n*m bytes of
	// elements and then the SKU number string reference
	count, errCount := r.data.u8(0x13)
	size, errSize := r.data.u8(0x14)
	if errCount != nil || errSize != nil {
		s.Tail = r.bytes(known)
		return s
	}

	known = 0x15
	elements, err := r.data.slice(known, int(count)*int(size))
	if err != nil {
		r.diag(err)
		s.Tail = r.bytes(known)
		return s
	}

	for i := 0; i < int(count); i++ {
		raw := elements[i*int(size) : (i+1)*int(size)]
		element := ContainedElement{Raw: bytes.Clone(raw)}
		if len(raw) >= 3 {
			element.Type = raw[0]
			element.Minimum = raw[1]
			element.Maximum = raw[2]
		}
		s.ContainedElements = append(s.ContainedElements, element)
	}
	known += len(elements)

	if index, err := r.data.u8(known); err == nil {
		s.SKUNumber = r.str(index)
		known++
	}

	s.Tail = r.bytes(known)

	return s
}

// ChassisType enumeration, see Kind and Locked
type ChassisType uint8

var chassisTypeNames = map[ChassisType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Desktop",
	0x04: "Low Profile Desktop",
	0x05: "Pizza Box",
	0x06: "Mini Tower",
	0x07: "Tower",
	0x08: "Portable",
	0x09: "Laptop",
	0x0A: "Notebook",
	0x0B: "Hand Held",
	0x0C: "Docking Station",
	0x0D: "All In One",
	0x0E: "Sub Notebook",
	0x0F: "Space-saving",
	0x10: "Lunch Box",
	0x11: "Main Server Chassis",
	0x12: "Expansion Chassis",
	0x13: "Sub Chassis",
	0x14: "Bus Expansion Chassis",
	0x15: "Peripheral Chassis",
	0x16: "RAID Chassis",
	0x17: "Rack Mount Chassis",
	0x18: "Sealed-case PC",
	0x19: "Multi-system",
	0x1A: "CompactPCI",
	0x1B: "AdvancedTCA",
	0x1C: "Blade",
	0x1D: "Blade Enclosing",
	0x1E: "Tablet",
	0x1F: "Convertible",
	0x20: "Detachable",
	0x21: "IoT Gateway",
	0x22: "Embedded PC",
	0x23: "Mini PC",
	0x24: "Stick PC",
}

// Locked is true if the chassis has a lock
func (c ChassisType) Locked() bool {
	return c&0x80 != 0
}

// Kind returns the chassis type without the lock bit
func (c ChassisType) Kind() ChassisType {
	return c & 0x7f
}

func (c ChassisType) String() string {
	return named(chassisTypeNames, c.Kind())
}

// ChassisState is used for the boot up, power supply and thermal states
type ChassisState uint8

var chassisStateNames = map[ChassisState]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Safe",
	0x04: "Warning",
	0x05: "Critical",
	0x06: "Non-recoverable",
}

func (c ChassisState) String() string {
	return named(chassisStateNames, c)
}

// SecurityStatus of the chassis
type SecurityStatus uint8

var securityStatusNames = map[SecurityStatus]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "None",
	0x04: "External Interface Locked Out",
	0x05: "External Interface Enabled",
}

func (c SecurityStatus) String() string {
	return named(securityStatusNames, c)
}

// ContainedElement is an item the chassis contains. Type holds a structure
// type in bits 6:0 if bit 7 is set, a board type otherwise.
type ContainedElement struct {
	Type    uint8  `json:"type" yaml:"type"`
	Minimum uint8  `json:"minimum" yaml:"minimum"`
	Maximum uint8  `json:"maximum" yaml:"maximum"`
	Raw     []byte `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// IsStructureType tells how Type must be interpreted
func (e ContainedElement) IsStructureType() bool {
	return e.Type&0x80 != 0
}
