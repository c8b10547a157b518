package smbios

import "fmt"

// SystemInformation is structure type 1
type SystemInformation struct {
	Header `yaml:",inline"`

	Manufacturer *string     `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	ProductName  *string     `json:"product_name,omitempty" yaml:"product_name,omitempty"`
	Version      *string     `json:"version,omitempty" yaml:"version,omitempty"`
	SerialNumber *string     `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	UUID         *UUID       `json:"uuid,omitempty" yaml:"uuid,omitempty"`
	WakeUpType   *WakeUpType `json:"wake_up_type,omitempty" yaml:"wake_up_type,omitempty"`
	SKUNumber    *string     `json:"sku_number,omitempty" yaml:"sku_number,omitempty"`
	Family       *string     `json:"family,omitempty" yaml:"family,omitempty"`
	Tail         []byte      `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var systemLayouts = []layout{
	{since: Version{2, 0}, length: 0x08},
	{since: Version{2, 1}, length: 0x19},
	{since: Version{2, 4}, length: 0x1B},
}

var systemFields = []field[SystemInformation]{
	str(0x04, func(s *SystemInformation) **string { return &s.Manufacturer }),
	str(0x05, func(s *SystemInformation) **string { return &s.ProductName }),
	str(0x06, func(s *SystemInformation) **string { return &s.Version }),
	str(0x07, func(s *SystemInformation) **string { return &s.SerialNumber }),
	at(0x08, 16, func(_ *record, b []byte, s *SystemInformation) {
		var id UUID
		copy(id[:], b)
		s.UUID = &id
	}),
	u8(0x18, func(s *SystemInformation) **WakeUpType { return &s.WakeUpType }),
	str(0x19, func(s *SystemInformation) **string { return &s.SKUNumber }),
	str(0x1A, func(s *SystemInformation) **string { return &s.Family }),
}

func decodeSystem(r *record) *SystemInformation {
	r.checkLayout(systemLayouts)

	s := &SystemInformation{Header: r.Header}
	known := decodeFields(r, s, systemFields)
	s.Tail = r.bytes(known)

	return s
}

// UUID as stored in the table. The byte order of the first three fields
// depends on the SMBIOS version, see Format.
type UUID [16]byte

// IsZero is true if the UUID is all zeros: no UUID is present
func (u UUID) IsZero() bool {
	return u == UUID{}
}

// IsUnset is true if the UUID is all 0xFF: the system has a UUID slot but
// the value is not set
func (u UUID) IsUnset() bool {
	for _, b := range u {
		if b != 0xff {
			return false
		}
	}

	return true
}

// Format returns the canonical string form of the UUID. Starting with
// SMBIOS 2.6 the first three fields are little endian; older tables, or
// tables of unknown version, are taken as big endian.
func (u UUID) Format(v Version) string {
	if v.AtLeast(2, 6) {
		return fmt.Sprintf("%02X%02X%02X%02X-%02X%02X-%02X%02X-%02X%02X-%02X%02X%02X%02X%02X%02X",
			u[3], u[2], u[1], u[0], u[5], u[4], u[7], u[6],
			u[8], u[9], u[10], u[11], u[12], u[13], u[14], u[15])
	}

	return fmt.Sprintf("%02X%02X%02X%02X-%02X%02X-%02X%02X-%02X%02X-%02X%02X%02X%02X%02X%02X",
		u[0], u[1], u[2], u[3], u[4], u[5], u[6], u[7],
		u[8], u[9], u[10], u[11], u[12], u[13], u[14], u[15])
}

// WakeUpType is the event that caused the system to power up
type WakeUpType uint8

var wakeUpTypeNames = map[WakeUpType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "APM Timer",
	0x04: "Modem Ring",
	0x05: "LAN Remote",
	0x06: "Power Switch",
	0x07: "PCI PME#",
	0x08: "AC Power Restored",
}

func (w WakeUpType) String() string {
	return named(wakeUpTypeNames, w)
}
