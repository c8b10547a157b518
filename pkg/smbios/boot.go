package smbios

import "fmt"

// SystemBootInformation is structure type 32
type SystemBootInformation struct {
	Header `yaml:",inline"`

	Status *BootStatus `json:"status,omitempty" yaml:"status,omitempty"`
	// Data is the vendor or OEM specific data following the status code
	Data []byte `json:"data,omitempty" yaml:"data,omitempty"`
}

var bootLayouts = []layout{
	{since: Version{2, 3}, length: 0x0B},
}

// bytes 0x04 to 0x09 are reserved
var bootFields = []field[SystemBootInformation]{
	u8(0x0A, func(s *SystemBootInformation) **BootStatus { return &s.Status }),
}

func decodeSystemBoot(r *record) *SystemBootInformation {
	r.checkLayout(bootLayouts)

	s := &SystemBootInformation{Header: r.Header}
	known := decodeFields(r, s, bootFields)
	s.Data = r.bytes(known)

	return s
}

// BootStatus is the first byte of the boot status field
type BootStatus uint8

var bootStatusNames = map[BootStatus]string{
	0x00: "No errors detected",
	0x01: "No bootable media",
	0x02: "Operating system failed to load",
	0x03: "Firmware-detected hardware failure",
	0x04: "Operating system-detected hardware failure",
	0x05: "User-requested boot",
	0x06: "System security violation",
	0x07: "Previously-requested image",
	0x08: "System watchdog timer expired",
}

func (b BootStatus) String() string {
	switch {
	case b >= 128 && b <= 191:
		return fmt.Sprintf("OEM-specific (%d)", uint8(b))
	case b >= 192:
		return fmt.Sprintf("Product-specific (%d)", uint8(b))
	}

	return named(bootStatusNames, b)
}
