package smbios

import "encoding/binary"

// BaseboardInformation is structure type 2
type BaseboardInformation struct {
	Header `yaml:",inline"`

	Manufacturer      *string        `json:"manufacturer,omitempty" yaml:"manufacturer,omitempty"`
	Product           *string        `json:"product,omitempty" yaml:"product,omitempty"`
	Version           *string        `json:"version,omitempty" yaml:"version,omitempty"`
	SerialNumber      *string        `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	AssetTag          *string        `json:"asset_tag,omitempty" yaml:"asset_tag,omitempty"`
	Features          *BoardFeatures `json:"features,omitempty" yaml:"features,omitempty"`
	LocationInChassis *string        `json:"location_in_chassis,omitempty" yaml:"location_in_chassis,omitempty"`
	// ChassisHandle references the chassis (type 3) the board is in
	ChassisHandle *uint16    `json:"chassis_handle,omitempty" yaml:"chassis_handle,omitempty"`
	BoardType     *BoardType `json:"board_type,omitempty" yaml:"board_type,omitempty"`
	// ContainedObjectHandles lists the handles of the structures on the
	// board. It is nil if the count is not present.
	ContainedObjectHandles []uint16 `json:"contained_object_handles,omitempty" yaml:"contained_object_handles,omitempty"`
	Tail                   []byte   `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var baseboardLayouts = []layout{
	{since: Version{2, 0}, length: 0x08},
}

var baseboardFields = []field[BaseboardInformation]{
	str(0x04, func(s *BaseboardInformation) **string { return &s.Manufacturer }),
	str(0x05, func(s *BaseboardInformation) **string { return &s.Product }),
	str(0x06, func(s *BaseboardInformation) **string { return &s.Version }),
	str(0x07, func(s *BaseboardInformation) **string { return &s.SerialNumber }),
	str(0x08, func(s *BaseboardInformation) **string { return &s.AssetTag }),
	u8(0x09, func(s *BaseboardInformation) **BoardFeatures { return &s.Features }),
	str(0x0A, func(s *BaseboardInformation) **string { return &s.LocationInChassis }),
	u16(0x0B, func(s *BaseboardInformation) **uint16 { return &s.ChassisHandle }),
	u8(0x0D, func(s *BaseboardInformation) **BoardType { return &s.BoardType }),
}

func decodeBaseboard(r *record) *BaseboardInformation {
	r.checkLayout(baseboardLayouts)

	s := &BaseboardInformation{Header: r.Header}
	known := decodeFields(r, s, baseboardFields)

	// number of contained handles followed by the handles themselves
	if count, err := r.data.u8(0x0E); err == nil {
		known = 0x0F
		handles, err := r.data.slice(0x0F, 2*int(count))
		if err != nil {
			r.diag(err)
		} else {
			s.ContainedObjectHandles = make([]uint16, count)
			for i := range s.ContainedObjectHandles {
				s.ContainedObjectHandles[i] = binary.LittleEndian.Uint16(handles[2*i:])
			}
			known += len(handles)
		}
	}

	s.Tail = r.bytes(known)

	return s
}

// BoardFeatures flags
type BoardFeatures uint8

// Board feature bits
const (
	BoardHosting BoardFeatures = 1 << iota
	BoardRequiresDaughterBoard
	BoardRemovable
	BoardReplaceable
	BoardHotSwappable
)

var boardFeatureNames = []string{
	"Board is a hosting board",
	"Board requires at least one daughter board",
	"Board is removable",
	"Board is replaceable",
	"Board is hot swappable",
}

// Has checks if all bits of f are set
func (f BoardFeatures) Has(o BoardFeatures) bool {
	return f&o == o
}

// Names of the features that are set
func (f BoardFeatures) Names() []string {
	return flags(f, boardFeatureNames)
}

// BoardType enumeration
type BoardType uint8

var boardTypeNames = map[BoardType]string{
	0x01: "Unknown",
	0x02: "Other",
	0x03: "Server Blade",
	0x04: "Connectivity Switch",
	0x05: "System Management Module",
	0x06: "Processor Module",
	0x07: "I/O Module",
	0x08: "Memory Module",
	0x09: "Daughter Board",
	0x0A: "Motherboard",
	0x0B: "Processor+Memory Module",
	0x0C: "Processor+I/O Module",
	0x0D: "Interconnect Board",
}

func (t BoardType) String() string {
	return named(boardTypeNames, t)
}
