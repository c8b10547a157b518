package smbios

import "fmt"

// SystemSlot is structure type 9
type SystemSlot struct {
	Header `yaml:",inline"`

	Designation      *string               `json:"designation,omitempty" yaml:"designation,omitempty"`
	SlotType         *SlotType             `json:"slot_type,omitempty" yaml:"slot_type,omitempty"`
	DataBusWidth     *SlotWidth            `json:"data_bus_width,omitempty" yaml:"data_bus_width,omitempty"`
	CurrentUsage     *SlotUsage            `json:"current_usage,omitempty" yaml:"current_usage,omitempty"`
	SlotLength       *SlotLength           `json:"slot_length,omitempty" yaml:"slot_length,omitempty"`
	ID               *uint16               `json:"id,omitempty" yaml:"id,omitempty"`
	Characteristics1 *SlotCharacteristics1 `json:"characteristics1,omitempty" yaml:"characteristics1,omitempty"`
	Characteristics2 *SlotCharacteristics2 `json:"characteristics2,omitempty" yaml:"characteristics2,omitempty"`
	SegmentGroup     *uint16               `json:"segment_group,omitempty" yaml:"segment_group,omitempty"`
	Bus              *uint8                `json:"bus,omitempty" yaml:"bus,omitempty"`
	DeviceFunction   *DeviceFunction       `json:"device_function,omitempty" yaml:"device_function,omitempty"`
	// BaseDataBusWidth is the electrical width of the slot (3.2+)
	BaseDataBusWidth *uint8     `json:"base_data_bus_width,omitempty" yaml:"base_data_bus_width,omitempty"`
	PeerDevices      []SlotPeer `json:"peer_devices,omitempty" yaml:"peer_devices,omitempty"`
	Information      *uint8     `json:"information,omitempty" yaml:"information,omitempty"`
	PhysicalWidth    *SlotWidth `json:"physical_width,omitempty" yaml:"physical_width,omitempty"`
	// Pitch in 1/100 millimeter, 0 if not given
	Pitch  *uint16 `json:"pitch,omitempty" yaml:"pitch,omitempty"`
	Height *uint8  `json:"height,omitempty" yaml:"height,omitempty"`
	Tail   []byte  `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var slotLayouts = []layout{
	{since: Version{2, 0}, length: 0x0C},
	{since: Version{2, 1}, length: 0x0D},
	{since: Version{2, 6}, length: 0x11},
	{since: Version{3, 2}, length: 0x13},
}

var slotFields = []field[SystemSlot]{
	str(0x04, func(s *SystemSlot) **string { return &s.Designation }),
	u8(0x05, func(s *SystemSlot) **SlotType { return &s.SlotType }),
	u8(0x06, func(s *SystemSlot) **SlotWidth { return &s.DataBusWidth }),
	u8(0x07, func(s *SystemSlot) **SlotUsage { return &s.CurrentUsage }),
	u8(0x08, func(s *SystemSlot) **SlotLength { return &s.SlotLength }),
	u16(0x09, func(s *SystemSlot) **uint16 { return &s.ID }),
	u8(0x0B, func(s *SystemSlot) **SlotCharacteristics1 { return &s.Characteristics1 }),
	u8(0x0C, func(s *SystemSlot) **SlotCharacteristics2 { return &s.Characteristics2 }),
	u16(0x0D, func(s *SystemSlot) **uint16 { return &s.SegmentGroup }),
	u8(0x0F, func(s *SystemSlot) **uint8 { return &s.Bus }),
	u8(0x10, func(s *SystemSlot) **DeviceFunction { return &s.DeviceFunction }),
	u8(0x11, func(s *SystemSlot) **uint8 { return &s.BaseDataBusWidth }),
}

// slotPeerLen is the size of one peer group entry
const slotPeerLen = 5

// slotTailFields are the fields found after the peer groups, offsets are
// relative to the end of the peer groups
var slotTailFields = []field[SystemSlot]{
	u8(0x00, func(s *SystemSlot) **uint8 { return &s.Information }),
	u8(0x01, func(s *SystemSlot) **SlotWidth { return &s.PhysicalWidth }),
	u16(0x02, func(s *SystemSlot) **uint16 { return &s.Pitch }),
	u8(0x04, func(s *SystemSlot) **uint8 { return &s.Height }),
}

func decodeSystemSlot(r *record) *SystemSlot {
	r.checkLayout(slotLayouts)

	s := &SystemSlot{Header: r.Header}
	known := decodeFields(r, s, slotFields)

	count, err := r.data.u8(0x12)
	if err != nil {
		s.Tail = r.bytes(known)
		return s
	}

	known = 0x13
	peers, err := r.data.slice(known, slotPeerLen*int(count))
	if err != nil {
		r.diag(err)
		s.Tail = r.bytes(known)
		return s
	}

	for i := 0; i < int(count); i++ {
		p := peers[i*slotPeerLen:]
		s.PeerDevices = append(s.PeerDevices, SlotPeer{
			SegmentGroup:   uint16(p[0]) | uint16(p[1])<<8,
			Bus:            p[2],
			DeviceFunction: DeviceFunction(p[3]),
			DataBusWidth:   p[4],
		})
	}
	known += len(peers)

	// the remaining fields are shifted by the peer groups, decode them
	// against a view starting right after the groups
	base := known
	shifted := record{
		Header:  r.Header,
		offset:  r.offset,
		strings: r.strings,
		version: r.version,
		diags:   r.diags,
	}
	shifted.Length = uint8(int(r.Length) - base)
	shiftedBuf, _ := r.data.slice(base, int(r.Length)-base)
	shifted.data = cursor{buf: shiftedBuf}
	known = base + decodeFields(&shifted, s, slotTailFields)

	s.Tail = r.bytes(known)

	return s
}

// SlotPeer is a device sharing the slot
type SlotPeer struct {
	SegmentGroup   uint16         `json:"segment_group" yaml:"segment_group"`
	Bus            uint8          `json:"bus" yaml:"bus"`
	DeviceFunction DeviceFunction `json:"device_function" yaml:"device_function"`
	DataBusWidth   uint8          `json:"data_bus_width" yaml:"data_bus_width"`
}

// DeviceFunction holds a PCI device number in bits 7:3 and the function in
// bits 2:0
type DeviceFunction uint8

// Device number
func (d DeviceFunction) Device() uint8 {
	return uint8(d) >> 3
}

// Function number
func (d DeviceFunction) Function() uint8 {
	return uint8(d) & 0x07
}

func (d DeviceFunction) String() string {
	return fmt.Sprintf("%02x.%x", d.Device(), d.Function())
}

// SlotType enumeration
type SlotType uint8

var slotTypeNames = map[SlotType]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "ISA",
	0x04: "MCA",
	0x05: "EISA",
	0x06: "PCI",
	0x07: "PC Card (PCMCIA)",
	0x08: "VLB",
	0x09: "Proprietary",
	0x0A: "Processor Card",
	0x0B: "Proprietary Memory Card",
	0x0C: "I/O Riser Card",
	0x0D: "NuBus",
	0x0E: "PCI-66",
	0x0F: "AGP",
	0x10: "AGP 2x",
	0x11: "AGP 4x",
	0x12: "PCI-X",
	0x13: "AGP 8x",
	0x14: "M.2 Socket 1-DP",
	0x15: "M.2 Socket 1-SD",
	0x16: "M.2 Socket 2",
	0x17: "M.2 Socket 3",
	0x18: "MXM Type I",
	0x19: "MXM Type II",
	0x1A: "MXM Type III",
	0x1B: "MXM Type III-HE",
	0x1C: "MXM Type IV",
	0x1D: "MXM 3.0 Type A",
	0x1E: "MXM 3.0 Type B",
	0x1F: "PCI Express 2 SFF-8639 (U.2)",
	0x20: "PCI Express 3 SFF-8639 (U.2)",
	0x21: "PCI Express Mini 52-pin with bottom-side keep-outs",
	0x22: "PCI Express Mini 52-pin without bottom-side keep-outs",
	0x23: "PCI Express Mini 76-pin",
	0x24: "PCI Express 4 SFF-8639 (U.2)",
	0x25: "PCI Express 5 SFF-8639 (U.2)",
	0x26: "OCP NIC 3.0 Small Form Factor (SFF)",
	0x27: "OCP NIC 3.0 Large Form Factor (LFF)",
	0x28: "OCP NIC Prior to 3.0",
	0xA5: "PCI Express",
	0xA6: "PCI Express x1",
	0xA7: "PCI Express x2",
	0xA8: "PCI Express x4",
	0xA9: "PCI Express x8",
	0xAA: "PCI Express x16",
	0xAB: "PCI Express 2",
	0xAC: "PCI Express 2 x1",
	0xAD: "PCI Express 2 x2",
	0xAE: "PCI Express 2 x4",
	0xAF: "PCI Express 2 x8",
	0xB0: "PCI Express 2 x16",
	0xB1: "PCI Express 3",
	0xB2: "PCI Express 3 x1",
	0xB3: "PCI Express 3 x2",
	0xB4: "PCI Express 3 x4",
	0xB5: "PCI Express 3 x8",
	0xB6: "PCI Express 3 x16",
	0xB8: "PCI Express 4",
	0xB9: "PCI Express 4 x1",
	0xBA: "PCI Express 4 x2",
	0xBB: "PCI Express 4 x4",
	0xBC: "PCI Express 4 x8",
	0xBD: "PCI Express 4 x16",
	0xBE: "PCI Express 5",
	0xBF: "PCI Express 5 x1",
	0xC0: "PCI Express 5 x2",
	0xC1: "PCI Express 5 x4",
	0xC2: "PCI Express 5 x8",
	0xC3: "PCI Express 5 x16",
	0xC4: "PCI Express 6+",
	0xC5: "EDSFF E1",
	0xC6: "EDSFF E3",
}

func (t SlotType) String() string {
	return named(slotTypeNames, t)
}

// SlotWidth enumeration, used for both bus and physical widths
type SlotWidth uint8

var slotWidthNames = map[SlotWidth]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "8-bit",
	0x04: "16-bit",
	0x05: "32-bit",
	0x06: "64-bit",
	0x07: "128-bit",
	0x08: "x1",
	0x09: "x2",
	0x0A: "x4",
	0x0B: "x8",
	0x0C: "x12",
	0x0D: "x16",
	0x0E: "x32",
}

func (w SlotWidth) String() string {
	return named(slotWidthNames, w)
}

// SlotUsage enumeration
type SlotUsage uint8

var slotUsageNames = map[SlotUsage]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Available",
	0x04: "In Use",
	0x05: "Unavailable",
}

func (u SlotUsage) String() string {
	return named(slotUsageNames, u)
}

// SlotLength enumeration
type SlotLength uint8

var slotLengthNames = map[SlotLength]string{
	0x01: "Other",
	0x02: "Unknown",
	0x03: "Short",
	0x04: "Long",
	0x05: "2.5\" drive form factor",
	0x06: "3.5\" drive form factor",
}

func (l SlotLength) String() string {
	return named(slotLengthNames, l)
}

// SlotCharacteristics1 flags
type SlotCharacteristics1 uint8

var slotCharacteristics1Names = []string{
	"Unknown",
	"5.0 V is provided",
	"3.3 V is provided",
	"Opening is shared",
	"PC Card-16 is supported",
	"Cardbus is supported",
	"Zoom Video is supported",
	"Modem ring resume is supported",
}

// Names of the characteristics that are set
func (c SlotCharacteristics1) Names() []string {
	return flags(c, slotCharacteristics1Names)
}

// SlotCharacteristics2 flags
type SlotCharacteristics2 uint8

var slotCharacteristics2Names = []string{
	"PME signal is supported",
	"Hot-plug devices are supported",
	"SMBus signal is supported",
	"PCIe slot bifurcation is supported",
	"Async/surprise removal is supported",
	"Flexbus slot, CXL 1.0 capable",
	"Flexbus slot, CXL 2.0 capable",
	"Flexbus slot, CXL 3.0 capable",
}

// Names of the characteristics that are set
func (c SlotCharacteristics2) Names() []string {
	return flags(c, slotCharacteristics2Names)
}
