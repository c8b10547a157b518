package smbios

// Structure is one decoded table entry. It is implemented by the structure
// types of this package only: one per known structure type plus Unknown
// for everything else.
type Structure interface {
	// Record returns the header the structure was decoded from
	Record() Header
	structure()
}

func (*BIOSInformation) structure()          {}
func (*SystemInformation) structure()        {}
func (*BaseboardInformation) structure()     {}
func (*ChassisInformation) structure()       {}
func (*ProcessorInformation) structure()     {}
func (*CacheInformation) structure()         {}
func (*SystemSlot) structure()               {}
func (*OEMStrings) structure()               {}
func (*PhysicalMemoryArray) structure()      {}
func (*MemoryDevice) structure()             {}
func (*MemoryArrayMappedAddress) structure() {}
func (*SystemBootInformation) structure()    {}
func (*Unknown) structure()                  {}

// Unknown holds a structure of a type this package does not decode, or one
// that could not be decoded at all. Nothing is dropped: the formatted area
// and the string table are kept as found.
type Unknown struct {
	Header `yaml:",inline"`

	// Data is the formatted area after the header
	Data    []byte   `json:"data,omitempty" yaml:"data,omitempty"`
	Strings []string `json:"strings,omitempty" yaml:"strings,omitempty"`
	// Truncated is set if the structure claimed more bytes than the
	// buffer holds; Data is then whatever was left.
	Truncated bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

func decodeUnknown(r *record) *Unknown {
	s := &Unknown{
		Header: r.Header,
		Data:   r.bytes(headerLen),
	}

	if len(r.strings) > 0 {
		s.Strings = append([]string(nil), r.strings...)
	}

	return s
}

// decode dispatches a record to the decoder of its type
func decode(r *record) Structure {
	switch r.Type {
	case TypeBIOS:
		return decodeBIOS(r)
	case TypeSystem:
		return decodeSystem(r)
	case TypeBaseboard:
		return decodeBaseboard(r)
	case TypeChassis:
		return decodeChassis(r)
	case TypeProcessor:
		return decodeProcessor(r)
	case TypeCache:
		return decodeCache(r)
	case TypeSystemSlots:
		return decodeSystemSlot(r)
	case TypeOEMStrings:
		return decodeOEMStrings(r)
	case TypePhysicalMemoryArray:
		return decodePhysicalMemoryArray(r)
	case TypeMemoryDevice:
		return decodeMemoryDevice(r)
	case TypeMemoryArrayMappedAddress:
		return decodeMemoryArrayMappedAddress(r)
	case TypeSystemBoot:
		return decodeSystemBoot(r)
	default:
		return decodeUnknown(r)
	}
}
