package smbios

// OEMStrings is structure type 11. It has no fields of its own besides the
// strings count; the strings carry free form OEM information.
type OEMStrings struct {
	Header `yaml:",inline"`

	Count   *uint8   `json:"count,omitempty" yaml:"count,omitempty"`
	Strings []string `json:"strings,omitempty" yaml:"strings,omitempty"`
	Tail    []byte   `json:"tail,omitempty" yaml:"tail,omitempty"`
}

var oemStringsLayouts = []layout{
	{since: Version{2, 0}, length: 0x05},
}

var oemStringsFields = []field[OEMStrings]{
	at(0x04, 1, func(r *record, b []byte, s *OEMStrings) {
		count := b[0]
		s.Count = &count
		for i := 1; i <= int(count); i++ {
			if str := r.str(uint8(i)); str != nil {
				s.Strings = append(s.Strings, *str)
			}
		}
	}),
}

func decodeOEMStrings(r *record) *OEMStrings {
	r.checkLayout(oemStringsLayouts)

	s := &OEMStrings{Header: r.Header}
	known := decodeFields(r, s, oemStringsFields)
	s.Tail = r.bytes(known)

	return s
}
