package smbios

import "encoding/binary"

// tableBuilder assembles structure tables for tests
type tableBuilder struct {
	buf []byte
}

// add appends a structure. formatted is the formatted area after the header,
// the length is computed from it.
func (b *tableBuilder) add(typ Type, handle uint16, formatted []byte, strs ...string) *tableBuilder {
	return b.raw(typ, uint8(headerLen+len(formatted)), handle, formatted, strs...)
}

// raw appends a structure with an explicit length byte
func (b *tableBuilder) raw(typ Type, length uint8, handle uint16, formatted []byte, strs ...string) *tableBuilder {
	b.buf = append(b.buf, byte(typ), length)
	b.buf = binary.LittleEndian.AppendUint16(b.buf, handle)
	b.buf = append(b.buf, formatted...)

	if len(strs) == 0 {
		b.buf = append(b.buf, 0, 0)
		return b
	}

	for _, s := range strs {
		b.buf = append(b.buf, s...)
		b.buf = append(b.buf, 0)
	}
	b.buf = append(b.buf, 0)

	return b
}

// end appends the end of table structure
func (b *tableBuilder) end() *tableBuilder {
	return b.add(TypeEndOfTable, 0xfeff, nil)
}

func (b *tableBuilder) bytes() []byte {
	return b.buf
}

// formatted builds a formatted area of size bytes (header excluded) and
// lets set fill in the fields at their structure offsets
func formatted(length int, set func(f fields)) []byte {
	f := make(fields, length)
	if set != nil {
		set(f)
	}

	return f[headerLen:]
}

// fields is a structure formatted area indexed by structure offset
type fields []byte

func (f fields) u8(offset int, v uint8) {
	f[offset] = v
}

func (f fields) u16(offset int, v uint16) {
	binary.LittleEndian.PutUint16(f[offset:], v)
}

func (f fields) u32(offset int, v uint32) {
	binary.LittleEndian.PutUint32(f[offset:], v)
}

func (f fields) u64(offset int, v uint64) {
	binary.LittleEndian.PutUint64(f[offset:], v)
}
