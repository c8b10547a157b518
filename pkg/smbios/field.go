package smbios

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// record is the decode context of a single structure. data holds the
// formatted area (header included) and is exactly Length bytes long.
type record struct {
	Header
	offset  int
	data    cursor
	strings []string
	version Version
	diags   *[]Diagnostic
}

func (r *record) diag(err error) {
	d := Diagnostic{Offset: r.offset, Type: r.Type, Handle: r.Handle, Err: err}
	log.Debug().Err(d).Msg("smbios structure diagnostic")
	*r.diags = append(*r.diags, d)
}

// str resolves a string reference. index 0 means no string was set.
func (r *record) str(index uint8) *string {
	if index == 0 {
		return nil
	}

	if int(index) > len(r.strings) {
		r.diag(errors.WithMessagef(ErrStringIndex, "string %d referenced, table holds %d", index, len(r.strings)))
		return nil
	}

	s := r.strings[index-1]
	return &s
}

// bytes returns a copy of the formatted area from offset up to Length, or
// nil if there is nothing there.
func (r *record) bytes(offset int) []byte {
	if offset >= int(r.Length) {
		return nil
	}

	b, err := r.data.slice(offset, int(r.Length)-offset)
	if err != nil {
		return nil
	}

	return bytes.Clone(b)
}

// layout is the length of a structure as defined by a given SMBIOS version
type layout struct {
	since  Version
	length int
}

// checkLayout reports structures shorter than what the declared table
// version mandates. Nothing is reported if the version is not known.
func (r *record) checkLayout(layouts []layout) {
	if r.version.IsZero() {
		return
	}

	var expected *layout
	for i := range layouts {
		if r.version.AtLeast(layouts[i].since.Major, layouts[i].since.Minor) {
			expected = &layouts[i]
		}
	}

	if expected != nil && int(r.Length) < expected.length {
		r.diag(errors.WithMessagef(ErrShortRecord, "%d bytes, SMBIOS %s defines %d", r.Length, expected.since, expected.length))
	}
}

// field is one entry of a structure layout: size bytes at offset decoded
// into T by decode. A field is only decoded if the structure is long enough
// to hold it.
type field[T any] struct {
	offset int
	size   int
	decode func(r *record, b []byte, s *T)
}

// decodeFields evaluates the layout against the record and returns the
// length of the layout itself, which may be more or less than Length.
func decodeFields[T any](r *record, s *T, fields []field[T]) int {
	known := 0
	for _, f := range fields {
		end := f.offset + f.size
		if end > known {
			known = end
		}

		if end > int(r.Length) {
			continue
		}

		b, err := r.data.slice(f.offset, f.size)
		if err != nil {
			r.diag(err)
			continue
		}

		f.decode(r, b, s)
	}

	return known
}

func at[T any](offset, size int, fn func(r *record, b []byte, s *T)) field[T] {
	return field[T]{offset: offset, size: size, decode: fn}
}

func u8[T any, V ~uint8](offset int, sel func(*T) **V) field[T] {
	return at(offset, 1, func(_ *record, b []byte, s *T) {
		v := V(b[0])
		*sel(s) = &v
	})
}

func u16[T any, V ~uint16](offset int, sel func(*T) **V) field[T] {
	return at(offset, 2, func(_ *record, b []byte, s *T) {
		v := V(binary.LittleEndian.Uint16(b))
		*sel(s) = &v
	})
}

func u32[T any, V ~uint32](offset int, sel func(*T) **V) field[T] {
	return at(offset, 4, func(_ *record, b []byte, s *T) {
		v := V(binary.LittleEndian.Uint32(b))
		*sel(s) = &v
	})
}

func u64[T any, V ~uint64](offset int, sel func(*T) **V) field[T] {
	return at(offset, 8, func(_ *record, b []byte, s *T) {
		v := V(binary.LittleEndian.Uint64(b))
		*sel(s) = &v
	})
}

func str[T any](offset int, sel func(*T) **string) field[T] {
	return at(offset, 1, func(r *record, b []byte, s *T) {
		*sel(s) = r.str(b[0])
	})
}

// named returns the name of an enumerated value, with a catch all for
// values the table does not know about.
func named[V ~uint8 | ~uint16](names map[V]string, v V) string {
	if name, ok := names[v]; ok {
		return name
	}

	return fmt.Sprintf("Reserved (0x%02X)", uint64(v))
}

// flags returns the names of all the bits set in v. names is indexed by bit
// number; bits without a name are skipped.
func flags[V ~uint8 | ~uint16 | ~uint32 | ~uint64](v V, names []string) []string {
	var set []string
	for bit, name := range names {
		if name == "" || bit >= 64 {
			continue
		}
		if uint64(v)&(1<<uint(bit)) != 0 {
			set = append(set, name)
		}
	}

	return set
}
