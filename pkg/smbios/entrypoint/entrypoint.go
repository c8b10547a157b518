// Package entrypoint parses the SMBIOS entry point structure, the small
// anchor structure firmware publishes to locate the structure table and
// announce the SMBIOS version it implements.
package entrypoint

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"github.com/threefoldtech/smbios/pkg/smbios"
)

var (
	// ErrUnknownAnchor is returned if the data starts with neither the
	// 32 bits nor the 64 bits anchor
	ErrUnknownAnchor = errors.New("unknown entry point anchor")
	// ErrChecksum is returned if the entry point bytes do not sum up to 0
	ErrChecksum = errors.New("entry point checksum mismatch")
	// ErrTooShort is returned if the data is shorter than the entry point
	// it announces
	ErrTooShort = errors.New("entry point too short")
)

// Kind of entry point
type Kind string

// Entry point kinds
const (
	// Kind32 is the SMBIOS 2.1 entry point, with a 32 bits table address
	Kind32 Kind = "_SM_"
	// Kind64 is the SMBIOS 3.0 entry point, with a 64 bits table address
	Kind64 Kind = "_SM3_"
)

const (
	length32 = 0x1F
	length64 = 0x18

	// intermediate (legacy DMI) anchor of the 32 bits entry point
	dmiAnchor = "_DMI_"
	dmiOffset = 0x10
	dmiLength = 0x0F
)

// EntryPoint is a parsed entry point. Fields that only exist in one kind of
// entry point are left zero for the other.
type EntryPoint struct {
	Kind   Kind  `json:"kind" yaml:"kind"`
	Length uint8 `json:"length" yaml:"length"`
	Major  uint8 `json:"major" yaml:"major"`
	Minor  uint8 `json:"minor" yaml:"minor"`
	// DocRev is the specification document revision, 64 bits only
	DocRev uint8 `json:"doc_rev,omitempty" yaml:"doc_rev,omitempty"`
	// Revision of the entry point structure itself
	Revision uint8 `json:"revision" yaml:"revision"`
	// MaxStructureSize is the size of the largest structure, 32 bits only
	MaxStructureSize uint16 `json:"max_structure_size,omitempty" yaml:"max_structure_size,omitempty"`
	// TableLength is the exact table length for 32 bits entry points and
	// the maximum table length for 64 bits ones
	TableLength  uint32 `json:"table_length" yaml:"table_length"`
	TableAddress uint64 `json:"table_address" yaml:"table_address"`
	// StructureCount is the number of structures in the table, 32 bits only
	StructureCount uint16 `json:"structure_count,omitempty" yaml:"structure_count,omitempty"`
	// BCDRevision is the legacy DMI revision, 32 bits only
	BCDRevision uint8 `json:"bcd_revision,omitempty" yaml:"bcd_revision,omitempty"`
}

// Parse parses an entry point as exported by the kernel in
// /sys/firmware/dmi/tables/smbios_entry_point
func Parse(data []byte) (*EntryPoint, error) {
	switch {
	case bytes.HasPrefix(data, []byte(Kind64)):
		return parse64(data)
	case bytes.HasPrefix(data, []byte(Kind32)):
		return parse32(data)
	}

	if len(data) > 5 {
		data = data[:5]
	}

	return nil, errors.WithMessagef(ErrUnknownAnchor, "got %q", data)
}

func parse32(data []byte) (*EntryPoint, error) {
	if len(data) < 6 {
		return nil, errors.WithMessagef(ErrTooShort, "%d bytes", len(data))
	}

	// some firmware reports 0x1E because of an old specification typo,
	// the structure is 0x1F bytes either way
	length := int(data[5])
	if length < length32-1 || len(data) < length32 || len(data) < length {
		return nil, errors.WithMessagef(ErrTooShort, "%d bytes, announced %d", len(data), length)
	}

	if err := checksum(data[:length]); err != nil {
		return nil, err
	}

	if !bytes.Equal(data[dmiOffset:dmiOffset+len(dmiAnchor)], []byte(dmiAnchor)) {
		return nil, errors.WithMessagef(ErrUnknownAnchor, "intermediate anchor %q", data[dmiOffset:dmiOffset+len(dmiAnchor)])
	}

	if err := checksum(data[dmiOffset : dmiOffset+dmiLength]); err != nil {
		return nil, errors.WithMessage(err, "intermediate entry point")
	}

	return &EntryPoint{
		Kind:             Kind32,
		Length:           data[5],
		Major:            data[6],
		Minor:            data[7],
		MaxStructureSize: binary.LittleEndian.Uint16(data[0x08:]),
		Revision:         data[0x0A],
		TableLength:      uint32(binary.LittleEndian.Uint16(data[0x16:])),
		TableAddress:     uint64(binary.LittleEndian.Uint32(data[0x18:])),
		StructureCount:   binary.LittleEndian.Uint16(data[0x1C:]),
		BCDRevision:      data[0x1E],
	}, nil
}

func parse64(data []byte) (*EntryPoint, error) {
	if len(data) < 7 {
		return nil, errors.WithMessagef(ErrTooShort, "%d bytes", len(data))
	}

	length := int(data[6])
	if length < length64 || len(data) < length {
		return nil, errors.WithMessagef(ErrTooShort, "%d bytes, announced %d", len(data), length)
	}

	if err := checksum(data[:length]); err != nil {
		return nil, err
	}

	return &EntryPoint{
		Kind:         Kind64,
		Length:       data[6],
		Major:        data[7],
		Minor:        data[8],
		DocRev:       data[9],
		Revision:     data[0x0A],
		TableLength:  binary.LittleEndian.Uint32(data[0x0C:]),
		TableAddress: binary.LittleEndian.Uint64(data[0x10:]),
	}, nil
}

func checksum(data []byte) error {
	var sum uint8
	for _, b := range data {
		sum += b
	}

	if sum != 0 {
		return errors.WithMessagef(ErrChecksum, "sum of %d bytes is 0x%02X", len(data), sum)
	}

	return nil
}

// Version returns the SMBIOS version the firmware implements
func (e *EntryPoint) Version() smbios.Version {
	v := smbios.Version{Major: e.Major, Minor: e.Minor}

	// known broken firmware versions, fixed up the way dmidecode does
	if e.Kind == Kind32 && e.Major == 2 {
		switch e.Minor {
		case 31, 33:
			v.Minor = 3
		case 51:
			v.Minor = 6
		}
	}

	return v
}

func (e *EntryPoint) String() string {
	if e.Kind == Kind64 {
		return fmt.Sprintf("SMBIOS %d.%d.%d (64 bits entry point, table at 0x%X, max %d bytes)",
			e.Major, e.Minor, e.DocRev, e.TableAddress, e.TableLength)
	}

	return fmt.Sprintf("SMBIOS %d.%d (32 bits entry point, %d structures at 0x%X, %d bytes)",
		e.Major, e.Minor, e.StructureCount, e.TableAddress, e.TableLength)
}
