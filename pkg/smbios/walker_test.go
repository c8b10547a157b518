package smbios

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func biosRecord(f fields) {
	f.u8(0x04, 1)
	f.u8(0x05, 2)
	f.u16(0x06, 0xe800)
	f.u8(0x09, 0x3f)
	f.u64(0x0A, uint64(BIOSPCISupported|BIOSUpgradeable))
}

func TestDecodeMinimal(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, func(f fields) {
			f.u8(0x04, 1)
		}), "ACME").
		end().
		bytes()

	result := Decode(table, Version{})
	require.Len(t, result.Structures, 1)
	require.Empty(t, result.Diagnostics)

	system, ok := result.Structures[0].(*SystemInformation)
	require.True(t, ok)
	require.NotNil(t, system.Manufacturer)
	assert.Equal(t, "ACME", *system.Manufacturer)
	assert.Nil(t, system.ProductName)
	assert.Nil(t, system.UUID)
	assert.Equal(t, Header{Type: TypeSystem, Length: 0x08, Handle: 0x0001}, system.Record())
}

func TestDecodeBIOSScenario(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeBIOS, 0x0000, formatted(0x18, biosRecord), "Vendor", "Version").
		raw(TypeEndOfTable, 4, 0x0000, nil).
		bytes()

	for _, version := range []Version{{}, {2, 4}, {2, 8}} {
		t.Run(version.String(), func(t *testing.T) {
			result := Decode(table, version)
			require.Len(t, result.Structures, 1)
			require.Empty(t, result.Diagnostics)

			bios, ok := result.Structures[0].(*BIOSInformation)
			require.True(t, ok)
			require.NotNil(t, bios.Vendor)
			require.NotNil(t, bios.Version)
			assert.Equal(t, "Vendor", *bios.Vendor)
			assert.Equal(t, "Version", *bios.Version)
			assert.Nil(t, bios.ReleaseDate)
			require.NotNil(t, bios.Characteristics)
			assert.True(t, bios.Characteristics.Has(BIOSPCISupported))
			assert.False(t, bios.Characteristics.Has(BIOSPnPSupported))
			// 0x18 bytes stop right before the extended rom size
			assert.Nil(t, bios.ExtendedROMSize)
			assert.Nil(t, bios.Tail)

			size, ok := bios.ROMSizeBytes()
			require.True(t, ok)
			assert.EqualValues(t, 4<<20, size)
		})
	}
}

func TestDecodeBIOSOlderThanVersion(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeBIOS, 0x0000, formatted(0x18, biosRecord), "Vendor", "Version").
		end().
		bytes()

	result := Decode(table, Version{3, 1})
	require.Len(t, result.Structures, 1)
	require.Len(t, result.Diagnostics, 1)
	assert.ErrorIs(t, result.Diagnostics[0], ErrShortRecord)

	bios := result.Structures[0].(*BIOSInformation)
	require.NotNil(t, bios.Vendor)
	assert.Equal(t, "Vendor", *bios.Vendor)
	require.NotNil(t, bios.Characteristics)
	assert.Nil(t, bios.ExtendedROMSize)
}

func TestDecodeInvalidLength(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, nil)).
		raw(TypeBaseboard, 2, 0x0002, nil).
		add(TypeChassis, 0x0003, formatted(0x09, nil)).
		end().
		bytes()

	result := Decode(table, Version{})
	require.Len(t, result.Structures, 1)
	assert.IsType(t, &SystemInformation{}, result.Structures[0])

	require.Len(t, result.Diagnostics, 1)
	diag := result.Diagnostics[0]
	assert.True(t, errors.Is(diag, ErrInvalidLength))
	assert.Equal(t, 0x08+2, diag.Offset)
	assert.Equal(t, TypeBaseboard, diag.Type)
	assert.EqualValues(t, 0x0002, diag.Handle)
}

func TestDecodeStringIndexOutOfRange(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, func(f fields) {
			f.u8(0x04, 1)
			f.u8(0x05, 2)
		}), "only").
		add(TypeBaseboard, 0x0002, formatted(0x08, func(f fields) {
			f.u8(0x04, 1)
		}), "board").
		end().
		bytes()

	result := Decode(table, Version{})
	require.Len(t, result.Structures, 2)

	system := result.Structures[0].(*SystemInformation)
	require.NotNil(t, system.Manufacturer)
	assert.Equal(t, "only", *system.Manufacturer)
	assert.Nil(t, system.ProductName)

	board := result.Structures[1].(*BaseboardInformation)
	require.NotNil(t, board.Manufacturer)
	assert.Equal(t, "board", *board.Manufacturer)

	require.Len(t, result.Diagnostics, 1)
	assert.True(t, errors.Is(result.Diagnostics[0], ErrStringIndex))
	assert.EqualValues(t, 0x0001, result.Diagnostics[0].Handle)
}

func TestDecodeUnterminatedStringTable(t *testing.T) {
	full := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, nil), "one").
		add(TypeBaseboard, 0x0002, formatted(0x08, nil), "two", "three").
		bytes()

	// cut right in the middle of "three"
	table := full[:len(full)-4]

	result := Decode(table, Version{})
	require.Len(t, result.Structures, 1)
	assert.IsType(t, &SystemInformation{}, result.Structures[0])

	require.Len(t, result.Diagnostics, 1)
	assert.True(t, errors.Is(result.Diagnostics[0], ErrUnterminatedStringTable))
	assert.Equal(t, TypeBaseboard, result.Diagnostics[0].Type)
}

func TestDecodeUnknownRoundTrip(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}
	table := (&tableBuilder{}).
		add(Type(0xC0), 0x0042, data, "oem", "strings").
		add(TypeInactive, 0x0043, []byte{0x01}).
		end().
		bytes()

	result := Decode(table, Version{3, 4})
	require.Empty(t, result.Diagnostics)
	require.Len(t, result.Structures, 2)

	oem, ok := result.Structures[0].(*Unknown)
	require.True(t, ok)
	assert.Equal(t, Header{Type: 0xC0, Length: 10, Handle: 0x0042}, oem.Header)
	assert.Equal(t, data, oem.Data)
	assert.Equal(t, []string{"oem", "strings"}, oem.Strings)
	assert.False(t, oem.Truncated)

	inactive, ok := result.Structures[1].(*Unknown)
	require.True(t, ok)
	assert.Equal(t, TypeInactive, inactive.Type)
	assert.Equal(t, []byte{0x01}, inactive.Data)
	assert.Nil(t, inactive.Strings)

	// the decoded data must not alias the input
	table[headerLen] = 0x00
	assert.Equal(t, byte(0xde), oem.Data[0])
}

func TestDecodeIdempotent(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeBIOS, 0x0000, formatted(0x1A, biosRecord), "Vendor").
		add(TypeSystem, 0x0001, formatted(0x1B, func(f fields) {
			f.u8(0x04, 3)
		}), "a").
		add(Type(0x88), 0x0002, []byte{1, 2, 3}).
		raw(TypeCache, 0x40, 0x0003, nil).
		bytes()

	first := Decode(table, Version{3, 2})
	second := Decode(table, Version{3, 2})
	require.NotEmpty(t, first.Diagnostics)
	assert.Equal(t, first, second)
}

func TestDecodeLengthOverrun(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, nil)).
		bytes()
	table = append(table, byte(TypeBaseboard), 0x20, 0x02, 0x00, 0xaa, 0xbb)

	result := Decode(table, Version{})
	require.Len(t, result.Structures, 2)

	truncated, ok := result.Structures[1].(*Unknown)
	require.True(t, ok)
	assert.True(t, truncated.Truncated)
	assert.Equal(t, []byte{0xaa, 0xbb}, truncated.Data)

	require.Len(t, result.Diagnostics, 1)
	assert.True(t, errors.Is(result.Diagnostics[0], ErrOutOfBounds))
}

func TestDecodeTruncatedHeader(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, nil)).
		bytes()
	table = append(table, byte(TypeBaseboard), 0x08)

	result := Decode(table, Version{})
	require.Len(t, result.Structures, 1)
	require.Len(t, result.Diagnostics, 1)
	assert.True(t, errors.Is(result.Diagnostics[0], ErrTruncatedHeader))
}

func TestDecodeWithoutEndOfTable(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, nil)).
		add(TypeBaseboard, 0x0002, formatted(0x08, nil)).
		bytes()

	result := Decode(table, Version{})
	assert.Len(t, result.Structures, 2)
	assert.Empty(t, result.Diagnostics)

	empty := Decode(nil, Version{})
	assert.Empty(t, empty.Structures)
	assert.Empty(t, empty.Diagnostics)
}

func TestDecodeStopsAtEndOfTable(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, nil)).
		end().
		add(TypeBaseboard, 0x0002, formatted(0x08, nil)).
		bytes()

	result := Decode(table, Version{})
	require.Len(t, result.Structures, 1)
	assert.Empty(t, result.Diagnostics)
}

func TestWalkStopsEarly(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x08, nil)).
		add(TypeBaseboard, 0x0002, formatted(0x08, func(f fields) {
			f.u8(0x04, 9)
		})).
		end().
		bytes()

	var seen []Header
	diags := Walk(table, Version{}, func(s Structure) bool {
		seen = append(seen, s.Record())
		return false
	})

	require.Len(t, seen, 1)
	assert.Equal(t, TypeSystem, seen[0].Type)
	// the bad string reference of the second record is never reached
	assert.Empty(t, diags)
}

func TestResultLookups(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeMemoryDevice, 0x0011, formatted(0x15, nil)).
		add(TypeMemoryDevice, 0x0012, formatted(0x15, nil)).
		add(TypeSystem, 0x0001, formatted(0x08, nil)).
		end().
		bytes()

	result := Decode(table, Version{})
	devices := result.ByType(TypeMemoryDevice)
	require.Len(t, devices, 2)
	assert.EqualValues(t, 0x0012, devices[1].Record().Handle)

	s, ok := result.Handle(0x0001)
	require.True(t, ok)
	assert.IsType(t, &SystemInformation{}, s)

	_, ok = result.Handle(0x0099)
	assert.False(t, ok)
}

func TestShortRecordDiagnostic(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeSystem, 0x0001, formatted(0x19, func(f fields) {
			f.u8(0x18, 0x06)
		})).
		end().
		bytes()

	// 0x19 bytes is a complete 2.1 system structure
	result := Decode(table, Version{2, 1})
	require.Empty(t, result.Diagnostics)

	// but not a 2.4 one
	result = Decode(table, Version{2, 4})
	require.Len(t, result.Structures, 1)
	require.Len(t, result.Diagnostics, 1)
	assert.True(t, errors.Is(result.Diagnostics[0], ErrShortRecord))

	system := result.Structures[0].(*SystemInformation)
	require.NotNil(t, system.WakeUpType)
	assert.Equal(t, "Power Switch", system.WakeUpType.String())
	assert.Nil(t, system.SKUNumber)
}

func TestTailPreserved(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeBIOS, 0x0000, append(formatted(0x1A, biosRecord), 0x11, 0x22, 0x33)).
		end().
		bytes()

	result := Decode(table, Version{3, 4})
	require.Empty(t, result.Diagnostics)

	bios := result.Structures[0].(*BIOSInformation)
	assert.Equal(t, []byte{0x11, 0x22, 0x33}, bios.Tail)
	require.NotNil(t, bios.ExtendedROMSize)
}

func TestDiagnosticJSON(t *testing.T) {
	d := Diagnostic{
		Offset: 0x10,
		Type:   TypeBaseboard,
		Handle: 2,
		Err:    errors.WithMessage(ErrInvalidLength, "length 2"),
	}

	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"offset":16,"type":2,"handle":2,"message":"length 2: invalid structure length"}`, string(data))
	assert.Contains(t, d.Error(), "structure at 0x0010")
}

func TestDiagnosticWithoutError(t *testing.T) {
	d := Diagnostic{Offset: 4, Type: TypeSystem, Handle: 1}

	data, err := d.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"offset":4,"type":1,"handle":1,"message":""}`, string(data))
}

func TestResultYAML(t *testing.T) {
	table := (&tableBuilder{}).
		add(TypeBIOS, 0x0000, formatted(0x18, biosRecord), "Vendor", "Version").
		raw(TypeBaseboard, 2, 0x0002, nil).
		bytes()

	result := Decode(table, Version{2, 8})
	require.Len(t, result.Diagnostics, 1)

	data, err := yaml.Marshal(result)
	require.NoError(t, err)

	var decoded struct {
		Structures  []map[string]interface{} `yaml:"structures"`
		Diagnostics []struct {
			Offset  int    `yaml:"offset"`
			Type    int    `yaml:"type"`
			Handle  int    `yaml:"handle"`
			Message string `yaml:"message"`
		} `yaml:"diagnostics"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))

	require.Len(t, decoded.Structures, 1)
	bios := decoded.Structures[0]
	assert.Equal(t, "Vendor", bios["vendor"])
	assert.Equal(t, 0xe800, bios["starting_segment"])
	assert.Equal(t, 0x18, bios["length"])
	assert.NotContains(t, bios, "header")

	require.Len(t, decoded.Diagnostics, 1)
	assert.Equal(t, 2, decoded.Diagnostics[0].Type)
	assert.Equal(t, 2, decoded.Diagnostics[0].Handle)
	assert.Contains(t, decoded.Diagnostics[0].Message, ErrInvalidLength.Error())
}
