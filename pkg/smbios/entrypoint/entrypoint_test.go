package entrypoint

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threefoldtech/smbios/pkg/smbios"
)

// seal fixes the checksum byte at offset so data[:length] sums to 0
func seal(data []byte, offset, length int) {
	data[offset] = 0
	var sum uint8
	for _, b := range data[:length] {
		sum += b
	}
	data[offset] = -sum
}

func entry32(major, minor uint8) []byte {
	data := make([]byte, length32)
	copy(data, Kind32)
	data[5] = length32
	data[6] = major
	data[7] = minor
	binary.LittleEndian.PutUint16(data[0x08:], 0x00b8)
	copy(data[dmiOffset:], dmiAnchor)
	binary.LittleEndian.PutUint16(data[0x16:], 0x0c6e)
	binary.LittleEndian.PutUint32(data[0x18:], 0x000f0000)
	binary.LittleEndian.PutUint16(data[0x1C:], 67)
	data[0x1E] = 0x27

	seal(data[dmiOffset:], 0x15-dmiOffset, dmiLength)
	seal(data, 4, len(data))

	return data
}

func entry64() []byte {
	data := make([]byte, length64)
	copy(data, Kind64)
	data[6] = length64
	data[7] = 3
	data[8] = 4
	data[9] = 0
	data[0x0A] = 1
	binary.LittleEndian.PutUint32(data[0x0C:], 0x1a2b)
	binary.LittleEndian.PutUint64(data[0x10:], 0x7a8c1000)
	seal(data, 5, len(data))

	return data
}

func TestParse32(t *testing.T) {
	ep, err := Parse(entry32(2, 7))
	require.NoError(t, err)

	assert.Equal(t, Kind32, ep.Kind)
	assert.Equal(t, smbios.Version{Major: 2, Minor: 7}, ep.Version())
	assert.EqualValues(t, 0x00b8, ep.MaxStructureSize)
	assert.EqualValues(t, 0x0c6e, ep.TableLength)
	assert.EqualValues(t, 0x000f0000, ep.TableAddress)
	assert.EqualValues(t, 67, ep.StructureCount)
	assert.EqualValues(t, 0x27, ep.BCDRevision)
}

func TestParse32VersionQuirks(t *testing.T) {
	ep, err := Parse(entry32(2, 33))
	require.NoError(t, err)
	assert.Equal(t, smbios.Version{Major: 2, Minor: 3}, ep.Version())

	ep, err = Parse(entry32(2, 51))
	require.NoError(t, err)
	assert.Equal(t, smbios.Version{Major: 2, Minor: 6}, ep.Version())
}

func TestParse64(t *testing.T) {
	ep, err := Parse(entry64())
	require.NoError(t, err)

	assert.Equal(t, Kind64, ep.Kind)
	assert.Equal(t, smbios.Version{Major: 3, Minor: 4}, ep.Version())
	assert.EqualValues(t, 0x1a2b, ep.TableLength)
	assert.EqualValues(t, 0x7a8c1000, ep.TableAddress)
	assert.Contains(t, ep.String(), "SMBIOS 3.4.0")
}

func TestParseChecksum(t *testing.T) {
	data := entry64()
	data[0x0C]++

	_, err := Parse(data)
	assert.True(t, errors.Is(err, ErrChecksum))

	data = entry32(2, 8)
	// breaks both checksums, the outer one is verified first
	data[0x16]++
	_, err = Parse(data)
	assert.True(t, errors.Is(err, ErrChecksum))

	// fix the outer checksum only
	data = entry32(2, 8)
	data[0x16]++
	seal(data, 4, len(data))
	_, err = Parse(data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrChecksum))
	assert.Contains(t, err.Error(), "intermediate")
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte("_XX_ not an entry point"))
	assert.True(t, errors.Is(err, ErrUnknownAnchor))

	_, err = Parse(nil)
	assert.True(t, errors.Is(err, ErrUnknownAnchor))

	_, err = Parse(entry64()[:0x10])
	assert.True(t, errors.Is(err, ErrTooShort))

	_, err = Parse(entry32(2, 8)[:0x10])
	assert.True(t, errors.Is(err, ErrTooShort))

	data := entry32(2, 8)
	copy(data[dmiOffset:], "_XXX_")
	seal(data, 4, len(data))
	_, err = Parse(data)
	assert.True(t, errors.Is(err, ErrUnknownAnchor))
}
