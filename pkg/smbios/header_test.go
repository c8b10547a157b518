package smbios

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	c := cursor{buf: []byte{0xff, 0x11, 0x04, 0x00, 0x11, 0x05, 0x34, 0x12}}

	h, err := parseHeader(c, 4)
	require.NoError(t, err)
	assert.Equal(t, Header{Type: TypeMemoryDevice, Length: 5, Handle: 0x1234}, h)

	_, err = parseHeader(c, 5)
	assert.True(t, errors.Is(err, ErrTruncatedHeader))

	_, err = parseHeader(c, 8)
	assert.True(t, errors.Is(err, ErrTruncatedHeader))

	for _, length := range []byte{0, 1, 2, 3} {
		bad := cursor{buf: []byte{0x02, length, 0x02, 0x00}}
		h, err := parseHeader(bad, 0)
		assert.True(t, errors.Is(err, ErrInvalidLength))
		assert.Equal(t, TypeBaseboard, h.Type)
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Memory Device", TypeMemoryDevice.String())
	assert.Equal(t, "End Of Table", TypeEndOfTable.String())
	assert.Equal(t, "OEM-specific Type 200", Type(200).String())
	assert.Equal(t, "Unknown Type 100", Type(100).String())
}
