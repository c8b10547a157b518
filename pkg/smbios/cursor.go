package smbios

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// cursor is a bounds checked little endian reader over a borrowed buffer.
// it never reads past the end of buf, all violations are returned as
// ErrOutOfBounds.
type cursor struct {
	buf []byte
}

func (c cursor) len() int {
	return len(c.buf)
}

func (c cursor) check(offset, size int) error {
	if offset < 0 || size < 0 || offset > len(c.buf) || size > len(c.buf)-offset {
		return errors.WithMessagef(ErrOutOfBounds, "%d bytes at offset 0x%X (buffer is %d bytes)", size, offset, len(c.buf))
	}

	return nil
}

// slice returns a view of size bytes at offset. The view shares memory with
// the buffer and must be copied before it outlives the decode pass.
func (c cursor) slice(offset, size int) ([]byte, error) {
	if err := c.check(offset, size); err != nil {
		return nil, err
	}

	return c.buf[offset : offset+size : offset+size], nil
}

func (c cursor) u8(offset int) (uint8, error) {
	if err := c.check(offset, 1); err != nil {
		return 0, err
	}

	return c.buf[offset], nil
}

func (c cursor) u16(offset int) (uint16, error) {
	b, err := c.slice(offset, 2)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint16(b), nil
}

func (c cursor) u32(offset int) (uint32, error) {
	b, err := c.slice(offset, 4)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint32(b), nil
}

func (c cursor) u64(offset int) (uint64, error) {
	b, err := c.slice(offset, 8)
	if err != nil {
		return 0, err
	}

	return binary.LittleEndian.Uint64(b), nil
}
