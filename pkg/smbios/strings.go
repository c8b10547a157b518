package smbios

import (
	"bytes"
	"strings"

	"github.com/pkg/errors"
)

// replacement is used in place of byte sequences that are not valid utf-8
const replacement = "�"

// parseStrings extracts the string table starting at offset. It returns the
// strings in order and the offset right after the terminating double null.
func parseStrings(c cursor, offset int) ([]string, int, error) {
	rest, err := c.slice(offset, c.len()-offset)
	if err != nil {
		return nil, offset, errors.WithMessage(ErrUnterminatedStringTable, err.Error())
	}

	if len(rest) >= 2 && rest[0] == 0 && rest[1] == 0 {
		return nil, offset + 2, nil
	}

	var (
		table []string
		pos   int
	)

	for pos < len(rest) {
		n := bytes.IndexByte(rest[pos:], 0)
		if n < 0 {
			break
		}

		table = append(table, strings.ToValidUTF8(string(rest[pos:pos+n]), replacement))
		pos += n + 1

		if pos < len(rest) && rest[pos] == 0 {
			return table, offset + pos + 1, nil
		}
	}

	return nil, offset, errors.WithMessagef(ErrUnterminatedStringTable, "no double null in %d bytes after offset 0x%X", len(rest), offset)
}
