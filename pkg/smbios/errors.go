package smbios

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrOutOfBounds is returned when a read would go past the end of the buffer
	ErrOutOfBounds = errors.New("read out of bounds")
	// ErrTruncatedHeader is returned when less than a full structure header is left
	ErrTruncatedHeader = errors.New("truncated structure header")
	// ErrInvalidLength is returned when a structure declares a length smaller
	// than the structure header itself
	ErrInvalidLength = errors.New("invalid structure length")
	// ErrUnterminatedStringTable is returned when the buffer ends before the
	// double null terminating a string table
	ErrUnterminatedStringTable = errors.New("unterminated string table")
	// ErrStringIndex is reported when a field references a string that does
	// not exist in the structure string table
	ErrStringIndex = errors.New("string index out of range")
	// ErrShortRecord is reported when a structure is shorter than the layout
	// mandated by the declared SMBIOS version
	ErrShortRecord = errors.New("structure shorter than version layout")
)

// Diagnostic is a non fatal problem found while walking the table
type Diagnostic struct {
	// Offset of the structure in the table
	Offset int
	Type   Type
	Handle uint16
	Err    error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("structure at 0x%04X (type %d, handle 0x%04X): %s", d.Offset, d.Type, d.Handle, d.Err)
}

// Unwrap makes sure errors.Is works against the sentinel errors
func (d Diagnostic) Unwrap() error {
	return d.Err
}

// diagnosticReport is the encoded form of a Diagnostic
type diagnosticReport struct {
	Offset  int    `json:"offset" yaml:"offset"`
	Type    Type   `json:"type" yaml:"type"`
	Handle  uint16 `json:"handle" yaml:"handle"`
	Message string `json:"message" yaml:"message"`
}

func (d Diagnostic) report() diagnosticReport {
	r := diagnosticReport{
		Offset: d.Offset,
		Type:   d.Type,
		Handle: d.Handle,
	}
	if d.Err != nil {
		r.Message = d.Err.Error()
	}

	return r
}

// MarshalJSON implements json.Marshaler
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.report())
}

// MarshalYAML implements yaml.Marshaler
func (d Diagnostic) MarshalYAML() (interface{}, error) {
	return d.report(), nil
}
