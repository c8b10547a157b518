package smbios

import (
	"bytes"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Result of decoding a structure table
type Result struct {
	// Version the table was decoded against
	Version Version `json:"version" yaml:"version"`
	// Structures in table order. The end of table structure is not part
	// of the list.
	Structures []Structure `json:"structures" yaml:"structures"`
	// Diagnostics collects everything that went wrong while decoding.
	// Problems never discard structures decoded before them.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// Decode decodes all the structures of table. version is the SMBIOS version
// reported by the entry point, it can be left empty if it is not known.
//
// Decode never fails: malformed input stops the walk and is reported as a
// diagnostic. The returned result does not reference table.
//
// ErrShortRecord diagnostics are advisory: the structure is older than the
// layout of the declared version, it is still fully decoded and the table
// is not malformed.
func Decode(table []byte, version Version) *Result {
	result := Result{Version: version}
	result.Diagnostics = Walk(table, version, func(s Structure) bool {
		result.Structures = append(result.Structures, s)
		return true
	})

	return &result
}

// Walk decodes the structures of table one by one in table order, calling
// fn for each. The walk stops early if fn returns false. Walk returns the
// diagnostics gathered up to the point it stopped.
func Walk(table []byte, version Version, fn func(Structure) bool) []Diagnostic {
	w := walker{
		c:       cursor{buf: table},
		version: version,
	}

	for !w.done {
		s := w.next()
		if s == nil {
			continue
		}
		if !fn(s) {
			break
		}
	}

	return w.diags
}

type walker struct {
	c       cursor
	version Version
	offset  int
	done    bool
	diags   []Diagnostic
}

// stop ends the walk, recording err if it is not nil
func (w *walker) stop(h Header, err error) {
	w.done = true
	if err == nil {
		return
	}

	d := Diagnostic{Offset: w.offset, Type: h.Type, Handle: h.Handle, Err: err}
	log.Debug().Err(d).Msg("smbios table walk stopped")
	w.diags = append(w.diags, d)
}

// next decodes the structure at the current offset and moves past it. It
// returns nil when there is nothing to return, in which case w.done may
// have been set.
func (w *walker) next() Structure {
	if w.offset >= w.c.len() {
		w.stop(Header{}, nil)
		return nil
	}

	h, err := parseHeader(w.c, w.offset)
	if err != nil {
		w.stop(h, err)
		return nil
	}

	if h.Type == TypeEndOfTable {
		w.stop(h, nil)
		return nil
	}

	data, err := w.c.slice(w.offset, int(h.Length))
	if err != nil {
		// keep what is there so the structure is not lost altogether
		left, _ := w.c.slice(w.offset+headerLen, w.c.len()-w.offset-headerLen)
		truncated := &Unknown{
			Header:    h,
			Data:      bytes.Clone(left),
			Truncated: true,
		}
		w.stop(h, errors.WithMessagef(err, "structure length %d exceeds the table", h.Length))
		return truncated
	}

	table, next, err := parseStrings(w.c, w.offset+int(h.Length))
	if err != nil {
		w.stop(h, err)
		return nil
	}

	r := record{
		Header:  h,
		offset:  w.offset,
		data:    cursor{buf: data},
		strings: table,
		version: w.version,
		diags:   &w.diags,
	}

	s := decode(&r)
	w.offset = next

	return s
}

// ByType returns all structures of type t in table order
func (r *Result) ByType(t Type) []Structure {
	var found []Structure
	for _, s := range r.Structures {
		if s.Record().Type == t {
			found = append(found, s)
		}
	}

	return found
}

// Handle finds the structure with the given handle. Handles referenced by
// structures can point anywhere in the table, or nowhere at all.
func (r *Result) Handle(handle uint16) (Structure, bool) {
	for _, s := range r.Structures {
		if s.Record().Handle == handle {
			return s, true
		}
	}

	return nil, false
}
