// Package firmware loads the SMBIOS structure table and its entry point
// from the files the kernel exports, or from dumps of those files.
package firmware

import (
	"io/fs"
	"os"
	"path"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/smbios/pkg/smbios"
	"github.com/threefoldtech/smbios/pkg/smbios/entrypoint"
)

const (
	// TablesDir is where the kernel exports the tables, relative to the
	// root of the file system
	TablesDir = "sys/firmware/dmi/tables"

	entryPointFile = "smbios_entry_point"
	tableFile      = "DMI"
)

// ErrNoTable is returned when a dump holds no structure table
var ErrNoTable = errors.New("no smbios table found")

// Table is a raw structure table ready to be decoded
type Table struct {
	Data []byte
	// Version announced by the entry point, or forced by the caller. It
	// is zero if not known.
	Version smbios.Version
	// EntryPoint is nil if the entry point was not available
	EntryPoint *entrypoint.EntryPoint
}

// Decode decodes the table
func (t *Table) Decode() *smbios.Result {
	return smbios.Decode(t.Data, t.Version)
}

// Read loads the table from fsys, usually os.DirFS("/"). A missing or broken
// entry point is not fatal, the table is then decoded without a version.
func Read(fsys fs.FS) (*Table, error) {
	data, err := fs.ReadFile(fsys, path.Join(TablesDir, tableFile))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read smbios table")
	}

	entry, err := fs.ReadFile(fsys, path.Join(TablesDir, entryPointFile))
	if err != nil {
		log.Warn().Err(err).Msg("smbios entry point is not available")
		entry = nil
	}

	return load(data, entry), nil
}

// ReadDump loads a table from a raw table file and optionally a raw entry
// point file, entryPath can be empty.
func ReadDump(tablePath, entryPath string) (*Table, error) {
	data, err := os.ReadFile(tablePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read smbios table '%s'", tablePath)
	}

	var entry []byte
	if len(entryPath) != 0 {
		entry, err = os.ReadFile(entryPath)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read smbios entry point '%s'", entryPath)
		}
	}

	return load(data, entry), nil
}

// ReadBinary loads a single file dump as written by dmidecode --dump-bin:
// the entry point comes first and its table address is the offset of the
// table in the file.
func ReadBinary(name string) (*Table, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read smbios dump '%s'", name)
	}

	return FromBinary(data)
}

// FromBinary is ReadBinary over dump content
func FromBinary(data []byte) (*Table, error) {
	ep, err := entrypoint.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "invalid dump entry point")
	}

	start := ep.TableAddress
	end := start + uint64(ep.TableLength)
	if start >= uint64(len(data)) {
		return nil, errors.WithMessagef(ErrNoTable, "table offset 0x%X is past the end of the dump", start)
	}
	if end > uint64(len(data)) {
		end = uint64(len(data))
	}

	return &Table{
		Data:       data[start:end],
		Version:    ep.Version(),
		EntryPoint: ep,
	}, nil
}

func load(data, entry []byte) *Table {
	table := &Table{Data: data}
	if entry == nil {
		return table
	}

	ep, err := entrypoint.Parse(entry)
	if err != nil {
		log.Warn().Err(err).Msg("ignoring invalid smbios entry point")
		return table
	}

	table.EntryPoint = ep
	table.Version = ep.Version()

	// the 32 bits entry point knows the exact table size
	if ep.Kind == entrypoint.Kind32 && int(ep.TableLength) < len(data) {
		log.Debug().
			Int("size", len(data)).
			Uint32("length", ep.TableLength).
			Msg("trimming smbios table to entry point length")
		table.Data = data[:ep.TableLength]
	}

	return table
}
