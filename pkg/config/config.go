// Package config holds the configuration of the smbios command
package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/threefoldtech/smbios/pkg/smbios"
	"gopkg.in/yaml.v2"
)

// Output formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config of the smbios command. Table and Entry take precedence over Root
// when set.
type Config struct {
	// Root is the root of the file system the kernel tables are read from
	Root string `yaml:"root"`
	// Table is a raw table dump
	Table string `yaml:"table"`
	// Entry is a raw entry point dump, only used with Table
	Entry string `yaml:"entry"`
	// Binary marks Table as a single file dump holding both the entry
	// point and the table, as written by dmidecode --dump-bin
	Binary bool `yaml:"binary"`
	// Version forces the SMBIOS version the table is decoded against
	Version string `yaml:"version"`
	// Format of the decode output
	Format string `yaml:"format"`
	// Broker is the redis address inventories are published to
	Broker string `yaml:"broker"`
	// Key is the redis key inventories are published under
	Key string `yaml:"key"`
}

// Default configuration
func Default() Config {
	return Config{
		Root:   "/",
		Format: FormatJSON,
		Broker: "127.0.0.1:6379",
		Key:    "smbios.inventory",
	}
}

// Load reads the configuration file at path on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to read config file '%s'", path)
	}

	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "failed to parse config file '%s'", path)
	}

	return cfg, cfg.Valid()
}

// Valid checks the configuration values
func (c *Config) Valid() error {
	switch c.Format {
	case FormatJSON, FormatYAML:
	default:
		return errors.Errorf("unknown output format '%s'", c.Format)
	}

	if len(c.Entry) != 0 && len(c.Table) == 0 {
		return errors.New("an entry point dump requires a table dump")
	}

	if c.Binary && len(c.Table) == 0 {
		return errors.New("a binary dump requires a table path")
	}

	if c.Binary && len(c.Entry) != 0 {
		return errors.New("a binary dump already holds the entry point")
	}

	if _, err := c.ForcedVersion(); err != nil {
		return err
	}

	return nil
}

// ForcedVersion parses Version, the zero version is returned if it is not
// set
func (c *Config) ForcedVersion() (smbios.Version, error) {
	if len(c.Version) == 0 {
		return smbios.Version{}, nil
	}

	return smbios.ParseVersion(c.Version)
}
