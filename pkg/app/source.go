package app

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/smbios/pkg/config"
	"github.com/threefoldtech/smbios/pkg/firmware"
	"github.com/urfave/cli/v2"
)

// Flag names shared between the commands and the configuration
const (
	ConfigFlag  = "config"
	DebugFlag   = "debug"
	RootFlag    = "root"
	TableFlag   = "table"
	EntryFlag   = "entry"
	BinaryFlag  = "bin"
	VersionFlag = "smbios-version"
	FormatFlag  = "format"
	BrokerFlag  = "broker"
	KeyFlag     = "key"
)

// lookup returns the value of a flag and whether it was set by the user
type lookup func(name string) (string, bool)

// SourceFlags are the flags selecting the table to decode
func SourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  RootFlag,
			Usage: "read the kernel exported tables under `DIR`",
		},
		&cli.StringFlag{
			Name:  TableFlag,
			Usage: "read the structure table from a raw dump `FILE`",
		},
		&cli.StringFlag{
			Name:  EntryFlag,
			Usage: "read the entry point from a raw dump `FILE`, requires --table",
		},
		&cli.BoolFlag{
			Name:  BinaryFlag,
			Usage: "the --table file is a dmidecode --dump-bin file",
		},
		&cli.StringFlag{
			Name:  VersionFlag,
			Usage: "decode against smbios `VERSION` instead of the one announced by the entry point",
		},
	}
}

// Config loads the configuration file given with --config, if any, then
// applies the flags set on the command line on top of it
func Config(c *cli.Context) (config.Config, error) {
	return load(c.String(ConfigFlag), func(name string) (string, bool) {
		if !c.IsSet(name) {
			return "", false
		}
		if name == BinaryFlag {
			if c.Bool(name) {
				return "true", true
			}
			return "false", true
		}
		return c.String(name), true
	})
}

func load(path string, flag lookup) (config.Config, error) {
	cfg := config.Default()
	if len(path) != 0 {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	for name, field := range map[string]*string{
		RootFlag:    &cfg.Root,
		TableFlag:   &cfg.Table,
		EntryFlag:   &cfg.Entry,
		VersionFlag: &cfg.Version,
		FormatFlag:  &cfg.Format,
		BrokerFlag:  &cfg.Broker,
		KeyFlag:     &cfg.Key,
	} {
		if value, ok := flag(name); ok {
			*field = value
		}
	}

	if value, ok := flag(BinaryFlag); ok {
		cfg.Binary = value == "true"
	}

	return cfg, cfg.Valid()
}

// Table reads the table selected by cfg. A version forced by the
// configuration replaces the one of the entry point.
func Table(cfg config.Config) (*firmware.Table, error) {
	var (
		table *firmware.Table
		err   error
	)

	switch {
	case cfg.Binary:
		table, err = firmware.ReadBinary(cfg.Table)
	case len(cfg.Table) != 0:
		table, err = firmware.ReadDump(cfg.Table, cfg.Entry)
	default:
		table, err = firmware.Read(os.DirFS(cfg.Root))
	}

	if err != nil {
		return nil, err
	}

	forced, err := cfg.ForcedVersion()
	if err != nil {
		return nil, err
	}

	if !forced.IsZero() {
		log.Debug().
			Stringer("announced", table.Version).
			Stringer("forced", forced).
			Msg("overriding smbios version")
		table.Version = forced
	}

	return table, nil
}
