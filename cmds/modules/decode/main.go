package decode

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/smbios/pkg/app"
	"github.com/threefoldtech/smbios/pkg/config"
	"github.com/threefoldtech/smbios/pkg/dmi"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"
)

// Module is entry point for module
var Module cli.Command = cli.Command{
	Name:  "decode",
	Usage: "decodes the smbios table and prints the inventory",
	Flags: append(app.SourceFlags(),
		&cli.StringFlag{
			Name:  app.FormatFlag,
			Usage: "output `FORMAT`, json or yaml",
		},
		&cli.BoolFlag{
			Name:  "raw",
			Usage: "print the decoded structures instead of the inventory",
		},
	),
	Action: action,
}

func action(c *cli.Context) error {
	cfg, err := app.Config(c)
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	table, err := app.Table(cfg)
	if err != nil {
		return err
	}

	result := table.Decode()
	for _, diag := range result.Diagnostics {
		log.Warn().Err(diag).Msg("smbios table problem")
	}

	var out any = dmi.FromResult(result)
	if c.Bool("raw") {
		out = result
	}

	return write(os.Stdout, cfg.Format, out)
}

func write(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "failed to encode output")
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(v), "failed to encode output")
	}
}
