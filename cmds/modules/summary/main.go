package summary

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/smbios/pkg/app"
	"github.com/urfave/cli/v2"
)

// Module is entry point for module
var Module cli.Command = cli.Command{
	Name:   "summary",
	Usage:  "prints a short overview of the system hardware",
	Flags:  app.SourceFlags(),
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
	if len(result.Diagnostics) != 0 {
		log.Debug().Int("count", len(result.Diagnostics)).Msg("smbios table has problems, run decode for details")
	}

	return Summarize(result).Print(os.Stdout)
}
