package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/smbios/cmds/modules/decode"
	"github.com/threefoldtech/smbios/cmds/modules/publish"
	"github.com/threefoldtech/smbios/cmds/modules/summary"
	"github.com/threefoldtech/smbios/pkg/app"
	"github.com/threefoldtech/smbios/pkg/version"
	"github.com/urfave/cli/v2"
)

func main() {
	exe := cli.App{
		Name:    "smbios",
		Usage:   "decodes the SMBIOS structure table of the system firmware",
		Version: version.Current().String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    app.ConfigFlag,
				Usage:   "load configuration from `FILE`",
				EnvVars: []string{"SMBIOS_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  app.DebugFlag,
				Usage: "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			app.Initialize(c.Bool(app.DebugFlag))
			return nil
		},
		Commands: []*cli.Command{
			&decode.Module,
			&summary.Module,
			&publish.Module,
		},
	}

	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Println(c.App.Version)
	}

	if err := exe.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("exiting")
	}
}
