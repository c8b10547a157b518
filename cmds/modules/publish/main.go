package publish

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/threefoldtech/smbios/pkg/app"
	"github.com/threefoldtech/smbios/pkg/dmi"
	"github.com/threefoldtech/smbios/pkg/publish"
	"github.com/urfave/cli/v2"
)

// Module is entry point for module
var Module cli.Command = cli.Command{
	Name:  "publish",
	Usage: "decodes the smbios table and stores the inventory in redis",
	Flags: append(app.SourceFlags(),
		&cli.StringFlag{
			Name:  app.BrokerFlag,
			Usage: "connection string to the redis `BROKER`",
		},
		&cli.StringFlag{
			Name:  app.KeyFlag,
			Usage: "redis `KEY` the inventory is stored under",
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

	store := publish.NewRedisStore(cfg.Broker)
	defer store.Close()

	ctx, cancel := app.WithSignal(context.Background())
	defer cancel()

	log.Info().Str("broker", cfg.Broker).Str("key", cfg.Key).Msg("publishing inventory")
	return publish.NewPublisher(store, cfg.Key).Publish(ctx, dmi.FromResult(result))
}
