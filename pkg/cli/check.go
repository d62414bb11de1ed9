package cli

import (
	"context"

	"github.com/mcpublish/mcpublish/pkg/cli/config"
	"github.com/mcpublish/mcpublish/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdCheck() *cli.Command {
	var (
		publishCfg config.Publish
		keysCfg    config.Keys
	)

	flags := append(publishCfg.Flags(), keysCfg.Flags()...)

	return &cli.Command{
		Name:  "check",
		Usage: "Validate configuration and artifacts without uploading",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := publishCfg.Load(&keysCfg)
			if err != nil {
				return err
			}
			platforms, err := publishCfg.SelectedPlatforms()
			if err != nil {
				return err
			}

			return usecase.Check(ctx, cfg, platforms)
		},
	}
}
