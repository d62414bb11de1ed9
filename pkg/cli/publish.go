package cli

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/ctxlog"
	"github.com/mcpublish/mcpublish/pkg/cli/config"
	"github.com/mcpublish/mcpublish/pkg/infra/curseforge"
	"github.com/mcpublish/mcpublish/pkg/infra/github"
	"github.com/mcpublish/mcpublish/pkg/infra/modrinth"
	"github.com/mcpublish/mcpublish/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdPublish() *cli.Command {
	var (
		publishCfg config.Publish
		keysCfg    config.Keys
	)

	flags := append(publishCfg.Flags(), keysCfg.Flags()...)

	return &cli.Command{
		Name:    "publish",
		Aliases: []string{"p"},
		Usage:   "Upload the configured artifacts to the enabled platforms",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			cfg, err := publishCfg.Load(&keysCfg)
			if err != nil {
				return err
			}
			platforms, err := publishCfg.SelectedPlatforms()
			if err != nil {
				return err
			}

			logger.Info("Starting publish",
				slog.String("config", publishCfg.ConfigPath),
				slog.String("version", cfg.Version),
				slog.Bool("debug", cfg.Debug),
			)

			githubClient, err := github.NewClient(cfg.Keys.GitHub)
			if err != nil {
				return err
			}
			curseClient := curseforge.NewClient(cfg.Keys.CurseForge)
			modrinthClient := modrinth.NewClient(cfg.Keys.Modrinth,
				modrinth.WithStaging(cfg.ModrinthStaging))

			publisher := usecase.NewPublisher(githubClient, curseClient, modrinthClient)
			return publisher.Publish(ctx, cfg, platforms)
		},
	}
}
