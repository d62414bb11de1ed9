package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/interfaces"
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

// Publisher runs the platform upload tasks. Tasks are independent and
// mutually unaware; they only share the read-only configuration
// snapshot.
type Publisher struct {
	github     interfaces.GitHubClient
	curseforge interfaces.CurseForgeClient
	modrinth   interfaces.ModrinthClient
}

// NewPublisher creates a Publisher backed by the given platform clients
func NewPublisher(github interfaces.GitHubClient, curseforge interfaces.CurseForgeClient, modrinth interfaces.ModrinthClient) *Publisher {
	return &Publisher{
		github:     github,
		curseforge: curseforge,
		modrinth:   modrinth,
	}
}

// Publish runs the upload task for each requested platform in order,
// sequentially. Platforms without credentials are skipped silently,
// configuration errors are logged and skip the platform, and any other
// failure aborts the run immediately.
func (p *Publisher) Publish(ctx context.Context, cfg *model.Config, platforms []model.Platform) error {
	logger := ctxlog.From(ctx)

	if len(platforms) == 0 {
		platforms = model.AllPlatforms
	}

	for _, platform := range platforms {
		if !cfg.Enabled(platform) {
			logger.Info("Platform is not configured, skipping", "platform", platform)
			continue
		}

		var err error
		switch platform {
		case model.PlatformCurseForge:
			err = p.PublishCurseForge(ctx, cfg)
		case model.PlatformModrinth:
			err = p.PublishModrinth(ctx, cfg)
		case model.PlatformGitHub:
			err = p.PublishGitHub(ctx, cfg)
		}

		if err != nil {
			if goerr.HasTag(err, types.ErrTagConfig) {
				logger.Warn("Skipping platform: configuration is incomplete",
					"platform", platform, "error", err)
				continue
			}
			return err
		}
	}

	return nil
}

// Check validates the configuration and artifacts for each requested
// platform without making any network call
func Check(ctx context.Context, cfg *model.Config, platforms []model.Platform) error {
	logger := ctxlog.From(ctx)

	if len(platforms) == 0 {
		platforms = model.AllPlatforms
	}

	for _, platform := range platforms {
		if !cfg.Enabled(platform) {
			logger.Info("Platform is not configured, skipping", "platform", platform)
			continue
		}

		if err := RequiredValues(cfg, platform); err != nil {
			return err
		}

		file, err := ResolveArtifact(cfg, platform)
		if err != nil {
			return err
		}
		if err := CheckJar(cfg, file); err != nil {
			return err
		}

		for _, extra := range cfg.AdditionalFiles {
			if _, err := resolveFile(extra.Artifact); err != nil {
				return err
			}
		}

		if _, err := ResolveChangelog(cfg.Changelog); err != nil {
			return err
		}

		logger.Info("Platform configuration is valid", "platform", platform, "artifact", file)
	}

	return nil
}
