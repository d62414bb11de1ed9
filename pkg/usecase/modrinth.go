package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

// PublishModrinth creates one project version on Modrinth carrying the
// primary artifact and any additional files
func (p *Publisher) PublishModrinth(ctx context.Context, cfg *model.Config) error {
	logger := ctxlog.From(ctx)
	logger.Info("Uploading to Modrinth", "project_id", cfg.ModrinthID, "staging", cfg.ModrinthStaging)

	if err := RequiredValues(cfg, model.PlatformModrinth); err != nil {
		return err
	}

	file, err := ResolveArtifact(cfg, model.PlatformModrinth)
	if err != nil {
		return err
	}
	if err := CheckJar(cfg, file); err != nil {
		return err
	}

	changelog, err := ResolveChangelog(cfg.Changelog)
	if err != nil {
		return err
	}

	files := []model.ModrinthFile{{Path: file, Primary: true}}
	for _, extra := range cfg.AdditionalFiles {
		extraFile, err := resolveFile(extra.Artifact)
		if err != nil {
			return err
		}
		files = append(files, model.ModrinthFile{Path: extraFile})
	}

	request := &model.ModrinthVersionRequest{
		ProjectID:     cfg.ModrinthID,
		Name:          cfg.ReleaseName(cfg.Version),
		VersionNumber: cfg.Version,
		Changelog:     changelog,
		VersionType:   cfg.ReleaseType,
		GameVersions:  cfg.GameVersions,
		Loaders:       cfg.Loaders,
		Featured:      false,
		Dependencies:  modrinthDependencies(cfg.ModrinthDepends),
		Files:         files,
	}

	if cfg.Debug {
		logger.Info("Debug mode is enabled, not uploading to Modrinth",
			"project_id", cfg.ModrinthID,
			"version_number", request.VersionNumber,
			"files", len(files),
		)
		return nil
	}

	result, err := p.modrinth.CreateVersion(ctx, request)
	if err != nil {
		return err
	}
	if result == nil {
		return goerr.New("Modrinth upload returned no result and no error",
			goerr.V("file", file), goerr.T(types.ErrTagUnexplained))
	}

	logger.Info("Successfully uploaded to Modrinth",
		"project_id", cfg.ModrinthID,
		"version_id", result.ID,
		"version", cfg.Version,
	)
	return nil
}

func modrinthDependencies(deps model.Dependencies) []model.ModrinthDependency {
	var result []model.ModrinthDependency
	add := func(ids []string, depType string) {
		for _, id := range ids {
			result = append(result, model.ModrinthDependency{ProjectID: id, DependencyType: depType})
		}
	}
	add(deps.Required, "required")
	add(deps.Optional, "optional")
	add(deps.Incompatible, "incompatible")
	add(deps.Embedded, "embedded")
	return result
}
