package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

// PublishCurseForge uploads the artifact and any additional files to
// the CurseForge project. Additional files are uploaded as children of
// the primary file.
func (p *Publisher) PublishCurseForge(ctx context.Context, cfg *model.Config) error {
	logger := ctxlog.From(ctx)
	logger.Info("Uploading to CurseForge", "project_id", cfg.CurseID)

	if err := RequiredValues(cfg, model.PlatformCurseForge); err != nil {
		return err
	}

	file, err := ResolveArtifact(cfg, model.PlatformCurseForge)
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

	gameVersions, oldVersion := curseGameVersionNames(cfg.GameVersions)
	optionalNames := curseOptionalVersionNames(cfg, oldVersion)

	if cfg.Debug {
		logger.Info("Debug mode is enabled, not uploading to CurseForge",
			"project_id", cfg.CurseID,
			"file", file,
			"game_versions", gameVersions,
			"extra_versions", optionalNames,
		)
		return nil
	}

	known, err := p.curseforge.GameVersions(ctx)
	if err != nil {
		return err
	}
	versionIDs, err := resolveCurseVersionIDs(ctx, known, gameVersions, optionalNames)
	if err != nil {
		return err
	}

	request := &model.CurseUploadRequest{
		FilePath:       file,
		DisplayName:    cfg.ReleaseName(cfg.Version),
		Changelog:      changelog,
		ChangelogType:  "markdown",
		ReleaseType:    cfg.ReleaseType,
		GameVersionIDs: versionIDs,
		Relations:      curseRelations(cfg.CurseDepends),
	}

	result, err := p.curseforge.UploadFile(ctx, cfg.CurseID, request)
	if err != nil {
		return err
	}
	if result == nil {
		return goerr.New("CurseForge upload returned no result and no error",
			goerr.V("file", file), goerr.T(types.ErrTagUnexplained))
	}

	for _, extra := range cfg.AdditionalFiles {
		extraFile, err := resolveFile(extra.Artifact)
		if err != nil {
			return err
		}

		extraChangelog := changelog
		if extra.Changelog != "" {
			if extraChangelog, err = ResolveChangelog(extra.Changelog); err != nil {
				return err
			}
		}

		parentID := result.ID
		childRequest := &model.CurseUploadRequest{
			FilePath:      extraFile,
			DisplayName:   extra.DisplayName,
			Changelog:     extraChangelog,
			ChangelogType: "markdown",
			ReleaseType:   cfg.ReleaseType,
			ParentFileID:  &parentID,
		}
		if _, err := p.curseforge.UploadFile(ctx, cfg.CurseID, childRequest); err != nil {
			return err
		}
	}

	logger.Info("Successfully uploaded to CurseForge",
		"project_id", cfg.CurseID,
		"file_id", result.ID,
		"version", cfg.Version,
	)
	return nil
}

// curseGameVersionNames applies the legacy compatibility rule: game
// versions below 1.0 (including classic a/b/c builds) collapse to the
// fixed version "1.0", and the loader field is suppressed for such
// uploads
func curseGameVersionNames(versions []string) (names []string, oldVersion bool) {
	seen := map[string]bool{}
	for _, v := range versions {
		name := v
		if isPreClassicVersion(v) {
			oldVersion = true
			name = "1.0"
		}
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names, oldVersion
}

// isPreClassicVersion reports whether the game version sorts below
// "1.0". Classic versions are prefixed with a letter (a1.2.6, b1.7.3,
// c0.30) and always sort below any numeric release.
func isPreClassicVersion(version string) bool {
	s := strings.TrimSpace(version)
	if s == "" {
		return false
	}
	if s[0] < '0' || s[0] > '9' {
		return true
	}
	major, _, _ := strings.Cut(s, ".")
	n, err := strconv.Atoi(major)
	if err != nil {
		return false
	}
	return n < 1
}

// curseOptionalVersionNames collects the loader, Java version and
// environment entries of the CurseForge version vocabulary. Unknown
// entries are skipped with a warning rather than failing the upload.
func curseOptionalVersionNames(cfg *model.Config, oldVersion bool) []string {
	var names []string

	// Loader field is skipped entirely for pre-1.0 uploads
	if !oldVersion {
		for _, loader := range cfg.Loaders {
			// CurseForge has no modloader entry; those uploads are
			// filed under Forge
			if loader == model.LoaderModLoader {
				loader = model.LoaderForge
			}
			names = append(names, string(loader))
		}
	}

	for _, java := range cfg.JavaVersions {
		names = append(names, "Java "+strconv.Itoa(java))
	}

	switch cfg.CurseEnvironment {
	case model.CurseEnvironmentClient:
		names = append(names, "Client")
	case model.CurseEnvironmentServer:
		names = append(names, "Server")
	}

	return names
}

// resolveCurseVersionIDs maps version names to the numeric IDs the
// upload API requires. Required names (game versions) must resolve;
// optional names (loaders, Java, environment) are skipped with a
// warning when CurseForge does not know them.
func resolveCurseVersionIDs(ctx context.Context, known []model.CurseGameVersion, required, optional []string) ([]int64, error) {
	logger := ctxlog.From(ctx)

	byName := make(map[string]int64, len(known))
	for _, v := range known {
		byName[strings.ToLower(v.Name)] = v.ID
	}

	var ids []int64
	seen := map[int64]bool{}

	for _, name := range required {
		id, ok := byName[strings.ToLower(name)]
		if !ok {
			return nil, goerr.New("game version is not known to CurseForge",
				goerr.V("game_version", name), goerr.T(types.ErrTagConfig))
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	for _, name := range optional {
		id, ok := byName[strings.ToLower(name)]
		if !ok {
			logger.Warn("Skipping version entry not known to CurseForge", "name", name)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	return ids, nil
}

func curseRelations(deps model.Dependencies) []model.CurseRelation {
	var relations []model.CurseRelation
	add := func(slugs []string, relType string) {
		for _, slug := range slugs {
			relations = append(relations, model.CurseRelation{Slug: slug, Type: relType})
		}
	}
	add(deps.Required, "requiredDependency")
	add(deps.Optional, "optionalDependency")
	add(deps.Incompatible, "incompatible")
	add(deps.Embedded, "embeddedLibrary")
	return relations
}
