package usecase

import (
	"archive/zip"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

// RequiredValues checks that every configuration field required by the
// platform is present. Pure function, no network access. The returned
// error names the first missing field and carries the config tag so
// the caller can warn-and-skip instead of aborting.
func RequiredValues(cfg *model.Config, platform model.Platform) error {
	if strings.TrimSpace(cfg.Version) == "" {
		return missingField("version", platform)
	}
	if strings.TrimSpace(cfg.Changelog) == "" {
		return missingField("changelog", platform)
	}

	switch platform {
	case model.PlatformCurseForge:
		if cfg.Keys.CurseForge == "" {
			return missingField("curseforge api key", platform)
		}
		if strings.TrimSpace(cfg.CurseID) == "" {
			return missingField("curse_id", platform)
		}
		if len(cfg.GameVersions) == 0 {
			return missingField("game_versions", platform)
		}
		if len(cfg.Loaders) == 0 {
			return missingField("loaders", platform)
		}
	case model.PlatformModrinth:
		if cfg.Keys.Modrinth == "" {
			return missingField("modrinth api key", platform)
		}
		if strings.TrimSpace(cfg.ModrinthID) == "" {
			return missingField("modrinth_id", platform)
		}
		if len(cfg.GameVersions) == 0 {
			return missingField("game_versions", platform)
		}
		if len(cfg.Loaders) == 0 {
			return missingField("loaders", platform)
		}
	case model.PlatformGitHub:
		if cfg.Keys.GitHub == "" {
			return missingField("github token", platform)
		}
		if strings.TrimSpace(cfg.GitHub.Repo) == "" {
			return missingField("github_repo", platform)
		}
	}

	return nil
}

func missingField(field string, platform model.Platform) error {
	return goerr.New("required configuration field is missing",
		goerr.V("field", field),
		goerr.V("platform", platform),
		goerr.T(types.ErrTagConfig))
}

// ResolveArtifact returns the upload file path for the platform,
// honoring the per-platform override, and verifies that the file
// exists
func ResolveArtifact(cfg *model.Config, platform model.Platform) (string, error) {
	path := cfg.ArtifactFor(platform)
	if strings.TrimSpace(path) == "" {
		return "", missingField("artifact", platform)
	}
	return resolveFile(path)
}

func resolveFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", goerr.Wrap(err, "cannot find artifact file",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}
	if info.IsDir() {
		return "", goerr.New("artifact path is a directory",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}
	return path, nil
}

// loaderMarkers maps each loader to the archive entries that identify
// a mod built for it
var loaderMarkers = map[model.Loader][]string{
	model.LoaderFabric:    {"fabric.mod.json"},
	model.LoaderQuilt:     {"quilt.mod.json"},
	model.LoaderForge:     {"META-INF/mods.toml", "mcmod.info"},
	model.LoaderNeoForge:  {"META-INF/neoforge.mods.toml", "META-INF/mods.toml"},
	model.LoaderModLoader: {"mcmod.info"},
}

// CheckJar validates the resolved artifact before any network call:
// the file must be non-empty, and jar/zip artifacts must contain at
// least one entry and mod metadata matching one of the configured
// loaders. Each check can be disabled in configuration.
func CheckJar(cfg *model.Config, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return goerr.Wrap(err, "cannot find artifact file",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}
	if !cfg.DisableEmptyJarCheck && info.Size() == 0 {
		return goerr.New("artifact file is empty",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}

	ext := strings.ToLower(path)
	if !strings.HasSuffix(ext, ".jar") && !strings.HasSuffix(ext, ".zip") {
		return nil
	}

	reader, err := zip.OpenReader(path)
	if err != nil {
		return goerr.Wrap(err, "artifact is not a valid archive",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}
	defer reader.Close()

	if !cfg.DisableEmptyJarCheck && len(reader.File) == 0 {
		return goerr.New("artifact archive contains no entries",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}

	if cfg.DisableJarScan {
		return nil
	}

	markers := map[string]bool{}
	for _, loader := range cfg.Loaders {
		for _, marker := range loaderMarkers[loader] {
			markers[marker] = true
		}
	}
	if len(markers) == 0 {
		return nil
	}

	for _, entry := range reader.File {
		if markers[entry.Name] {
			return nil
		}
	}
	return goerr.New("artifact contains no mod metadata for the configured loaders",
		goerr.V("path", path),
		goerr.V("loaders", cfg.Loaders),
		goerr.T(types.ErrTagNotFound))
}
