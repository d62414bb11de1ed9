package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

// Config is the full publishing configuration. It is decoded once from
// the TOML config file, overlaid with credentials from flags or
// environment variables, finalized exactly once and then treated as a
// read-only snapshot passed explicitly to every task.
type Config struct {
	// Debug suppresses every mutating network call and logs the
	// intended actions instead
	Debug bool `toml:"debug"`

	// CurseID is the CurseForge project ID
	CurseID string `toml:"curse_id"`
	// ModrinthID is the Modrinth project ID (not the slug)
	ModrinthID string `toml:"modrinth_id"`
	// GitHubRepo is the target repository, owner/repo or URL
	GitHubRepo string `toml:"github_repo"`

	// Version is the project version, used for Modrinth version
	// numbers and as the default GitHub tag
	Version string `toml:"version"`
	// DisplayName is the friendly name of the uploaded files
	DisplayName string `toml:"display_name"`
	// Changelog is either literal text or a file:<path> reference
	Changelog string `toml:"changelog"`
	// ReleaseType classifies the upload: release, beta or alpha
	ReleaseType ReleaseType `toml:"version_type"`

	// GameVersions lists the Minecraft versions supported by this upload
	GameVersions []string `toml:"game_versions"`
	// Loaders lists the mod loaders supported by this upload
	Loaders []Loader `toml:"loaders"`
	// JavaVersions lists supported Java major versions (CurseForge only)
	JavaVersions []int `toml:"java_versions"`
	// CurseEnvironment is the CurseForge environment tag
	CurseEnvironment CurseEnvironment `toml:"curse_environment"`

	// Artifact is the path of the file to upload
	Artifact string `toml:"artifact"`
	// PlatformArtifacts overrides the artifact per platform
	PlatformArtifacts map[Platform]string `toml:"platform_artifacts"`
	// AdditionalFiles are uploaded along with the main artifact
	AdditionalFiles []AdditionalFile `toml:"additional_files"`

	// CurseDepends holds the CurseForge dependency slugs
	CurseDepends Dependencies `toml:"curse_depends"`
	// ModrinthDepends holds the Modrinth dependency project IDs
	ModrinthDepends Dependencies `toml:"modrinth_depends"`
	// ModrinthStaging uploads to the Modrinth staging environment
	ModrinthStaging bool `toml:"modrinth_staging"`

	// DisableEmptyJarCheck skips the empty-archive validation
	DisableEmptyJarCheck bool `toml:"disable_empty_jar_check"`
	// DisableJarScan skips the mod-metadata marker validation
	DisableJarScan bool `toml:"disable_jar_scan"`

	// GitHub holds GitHub release options
	GitHub GitHubOptions `toml:"github"`

	// Keys holds the per-platform credentials. Never read from the
	// config file; supplied via flags or environment variables only.
	Keys APIKeys `toml:"-"`
}

// APIKeys holds per-platform credentials. Values are redacted from
// logs via the masq tag.
type APIKeys struct {
	CurseForge string `masq:"secret"`
	Modrinth   string `masq:"secret"`
	GitHub     string `masq:"secret"`
}

// GitHubOptions control GitHub release reconciliation
type GitHubOptions struct {
	// Tag is the release tag, defaulting to the project version
	Tag string `toml:"tag"`
	// Target is an optional commitish the tag will point to when a
	// brand-new release is created. Ignored if the tag already exists.
	Target string `toml:"target"`
	// Repo overrides the top-level github_repo setting
	Repo string `toml:"repo"`
	// Draft is the desired end-state draftness. It only governs newly
	// created releases and releases that were already drafts; a
	// published release is never converted back to a draft.
	Draft bool `toml:"draft"`
	// CreateTag permits creating the tag if it is missing
	CreateTag bool `toml:"create_tag"`
	// CreateRelease permits creating the release if it is missing
	CreateRelease bool `toml:"create_release"`
	// UpdateRelease permits updating an already existing release
	UpdateRelease bool `toml:"update_release"`
}

// Dependencies are related projects, split by relation kind
type Dependencies struct {
	Required     []string `toml:"required"`
	Optional     []string `toml:"optional"`
	Incompatible []string `toml:"incompatible"`
	Embedded     []string `toml:"embedded"`
}

// AdditionalFile is an extra artifact uploaded alongside the main one,
// optionally with its own display name and changelog
type AdditionalFile struct {
	Artifact    string `toml:"artifact"`
	DisplayName string `toml:"display_name"`
	Changelog   string `toml:"changelog"`
}

// NewConfig returns a Config populated with defaults. TOML decoding
// happens on top of this value so that absent fields keep their
// default.
func NewConfig() *Config {
	return &Config{
		ReleaseType:      ReleaseTypeRelease,
		CurseEnvironment: CurseEnvironmentBoth,
		GitHub: GitHubOptions{
			CreateTag:     true,
			CreateRelease: true,
			UpdateRelease: true,
		},
	}
}

// Finalize applies derived defaults and canonicalizes the snapshot.
// Must be called exactly once, after decoding and credential overlay;
// tasks assume a finalized config.
func (c *Config) Finalize() error {
	if c.GitHub.Tag == "" {
		c.GitHub.Tag = c.Version
	}
	if c.GitHub.Repo == "" {
		c.GitHub.Repo = c.GitHubRepo
	}
	if c.GitHub.Repo != "" {
		repo, err := NormalizeRepo(c.GitHub.Repo)
		if err != nil {
			return err
		}
		c.GitHub.Repo = repo
	}
	if len(c.PlatformArtifacts) > 0 {
		canonical := make(map[Platform]string, len(c.PlatformArtifacts))
		for p, path := range c.PlatformArtifacts {
			parsed, err := ParsePlatform(string(p))
			if err != nil {
				return err
			}
			canonical[parsed] = path
		}
		c.PlatformArtifacts = canonical
	}
	return nil
}

// Enabled reports whether the platform has both credentials and a
// project identifier configured. Tasks for disabled platforms are
// skipped silently.
func (c *Config) Enabled(p Platform) bool {
	switch p {
	case PlatformCurseForge:
		return c.Keys.CurseForge != "" && c.CurseID != ""
	case PlatformModrinth:
		return c.Keys.Modrinth != "" && c.ModrinthID != ""
	case PlatformGitHub:
		return c.Keys.GitHub != "" && c.GitHub.Repo != ""
	}
	return false
}

// ArtifactFor returns the artifact path for the platform, honoring the
// per-platform override
func (c *Config) ArtifactFor(p Platform) string {
	if path, ok := c.PlatformArtifacts[p]; ok && path != "" {
		return path
	}
	return c.Artifact
}

// ReleaseName resolves the display name of an upload: the first
// non-blank of display name, project version, then the fallback
// (typically the release tag). First match wins. The winning value is
// returned as configured, surrounding whitespace included; trimming
// only applies to blank detection.
func (c *Config) ReleaseName(fallback string) string {
	for _, candidate := range []string{c.DisplayName, c.Version} {
		if strings.TrimSpace(candidate) != "" {
			return candidate
		}
	}
	return fallback
}

// NormalizeRepo canonicalizes a repository reference to "owner/repo".
// Accepts plain owner/repo, https URLs and ssh URLs, with or without a
// trailing ".git".
func NormalizeRepo(repo string) (string, error) {
	s := strings.TrimSpace(repo)
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "git@")
	s = strings.TrimPrefix(s, "github.com:")
	s = strings.TrimPrefix(s, "github.com/")
	s = strings.TrimSuffix(s, ".git")
	s = strings.Trim(s, "/")

	parts := strings.Split(s, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", goerr.New("invalid GitHub repository reference",
			goerr.V("repo", repo), goerr.T(types.ErrTagConfig))
	}
	return parts[0] + "/" + parts[1], nil
}

// SplitRepo splits a normalized "owner/repo" reference
func SplitRepo(repo string) (owner, name string, err error) {
	normalized, err := NormalizeRepo(repo)
	if err != nil {
		return "", "", err
	}
	parts := strings.SplitN(normalized, "/", 2)
	return parts[0], parts[1], nil
}
