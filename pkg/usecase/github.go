package usecase

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

// PublishGitHub reconciles the target release and attaches the built
// artifacts to it. Depending on configuration the release is created,
// updated or left alone; a release that was already published is never
// converted back to a draft.
func (p *Publisher) PublishGitHub(ctx context.Context, cfg *model.Config) error {
	logger := ctxlog.From(ctx)
	logger.Info("Uploading to GitHub", "repo", cfg.GitHub.Repo, "tag", cfg.GitHub.Tag)

	if err := RequiredValues(cfg, model.PlatformGitHub); err != nil {
		return err
	}

	file, err := ResolveArtifact(cfg, model.PlatformGitHub)
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

	owner, repo, err := model.SplitRepo(cfg.GitHub.Repo)
	if err != nil {
		return err
	}
	tag := cfg.GitHub.Tag

	if cfg.Debug {
		logger.Info("Debug mode is enabled, not uploading to GitHub",
			"repo", cfg.GitHub.Repo, "tag", tag, "file", file)
		return nil
	}

	release, err := p.github.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		return err
	}

	// Whether the release was a draft before this run. Governs
	// whether the final update may touch the draft flag at all.
	var wasDraft bool

	if release == nil {
		if !cfg.GitHub.CreateRelease {
			logger.Warn("GitHub release creation is disabled and no release exists for tag", "tag", tag)
			return nil
		}

		// FIXME this gate doesn't make sense when github.draft is
		// true, because draft releases don't materialize a tag anyway
		if !cfg.GitHub.CreateTag {
			exists, err := p.github.RefExists(ctx, owner, repo, "refs/tags/"+tag)
			if err != nil {
				return err
			}
			if !exists {
				logger.Warn("GitHub tag creation is disabled and tag does not already exist", "tag", tag)
				return nil
			}
		}

		// New releases start as drafts so assets can be attached
		// before anyone sees them
		wasDraft = true
		release, err = p.github.CreateRelease(ctx, owner, repo, &model.ReleaseParams{
			Tag:             tag,
			Name:            cfg.ReleaseName(tag),
			Body:            changelog,
			Draft:           wasDraft,
			TargetCommitish: cfg.GitHub.Target,
		})
		if err != nil {
			return err
		}
	} else if !cfg.GitHub.UpdateRelease {
		logger.Warn("GitHub release update is disabled and release already exists for tag", "tag", tag)
		return nil
	} else {
		wasDraft = release.Draft
	}

	if release == nil {
		return goerr.New("could not get existing or create new GitHub release",
			goerr.V("tag", tag), goerr.T(types.ErrTagUnexplained))
	}

	asset, err := p.github.UploadReleaseAsset(ctx, owner, repo, release.ID, file)
	if err != nil {
		return err
	}
	if asset == nil {
		return goerr.New("asset upload returned no asset and no error",
			goerr.V("file", file), goerr.T(types.ErrTagUnexplained))
	}

	// Additional assets are best-effort: a failure aborts the task but
	// already uploaded assets stay attached
	for _, extra := range cfg.AdditionalFiles {
		extraFile, err := resolveFile(extra.Artifact)
		if err != nil {
			return err
		}
		if _, err := p.github.UploadReleaseAsset(ctx, owner, repo, release.ID, extraFile); err != nil {
			return err
		}
	}

	patch := &model.ReleasePatch{
		Prerelease: cfg.ReleaseType.Prerelease(),
	}
	if wasDraft {
		draft := cfg.GitHub.Draft
		patch.Draft = &draft
	}

	updated, err := p.github.UpdateRelease(ctx, owner, repo, release.ID, patch)
	if err != nil {
		return err
	}

	logger.Info("Successfully uploaded to GitHub",
		"version", cfg.Version,
		"tag", tag,
		"repo", cfg.GitHub.Repo,
		"url", updated.HTMLURL,
	)
	return nil
}
