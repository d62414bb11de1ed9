package interfaces

import (
	"context"

	"github.com/mcpublish/mcpublish/pkg/domain/model"
)

// GitHubClient defines the release operations needed by the GitHub
// publishing task
type GitHubClient interface {
	// GetReleaseByTag looks up a release by tag. Returns (nil, nil)
	// when no release exists for the tag.
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.Release, error)

	// RefExists reports whether a fully qualified ref such as
	// "refs/tags/v1.0.0" exists. A missing ref is a boolean result,
	// not an error.
	RefExists(ctx context.Context, owner, repo, ref string) (bool, error)

	// CreateRelease creates a brand-new release
	CreateRelease(ctx context.Context, owner, repo string, params *model.ReleaseParams) (*model.Release, error)

	// UploadReleaseAsset attaches the file as a binary asset
	UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, path string) (*model.ReleaseAsset, error)

	// UpdateRelease commits a release patch
	UpdateRelease(ctx context.Context, owner, repo string, releaseID int64, patch *model.ReleasePatch) (*model.Release, error)
}

// CurseForgeClient defines the upload operations of the CurseForge API
type CurseForgeClient interface {
	// GameVersions fetches the list of known game versions used to
	// resolve configured version names to numeric IDs
	GameVersions(ctx context.Context) ([]model.CurseGameVersion, error)

	// UploadFile uploads a single file to the project
	UploadFile(ctx context.Context, projectID string, req *model.CurseUploadRequest) (*model.CurseUploadResult, error)
}

// ModrinthClient defines the upload operations of the Modrinth API
type ModrinthClient interface {
	// CreateVersion creates a project version together with all of its
	// files in one call
	CreateVersion(ctx context.Context, req *model.ModrinthVersionRequest) (*model.ModrinthVersionResult, error)
}
