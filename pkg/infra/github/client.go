package github

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/go-github/v75/github"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/interfaces"
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
	"golang.org/x/oauth2"
)

type client struct {
	githubClient *github.Client
}

// Option configures the GitHub client
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides both the API and upload endpoints. Mainly for
// tests against a local HTTP server.
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) {
		o.httpClient = hc
	}
}

// NewClient creates a GitHub client authenticated with a personal
// access token
func NewClient(token string, opts ...Option) (interfaces.GitHubClient, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = time.Minute
	}

	githubClient := github.NewClient(httpClient)
	githubClient.UserAgent = types.UserAgent

	if o.baseURL != "" {
		parsed, err := url.Parse(strings.TrimSuffix(o.baseURL, "/") + "/")
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse GitHub base URL", goerr.V("url", o.baseURL))
		}
		githubClient.BaseURL = parsed
		githubClient.UploadURL = parsed
	}

	return &client{
		githubClient: githubClient,
	}, nil
}

// GetReleaseByTag looks up a release by tag name. A 404 means the
// release does not exist and is not treated as an error.
func (c *client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*model.Release, error) {
	rel, resp, err := c.githubClient.Repositories.GetReleaseByTag(ctx, owner, repo, tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to look up release by tag",
			goerr.V("repo", owner+"/"+repo), goerr.V("tag", tag), goerr.T(types.ErrTagAPI))
	}
	return toRelease(rel), nil
}

// RefExists checks whether a fully qualified ref (e.g.
// "refs/tags/v1.0.0") exists on the repository. A 404 is the expected
// missing-ref outcome and maps to false.
func (c *client) RefExists(ctx context.Context, owner, repo, ref string) (bool, error) {
	// The Git API takes refs without the "refs/" prefix
	shortRef := strings.TrimPrefix(ref, "refs/")

	_, resp, err := c.githubClient.Git.GetRef(ctx, owner, repo, shortRef)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to check ref existence",
			goerr.V("repo", owner+"/"+repo), goerr.V("ref", ref), goerr.T(types.ErrTagAPI))
	}
	return true, nil
}

// CreateRelease creates a new release on the repository
func (c *client) CreateRelease(ctx context.Context, owner, repo string, params *model.ReleaseParams) (*model.Release, error) {
	req := &github.RepositoryRelease{
		TagName:    github.Ptr(params.Tag),
		Name:       github.Ptr(params.Name),
		Body:       github.Ptr(params.Body),
		Draft:      github.Ptr(params.Draft),
		Prerelease: github.Ptr(false),
	}
	if params.TargetCommitish != "" {
		req.TargetCommitish = github.Ptr(params.TargetCommitish)
	}

	rel, _, err := c.githubClient.Repositories.CreateRelease(ctx, owner, repo, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create release",
			goerr.V("repo", owner+"/"+repo), goerr.V("tag", params.Tag), goerr.T(types.ErrTagAPI))
	}
	return toRelease(rel), nil
}

// UploadReleaseAsset uploads the file as a binary asset of the release
func (c *client) UploadReleaseAsset(ctx context.Context, owner, repo string, releaseID int64, path string) (*model.ReleaseAsset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open asset file",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}
	defer file.Close()

	opts := &github.UploadOptions{
		Name:      filepath.Base(path),
		MediaType: "application/octet-stream",
	}

	asset, _, err := c.githubClient.Repositories.UploadReleaseAsset(ctx, owner, repo, releaseID, opts, file)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload release asset",
			goerr.V("repo", owner+"/"+repo), goerr.V("path", path), goerr.T(types.ErrTagAPI))
	}
	if asset == nil {
		return nil, nil
	}
	return &model.ReleaseAsset{
		ID:   asset.GetID(),
		Name: asset.GetName(),
		URL:  asset.GetBrowserDownloadURL(),
	}, nil
}

// UpdateRelease commits the accumulated patch in a single update call
func (c *client) UpdateRelease(ctx context.Context, owner, repo string, releaseID int64, patch *model.ReleasePatch) (*model.Release, error) {
	req := &github.RepositoryRelease{
		Prerelease: github.Ptr(patch.Prerelease),
	}
	if patch.Draft != nil {
		req.Draft = github.Ptr(*patch.Draft)
	}

	rel, _, err := c.githubClient.Repositories.EditRelease(ctx, owner, repo, releaseID, req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update release",
			goerr.V("repo", owner+"/"+repo), goerr.V("release_id", releaseID), goerr.T(types.ErrTagAPI))
	}
	return toRelease(rel), nil
}

func toRelease(rel *github.RepositoryRelease) *model.Release {
	if rel == nil {
		return nil
	}
	return &model.Release{
		ID:         rel.GetID(),
		TagName:    rel.GetTagName(),
		Name:       rel.GetName(),
		Draft:      rel.GetDraft(),
		Prerelease: rel.GetPrerelease(),
		HTMLURL:    rel.GetHTMLURL(),
	}
}
