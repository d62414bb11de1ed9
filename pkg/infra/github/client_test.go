package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/mcpublish/mcpublish/pkg/domain/model"
	githubinfra "github.com/mcpublish/mcpublish/pkg/infra/github"
)

func TestGetReleaseByTag(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/owner/repo/releases/tags/v1.0.0", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 42, "tag_name": "v1.0.0", "name": "Release 1.0.0", "draft": true, "prerelease": false, "html_url": "https://github.com/owner/repo/releases/tag/v1.0.0"}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := githubinfra.NewClient("token",
		githubinfra.WithBaseURL(server.URL),
		githubinfra.WithHTTPClient(http.DefaultClient),
	)
	gt.NoError(t, err)

	t.Run("existing release", func(t *testing.T) {
		release, err := client.GetReleaseByTag(ctx, "owner", "repo", "v1.0.0")
		gt.NoError(t, err)
		gt.Value(t, release).NotNil()
		gt.Value(t, release.ID).Equal(int64(42))
		gt.Value(t, release.TagName).Equal("v1.0.0")
		gt.Value(t, release.Draft).Equal(true)
	})

	t.Run("absent release is nil, not an error", func(t *testing.T) {
		release, err := client.GetReleaseByTag(ctx, "owner", "repo", "v9.9.9")
		gt.NoError(t, err)
		gt.Value(t, release).Nil()
	})
}

func TestRefExists(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /repos/owner/repo/git/ref/tags/v1.0.0", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ref": "refs/tags/v1.0.0", "object": {"sha": "abc123"}}`))
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message": "Not Found"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := githubinfra.NewClient("token",
		githubinfra.WithBaseURL(server.URL),
		githubinfra.WithHTTPClient(http.DefaultClient),
	)
	gt.NoError(t, err)

	t.Run("existing ref", func(t *testing.T) {
		exists, err := client.RefExists(ctx, "owner", "repo", "refs/tags/v1.0.0")
		gt.NoError(t, err)
		gt.Value(t, exists).Equal(true)
	})

	t.Run("missing ref is false, not an error", func(t *testing.T) {
		exists, err := client.RefExists(ctx, "owner", "repo", "refs/tags/v9.9.9")
		gt.NoError(t, err)
		gt.Value(t, exists).Equal(false)
	})
}

func TestCreateUploadUpdate(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /repos/owner/repo/releases", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 7, "tag_name": "v1.0.0", "draft": true}`))
	})
	mux.HandleFunc("POST /repos/owner/repo/releases/7/assets", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.URL.Query().Get("name")).Equal("mod.jar")
		gt.Value(t, r.Header.Get("Content-Type")).Equal("application/octet-stream")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id": 99, "name": "mod.jar"}`))
	})
	mux.HandleFunc("PATCH /repos/owner/repo/releases/7", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "draft": false, "prerelease": true}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := githubinfra.NewClient("token",
		githubinfra.WithBaseURL(server.URL),
		githubinfra.WithHTTPClient(http.DefaultClient),
	)
	gt.NoError(t, err)

	release, err := client.CreateRelease(ctx, "owner", "repo", &model.ReleaseParams{
		Tag:   "v1.0.0",
		Name:  "Release 1.0.0",
		Body:  "changelog",
		Draft: true,
	})
	gt.NoError(t, err)
	gt.Value(t, release.ID).Equal(int64(7))
	gt.Value(t, release.Draft).Equal(true)

	assetPath := filepath.Join(t.TempDir(), "mod.jar")
	gt.NoError(t, os.WriteFile(assetPath, []byte("jar content"), 0644))

	asset, err := client.UploadReleaseAsset(ctx, "owner", "repo", release.ID, assetPath)
	gt.NoError(t, err)
	gt.Value(t, asset).NotNil()
	gt.Value(t, asset.ID).Equal(int64(99))

	draft := false
	updated, err := client.UpdateRelease(ctx, "owner", "repo", release.ID, &model.ReleasePatch{
		Prerelease: true,
		Draft:      &draft,
	})
	gt.NoError(t, err)
	gt.Value(t, updated.Prerelease).Equal(true)
	gt.Value(t, updated.Draft).Equal(false)
}

func TestAPIErrorIsSurfaced(t *testing.T) {
	ctx := context.Background()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message": "boom"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client, err := githubinfra.NewClient("token",
		githubinfra.WithBaseURL(server.URL),
		githubinfra.WithHTTPClient(http.DefaultClient),
	)
	gt.NoError(t, err)

	_, err = client.GetReleaseByTag(ctx, "owner", "repo", "v1.0.0")
	gt.Error(t, err)

	_, err = client.RefExists(ctx, "owner", "repo", "refs/tags/v1.0.0")
	gt.Error(t, err)
}
