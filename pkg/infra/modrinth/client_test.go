package modrinth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
	"github.com/mcpublish/mcpublish/pkg/infra/modrinth"
)

func TestCreateVersion(t *testing.T) {
	ctx := context.Background()

	dir := t.TempDir()
	primaryPath := filepath.Join(dir, "mod.jar")
	extraPath := filepath.Join(dir, "mod-sources.jar")
	gt.NoError(t, os.WriteFile(primaryPath, []byte("primary"), 0644))
	gt.NoError(t, os.WriteFile(extraPath, []byte("extra"), 0644))

	var gotData map[string]any
	var gotFiles map[string]string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/version", func(w http.ResponseWriter, r *http.Request) {
		gt.Value(t, r.Header.Get("Authorization")).Equal("mr-token")
		gt.NoError(t, r.ParseMultipartForm(1 << 20))

		gt.NoError(t, json.Unmarshal([]byte(r.FormValue("data")), &gotData))

		gotFiles = map[string]string{}
		for name := range r.MultipartForm.File {
			file, _, err := r.FormFile(name)
			gt.NoError(t, err)
			body, err := io.ReadAll(file)
			gt.NoError(t, err)
			_ = file.Close()
			gotFiles[name] = string(body)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "abc123", "project_id": "proj1"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := modrinth.NewClient("mr-token", modrinth.WithBaseURL(server.URL))

	result, err := client.CreateVersion(ctx, &model.ModrinthVersionRequest{
		ProjectID:     "proj1",
		Name:          "My Mod 1.2.3",
		VersionNumber: "1.2.3",
		Changelog:     "changes",
		VersionType:   model.ReleaseTypeRelease,
		GameVersions:  []string{"1.20.1"},
		Loaders:       []model.Loader{model.LoaderFabric},
		Dependencies: []model.ModrinthDependency{
			{ProjectID: "dep1", DependencyType: "required"},
		},
		Files: []model.ModrinthFile{
			{Path: primaryPath, Primary: true},
			{Path: extraPath},
		},
	})
	gt.NoError(t, err)
	gt.Value(t, result.ID).Equal("abc123")
	gt.Value(t, result.ProjectID).Equal("proj1")

	gt.Value(t, gotData["name"]).Equal("My Mod 1.2.3")
	gt.Value(t, gotData["version_number"]).Equal("1.2.3")
	gt.Value(t, gotData["version_type"]).Equal("release")
	gt.Value(t, gotData["project_id"]).Equal("proj1")
	gt.Value(t, gotData["primary_file"]).Equal("file0")
	gt.Value(t, gotData["featured"]).Equal(false)

	parts := gt.Cast[[]any](t, gotData["file_parts"])
	gt.Array(t, parts).Length(2)

	gt.Value(t, gotFiles["file0"]).Equal("primary")
	gt.Value(t, gotFiles["file1"]).Equal("extra")
}

func TestCreateVersion_EmptyDependenciesIsArray(t *testing.T) {
	ctx := context.Background()

	jarPath := filepath.Join(t.TempDir(), "mod.jar")
	gt.NoError(t, os.WriteFile(jarPath, []byte("primary"), 0644))

	var rawData string

	mux := http.NewServeMux()
	mux.HandleFunc("POST /v2/version", func(w http.ResponseWriter, r *http.Request) {
		gt.NoError(t, r.ParseMultipartForm(1 << 20))
		rawData = r.FormValue("data")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "abc123", "project_id": "proj1"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := modrinth.NewClient("mr-token", modrinth.WithBaseURL(server.URL))

	_, err := client.CreateVersion(ctx, &model.ModrinthVersionRequest{
		ProjectID:     "proj1",
		Name:          "1.2.3",
		VersionNumber: "1.2.3",
		Changelog:     "changes",
		VersionType:   model.ReleaseTypeRelease,
		GameVersions:  []string{"1.20.1"},
		Loaders:       []model.Loader{model.LoaderFabric},
		Files:         []model.ModrinthFile{{Path: jarPath, Primary: true}},
	})
	gt.NoError(t, err)

	var data map[string]json.RawMessage
	gt.NoError(t, json.Unmarshal([]byte(rawData), &data))
	// The API rejects null dependencies, so the field must be an array
	gt.Value(t, string(data["dependencies"])).Equal("[]")
}

func TestCreateVersion_APIError(t *testing.T) {
	ctx := context.Background()

	jarPath := filepath.Join(t.TempDir(), "mod.jar")
	gt.NoError(t, os.WriteFile(jarPath, []byte("primary"), 0644))

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": "unauthorized"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := modrinth.NewClient("bad-token", modrinth.WithBaseURL(server.URL))

	_, err := client.CreateVersion(ctx, &model.ModrinthVersionRequest{
		ProjectID:     "proj1",
		Name:          "1.2.3",
		VersionNumber: "1.2.3",
		VersionType:   model.ReleaseTypeRelease,
		Files:         []model.ModrinthFile{{Path: jarPath, Primary: true}},
	})
	gt.Error(t, err)
	gt.Value(t, goerr.HasTag(err, types.ErrTagAPI)).Equal(true)
}
