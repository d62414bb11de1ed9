package curseforge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mcpublish/mcpublish/pkg/domain/interfaces"
	"github.com/mcpublish/mcpublish/pkg/domain/model"
	"github.com/mcpublish/mcpublish/pkg/domain/types"
)

const defaultBaseURL = "https://minecraft.curseforge.com"

// maxErrorBody limits how much of an error response body is attached
// to the returned error
const maxErrorBody = 2048

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the CurseForge client
type Option func(*client)

// WithBaseURL overrides the API endpoint. Mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// NewClient creates a CurseForge upload API client
func NewClient(token string, opts ...Option) interfaces.CurseForgeClient {
	c := &client{
		baseURL: defaultBaseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: time.Minute,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GameVersions fetches the full game version list for ID resolution
func (c *client) GameVersions(ctx context.Context) ([]model.CurseGameVersion, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/game/versions", nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create game versions request")
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch game versions", goerr.T(types.ErrTagAPI))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "game versions request failed")
	}

	var versions []model.CurseGameVersion
	if err := json.NewDecoder(resp.Body).Decode(&versions); err != nil {
		return nil, goerr.Wrap(err, "failed to decode game versions response", goerr.T(types.ErrTagAPI))
	}
	return versions, nil
}

// uploadMetadata is the wire format of the metadata part of an
// upload-file request
type uploadMetadata struct {
	Changelog     string           `json:"changelog"`
	ChangelogType string           `json:"changelogType"`
	DisplayName   string           `json:"displayName,omitempty"`
	ParentFileID  *int64           `json:"parentFileID,omitempty"`
	GameVersions  []int64          `json:"gameVersions,omitempty"`
	ReleaseType   string           `json:"releaseType"`
	Relations     *uploadRelations `json:"relations,omitempty"`
}

type uploadRelations struct {
	Projects []uploadRelation `json:"projects"`
}

type uploadRelation struct {
	Slug string `json:"slug"`
	Type string `json:"type"`
}

// UploadFile uploads a single file to the project. Child files
// (ParentFileID set) must not carry game versions; the API rejects
// them.
func (c *client) UploadFile(ctx context.Context, projectID string, upload *model.CurseUploadRequest) (*model.CurseUploadResult, error) {
	meta := uploadMetadata{
		Changelog:     upload.Changelog,
		ChangelogType: upload.ChangelogType,
		DisplayName:   upload.DisplayName,
		ParentFileID:  upload.ParentFileID,
		ReleaseType:   string(upload.ReleaseType),
	}
	if upload.ParentFileID == nil {
		meta.GameVersions = upload.GameVersionIDs
	}
	if len(upload.Relations) > 0 {
		rel := &uploadRelations{}
		for _, r := range upload.Relations {
			rel.Projects = append(rel.Projects, uploadRelation{Slug: r.Slug, Type: r.Type})
		}
		meta.Relations = rel
	}

	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal upload metadata")
	}

	file, err := os.Open(upload.FilePath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open upload file",
			goerr.V("path", upload.FilePath), goerr.T(types.ErrTagNotFound))
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("metadata", string(metaJSON)); err != nil {
		return nil, goerr.Wrap(err, "failed to write metadata part")
	}
	part, err := writer.CreateFormFile("file", filepath.Base(upload.FilePath))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file part")
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, goerr.Wrap(err, "failed to copy file into request", goerr.V("path", upload.FilePath))
	}
	if err := writer.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize multipart body")
	}

	url := fmt.Sprintf("%s/api/projects/%s/upload-file", c.baseURL, projectID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create upload request")
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to upload file to CurseForge",
			goerr.V("project_id", projectID), goerr.T(types.ErrTagAPI))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp, "CurseForge upload failed")
	}

	var result model.CurseUploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode upload response", goerr.T(types.ErrTagAPI))
	}
	return &result, nil
}

func (c *client) setHeaders(req *http.Request) {
	req.Header.Set("X-Api-Token", c.token)
	req.Header.Set("User-Agent", types.UserAgent)
}

func apiError(resp *http.Response, msg string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return goerr.New(msg,
		goerr.V("status", resp.StatusCode),
		goerr.V("body", string(body)),
		goerr.T(types.ErrTagAPI))
}
