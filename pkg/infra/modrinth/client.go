package modrinth

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

const (
	defaultBaseURL = "https://api.modrinth.com"
	stagingBaseURL = "https://staging-api.modrinth.com"
)

const maxErrorBody = 2048

type client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures the Modrinth client
type Option func(*client)

// WithStaging targets the Modrinth staging environment instead of
// production
func WithStaging(staging bool) Option {
	return func(c *client) {
		if staging {
			c.baseURL = stagingBaseURL
		}
	}
}

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

// NewClient creates a Modrinth API client
func NewClient(token string, opts ...Option) interfaces.ModrinthClient {
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

// versionData is the wire format of the "data" part of a version
// creation request
type versionData struct {
	Name          string                     `json:"name"`
	VersionNumber string                     `json:"version_number"`
	Changelog     string                     `json:"changelog"`
	Dependencies  []model.ModrinthDependency `json:"dependencies"`
	GameVersions  []string                   `json:"game_versions"`
	VersionType   string                     `json:"version_type"`
	Loaders       []string                   `json:"loaders"`
	Featured      bool                       `json:"featured"`
	ProjectID     string                     `json:"project_id"`
	FileParts     []string                   `json:"file_parts"`
	PrimaryFile   string                     `json:"primary_file,omitempty"`
}

// CreateVersion creates a project version with all of its files in a
// single multipart request
func (c *client) CreateVersion(ctx context.Context, req *model.ModrinthVersionRequest) (*model.ModrinthVersionResult, error) {
	data := versionData{
		Name:          req.Name,
		VersionNumber: req.VersionNumber,
		Changelog:     req.Changelog,
		Dependencies:  req.Dependencies,
		GameVersions:  req.GameVersions,
		VersionType:   string(req.VersionType),
		Featured:      req.Featured,
		ProjectID:     req.ProjectID,
	}
	if data.Dependencies == nil {
		data.Dependencies = []model.ModrinthDependency{}
	}
	for _, loader := range req.Loaders {
		data.Loaders = append(data.Loaders, string(loader))
	}
	for i, file := range req.Files {
		partName := fmt.Sprintf("file%d", i)
		data.FileParts = append(data.FileParts, partName)
		if file.Primary {
			data.PrimaryFile = partName
		}
	}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to marshal version data")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("data", string(dataJSON)); err != nil {
		return nil, goerr.Wrap(err, "failed to write data part")
	}
	for i, file := range req.Files {
		if err := writeFilePart(writer, fmt.Sprintf("file%d", i), file.Path); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize multipart body")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v2/version", &body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create version request")
	}
	httpReq.Header.Set("Authorization", c.token)
	httpReq.Header.Set("User-Agent", types.UserAgent)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Modrinth version",
			goerr.V("project_id", req.ProjectID), goerr.T(types.ErrTagAPI))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, goerr.New("Modrinth version creation failed",
			goerr.V("status", resp.StatusCode),
			goerr.V("body", string(respBody)),
			goerr.T(types.ErrTagAPI))
	}

	var result model.ModrinthVersionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, goerr.Wrap(err, "failed to decode version response", goerr.T(types.ErrTagAPI))
	}
	return &result, nil
}

func writeFilePart(writer *multipart.Writer, name, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return goerr.Wrap(err, "failed to open upload file",
			goerr.V("path", path), goerr.T(types.ErrTagNotFound))
	}
	defer file.Close()

	part, err := writer.CreateFormFile(name, filepath.Base(path))
	if err != nil {
		return goerr.Wrap(err, "failed to create file part", goerr.V("path", path))
	}
	if _, err := io.Copy(part, file); err != nil {
		return goerr.Wrap(err, "failed to copy file into request", goerr.V("path", path))
	}
	return nil
}
