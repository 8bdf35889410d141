// internal/platform/supabase/client.go
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Config represents the configuration for the database platform client
type Config struct {
	// BaseURL is the base URL of the Supabase management API
	BaseURL string
	// AccessToken is the management API access token
	AccessToken string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.supabase.com",
		HTTPClient: http.DefaultClient,
		Timeout:    30 * time.Second,
	}
}

// Client talks to the Supabase management API on behalf of the installer.
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new database platform client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.supabase.com"
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// Project represents a hosted project on the database platform
type Project struct {
	ID       string `json:"id"`
	Ref      string `json:"ref"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Status   string `json:"status"`
	Database struct {
		Host    string `json:"host"`
		Version string `json:"version"`
	} `json:"database"`
}

// GetProject reads project metadata by reference
func (c *Client) GetProject(ctx context.Context, ref string) (*Project, error) {
	if ref == "" {
		return nil, errors.New("project ref is required")
	}

	endpoint := fmt.Sprintf("%s/v1/projects/%s", c.config.BaseURL, url.PathEscape(ref))
	var resp Project
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListProjects lists all projects the access token can see
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	endpoint := c.config.BaseURL + "/v1/projects"
	var resp []Project
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Organization represents an account-level organization on the platform
type Organization struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListOrganizations lists the organizations the access token belongs to
func (c *Client) ListOrganizations(ctx context.Context) ([]Organization, error) {
	endpoint := c.config.BaseURL + "/v1/organizations"
	var resp []Organization
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateProjectRequest is the payload for provisioning a new project
type CreateProjectRequest struct {
	Name           string `json:"name"`
	OrganizationID string `json:"organization_id"`
	DBPassword     string `json:"db_pass"`
	Region         string `json:"region"`
}

// CreateProject provisions a new project and returns its metadata
func (c *Client) CreateProject(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	if req.Name == "" || req.OrganizationID == "" {
		return nil, errors.New("name and organization id are required")
	}
	if req.Region == "" {
		req.Region = "us-east-1"
	}

	endpoint := c.config.BaseURL + "/v1/projects"
	var resp Project
	if err := c.post(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// APIKey is a project API key as returned by the management API
type APIKey struct {
	Name   string `json:"name"`
	APIKey string `json:"api_key"`
}

// GetAPIKeys lists the project's API keys
func (c *Client) GetAPIKeys(ctx context.Context, ref string) ([]APIKey, error) {
	if ref == "" {
		return nil, errors.New("project ref is required")
	}

	endpoint := fmt.Sprintf("%s/v1/projects/%s/api-keys", c.config.BaseURL, url.PathEscape(ref))
	var resp []APIKey
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// EdgeFunction is a deployed serverless function
type EdgeFunction struct {
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// ListEdgeFunctions lists the project's deployed edge functions
func (c *Client) ListEdgeFunctions(ctx context.Context, ref string) ([]EdgeFunction, error) {
	if ref == "" {
		return nil, errors.New("project ref is required")
	}

	endpoint := fmt.Sprintf("%s/v1/projects/%s/functions", c.config.BaseURL, url.PathEscape(ref))
	var resp []EdgeFunction
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Credentials is the resolved set of project credentials the installer
// needs to configure the application.
type Credentials struct {
	ProjectURL     string
	AnonKey        string
	ServiceRoleKey string
	DBHost         string
}

// ResolveCredentials reads the project and its API keys and assembles the
// credential set. Missing keys are reported as warnings rather than
// failures so the caller can decide whether to continue.
func (c *Client) ResolveCredentials(ctx context.Context, ref string) (*Credentials, []string, error) {
	project, err := c.GetProject(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	creds := &Credentials{
		ProjectURL: fmt.Sprintf("https://%s.supabase.co", project.Ref),
		DBHost:     project.Database.Host,
	}

	var warnings []string
	if project.Status != "" && project.Status != "ACTIVE_HEALTHY" {
		warnings = append(warnings, fmt.Sprintf("project status is %s", project.Status))
	}

	keys, err := c.GetAPIKeys(ctx, ref)
	if err != nil {
		warnings = append(warnings, fmt.Sprintf("could not list api keys: %v", err))
		return creds, warnings, nil
	}

	for _, key := range keys {
		switch key.Name {
		case "anon":
			creds.AnonKey = key.APIKey
		case "service_role":
			creds.ServiceRoleKey = key.APIKey
		}
	}
	if creds.AnonKey == "" {
		warnings = append(warnings, "anon key not found")
	}
	if creds.ServiceRoleKey == "" {
		warnings = append(warnings, "service_role key not found")
	}

	return creds, warnings, nil
}

// ConnString builds a direct database connection string for the project
func (creds *Credentials) ConnString(dbPassword string) string {
	if creds.DBHost == "" {
		return ""
	}
	return fmt.Sprintf("postgresql://postgres:%s@%s:5432/postgres", url.QueryEscape(dbPassword), creds.DBHost)
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// post performs a POST request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.AccessToken)

	return c.do(httpReq, resp)
}

// get performs a GET request to the specified endpoint and unmarshals the response into the specified response object
func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.config.AccessToken)

	return c.do(httpReq, resp)
}

func (c *Client) do(httpReq *http.Request, resp interface{}) error {
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var apiErr APIError
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}
		apiErr.StatusCode = httpResp.StatusCode
		return &apiErr
	}

	if resp == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
