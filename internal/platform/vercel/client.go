// internal/platform/vercel/client.go
package vercel

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

// Config represents the configuration for the hosting platform client
type Config struct {
	// BaseURL is the base URL of the Vercel REST API
	BaseURL string
	// Token is the personal access token used for authentication
	Token string
	// TeamID optionally scopes all requests to a team
	TeamID string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "https://api.vercel.com",
		HTTPClient: http.DefaultClient,
		Timeout:    30 * time.Second,
	}
}

// Client talks to the Vercel REST API on behalf of the installer.
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new hosting platform client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.vercel.com"
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

// Project represents hosting project metadata
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AccountID string `json:"accountId"`
}

// GetProject reads project metadata, verifying the token and project id
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	if projectID == "" {
		return nil, errors.New("project id is required")
	}

	endpoint := fmt.Sprintf("%s/v9/projects/%s%s", c.config.BaseURL, url.PathEscape(projectID), c.teamQuery("?"))
	var resp Project
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EnvVar is one environment variable applied to a set of deployment targets.
type EnvVar struct {
	Key    string   `json:"key"`
	Value  string   `json:"value"`
	Type   string   `json:"type"`
	Target []string `json:"target"`
}

// UpsertEnv writes the environment variables, overwriting any existing
// variable with the same key and target.
func (c *Client) UpsertEnv(ctx context.Context, projectID string, envs []EnvVar) error {
	if projectID == "" {
		return errors.New("project id is required")
	}
	if len(envs) == 0 {
		return errors.New("at least one environment variable is required")
	}

	endpoint := fmt.Sprintf("%s/v10/projects/%s/env?upsert=true%s", c.config.BaseURL, url.PathEscape(projectID), c.teamQuery("&"))
	var resp json.RawMessage
	return c.post(ctx, endpoint, envs, &resp)
}

// Deployment represents a single deployment of a project
type Deployment struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

type deploymentsResponse struct {
	Deployments []Deployment `json:"deployments"`
}

// LatestDeployment returns the most recent deployment for the project, or
// nil when the project has never been deployed.
func (c *Client) LatestDeployment(ctx context.Context, projectID string) (*Deployment, error) {
	if projectID == "" {
		return nil, errors.New("project id is required")
	}

	endpoint := fmt.Sprintf("%s/v6/deployments?projectId=%s&limit=1%s", c.config.BaseURL, url.QueryEscape(projectID), c.teamQuery("&"))
	var resp deploymentsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	if len(resp.Deployments) == 0 {
		return nil, nil
	}
	return &resp.Deployments[0], nil
}

type redeployRequest struct {
	Name         string `json:"name"`
	DeploymentID string `json:"deploymentId"`
	Target       string `json:"target"`
}

// Redeploy triggers a fresh production deployment based on the given one
// so newly written environment variables take effect.
func (c *Client) Redeploy(ctx context.Context, deployment *Deployment) error {
	if deployment == nil || deployment.UID == "" {
		return errors.New("deployment is required")
	}

	endpoint := fmt.Sprintf("%s/v13/deployments%s", c.config.BaseURL, c.teamQuery("?"))
	req := redeployRequest{
		Name:         deployment.Name,
		DeploymentID: deployment.UID,
		Target:       "production",
	}
	var resp json.RawMessage
	return c.post(ctx, endpoint, req, &resp)
}

func (c *Client) teamQuery(sep string) string {
	if c.config.TeamID == "" {
		return ""
	}
	return sep + "teamId=" + url.QueryEscape(c.config.TeamID)
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code,omitempty"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("[%s] %s (Status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

type apiErrorEnvelope struct {
	Error *APIError `json:"error"`
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
	httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)

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
	httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)

	return c.do(httpReq, resp)
}

func (c *Client) do(httpReq *http.Request, resp interface{}) error {
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		// Vercel wraps errors as {"error": {"code": ..., "message": ...}}
		var envelope apiErrorEnvelope
		if err := json.NewDecoder(httpResp.Body).Decode(&envelope); err != nil || envelope.Error == nil {
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}
		envelope.Error.StatusCode = httpResp.StatusCode
		return envelope.Error
	}

	if resp == nil {
		return nil
	}
	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
