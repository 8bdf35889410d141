package vercel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	// Test with nil config
	client := NewClient(nil)
	if client.config.BaseURL != "https://api.vercel.com" {
		t.Errorf("Expected default BaseURL, got %s", client.config.BaseURL)
	}
	if client.client != http.DefaultClient {
		t.Error("Expected default HTTP client")
	}

	// Test with custom config
	customConfig := &Config{
		BaseURL:    "http://example.com",
		Token:      "vc_token",
		Timeout:    5 * time.Second,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	client = NewClient(customConfig)
	if client.config.BaseURL != "http://example.com" {
		t.Errorf("Expected custom BaseURL, got %s", client.config.BaseURL)
	}
	if client.client != customConfig.HTTPClient {
		t.Error("Expected custom HTTP client")
	}
}

func TestGetProject(t *testing.T) {
	// Create a test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check request method and path
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/v9/projects/prj_123" {
			t.Errorf("Expected /v9/projects/prj_123 path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer vc_token" {
			t.Errorf("Expected bearer token header, got %s", got)
		}

		resp := Project{ID: "prj_123", Name: "crm", AccountID: "team_1"}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "vc_token"})

	// Test valid request
	project, err := client.GetProject(context.Background(), "prj_123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if project.ID != "prj_123" || project.Name != "crm" {
		t.Errorf("Unexpected project: %+v", project)
	}

	// Test missing project id
	if _, err := client.GetProject(context.Background(), ""); err == nil {
		t.Error("Expected error for missing project id")
	}
}

func TestGetProjectTeamScope(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("teamId"); got != "team_abc" {
			t.Errorf("Expected teamId query parameter, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Project{ID: "prj_123"})
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "vc_token", TeamID: "team_abc"})
	if _, err := client.GetProject(context.Background(), "prj_123"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
}

func TestUpsertEnv(t *testing.T) {
	// Create a test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/v10/projects/prj_123/env" {
			t.Errorf("Expected env path, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("upsert"); got != "true" {
			t.Errorf("Expected upsert=true, got %q", got)
		}

		var envs []EnvVar
		if err := json.NewDecoder(r.Body).Decode(&envs); err != nil {
			t.Errorf("Failed to decode request: %v", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if len(envs) != 2 {
			t.Errorf("Expected 2 env vars, got %d", len(envs))
		}
		if envs[0].Key != "SUPABASE_URL" || envs[0].Type != "plain" {
			t.Errorf("Unexpected env var: %+v", envs[0])
		}

		w.WriteHeader(http.StatusCreated)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"created":[]}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "vc_token"})

	envs := []EnvVar{
		{Key: "SUPABASE_URL", Value: "https://abc.supabase.co", Type: "plain", Target: []string{"production"}},
		{Key: "SUPABASE_ANON_KEY", Value: "anon", Type: "encrypted", Target: []string{"production"}},
	}
	if err := client.UpsertEnv(context.Background(), "prj_123", envs); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Test missing required fields
	if err := client.UpsertEnv(context.Background(), "", envs); err == nil {
		t.Error("Expected error for missing project id")
	}
	if err := client.UpsertEnv(context.Background(), "prj_123", nil); err == nil {
		t.Error("Expected error for empty env list")
	}
}

func TestLatestDeployment(t *testing.T) {
	// Create a test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if r.URL.Path != "/v6/deployments" {
			t.Errorf("Expected /v6/deployments path, got %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("projectId"); got != "prj_123" {
			t.Errorf("Expected projectId query parameter, got %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "1" {
			t.Errorf("Expected limit=1, got %q", got)
		}

		resp := deploymentsResponse{Deployments: []Deployment{{UID: "dpl_1", Name: "crm"}}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "vc_token"})

	deployment, err := client.LatestDeployment(context.Background(), "prj_123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if deployment == nil || deployment.UID != "dpl_1" {
		t.Errorf("Unexpected deployment: %+v", deployment)
	}

	// Test project with no deployments
	emptyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(deploymentsResponse{})
	}))
	defer emptyServer.Close()

	emptyClient := NewClient(&Config{BaseURL: emptyServer.URL, Token: "vc_token"})
	deployment, err = emptyClient.LatestDeployment(context.Background(), "prj_123")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if deployment != nil {
		t.Errorf("Expected nil deployment, got %+v", deployment)
	}
}

func TestRedeploy(t *testing.T) {
	// Create a test server
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/v13/deployments" {
			t.Errorf("Expected /v13/deployments path, got %s", r.URL.Path)
		}

		var req redeployRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		if req.DeploymentID != "dpl_1" || req.Target != "production" {
			t.Errorf("Unexpected redeploy request: %+v", req)
		}

		w.WriteHeader(http.StatusCreated)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"uid":"dpl_2"}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "vc_token"})

	if err := client.Redeploy(context.Background(), &Deployment{UID: "dpl_1", Name: "crm"}); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Test nil deployment
	if err := client.Redeploy(context.Background(), nil); err == nil {
		t.Error("Expected error for nil deployment")
	}
}

func TestErrorHandling(t *testing.T) {
	// Vercel wraps errors in an error envelope
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"code":"forbidden","message":"Not authorized"}}`))
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "bad_token"})

	_, err := client.GetProject(context.Background(), "prj_123")
	if err == nil {
		t.Fatal("Expected error for forbidden response")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusForbidden || apiErr.Code != "forbidden" {
		t.Errorf("Unexpected API error: %+v", apiErr)
	}

	// Non-JSON error body still yields a status-coded error
	plainServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}))
	defer plainServer.Close()

	plainClient := NewClient(&Config{BaseURL: plainServer.URL, Token: "vc_token"})
	_, err = plainClient.GetProject(context.Background(), "prj_123")
	if err == nil {
		t.Fatal("Expected error for server error")
	}
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", apiErr.StatusCode)
	}
}
