package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vinculocrm/vinculo/internal/platform/supabase"
)

func newFunctionsTestHandler(t *testing.T) (*InstallerHandler, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/projects/abc123/functions" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]supabase.EdgeFunction{
			{Slug: "send-email", Name: "send-email", Status: "ACTIVE"},
			{Slug: "whatsapp-webhook", Name: "whatsapp-webhook", Status: "ACTIVE"},
		})
	}))
	t.Cleanup(server.Close)

	newSupabase := func(accessToken string) *supabase.Client {
		return supabase.NewClient(&supabase.Config{BaseURL: server.URL, AccessToken: accessToken})
	}
	return NewInstallerHandler(true, false, nil, newSupabase), server
}

func TestListEdgeFunctionsHandler(t *testing.T) {
	h, _ := newFunctionsTestHandler(t)

	// Test valid request
	body := `{"accessToken":"sbp_token","projectRef":"abc123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/installer/supabase/functions", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ListEdgeFunctionsHandler(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	var resp SupabaseFunctionsResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if !resp.Ok {
		t.Error("Expected ok response")
	}
	if len(resp.Functions) != 2 {
		t.Fatalf("Expected 2 functions, got %d", len(resp.Functions))
	}
	if resp.Functions[0].Slug != "send-email" {
		t.Errorf("Unexpected first function: %+v", resp.Functions[0])
	}

	// Test missing access token
	req = httptest.NewRequest(http.MethodPost, "/api/installer/supabase/functions", strings.NewReader(`{"projectRef":"abc123"}`))
	rec = httptest.NewRecorder()
	h.ListEdgeFunctionsHandler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without access token, got %d", rec.Code)
	}

	// Test missing project ref
	req = httptest.NewRequest(http.MethodPost, "/api/installer/supabase/functions", strings.NewReader(`{"accessToken":"sbp_token"}`))
	rec = httptest.NewRecorder()
	h.ListEdgeFunctionsHandler(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 without project ref, got %d", rec.Code)
	}
}
