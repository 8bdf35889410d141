package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vinculocrm/vinculo/internal/model"
)

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestSameOrigin(t *testing.T) {
	allowed := []string{"https://crm.example.com"}

	tests := []struct {
		name       string
		method     string
		origin     string
		referer    string
		wantStatus int
		wantNext   bool
	}{
		{"get passes without origin check", http.MethodGet, "https://evil.example.com", "", http.StatusOK, true},
		{"post from allowed origin", http.MethodPost, "https://crm.example.com", "", http.StatusOK, true},
		{"post from allowed origin with trailing slash", http.MethodPost, "https://crm.example.com/", "", http.StatusOK, true},
		{"post from disallowed origin", http.MethodPost, "https://evil.example.com", "", http.StatusForbidden, false},
		{"put falls back to referer", http.MethodPut, "", "https://crm.example.com/settings/units", http.StatusOK, true},
		{"delete with disallowed referer", http.MethodDelete, "", "https://evil.example.com/page", http.StatusForbidden, false},
		{"post without origin or referer passes", http.MethodPost, "", "", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			handler := SameOrigin(allowed)(next)

			req := httptest.NewRequest(tt.method, "/api/contacts/1/business-units", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.referer != "" {
				req.Header.Set("Referer", tt.referer)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if *called != tt.wantNext {
				t.Errorf("Expected next called=%v, got %v", tt.wantNext, *called)
			}
		})
	}
}

func TestInstallerGuard(t *testing.T) {
	tests := []struct {
		name       string
		enabled    bool
		token      string
		header     string
		wantStatus int
		wantNext   bool
	}{
		{"disabled installer hides the endpoint", false, "secret", "Bearer secret", http.StatusNotFound, false},
		{"valid token passes", true, "secret", "Bearer secret", http.StatusOK, true},
		{"wrong token rejected", true, "secret", "Bearer wrong", http.StatusUnauthorized, false},
		{"missing header rejected", true, "secret", "", http.StatusUnauthorized, false},
		{"malformed header rejected", true, "secret", "secret", http.StatusUnauthorized, false},
		{"no configured token passes without a header", true, "", "", http.StatusOK, true},
		{"no configured token ignores a stray header", true, "", "Bearer anything", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, called := okHandler()
			handler := InstallerGuard(tt.enabled, tt.token)(next)

			req := httptest.NewRequest(http.MethodPost, "/api/installer/run", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("Expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if *called != tt.wantNext {
				t.Errorf("Expected next called=%v, got %v", tt.wantNext, *called)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	// No caller on the context
	next, called := okHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/settings/business-units", nil)
	rec := httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
	if *called {
		t.Error("Expected next not to be called")
	}

	// Member caller is rejected
	next, called = okHandler()
	member := &Caller{UserID: "u1", OrganizationID: "o1", Role: model.RoleMember}
	req = httptest.NewRequest(http.MethodPost, "/api/settings/business-units", nil)
	req = req.WithContext(context.WithValue(req.Context(), callerKey, member))
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("Expected status 403, got %d", rec.Code)
	}
	if *called {
		t.Error("Expected next not to be called")
	}

	// Admin caller passes
	next, called = okHandler()
	admin := &Caller{UserID: "u1", OrganizationID: "o1", Role: model.RoleAdmin}
	req = httptest.NewRequest(http.MethodPost, "/api/settings/business-units", nil)
	req = req.WithContext(context.WithValue(req.Context(), callerKey, admin))
	rec = httptest.NewRecorder()
	RequireAdmin(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if !*called {
		t.Error("Expected next to be called")
	}
}

func TestCallerFromContext(t *testing.T) {
	if _, ok := CallerFromContext(context.Background()); ok {
		t.Error("Expected no caller on an empty context")
	}

	caller := &Caller{UserID: "u1", OrganizationID: "o1", Email: "a@b.co", Role: model.RoleAdmin}
	ctx := context.WithValue(context.Background(), callerKey, caller)
	got, ok := CallerFromContext(ctx)
	if !ok || got.UserID != "u1" || got.OrganizationID != "o1" {
		t.Errorf("Unexpected caller: %+v", got)
	}
}
