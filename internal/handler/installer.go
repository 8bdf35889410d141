// internal/handler/installer.go
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/vinculocrm/vinculo/internal/installer"
	"github.com/vinculocrm/vinculo/internal/platform/supabase"
)

// Installer runs the installation pipeline
type Installer interface {
	Run(ctx context.Context, input installer.Input) *installer.Report
}

// SupabaseClientFactory builds a management API client for a caller-supplied
// access token. The installer UI sends the token with each request, so the
// handler cannot hold a single long-lived client.
type SupabaseClientFactory func(accessToken string) *supabase.Client

type InstallerHandler struct {
	enabled       bool
	requiresToken bool
	orchestrator  Installer
	newSupabase   SupabaseClientFactory
}

func NewInstallerHandler(enabled bool, requiresToken bool, orchestrator Installer, newSupabase SupabaseClientFactory) *InstallerHandler {
	return &InstallerHandler{
		enabled:       enabled,
		requiresToken: requiresToken,
		orchestrator:  orchestrator,
		newSupabase:   newSupabase,
	}
}

type InstallerMetaResponse struct {
	BaseResponse
	Enabled       bool `json:"enabled"`
	RequiresToken bool `json:"requiresToken"`
}

// MetaHandler is reachable even when the installer is disabled so the
// setup UI can tell the operator why it will not run.
func (h *InstallerHandler) MetaHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, InstallerMetaResponse{
		BaseResponse:  BaseResponse{Ok: true},
		Enabled:       h.enabled,
		RequiresToken: h.requiresToken,
	})
}

type supabaseTokenRequest struct {
	AccessToken string `json:"accessToken"`
}

func (h *InstallerHandler) supabaseClient(w http.ResponseWriter, r *http.Request, req *supabaseTokenRequest) (*supabase.Client, bool) {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return nil, false
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.AccessToken) == "" {
		respondWithError(w, http.StatusBadRequest, "Access token is required")
		return nil, false
	}
	return h.newSupabase(req.AccessToken), true
}

type SupabaseProjectsResponse struct {
	BaseResponse
	Projects []supabase.Project `json:"projects"`
}

func (h *InstallerHandler) ListProjectsHandler(w http.ResponseWriter, r *http.Request) {
	var req supabaseTokenRequest
	client, ok := h.supabaseClient(w, r, &req)
	if !ok {
		return
	}

	projects, err := client.ListProjects(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Supabase project list error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusBadGateway, "Could not list projects")
		return
	}

	respondWithJSON(w, http.StatusOK, SupabaseProjectsResponse{
		BaseResponse: BaseResponse{Ok: true},
		Projects:     projects,
	})
}

type SupabaseOrganizationsResponse struct {
	BaseResponse
	Organizations []supabase.Organization `json:"organizations"`
}

func (h *InstallerHandler) ListOrganizationsHandler(w http.ResponseWriter, r *http.Request) {
	var req supabaseTokenRequest
	client, ok := h.supabaseClient(w, r, &req)
	if !ok {
		return
	}

	organizations, err := client.ListOrganizations(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Supabase organization list error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusBadGateway, "Could not list organizations")
		return
	}

	respondWithJSON(w, http.StatusOK, SupabaseOrganizationsResponse{
		BaseResponse:  BaseResponse{Ok: true},
		Organizations: organizations,
	})
}

type createProjectRequest struct {
	supabaseTokenRequest
	Name           string `json:"name"`
	OrganizationID string `json:"organizationId"`
	DBPassword     string `json:"databasePassword"`
	Region         string `json:"region"`
}

type SupabaseProjectResponse struct {
	BaseResponse
	Project *supabase.Project `json:"project"`
	URL     string            `json:"url"`
}

func (h *InstallerHandler) CreateProjectHandler(w http.ResponseWriter, r *http.Request) {
	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.AccessToken) == "" {
		respondWithError(w, http.StatusBadRequest, "Access token is required")
		return
	}

	client := h.newSupabase(req.AccessToken)
	project, err := client.CreateProject(r.Context(), supabase.CreateProjectRequest{
		Name:           req.Name,
		OrganizationID: req.OrganizationID,
		DBPassword:     req.DBPassword,
		Region:         req.Region,
	})
	if err != nil {
		slog.ErrorContext(r.Context(), "Supabase project create error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusBadGateway, "Could not create project")
		return
	}

	respondWithJSON(w, http.StatusCreated, SupabaseProjectResponse{
		BaseResponse: BaseResponse{Ok: true},
		Project:      project,
		URL:          "https://" + project.Ref + ".supabase.co",
	})
}

type listFunctionsRequest struct {
	supabaseTokenRequest
	ProjectRef string `json:"projectRef"`
}

type SupabaseFunctionsResponse struct {
	BaseResponse
	Functions []supabase.EdgeFunction `json:"functions"`
}

// ListEdgeFunctionsHandler previews the project's deployed edge
// functions so the operator can see what the run will check.
func (h *InstallerHandler) ListEdgeFunctionsHandler(w http.ResponseWriter, r *http.Request) {
	var req listFunctionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.AccessToken) == "" || strings.TrimSpace(req.ProjectRef) == "" {
		respondWithError(w, http.StatusBadRequest, "Access token and project ref are required")
		return
	}

	client := h.newSupabase(req.AccessToken)
	functions, err := client.ListEdgeFunctions(r.Context(), req.ProjectRef)
	if err != nil {
		slog.ErrorContext(r.Context(), "Supabase edge function list error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusBadGateway, "Could not list edge functions")
		return
	}

	if functions == nil {
		functions = []supabase.EdgeFunction{}
	}
	respondWithJSON(w, http.StatusOK, SupabaseFunctionsResponse{
		BaseResponse: BaseResponse{Ok: true},
		Functions:    functions,
	})
}

type resolveRequest struct {
	supabaseTokenRequest
	ProjectRef       string `json:"projectRef"`
	DatabasePassword string `json:"databasePassword"`
}

type SupabaseResolveResponse struct {
	BaseResponse
	ProjectURL     string   `json:"projectUrl"`
	AnonKey        string   `json:"anonKey"`
	ServiceRoleKey string   `json:"serviceRoleKey"`
	DatabaseURL    string   `json:"databaseUrl"`
	Warnings       []string `json:"warnings"`
}

// ResolveHandler resolves project credentials. Partial results come back
// with warnings instead of an error so the operator can continue.
func (h *InstallerHandler) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	if strings.TrimSpace(req.AccessToken) == "" || strings.TrimSpace(req.ProjectRef) == "" {
		respondWithError(w, http.StatusBadRequest, "Access token and project ref are required")
		return
	}

	client := h.newSupabase(req.AccessToken)
	creds, warnings, err := client.ResolveCredentials(r.Context(), req.ProjectRef)
	if err != nil {
		slog.ErrorContext(r.Context(), "Supabase credential resolve error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusBadGateway, "Could not resolve project credentials")
		return
	}

	if warnings == nil {
		warnings = []string{}
	}
	respondWithJSON(w, http.StatusOK, SupabaseResolveResponse{
		BaseResponse:   BaseResponse{Ok: true},
		ProjectURL:     creds.ProjectURL,
		AnonKey:        creds.AnonKey,
		ServiceRoleKey: creds.ServiceRoleKey,
		DatabaseURL:    creds.ConnString(req.DatabasePassword),
		Warnings:       warnings,
	})
}

type InstallRunResponse struct {
	BaseResponse
	Report *installer.Report `json:"report"`
}

func (h *InstallerHandler) RunHandler(w http.ResponseWriter, r *http.Request) {
	var input installer.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	report := h.orchestrator.Run(r.Context(), input)
	respondWithJSON(w, http.StatusOK, InstallRunResponse{
		BaseResponse: BaseResponse{Ok: report.OK},
		Report:       report,
	})
}
