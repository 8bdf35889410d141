// internal/handler/auth.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/middleware"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type LoginStatus string

const (
	LoginStatusSuccess LoginStatus = "success"
	LoginStatusFailed  LoginStatus = "login_failed"
)

type LoginResponse struct {
	BaseResponse
	Status  LoginStatus    `json:"status"`
	Profile *model.Profile `json:"profile,omitempty"`
	Token   string         `json:"token,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var input service.LoginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	output, err := h.authService.Login(r.Context(), input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Profile login error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			respondWithJSON(w, http.StatusUnauthorized, LoginResponse{
				Status: LoginStatusFailed,
				Error:  "Invalid email or password",
			})
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, LoginResponse{
		BaseResponse: BaseResponse{Ok: true},
		Status:       LoginStatusSuccess,
		Profile:      output.Profile,
		Token:        output.Token,
	})
}

type MeResponse struct {
	BaseResponse
	Profile *model.Profile `json:"profile"`
}

func (h *AuthHandler) MeHandler(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No authenticated caller")
		return
	}

	profile, err := h.authService.FindProfile(r.Context(), caller.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Profile lookup error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			respondWithError(w, http.StatusNotFound, "Profile not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, MeResponse{
		BaseResponse: BaseResponse{Ok: true},
		Profile:      profile,
	})
}
