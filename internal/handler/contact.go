// internal/handler/contact.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"

	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/service"
)

type ContactHandler struct {
	linkService       *service.ContactLinkService
	preferenceService *service.ChannelPreferenceService
}

func NewContactHandler(linkService *service.ContactLinkService, preferenceService *service.ChannelPreferenceService) *ContactHandler {
	return &ContactHandler{
		linkService:       linkService,
		preferenceService: preferenceService,
	}
}

type ContactLinksResponse struct {
	BaseResponse
	*service.ContactLinksView
}

func (h *ContactHandler) GetLinksHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}
	contactID, ok := uuidParam(r, "contactID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	view, err := h.linkService.GetLinks(r.Context(), orgID, contactID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Contact links fetch error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrContactNotFound):
			respondWithError(w, http.StatusNotFound, "Contact not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, ContactLinksResponse{
		BaseResponse:     BaseResponse{Ok: true},
		ContactLinksView: view,
	})
}

type SetLinksRequest struct {
	Links []service.LinkItem `json:"links"`
}

func (h *ContactHandler) SetLinksHandler(w http.ResponseWriter, r *http.Request) {
	var input SetLinksRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}
	contactID, ok := uuidParam(r, "contactID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	if err := h.linkService.SetLinks(r.Context(), orgID, contactID, input.Links); err != nil {
		slog.ErrorContext(r.Context(), "Contact links update error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrContactNotFound):
			respondWithError(w, http.StatusNotFound, "Contact not found")
		case errors.Is(err, domain.ErrUnknownBusinessUnit):
			respondWithError(w, http.StatusBadRequest, "One or more business units do not belong to this organization")
		case errors.Is(err, domain.ErrInvalidRelationship), errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}

type ChannelPreferencesResponse struct {
	BaseResponse
	*service.ChannelPreferencesView
}

func (h *ContactHandler) GetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}
	contactID, ok := uuidParam(r, "contactID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	view, err := h.preferenceService.GetPreferences(r.Context(), orgID, contactID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Channel preferences fetch error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrContactNotFound):
			respondWithError(w, http.StatusNotFound, "Contact not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, ChannelPreferencesResponse{
		BaseResponse:           BaseResponse{Ok: true},
		ChannelPreferencesView: view,
	})
}

type SetPreferencesRequest struct {
	Preferences []service.PreferenceItem `json:"preferences"`
}

func (h *ContactHandler) SetPreferencesHandler(w http.ResponseWriter, r *http.Request) {
	var input SetPreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}
	contactID, ok := uuidParam(r, "contactID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid contact id")
		return
	}

	if err := h.preferenceService.SetPreferences(r.Context(), orgID, contactID, input.Preferences); err != nil {
		slog.ErrorContext(r.Context(), "Channel preferences update error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrContactNotFound):
			respondWithError(w, http.StatusNotFound, "Contact not found")
		case errors.Is(err, domain.ErrBusinessUnitNotLinked):
			respondWithError(w, http.StatusBadRequest, "Preferences may only target business units linked to the contact")
		case errors.Is(err, domain.ErrInvalidChannel), errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
