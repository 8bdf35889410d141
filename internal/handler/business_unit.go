// internal/handler/business_unit.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	chmw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vinculocrm/vinculo/internal/domain"
	"github.com/vinculocrm/vinculo/internal/middleware"
	"github.com/vinculocrm/vinculo/internal/model"
	"github.com/vinculocrm/vinculo/internal/service"
)

type BusinessUnitHandler struct {
	unitService    *service.BusinessUnitService
	channelService *service.ChannelSettingService
}

func NewBusinessUnitHandler(unitService *service.BusinessUnitService, channelService *service.ChannelSettingService) *BusinessUnitHandler {
	return &BusinessUnitHandler{
		unitService:    unitService,
		channelService: channelService,
	}
}

// callerOrg resolves the caller's organization id or writes the error response
func callerOrg(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "No authenticated caller")
		return uuid.Nil, false
	}
	orgID, err := uuid.Parse(caller.OrganizationID)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Invalid organization")
		return uuid.Nil, false
	}
	return orgID, true
}

type BusinessUnitListResponse struct {
	BaseResponse
	BusinessUnits []*model.BusinessUnit `json:"businessUnits"`
}

func (h *BusinessUnitHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}

	units, err := h.unitService.List(r.Context(), orgID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Business unit list error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondWithJSON(w, http.StatusOK, BusinessUnitListResponse{
		BaseResponse:  BaseResponse{Ok: true},
		BusinessUnits: units,
	})
}

type BusinessUnitResponse struct {
	BaseResponse
	BusinessUnit *model.BusinessUnit `json:"businessUnit"`
}

func (h *BusinessUnitHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input service.CreateBusinessUnitInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}

	unit, err := h.unitService.Create(r.Context(), orgID, input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Business unit create error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrDuplicateBusinessUnitCode):
			respondWithError(w, http.StatusConflict, "A business unit with this code already exists")
		case errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, BusinessUnitResponse{
		BaseResponse: BaseResponse{Ok: true},
		BusinessUnit: unit,
	})
}

func (h *BusinessUnitHandler) ToggleActiveHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}
	unitID, ok := uuidParam(r, "unitID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business unit id")
		return
	}

	unit, err := h.unitService.ToggleActive(r.Context(), orgID, unitID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Business unit toggle error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrBusinessUnitNotFound):
			respondWithError(w, http.StatusNotFound, "Business unit not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BusinessUnitResponse{
		BaseResponse: BaseResponse{Ok: true},
		BusinessUnit: unit,
	})
}

type ChannelSettingsResponse struct {
	BaseResponse
	*service.ChannelSettingsView
}

func (h *BusinessUnitHandler) GetChannelsHandler(w http.ResponseWriter, r *http.Request) {
	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}
	unitID, ok := uuidParam(r, "unitID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business unit id")
		return
	}

	view, err := h.channelService.Get(r.Context(), orgID, unitID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Channel settings fetch error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrBusinessUnitNotFound):
			respondWithError(w, http.StatusNotFound, "Business unit not found")
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, ChannelSettingsResponse{
		BaseResponse:        BaseResponse{Ok: true},
		ChannelSettingsView: view,
	})
}

type ChannelSettingResponse struct {
	BaseResponse
	Setting *model.ChannelSetting `json:"setting"`
}

func (h *BusinessUnitHandler) UpsertChannelHandler(w http.ResponseWriter, r *http.Request) {
	var input service.UpsertChannelSettingInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}
	unitID, ok := uuidParam(r, "unitID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business unit id")
		return
	}

	setting, err := h.channelService.Upsert(r.Context(), orgID, unitID, input)
	if err != nil {
		slog.ErrorContext(r.Context(), "Channel settings upsert error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrBusinessUnitNotFound):
			respondWithError(w, http.StatusNotFound, "Business unit not found")
		case errors.Is(err, domain.ErrInvalidChannel):
			respondWithError(w, http.StatusBadRequest, "Unknown channel")
		case errors.Is(err, domain.ErrInvalidChannelConfig), errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, ChannelSettingResponse{
		BaseResponse: BaseResponse{Ok: true},
		Setting:      setting,
	})
}

type TestMessageRequest struct {
	Channel   model.Channel `json:"channel"`
	Recipient string        `json:"recipient"`
}

func (h *BusinessUnitHandler) SendTestHandler(w http.ResponseWriter, r *http.Request) {
	var input TestMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	orgID, ok := callerOrg(w, r)
	if !ok {
		return
	}
	unitID, ok := uuidParam(r, "unitID")
	if !ok {
		respondWithError(w, http.StatusBadRequest, "Invalid business unit id")
		return
	}

	if err := h.channelService.SendTest(r.Context(), orgID, unitID, input.Channel, input.Recipient); err != nil {
		slog.ErrorContext(r.Context(), "Channel test message error", "error", err, "requestID", chmw.GetReqID(r.Context()))
		switch {
		case errors.Is(err, domain.ErrBusinessUnitNotFound):
			respondWithError(w, http.StatusNotFound, "Business unit not found")
		case errors.Is(err, domain.ErrChannelNotConfigured):
			respondWithError(w, http.StatusBadRequest, "Channel is not configured or inactive")
		case errors.Is(err, domain.ErrInvalidChannel), errors.Is(err, domain.ErrInvalidInput):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			respondWithError(w, http.StatusInternalServerError, "Failed to send test message")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, BaseResponse{Ok: true})
}
