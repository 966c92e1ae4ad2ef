package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/rsawant/invest-engine/internal/domain"
	"github.com/rsawant/invest-engine/internal/service"
	"github.com/rsawant/invest-engine/pkg/response"
)

type SchemeHandler struct {
	service   *service.SchemeService
	validator *validator.Validate
}

func NewSchemeHandler(service *service.SchemeService) *SchemeHandler {
	return &SchemeHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateScheme validates a scheme draft and enters it into the approval
// pipeline.
func (h *SchemeHandler) CreateScheme(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateSchemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	resp, err := h.service.CreateScheme(r.Context(), &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, resp)
}

func (h *SchemeHandler) GetScheme(w http.ResponseWriter, r *http.Request) {
	schemeID := mux.Vars(r)["schemeId"]

	resp, err := h.service.GetScheme(r.Context(), schemeID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, resp)
}

// GetReferenceSchedule returns the timeline materialized at approval.
func (h *SchemeHandler) GetReferenceSchedule(w http.ResponseWriter, r *http.Request) {
	schemeID := mux.Vars(r)["schemeId"]

	resp, err := h.service.GetReferenceSchedule(r.Context(), schemeID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, resp)
}

// Project answers the what-if returns preview for ?principal=.
func (h *SchemeHandler) Project(w http.ResponseWriter, r *http.Request) {
	schemeID := mux.Vars(r)["schemeId"]

	principal, err := decimal.NewFromString(r.URL.Query().Get("principal"))
	if err != nil {
		response.BadRequest(w, "principal must be a valid decimal", err)
		return
	}

	resp, err := h.service.Project(r.Context(), schemeID, principal)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, resp)
}

// RegisterDeposit records a deposit into an approved scheme.
func (h *SchemeHandler) RegisterDeposit(w http.ResponseWriter, r *http.Request) {
	schemeID := mux.Vars(r)["schemeId"]

	var req domain.CreateDepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	resp, err := h.service.RegisterDeposit(r.Context(), schemeID, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, resp)
}

// GetDepositSchedule returns a deposit's materialized timeline.
func (h *SchemeHandler) GetDepositSchedule(w http.ResponseWriter, r *http.Request) {
	depositID := mux.Vars(r)["depositId"]

	resp, err := h.service.GetDepositSchedule(r.Context(), depositID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, resp)
}
