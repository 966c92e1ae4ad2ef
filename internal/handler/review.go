package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/rsawant/invest-engine/internal/domain"
	"github.com/rsawant/invest-engine/internal/service"
	"github.com/rsawant/invest-engine/internal/workflow"
	"github.com/rsawant/invest-engine/pkg/response"
)

type ReviewHandler struct {
	service   *service.ReviewService
	validator *validator.Validate
}

func NewReviewHandler(service *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:   service,
		validator: validator.New(),
	}
}

// CreateEntity registers a reviewable entity (business, project or capital
// instrument) at its initial review status.
func (h *ReviewHandler) CreateEntity(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateEntityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	entity, err := h.service.CreateEntity(r.Context(), domain.EntityKind(req.Kind), req.Payload)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Created(w, entity)
}

// GetEntity returns an entity with its full review history.
func (h *ReviewHandler) GetEntity(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["entityId"]

	entity, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, entity)
}

// Decide applies a reviewer decision to an entity.
func (h *ReviewHandler) Decide(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["entityId"]

	var req domain.DecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	decision := workflow.Decision{
		Action:  domain.Action(req.Action),
		ActorID: req.ActorID,
		Comment: req.Comment,
	}
	if req.Checklist != nil {
		decision.Checklist = domain.ChecklistFromItems(req.Checklist)
	}

	entity, err := h.service.Decide(r.Context(), id, decision)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, entity)
}

// Resubmit returns an entity in RECHECK to its decidable status.
func (h *ReviewHandler) Resubmit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["entityId"]

	var req domain.ResubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body", err)
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		response.BadRequest(w, "validation failed", err)
		return
	}

	entity, err := h.service.Resubmit(r.Context(), id, req.ActorID)
	if err != nil {
		writeError(w, err)
		return
	}

	response.Success(w, entity)
}
