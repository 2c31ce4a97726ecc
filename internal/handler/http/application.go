package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kumulworks/hris-backend-go/internal/domain/application"
	"github.com/kumulworks/hris-backend-go/internal/handler/http/response"
	"github.com/kumulworks/hris-backend-go/internal/pkg/identity"
	applicationService "github.com/kumulworks/hris-backend-go/internal/service/application"
)

type ApplicationHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

type ApplicationHandlerImpl struct {
	service *applicationService.Service
}

func NewApplicationHandler(service *applicationService.Service) ApplicationHandler {
	return &ApplicationHandlerImpl{service: service}
}

// Submit implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	actorID, ok := identity.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	var req application.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	app, err := h.service.Submit(r.Context(), actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Application submitted", application.ToResponse(app))
}

// Get implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Application ID is required", nil)
		return
	}

	app, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, application.ToResponse(app))
}

// ListMine implements ApplicationHandler. Optional status query param.
func (h *ApplicationHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	actorID, ok := identity.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	var status *application.Status
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := application.Status(raw)
		if !s.Valid() {
			response.BadRequest(w, "Unknown status", nil)
			return
		}
		status = &s
	}

	apps, err := h.service.ListByEmployee(r.Context(), actorID, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toResponses(apps))
}

// ListPending implements ApplicationHandler. Approvers poll the queue for
// the stage they decide.
func (h *ApplicationHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	status := application.Status(r.URL.Query().Get("status"))
	if status != application.StatusPendingSupervisor && status != application.StatusPendingHR {
		response.BadRequest(w, "status must be pending_supervisor or pending_hr", nil)
		return
	}

	apps, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toResponses(apps))
}

// Approve implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	actorID, ok := identity.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	app, err := h.service.Approve(r.Context(), chi.URLParam(r, "id"), actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application approved", application.ToResponse(app))
}

// Reject implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	actorID, ok := identity.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	var req application.RejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reject decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	app, err := h.service.Reject(r.Context(), chi.URLParam(r, "id"), actorID, req.Reason)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application rejected", application.ToResponse(app))
}

// Cancel implements ApplicationHandler.
func (h *ApplicationHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	actorID, ok := identity.ActorFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Missing employee identity")
		return
	}

	app, err := h.service.Cancel(r.Context(), chi.URLParam(r, "id"), actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Application cancelled", application.ToResponse(app))
}

func toResponses(apps []application.Application) []application.Response {
	views := make([]application.Response, 0, len(apps))
	for _, app := range apps {
		views = append(views, application.ToResponse(app))
	}
	return views
}
