package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kumulworks/hris-backend-go/internal/domain/payroll"
	"github.com/kumulworks/hris-backend-go/internal/handler/http/response"
	payrollService "github.com/kumulworks/hris-backend-go/internal/service/payroll"
)

type PayrollHandler interface {
	Compute(w http.ResponseWriter, r *http.Request)
	Recompute(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	service *payrollService.Service
}

func NewPayrollHandler(service *payrollService.Service) PayrollHandler {
	return &PayrollHandlerImpl{service: service}
}

// Compute implements PayrollHandler. Recomputing an existing period replaces
// the stored record.
func (h *PayrollHandlerImpl) Compute(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Compute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.service.Compute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll computed", payroll.ToResponse(record))
}

// Recompute implements PayrollHandler.
func (h *PayrollHandlerImpl) Recompute(w http.ResponseWriter, r *http.Request) {
	var req payroll.ComputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Recompute decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.service.Recompute(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll recomputed", payroll.ToResponse(record))
}

// Get implements PayrollHandler.
func (h *PayrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}

	record, err := h.service.GetByEmployeePeriod(r.Context(), employeeID, period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, payroll.ToResponse(record))
}

// List implements PayrollHandler.
func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	period, ok := periodFromQuery(w, r)
	if !ok {
		return
	}

	records, err := h.service.ListByPeriod(r.Context(), period)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	views := make([]payroll.RecordResponse, 0, len(records))
	for _, record := range records {
		views = append(views, payroll.ToResponse(record))
	}
	response.Success(w, views)
}

func periodFromQuery(w http.ResponseWriter, r *http.Request) (payroll.Period, bool) {
	start, err := time.Parse("2006-01-02", r.URL.Query().Get("period_start"))
	if err != nil {
		response.BadRequest(w, "period_start must be YYYY-MM-DD", nil)
		return payroll.Period{}, false
	}
	end, err := time.Parse("2006-01-02", r.URL.Query().Get("period_end"))
	if err != nil {
		response.BadRequest(w, "period_end must be YYYY-MM-DD", nil)
		return payroll.Period{}, false
	}
	if end.Before(start) {
		response.BadRequest(w, "period_end must not be before period_start", nil)
		return payroll.Period{}, false
	}
	return payroll.Period{Start: start, End: end}, true
}
