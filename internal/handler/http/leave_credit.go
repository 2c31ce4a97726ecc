package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/domain/leavecredit"
	"github.com/kumulworks/hris-backend-go/internal/handler/http/response"
	leavecreditService "github.com/kumulworks/hris-backend-go/internal/service/leavecredit"
)

type LeaveCreditHandler interface {
	Grant(w http.ResponseWriter, r *http.Request)
	Adjust(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
}

type LeaveCreditHandlerImpl struct {
	service *leavecreditService.Service
}

func NewLeaveCreditHandler(service *leavecreditService.Service) LeaveCreditHandler {
	return &LeaveCreditHandlerImpl{service: service}
}

// Grant implements LeaveCreditHandler.
func (h *LeaveCreditHandlerImpl) Grant(w http.ResponseWriter, r *http.Request) {
	var req leavecredit.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Grant decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	balance, err := h.service.Grant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave credit granted", leavecredit.CategoryBalance{
		Total:     balance.Total.StringFixed(2),
		Used:      balance.Used.StringFixed(2),
		Remaining: balance.Remaining().StringFixed(2),
	})
}

type adjustCreditRequest struct {
	EmployeeID string `json:"employee_id"`
	Category   string `json:"category"`
	Year       int    `json:"year"`
	Amount     string `json:"amount"`

	// "debit" consumes credit, "credit" restores it.
	Direction string `json:"direction"`
}

// Adjust implements LeaveCreditHandler. Manual corrections by HR ride the
// same conditional updates as approval debits.
func (h *LeaveCreditHandlerImpl) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustCreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Adjust decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		response.BadRequest(w, "amount must be a decimal string", nil)
		return
	}

	category := leavecredit.Category(req.Category)
	switch req.Direction {
	case "debit":
		err = h.service.Debit(r.Context(), req.EmployeeID, category, req.Year, amount)
	case "credit":
		err = h.service.Credit(r.Context(), req.EmployeeID, category, req.Year, amount)
	default:
		response.BadRequest(w, "direction must be debit or credit", nil)
		return
	}
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave credit adjusted", nil)
}

// Delete implements LeaveCreditHandler.
func (h *LeaveCreditHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	category := leavecredit.Category(chi.URLParam(r, "category"))
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		response.BadRequest(w, "year must be an integer", nil)
		return
	}

	if err := h.service.Delete(r.Context(), employeeID, category, year); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave credit balance deleted", nil)
}

// GetBalance implements LeaveCreditHandler.
func (h *LeaveCreditHandlerImpl) GetBalance(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year query param is required", nil)
		return
	}

	sheet, err := h.service.GetBalance(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, sheet)
}
