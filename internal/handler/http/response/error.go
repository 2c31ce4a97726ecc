package response

import (
	"errors"
	"net/http"

	"github.com/kumulworks/hris-backend-go/internal/domain/application"
	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
	"github.com/kumulworks/hris-backend-go/internal/domain/employee"
	"github.com/kumulworks/hris-backend-go/internal/domain/leavecredit"
	"github.com/kumulworks/hris-backend-go/internal/domain/payroll"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
	"github.com/kumulworks/hris-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrDuplicateRecord):
		Conflict(w, "Attendance record already exists for this date")
	case errors.Is(err, attendance.ErrAbsentHasPunch):
		BadRequest(w, "Absent record cannot carry punches", nil)

	// Leave credit domain errors
	case errors.Is(err, leavecredit.ErrBalanceNotFound):
		NotFound(w, "Leave credit balance not found")
	case errors.Is(err, leavecredit.ErrInvalidAmount):
		BadRequest(w, "Amount must be positive", nil)
	case errors.Is(err, leavecredit.ErrInsufficientCredit):
		BadRequest(w, "Insufficient leave credit", nil)

	// Application domain errors
	case errors.Is(err, application.ErrNotFound):
		NotFound(w, "Application not found")
	case errors.Is(err, application.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, application.ErrStatusConflict):
		Conflict(w, "Application was updated concurrently")
	case errors.Is(err, application.ErrNotSubmitter):
		Forbidden(w, "Only the submitter may cancel an application")
	case errors.Is(err, application.ErrNotAuthorized):
		Forbidden(w, "Not authorized to decide this application")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)

	// Infrastructure
	case errors.Is(err, database.ErrStoreTimeout):
		ServiceUnavailable(w, "Store operation timed out")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
