package attendance

import (
	"github.com/kumulworks/hris-backend-go/internal/pkg/validator"
)

// CreateRecordRequest covers manual entry and biometric import. Punches are
// HH:MM[:SS] strings or omitted; absent records carry no punches.
type CreateRecordRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	AMIn       *string `json:"am_in"`
	AMOut      *string `json:"am_out"`
	PMIn       *string `json:"pm_in"`
	PMOut      *string `json:"pm_out"`
	Status     string  `json:"status"`
}

func (r CreateRecordRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = errs.Add("employee_id", "is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = errs.Add("date", "must be YYYY-MM-DD")
	}
	if !Status(r.Status).Valid() {
		errs = errs.Add("status", "must be present, late or absent")
	}
	errs = validatePunches(errs, map[string]*string{
		"am_in": r.AMIn, "am_out": r.AMOut, "pm_in": r.PMIn, "pm_out": r.PMOut,
	})
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ReplacePunchesRequest carries all four punches; a partial punch update is
// rejected so a half-day pair is always replaced atomically.
type ReplacePunchesRequest struct {
	AMIn   *string `json:"am_in"`
	AMOut  *string `json:"am_out"`
	PMIn   *string `json:"pm_in"`
	PMOut  *string `json:"pm_out"`
	Status string  `json:"status"`
}

func (r ReplacePunchesRequest) Validate() error {
	var errs validator.ValidationErrors
	if !Status(r.Status).Valid() {
		errs = errs.Add("status", "must be present, late or absent")
	}
	errs = validatePunches(errs, map[string]*string{
		"am_in": r.AMIn, "am_out": r.AMOut, "pm_in": r.PMIn, "pm_out": r.PMOut,
	})
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePunches(errs validator.ValidationErrors, punches map[string]*string) validator.ValidationErrors {
	for field, value := range punches {
		if value != nil && !validator.IsValidClock(*value) {
			errs = errs.Add(field, "must be HH:MM or HH:MM:SS")
		}
	}
	return errs
}

// MarkAbsentRequest issues a system "mark absent" record.
type MarkAbsentRequest struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
}

func (r MarkAbsentRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = errs.Add("employee_id", "is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = errs.Add("date", "must be YYYY-MM-DD")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RecordResponse is the attendance view returned to clients, with the worked
// duration already computed for display.
type RecordResponse struct {
	ID          string  `json:"id"`
	EmployeeID  string  `json:"employee_id"`
	Date        string  `json:"date"`
	AMIn        *string `json:"am_in"`
	AMOut       *string `json:"am_out"`
	PMIn        *string `json:"pm_in"`
	PMOut       *string `json:"pm_out"`
	Status      string  `json:"status"`
	WorkedHours string  `json:"worked_hours"`
}

func ToResponse(r Record, pol ZeroPolicy) RecordResponse {
	clockString := func(c *Clock) *string {
		if c == nil {
			return nil
		}
		s := c.String()
		return &s
	}
	return RecordResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		Date:        r.Date.Format("2006-01-02"),
		AMIn:        clockString(r.AMIn),
		AMOut:       clockString(r.AMOut),
		PMIn:        clockString(r.PMIn),
		PMOut:       clockString(r.PMOut),
		Status:      string(r.Status),
		WorkedHours: r.WorkedHours(pol).StringFixed(2),
	}
}
