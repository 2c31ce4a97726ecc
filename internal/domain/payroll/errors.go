package payroll

import "errors"

var (
	ErrRecordNotFound = errors.New("payroll record not found")
	ErrInvalidPeriod  = errors.New("invalid pay period")
)
