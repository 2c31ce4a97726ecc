package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
)

type Service struct {
	records attendance.Repository
	policy  attendance.ZeroPolicy
}

func NewService(records attendance.Repository, policy attendance.ZeroPolicy) *Service {
	return &Service{records: records, policy: policy}
}

func (s *Service) Create(ctx context.Context, req attendance.CreateRecordRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	if attendance.Status(req.Status) == attendance.StatusAbsent &&
		anyPunch(req.AMIn, req.AMOut, req.PMIn, req.PMOut) {
		return attendance.Record{}, attendance.ErrAbsentHasPunch
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	rec := attendance.Record{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
	}
	rec.AMIn = parseOptionalClock(req.AMIn)
	rec.AMOut = parseOptionalClock(req.AMOut)
	rec.PMIn = parseOptionalClock(req.PMIn)
	rec.PMOut = parseOptionalClock(req.PMOut)

	created, err := s.records.Create(ctx, rec)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}
	return created, nil
}

// ReplacePunches overwrites all four punches at once. Partial edits are not
// supported; the caller sends the full set it wants stored.
func (s *Service) ReplacePunches(ctx context.Context, id string, req attendance.ReplacePunchesRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	if attendance.Status(req.Status) == attendance.StatusAbsent &&
		anyPunch(req.AMIn, req.AMOut, req.PMIn, req.PMOut) {
		return attendance.Record{}, attendance.ErrAbsentHasPunch
	}
	if _, err := s.records.GetByID(ctx, id); err != nil {
		return attendance.Record{}, err
	}

	err := s.records.ReplacePunches(ctx, id,
		parseOptionalClock(req.AMIn),
		parseOptionalClock(req.AMOut),
		parseOptionalClock(req.PMIn),
		parseOptionalClock(req.PMOut),
		attendance.Status(req.Status),
	)
	if err != nil {
		return attendance.Record{}, fmt.Errorf("failed to replace punches: %w", err)
	}
	return s.records.GetByID(ctx, id)
}

// MarkAbsent records an absence for the day. An existing record is
// overwritten with cleared punches; a missing one is created.
func (s *Service) MarkAbsent(ctx context.Context, req attendance.MarkAbsentRequest) (attendance.Record, error) {
	if err := req.Validate(); err != nil {
		return attendance.Record{}, err
	}
	date, _ := time.Parse("2006-01-02", req.Date)

	existing, err := s.records.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil {
		if errors.Is(err, attendance.ErrRecordNotFound) {
			return s.records.Create(ctx, attendance.Record{
				EmployeeID: req.EmployeeID,
				Date:       date,
				Status:     attendance.StatusAbsent,
			})
		}
		return attendance.Record{}, err
	}

	if err := s.records.ReplacePunches(ctx, existing.ID, nil, nil, nil, nil, attendance.StatusAbsent); err != nil {
		return attendance.Record{}, fmt.Errorf("failed to mark absent: %w", err)
	}
	return s.records.GetByID(ctx, existing.ID)
}

func (s *Service) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	return s.records.GetByID(ctx, id)
}

func (s *Service) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	return s.records.ListByEmployeeAndRange(ctx, employeeID, from, to)
}

// WorkedHours applies the configured zero-punch policy.
func (s *Service) WorkedHours(rec attendance.Record) string {
	return rec.WorkedHours(s.policy).StringFixed(2)
}

func (s *Service) Policy() attendance.ZeroPolicy {
	return s.policy
}

func anyPunch(punches ...*string) bool {
	for _, p := range punches {
		if p != nil {
			return true
		}
	}
	return false
}

func parseOptionalClock(v *string) *attendance.Clock {
	if v == nil || *v == "" {
		return nil
	}
	c, err := attendance.ParseClock(*v)
	if err != nil {
		return nil
	}
	return &c
}
