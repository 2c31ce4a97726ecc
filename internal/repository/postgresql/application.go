package postgresql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kumulworks/hris-backend-go/internal/domain/application"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
)

type applicationRepositoryImpl struct {
	db *database.DB
}

func NewApplicationRepository(db *database.DB) application.Repository {
	return &applicationRepositoryImpl{db: db}
}

const applicationColumns = `
	id, employee_id, type,
	leave_type, leave_duration, half_day_period, overtime_type,
	date_from, date_to, time_from, time_to,
	purpose, status, rejection_reason,
	created_at, decided_at
`

// Create implements application.Repository.
func (r *applicationRepositoryImpl) Create(ctx context.Context, app application.Application) (application.Application, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO applications (
			id, employee_id, type,
			leave_type, leave_duration, half_day_period, overtime_type,
			date_from, date_to, time_from, time_to,
			purpose, status, created_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, NOW()
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		app.EmployeeID, app.Type,
		app.LeaveType, app.LeaveDuration, app.HalfDayPeriod, app.OvertimeType,
		app.DateFrom, app.DateTo, clockText(app.TimeFrom), clockText(app.TimeTo),
		app.Purpose, app.Status,
	).Scan(&app.ID, &app.CreatedAt)
	if err != nil {
		return application.Application{}, err
	}
	return app, nil
}

// GetByID implements application.Repository.
func (r *applicationRepositoryImpl) GetByID(ctx context.Context, id string) (application.Application, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `SELECT ` + applicationColumns + ` FROM applications WHERE id = $1`

	return scanApplication(q.QueryRow(ctx, query, id))
}

// ListByEmployee implements application.Repository.
func (r *applicationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, status *application.Status) ([]application.Application, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE employee_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

// ListByStatus implements application.Repository.
func (r *applicationRepositoryImpl) ListByStatus(ctx context.Context, status application.Status) ([]application.Application, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE status = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

// UpdateStatus implements application.Repository. The expected status rides
// in the WHERE clause; losing the swap is reported as ErrStatusConflict so
// the service can re-read and report the real state.
func (r *applicationRepositoryImpl) UpdateStatus(ctx context.Context, id string, from, to application.Status, reason *string, decidedAt *time.Time) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE applications
		SET status = $3, rejection_reason = $4, decided_at = $5
		WHERE id = $1 AND status = $2
	`

	commandTag, err := q.Exec(ctx, query, id, from, to, reason, decidedAt)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return application.ErrNotFound
		}
		return application.ErrStatusConflict
	}
	return nil
}

// ListApprovedOvertimeOverlapping implements application.Repository.
func (r *applicationRepositoryImpl) ListApprovedOvertimeOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]application.Application, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT ` + applicationColumns + `
		FROM applications
		WHERE employee_id = $1
		  AND type = 'overtime'
		  AND status = 'approved'
		  AND date_from <= $3 AND date_to >= $2
		ORDER BY date_from
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectApplications(rows)
}

func collectApplications(rows pgx.Rows) ([]application.Application, error) {
	apps := make([]application.Application, 0)
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}
	return apps, rows.Err()
}

func scanApplication(row pgx.Row) (application.Application, error) {
	var app application.Application
	var leaveType, leaveDuration, halfDayPeriod, overtimeType *string
	var timeFrom, timeTo *string

	err := row.Scan(
		&app.ID, &app.EmployeeID, &app.Type,
		&leaveType, &leaveDuration, &halfDayPeriod, &overtimeType,
		&app.DateFrom, &app.DateTo, &timeFrom, &timeTo,
		&app.Purpose, &app.Status, &app.RejectionReason,
		&app.CreatedAt, &app.DecidedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return application.Application{}, application.ErrNotFound
		}
		return application.Application{}, err
	}

	if leaveType != nil {
		lt := application.LeaveType(*leaveType)
		app.LeaveType = &lt
	}
	if leaveDuration != nil {
		ld := application.LeaveDuration(*leaveDuration)
		app.LeaveDuration = &ld
	}
	if halfDayPeriod != nil {
		hp := application.HalfDayPeriod(*halfDayPeriod)
		app.HalfDayPeriod = &hp
	}
	if overtimeType != nil {
		ot := application.OvertimeType(*overtimeType)
		app.OvertimeType = &ot
	}
	if app.TimeFrom, err = textClock(timeFrom); err != nil {
		return application.Application{}, err
	}
	if app.TimeTo, err = textClock(timeTo); err != nil {
		return application.Application{}, err
	}
	return app, nil
}
