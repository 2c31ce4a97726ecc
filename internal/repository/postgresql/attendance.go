package postgresql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kumulworks/hris-backend-go/internal/domain/attendance"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepositoryImpl{db: db}
}

// Create implements attendance.Repository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date,
			am_in, am_out, pm_in, pm_out,
			status, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2,
			$3, $4, $5, $6,
			$7, NOW(), NOW()
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Date,
		clockText(record.AMIn), clockText(record.AMOut),
		clockText(record.PMIn), clockText(record.PMOut),
		record.Status,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return attendance.Record{}, attendance.ErrDuplicateRecord
		}
		return attendance.Record{}, err
	}
	return record, nil
}

// GetByID implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, date, am_in, am_out, pm_in, pm_out,
			   status, created_at, updated_at
		FROM attendance_records
		WHERE id = $1
	`

	return scanRecord(q.QueryRow(ctx, query, id))
}

// GetByEmployeeAndDate implements attendance.Repository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, date, am_in, am_out, pm_in, pm_out,
			   status, created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND date = $2
	`

	return scanRecord(q.QueryRow(ctx, query, employeeID, date))
}

// ListByEmployeeAndRange implements attendance.Repository.
func (r *attendanceRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, date, am_in, am_out, pm_in, pm_out,
			   status, created_at, updated_at
		FROM attendance_records
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]attendance.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// ReplacePunches implements attendance.Repository.
func (r *attendanceRepositoryImpl) ReplacePunches(ctx context.Context, id string, amIn, amOut, pmIn, pmOut *attendance.Clock, status attendance.Status) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE attendance_records
		SET am_in = $2, am_out = $3, pm_in = $4, pm_out = $5,
			status = $6, updated_at = NOW()
		WHERE id = $1
	`

	commandTag, err := q.Exec(ctx, query, id,
		clockText(amIn), clockText(amOut), clockText(pmIn), clockText(pmOut),
		status,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}
	return nil
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var record attendance.Record
	var amIn, amOut, pmIn, pmOut *string

	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.Date,
		&amIn, &amOut, &pmIn, &pmOut,
		&record.Status, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, err
	}

	if record.AMIn, err = textClock(amIn); err != nil {
		return attendance.Record{}, err
	}
	if record.AMOut, err = textClock(amOut); err != nil {
		return attendance.Record{}, err
	}
	if record.PMIn, err = textClock(pmIn); err != nil {
		return attendance.Record{}, err
	}
	if record.PMOut, err = textClock(pmOut); err != nil {
		return attendance.Record{}, err
	}
	return record, nil
}

// Punches are stored as HH:MM:SS text; NULL means the punch was never made.
func clockText(c *attendance.Clock) *string {
	if c == nil {
		return nil
	}
	s := c.String()
	return &s
}

func textClock(s *string) (*attendance.Clock, error) {
	if s == nil {
		return nil, nil
	}
	c, err := attendance.ParseClock(*s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
