package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/kumulworks/hris-backend-go/internal/domain/leavecredit"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
)

type leaveCreditRepositoryImpl struct {
	db *database.DB
}

func NewLeaveCreditRepository(db *database.DB) leavecredit.Repository {
	return &leaveCreditRepositoryImpl{db: db}
}

// Upsert implements leavecredit.Repository.
func (r *leaveCreditRepositoryImpl) Upsert(ctx context.Context, balance leavecredit.Balance) (leavecredit.Balance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		INSERT INTO leave_credit_balances (
			id, employee_id, category, year, total, used, created_at, updated_at
		) VALUES (
			uuidv7(), $1, $2, $3, $4, $5, NOW(), NOW()
		)
		ON CONFLICT (employee_id, category, year)
		DO UPDATE SET total = EXCLUDED.total, used = EXCLUDED.used, updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.Category, balance.Year,
		balance.Total, balance.Used,
	).Scan(&balance.ID, &balance.CreatedAt, &balance.UpdatedAt)
	if err != nil {
		return leavecredit.Balance{}, err
	}
	return balance, nil
}

// GetByEmployeeCategoryYear implements leavecredit.Repository.
func (r *leaveCreditRepositoryImpl) GetByEmployeeCategoryYear(ctx context.Context, employeeID string, category leavecredit.Category, year int) (leavecredit.Balance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, category, year, total, used, created_at, updated_at
		FROM leave_credit_balances
		WHERE employee_id = $1 AND category = $2 AND year = $3
	`

	var balance leavecredit.Balance
	err := q.QueryRow(ctx, query, employeeID, category, year).Scan(
		&balance.ID, &balance.EmployeeID, &balance.Category, &balance.Year,
		&balance.Total, &balance.Used, &balance.CreatedAt, &balance.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return leavecredit.Balance{}, leavecredit.ErrBalanceNotFound
		}
		return leavecredit.Balance{}, err
	}
	return balance, nil
}

// GetByEmployeeYear implements leavecredit.Repository.
func (r *leaveCreditRepositoryImpl) GetByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leavecredit.Balance, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, employee_id, category, year, total, used, created_at, updated_at
		FROM leave_credit_balances
		WHERE employee_id = $1 AND year = $2
		ORDER BY category
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	balances := make([]leavecredit.Balance, 0)
	for rows.Next() {
		var balance leavecredit.Balance
		if err := rows.Scan(
			&balance.ID, &balance.EmployeeID, &balance.Category, &balance.Year,
			&balance.Total, &balance.Used, &balance.CreatedAt, &balance.UpdatedAt,
		); err != nil {
			return nil, err
		}
		balances = append(balances, balance)
	}
	return balances, rows.Err()
}

// Debit implements leavecredit.Repository. The guard rides in the WHERE
// clause so two concurrent debits against the same balance serialize on the
// row; the loser sees the updated used value and re-evaluates the guard.
func (r *leaveCreditRepositoryImpl) Debit(ctx context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE leave_credit_balances
		SET used = used + $4, updated_at = NOW()
		WHERE employee_id = $1 AND category = $2 AND year = $3
		  AND used + $4 <= total
	`

	commandTag, err := q.Exec(ctx, query, employeeID, category, year, amount)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		if _, err := r.GetByEmployeeCategoryYear(ctx, employeeID, category, year); err != nil {
			return err
		}
		return leavecredit.ErrInsufficientCredit
	}
	return nil
}

// Credit implements leavecredit.Repository.
func (r *leaveCreditRepositoryImpl) Credit(ctx context.Context, employeeID string, category leavecredit.Category, year int, amount decimal.Decimal) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		UPDATE leave_credit_balances
		SET used = GREATEST(used - $4, 0), updated_at = NOW()
		WHERE employee_id = $1 AND category = $2 AND year = $3
	`

	commandTag, err := q.Exec(ctx, query, employeeID, category, year, amount)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return leavecredit.ErrBalanceNotFound
	}
	return nil
}

// Delete implements leavecredit.Repository.
func (r *leaveCreditRepositoryImpl) Delete(ctx context.Context, employeeID string, category leavecredit.Category, year int) error {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		DELETE FROM leave_credit_balances
		WHERE employee_id = $1 AND category = $2 AND year = $3
	`

	_, err := q.Exec(ctx, query, employeeID, category, year)
	return err
}
