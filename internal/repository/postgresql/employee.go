package postgresql

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/kumulworks/hris-backend-go/internal/domain/employee"
	"github.com/kumulworks/hris-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepositoryImpl{db: db}
}

// GetByID implements employee.Repository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := database.QuerierFrom(ctx, r.db)

	query := `
		SELECT id, full_name, supervisor_id, department_id,
			   base_salary, hourly_rate, bonuses, other_deductions,
			   created_at, updated_at
		FROM employees
		WHERE id = $1
	`

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.FullName, &emp.SupervisorID, &emp.DepartmentID,
		&emp.BaseSalary, &emp.HourlyRate, &emp.Bonuses, &emp.OtherDeductions,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}
