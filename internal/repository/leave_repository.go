package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-service/internal/domain"
)

const leaveColumns = `id, employee_id, employee_name, leave_type, start_date, end_date, days, status,
               reason, manager_id, submitted_at, reviewed_at`

type leaveRepository struct {
	pool *pgxpool.Pool
}

// NewLeaveRepository returns a Postgres-backed implementation.
func NewLeaveRepository(pool *pgxpool.Pool) LeaveRepository {
	return &leaveRepository{pool: pool}
}

func (r *leaveRepository) Create(ctx context.Context, req *domain.LeaveRequest) error {
	const query = `
        INSERT INTO leave_requests (id, employee_id, employee_name, leave_type, start_date, end_date, days,
            status, reason, manager_id, submitted_at, reviewed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	_, err := r.pool.Exec(ctx, query,
		req.ID,
		req.EmployeeID,
		req.EmployeeName,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.Days,
		req.Status,
		req.Reason,
		req.ManagerID,
		req.SubmittedAt,
		req.ReviewedAt,
	)
	return translatePgError(err)
}

func (r *leaveRepository) Update(ctx context.Context, req *domain.LeaveRequest) error {
	const query = `
        UPDATE leave_requests SET leave_type=$1, start_date=$2, end_date=$3, days=$4, status=$5,
            reason=$6, manager_id=$7, reviewed_at=$8
        WHERE id=$9`
	cmd, err := r.pool.Exec(ctx, query,
		req.Type,
		req.StartDate,
		req.EndDate,
		req.Days,
		req.Status,
		req.Reason,
		req.ManagerID,
		req.ReviewedAt,
		req.ID,
	)
	if err != nil {
		return translatePgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM leave_requests WHERE id=$1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE id=$1`
	req, err := scanLeave(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translatePgError(err)
	}
	return req, nil
}

func (r *leaveRepository) List(ctx context.Context, filter LeaveFilter) ([]domain.LeaveRequest, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id=$%d", len(args)))
	}
	if filter.ManagerID != nil {
		args = append(args, *filter.ManagerID)
		clauses = append(clauses, fmt.Sprintf("manager_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	query := `SELECT ` + leaveColumns + ` FROM leave_requests WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY submitted_at, id`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []domain.LeaveRequest
	for rows.Next() {
		req, err := scanLeave(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

func scanLeave(row pgx.Row) (*domain.LeaveRequest, error) {
	var req domain.LeaveRequest
	if err := row.Scan(
		&req.ID,
		&req.EmployeeID,
		&req.EmployeeName,
		&req.Type,
		&req.StartDate,
		&req.EndDate,
		&req.Days,
		&req.Status,
		&req.Reason,
		&req.ManagerID,
		&req.SubmittedAt,
		&req.ReviewedAt,
	); err != nil {
		return nil, err
	}
	req.StartDate = domain.NormalizeDate(req.StartDate)
	req.EndDate = domain.NormalizeDate(req.EndDate)
	return &req, nil
}
