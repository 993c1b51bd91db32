package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/hr-service/internal/domain"
)

const timesheetColumns = `id, employee_id, employee_name, month, status, entries, submitted_at,
               rejection_reason, created_at, reviewed_at`

type timesheetRepository struct {
	pool *pgxpool.Pool
}

// NewTimesheetRepository returns a Postgres-backed implementation.
func NewTimesheetRepository(pool *pgxpool.Pool) TimesheetRepository {
	return &timesheetRepository{pool: pool}
}

func (r *timesheetRepository) Create(ctx context.Context, ts *domain.Timesheet) error {
	entries, err := json.Marshal(NewEntryRecords(ts.Entries))
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	const query = `
        INSERT INTO timesheets (id, employee_id, employee_name, month, status, entries, submitted_at,
            rejection_reason, created_at, reviewed_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	_, err = r.pool.Exec(ctx, query,
		ts.ID,
		ts.EmployeeID,
		ts.EmployeeName,
		ts.Month,
		ts.Status,
		entries,
		ts.SubmittedAt,
		ts.RejectionReason,
		ts.CreatedAt,
		ts.ReviewedAt,
	)
	return translatePgError(err)
}

func (r *timesheetRepository) Update(ctx context.Context, ts *domain.Timesheet) error {
	entries, err := json.Marshal(NewEntryRecords(ts.Entries))
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	const query = `
        UPDATE timesheets SET status=$1, entries=$2, submitted_at=$3, rejection_reason=$4, reviewed_at=$5
        WHERE id=$6`
	cmd, err := r.pool.Exec(ctx, query,
		ts.Status,
		entries,
		ts.SubmittedAt,
		ts.RejectionReason,
		ts.ReviewedAt,
		ts.ID,
	)
	if err != nil {
		return translatePgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *timesheetRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM timesheets WHERE id=$1`, id)
	if err != nil {
		return translatePgError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *timesheetRepository) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE id=$1`
	ts, err := scanTimesheet(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translatePgError(err)
	}
	return ts, nil
}

func (r *timesheetRepository) List(ctx context.Context, filter TimesheetFilter) ([]domain.Timesheet, error) {
	if filter.EmployeeIDs != nil && len(filter.EmployeeIDs) == 0 {
		return nil, nil
	}

	clauses := []string{"1=1"}
	args := []any{}

	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		clauses = append(clauses, fmt.Sprintf("employee_id=$%d", len(args)))
	}
	if len(filter.EmployeeIDs) > 0 {
		args = append(args, filter.EmployeeIDs)
		clauses = append(clauses, fmt.Sprintf("employee_id = ANY($%d)", len(args)))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		clauses = append(clauses, fmt.Sprintf("status=$%d", len(args)))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		clauses = append(clauses, fmt.Sprintf("month=$%d", len(args)))
	}

	query := `SELECT ` + timesheetColumns + ` FROM timesheets WHERE ` + strings.Join(clauses, " AND ") + ` ORDER BY created_at, id`
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sheets []domain.Timesheet
	for rows.Next() {
		ts, err := scanTimesheet(rows)
		if err != nil {
			return nil, err
		}
		sheets = append(sheets, *ts)
	}
	return sheets, rows.Err()
}

func scanTimesheet(row pgx.Row) (*domain.Timesheet, error) {
	var (
		ts  domain.Timesheet
		raw []byte
	)
	if err := row.Scan(
		&ts.ID,
		&ts.EmployeeID,
		&ts.EmployeeName,
		&ts.Month,
		&ts.Status,
		&raw,
		&ts.SubmittedAt,
		&ts.RejectionReason,
		&ts.CreatedAt,
		&ts.ReviewedAt,
	); err != nil {
		return nil, err
	}

	var records []EntryRecord
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("decode entries: %w", err)
		}
	}
	entries, err := DomainEntries(records)
	if err != nil {
		return nil, fmt.Errorf("decode entries: %w", err)
	}
	ts.Entries = entries
	return &ts, nil
}
