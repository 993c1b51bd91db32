package redisstore

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
)

type timesheetRepository struct {
	table hashTable[repository.TimesheetRecord]
}

// NewTimesheetRepository returns a redis-backed timesheet repository.
func NewTimesheetRepository(client redis.Cmdable, prefix string) repository.TimesheetRepository {
	return &timesheetRepository{table: newHashTable[repository.TimesheetRecord](client, prefix, timesheetsHash)}
}

func (r *timesheetRepository) Create(ctx context.Context, ts *domain.Timesheet) error {
	return r.table.create(ctx, ts.ID, repository.NewTimesheetRecord(ts))
}

func (r *timesheetRepository) Update(ctx context.Context, ts *domain.Timesheet) error {
	return r.table.update(ctx, ts.ID, repository.NewTimesheetRecord(ts))
}

func (r *timesheetRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(ctx, id)
}

func (r *timesheetRepository) GetByID(ctx context.Context, id string) (*domain.Timesheet, error) {
	rec, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	ts, err := rec.Domain()
	if err != nil {
		return nil, err
	}
	return &ts, nil
}

func (r *timesheetRepository) List(ctx context.Context, filter repository.TimesheetFilter) ([]domain.Timesheet, error) {
	records, err := r.table.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Timesheet, 0, len(records))
	for _, rec := range records {
		ts, err := rec.Domain()
		if err != nil {
			return nil, err
		}
		if filter.Matches(&ts) {
			out = append(out, ts)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
