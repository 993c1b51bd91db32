package redisstore

import (
	"context"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
)

type leaveRepository struct {
	table hashTable[repository.LeaveRecord]
}

// NewLeaveRepository returns a redis-backed leave repository.
func NewLeaveRepository(client redis.Cmdable, prefix string) repository.LeaveRepository {
	return &leaveRepository{table: newHashTable[repository.LeaveRecord](client, prefix, leavesHash)}
}

func (r *leaveRepository) Create(ctx context.Context, req *domain.LeaveRequest) error {
	return r.table.create(ctx, req.ID, repository.NewLeaveRecord(req))
}

func (r *leaveRepository) Update(ctx context.Context, req *domain.LeaveRequest) error {
	return r.table.update(ctx, req.ID, repository.NewLeaveRecord(req))
}

func (r *leaveRepository) Delete(ctx context.Context, id string) error {
	return r.table.delete(ctx, id)
}

func (r *leaveRepository) GetByID(ctx context.Context, id string) (*domain.LeaveRequest, error) {
	rec, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	req, err := rec.Domain()
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *leaveRepository) List(ctx context.Context, filter repository.LeaveFilter) ([]domain.LeaveRequest, error) {
	records, err := r.table.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.LeaveRequest, 0, len(records))
	for _, rec := range records {
		req, err := rec.Domain()
		if err != nil {
			return nil, err
		}
		if filter.Matches(&req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SubmittedAt.Equal(out[j].SubmittedAt) {
			return out[i].SubmittedAt.Before(out[j].SubmittedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}
