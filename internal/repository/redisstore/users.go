package redisstore

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/spec-kit/hr-service/internal/domain"
	"github.com/spec-kit/hr-service/internal/repository"
)

type userRepository struct {
	table hashTable[repository.UserRecord]
}

// NewUserRepository returns a redis-backed user repository.
func NewUserRepository(client redis.Cmdable, prefix string) repository.UserRepository {
	return &userRepository{table: newHashTable[repository.UserRecord](client, prefix, usersHash)}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	if _, err := r.GetByEmail(ctx, user.Email); err == nil {
		return repository.ErrDuplicate
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}
	return r.table.create(ctx, user.ID, repository.NewUserRecord(user))
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	return r.table.update(ctx, user.ID, repository.NewUserRecord(user))
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	rec, err := r.table.get(ctx, id)
	if err != nil {
		return nil, err
	}
	user := rec.Domain()
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	records, err := r.table.all(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if strings.EqualFold(rec.Email, email) {
			user := rec.Domain()
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *userRepository) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, error) {
	records, err := r.table.all(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(records))
	for _, rec := range records {
		user := rec.Domain()
		if filter.Matches(&user) {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool {
		if !users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].CreatedAt.Before(users[j].CreatedAt)
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}
