package service

import (
	"fmt"

	"github.com/spec-kit/hr-service/internal/domain"
)

// DefaultUsers is the starter directory: two employees reporting to Bob, a second
// manager without a team, and one HR user. Managers come before their reports.
func DefaultUsers() []domain.User {
	bob := "u2"
	seed := []struct {
		id, name, email string
		role            domain.Role
		manager         *string
		status          domain.ManagerApprovalStatus
		avatar          int
	}{
		{"u2", "Bob Manager", "bob@company.com", domain.RoleManager, nil, domain.ManagerApprovalNone, 2},
		{"u3", "Charlie HR", "charlie@company.com", domain.RoleHR, nil, domain.ManagerApprovalNone, 3},
		{"u5", "Sarah Supervisor", "sarah@company.com", domain.RoleManager, nil, domain.ManagerApprovalNone, 5},
		{"u1", "Alice Employee", "alice@company.com", domain.RoleEmployee, &bob, domain.ManagerApprovalApproved, 1},
		{"u4", "David Developer", "david@company.com", domain.RoleEmployee, &bob, domain.ManagerApprovalApproved, 4},
	}

	users := make([]domain.User, 0, len(seed))
	for _, s := range seed {
		user := domain.User{
			ID:                    s.id,
			Name:                  s.name,
			Email:                 s.email,
			Role:                  s.role,
			ManagerApprovalStatus: s.status,
			AvatarURL:             fmt.Sprintf("https://picsum.photos/200/200?random=%d", s.avatar),
		}
		if s.manager != nil {
			id := *s.manager
			user.ManagerID = &id
		}
		users = append(users, user)
	}
	return users
}

// seedOrder returns users reordered so that a manager present in the batch is inserted
// before the employees that reference it. Relative order is otherwise kept.
func seedOrder(users []domain.User) []domain.User {
	inBatch := make(map[string]bool, len(users))
	for i := range users {
		inBatch[users[i].ID] = true
	}

	ordered := make([]domain.User, 0, len(users))
	placed := make(map[string]bool, len(users))
	remaining := users
	for len(remaining) > 0 {
		next := remaining[:0:0]
		for _, u := range remaining {
			if u.ManagerID == nil || !inBatch[*u.ManagerID] || placed[*u.ManagerID] || *u.ManagerID == u.ID {
				ordered = append(ordered, u)
				placed[u.ID] = true
				continue
			}
			next = append(next, u)
		}
		if len(next) == len(remaining) {
			// cycle between batch members; keep their order and let the store decide
			ordered = append(ordered, next...)
			break
		}
		remaining = next
	}
	return ordered
}
