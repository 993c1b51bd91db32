package dto

import (
	"time"

	"github.com/spec-kit/hr-service/internal/domain"
)

// UserLoginRequest payload for login. Only the email is checked.
type UserLoginRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// RequestManagerRequest asks a manager to accept the caller.
type RequestManagerRequest struct {
	ManagerID string `json:"manager_id" validate:"required"`
}

// JoinResponseRequest answers a pending join request.
type JoinResponseRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

// UserResponse represents a directory record.
type UserResponse struct {
	ID                    string                       `json:"id"`
	Name                  string                       `json:"name"`
	Email                 string                       `json:"email"`
	Role                  domain.Role                  `json:"role"`
	ManagerID             *string                      `json:"manager_id"`
	ManagerApprovalStatus domain.ManagerApprovalStatus `json:"manager_approval_status"`
	AvatarURL             string                       `json:"avatar_url,omitempty"`
}

// TeamResponse lists a manager's approved team.
type TeamResponse struct {
	Size    int            `json:"size"`
	Members []UserResponse `json:"members"`
}

// NewUserResponse maps a domain user.
func NewUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:                    u.ID,
		Name:                  u.Name,
		Email:                 u.Email,
		Role:                  u.Role,
		ManagerID:             u.ManagerID,
		ManagerApprovalStatus: u.ManagerApprovalStatus,
		AvatarURL:             u.AvatarURL,
	}
}

// NewUserResponses maps a slice of users.
func NewUserResponses(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
