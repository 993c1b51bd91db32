package domain

import "time"

// Role enumerates directory roles.
type Role string

const (
	RoleEmployee Role = "EMPLOYEE"
	RoleManager  Role = "MANAGER"
	RoleHR       Role = "HR"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleHR:
		return true
	default:
		return false
	}
}

// ManagerApprovalStatus tracks the employee to manager assignment handshake.
type ManagerApprovalStatus string

const (
	ManagerApprovalNone     ManagerApprovalStatus = "NONE"
	ManagerApprovalPending  ManagerApprovalStatus = "PENDING"
	ManagerApprovalApproved ManagerApprovalStatus = "APPROVED"
	ManagerApprovalRejected ManagerApprovalStatus = "REJECTED"
)

// Valid reports whether s is a known approval status.
func (s ManagerApprovalStatus) Valid() bool {
	switch s {
	case ManagerApprovalNone, ManagerApprovalPending, ManagerApprovalApproved, ManagerApprovalRejected:
		return true
	default:
		return false
	}
}

// User is a directory record for employees, managers and HR staff.
type User struct {
	ID                    string
	Name                  string
	Email                 string
	Role                  Role
	ManagerID             *string
	ManagerApprovalStatus ManagerApprovalStatus
	AvatarURL             string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ReportsTo reports whether the user is an approved member of managerID's team.
func (u *User) ReportsTo(managerID string) bool {
	return u.ManagerID != nil && *u.ManagerID == managerID && u.ManagerApprovalStatus == ManagerApprovalApproved
}

// ApprovedManagerID returns the manager id when the assignment is approved.
func (u *User) ApprovedManagerID() (string, bool) {
	if u.ManagerID == nil || u.ManagerApprovalStatus != ManagerApprovalApproved {
		return "", false
	}
	return *u.ManagerID, true
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	if u.ManagerID != nil {
		id := *u.ManagerID
		u.ManagerID = &id
	}
	return u
}
