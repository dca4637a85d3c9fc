package model

import "time"

// Role determines which notifications a user receives and which admin
// surfaces they may use.
type Role string

const (
	RoleEngineer   Role = "ENGINEER"
	RoleFinance    Role = "FINANCE"
	RoleOperations Role = "OPERATIONS"
	RoleBusiness   Role = "BUSINESS"
)

// ParseRole validates a raw role value.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleEngineer, RoleFinance, RoleOperations, RoleBusiness:
		return Role(raw), true
	}
	return "", false
}

// User represents a team member placing orders and receiving alerts.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Subteam      string
	Phone        *string
	Carrier      *string
	CreatedAt    time.Time
}
