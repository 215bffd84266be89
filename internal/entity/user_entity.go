// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	Id           uuid.UUID
	Name         string
	Email        string
	PasswordHash *string
	Role         UserRole
	CreatedAt    time.Time
	LastLogin    *time.Time
}

// Identity is the authenticated caller as handed over by the auth layer.
type Identity struct {
	UserId uuid.UUID
	Role   UserRole
}

func (i Identity) IsAdmin() bool {
	return i.Role == UserRoleAdmin
}
