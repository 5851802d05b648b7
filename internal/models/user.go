package models

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleClient   Role = "client"
	RoleAttorney Role = "attorney"
	RoleAdmin    Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleClient || r == RoleAttorney || r == RoleAdmin
}

// Staff reports whether the role can work cases.
func (r Role) Staff() bool {
	return r == RoleAttorney || r == RoleAdmin
}

// Profile is an account row in the profiles table.
type Profile struct {
	ID           uuid.UUID `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     *string   `db:"full_name"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}
