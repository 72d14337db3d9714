package admin

import (
	"strings"
	"time"
)

// RoleAdmin is the only role an admin account carries.
const RoleAdmin = "admin"

type Admin struct {
	ID        string
	Email     string
	Password  string // bcrypt hash
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewAdmin(email, hashedPassword string) *Admin {
	now := time.Now()
	return &Admin{
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Password:  hashedPassword,
		Role:      RoleAdmin,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
