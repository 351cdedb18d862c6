package models

import "time"

// User roles. super_admin manages users, admin mutates data, owner is
// read-only. Three fixed roles, stored inline rather than in a master table.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleOwner      = "owner"
)

// User is an application account.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
	Email          string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	HashedPassword []byte    `gorm:"not null" json:"-"`
	Role           string    `gorm:"size:16;not null" json:"role"`
}

// CanMutate reports whether the role may change data. Owner accounts are
// read-only throughout the API.
func (u User) CanMutate() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
