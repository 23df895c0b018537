package models

import "time"

// User roles. Deactivation is a soft state: a user with history keeps their
// row forever and is flipped to RoleInactive instead of being deleted.
const (
	RoleAdmin    = "admin"
	RoleUser     = "user"
	RoleInactive = "inactive"
)

// User represents a staff account. The two founding admin accounts (ids 1
// and 2) can never be deactivated, deleted, or have their password reset by
// another admin.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:'user'" json:"role"`
	PhoneNumber  string    `gorm:"size:30" json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsProtectedUserID reports whether the account is one of the two founding
// admins that admin actions must never touch.
func IsProtectedUserID(id uint) bool {
	return id == 1 || id == 2
}
