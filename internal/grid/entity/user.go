package entity

import "time"

// User represents a system user within the fixed role hierarchy.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	Username  string    `json:"username" gorm:"size:64;not null;uniqueIndex"`
	Password  string    `json:"-" gorm:"size:128;not null"`
	Email     string    `json:"email" gorm:"size:128"`
	FullName  string    `json:"full_name" gorm:"size:128"`
	Role      string    `json:"role" gorm:"size:16;not null"`
	IsActive  bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Roles, lowest to highest rank
const (
	RoleTechnician = "technician"
	RoleEngineer   = "engineer"
	RoleDM         = "dm"
	RoleDGM        = "dgm"
)

// RoleRank is the total order used for permission checks.
var RoleRank = map[string]int{
	RoleTechnician: 1,
	RoleEngineer:   2,
	RoleDM:         3,
	RoleDGM:        4,
}

// HasPermission reports whether the user's role ranks at or above required.
// Unknown roles rank below every known role.
func (u *User) HasPermission(required string) bool {
	return RoleRank[u.Role] >= RoleRank[required] && RoleRank[u.Role] > 0
}
