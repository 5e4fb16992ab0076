package user

import (
	"time"
)

type Role string

const (
	RoleRegular Role = "regular"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool { return r == RoleRegular || r == RoleAdmin }

type User struct {
	ID        uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID    string    `gorm:"size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;not null;uniqueIndex:ux_users_email" json:"email"`
	Phone     string    `gorm:"size:32" json:"phone"`
	Role      Role      `gorm:"size:16;default:'regular'" json:"role"`
	Active    bool      `gorm:"default:true" json:"active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
