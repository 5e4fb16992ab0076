package user

import (
	"time"

	userDomain "loanserve-backend/internal/domain/user"
)

type RegisterInput struct {
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Phone string          `json:"phone"`
	Role  userDomain.Role `json:"role"`
}

func (RegisterInput) RequestName() string { return "user.register" }

type UpdateInput struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
}

func (UpdateInput) RequestName() string { return "user.update" }

type DeactivateInput struct {
	UserID string `json:"user_id"`
}

func (DeactivateInput) RequestName() string { return "user.deactivate" }

type GetInput struct {
	UserID string `json:"user_id"`
}

func (GetInput) RequestName() string { return "user.get" }

type UserDTO struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		UserID:    u.UserID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
