package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	userDomain "loanserve-backend/internal/domain/user"
	"loanserve-backend/pkg/apperr"
	"loanserve-backend/pkg/id"
)

type Usecase struct{ repo userDomain.Repository }

func NewUsecase(r userDomain.Repository) *Usecase { return &Usecase{repo: r} }

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	if in.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if !strings.Contains(in.Email, "@") {
		return nil, apperr.Validation("email is malformed")
	}
	role := in.Role
	if role == "" {
		role = userDomain.RoleRegular
	}
	if !role.Valid() {
		return nil, apperr.Validation(fmt.Sprintf("unknown role %q", in.Role))
	}

	usr := &userDomain.User{
		UserID: id.NewID32(),
		Name:   in.Name,
		Email:  in.Email,
		Phone:  in.Phone,
		Role:   role,
		Active: true,
	}
	if err := u.repo.Create(ctx, usr); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("email already registered", "user", in.Email)
		}
		return nil, err
	}

	dto := toDTO(usr)
	return &dto, nil
}

func (u *Usecase) Update(ctx context.Context, in UpdateInput) (*UserDTO, error) {
	usr, err := u.repo.GetByUserID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", in.UserID)
		}
		return nil, err
	}
	if in.Name != "" {
		usr.Name = in.Name
	}
	if in.Phone != "" {
		usr.Phone = in.Phone
	}
	if err := u.repo.Save(ctx, usr); err != nil {
		return nil, err
	}
	dto := toDTO(usr)
	return &dto, nil
}

// Deactivate clears the activity flag; the row stays.
func (u *Usecase) Deactivate(ctx context.Context, in DeactivateInput) (*UserDTO, error) {
	usr, err := u.repo.GetByUserID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", in.UserID)
		}
		return nil, err
	}
	usr.Active = false
	if err := u.repo.Save(ctx, usr); err != nil {
		return nil, err
	}
	dto := toDTO(usr)
	return &dto, nil
}

func (u *Usecase) Get(ctx context.Context, in GetInput) (*UserDTO, error) {
	usr, err := u.repo.GetByUserID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user", in.UserID)
		}
		return nil, err
	}
	dto := toDTO(usr)
	return &dto, nil
}
