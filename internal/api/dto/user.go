package dto

import (
	"context"

	"github.com/ThotaNithin79/Billing-Application/internal/domain/user"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/ThotaNithin79/Billing-Application/internal/validator"
)

type CreateUserRequest struct {
	Name  string   `json:"name" validate:"required"`
	Email string   `json:"email" validate:"required,email"`
	Roles []string `json:"roles" validate:"required,min=1"`
}

func (r *CreateUserRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	for _, role := range r.Roles {
		if err := types.Role(role).Validate(); err != nil {
			return ierr.WithError(err).
				WithHint("Unknown role").
				WithReportableDetails(map[string]any{"role": role}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

func (r *CreateUserRequest) ToUser(ctx context.Context) *user.User {
	return user.NewUser(ctx, r.Name, r.Email, r.Roles)
}

type UpdateUserRolesRequest struct {
	Roles []string `json:"roles" validate:"required,min=1"`
}

func (r *UpdateUserRolesRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	for _, role := range r.Roles {
		if err := types.Role(role).Validate(); err != nil {
			return ierr.WithError(err).
				WithHint("Unknown role").
				WithReportableDetails(map[string]any{"role": role}).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

type UserResponse struct {
	*user.User
}

func NewUserResponse(u *user.User) *UserResponse {
	return &UserResponse{User: u}
}

type ListUsersResponse struct {
	Items []*UserResponse `json:"items"`
	Total int             `json:"total"`
}
