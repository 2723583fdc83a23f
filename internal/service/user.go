package service

import (
	"context"
	"time"

	"github.com/ThotaNithin79/Billing-Application/internal/api/dto"
	"github.com/ThotaNithin79/Billing-Application/internal/domain/user"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
)

// UserService manages workflow identities. Credentials and token issuance live
// in the external auth service; this service owns profiles, role assignment,
// and the active flag, with the safety guard keeping the admin role staffed.
type UserService interface {
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateUserRoles(ctx context.Context, id string, req *dto.UpdateUserRolesRequest) (*dto.UserResponse, error)
	// ToggleUserStatus flips the active flag. Deactivating the last active
	// admin is refused.
	ToggleUserStatus(ctx context.Context, id string) (*dto.UserResponse, error)
	ListUsers(ctx context.Context) (*dto.ListUsersResponse, error)
}

type userService struct {
	ServiceParams
	guard *SafetyGuard
}

func NewUserService(params ServiceParams) UserService {
	return &userService{
		ServiceParams: params,
		guard:         NewSafetyGuard(params.UserRepo),
	}
}

func (s *userService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u := req.ToUser(ctx)
	if err := s.UserRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	s.Logger.Infow("user created", "user_id", u.ID, "roles", u.Roles)
	return dto.NewUserResponse(u), nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	u, err := s.UserRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponse(u), nil
}

func (s *userService) UpdateUserRoles(ctx context.Context, id string, req *dto.UpdateUserRolesRequest) (*dto.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var result *user.User
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		u, err := s.UserRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if !lo.Contains(req.Roles, types.RoleAdmin.String()) {
			if err := s.guard.EnsureNotLastHolder(txCtx, u); err != nil {
				return err
			}
		}

		u.Roles = pq.StringArray(req.Roles)
		u.UpdatedAt = time.Now().UTC()
		if err := s.UserRepo.Update(txCtx, u); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user roles updated", "user_id", id, "roles", result.Roles)
	return dto.NewUserResponse(result), nil
}

func (s *userService) ToggleUserStatus(ctx context.Context, id string) (*dto.UserResponse, error) {
	var result *user.User
	err := s.DB.WithTx(ctx, func(txCtx context.Context) error {
		u, err := s.UserRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}

		if u.Active {
			if err := s.guard.EnsureNotLastHolder(txCtx, u); err != nil {
				return err
			}
		}

		u.Active = !u.Active
		u.UpdatedAt = time.Now().UTC()
		if err := s.UserRepo.Update(txCtx, u); err != nil {
			return err
		}
		result = u
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("user status toggled", "user_id", id, "active", result.Active)
	return dto.NewUserResponse(result), nil
}

func (s *userService) ListUsers(ctx context.Context) (*dto.ListUsersResponse, error) {
	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ListUsersResponse{
		Items: lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
			return dto.NewUserResponse(u)
		}),
		Total: len(users),
	}, nil
}
