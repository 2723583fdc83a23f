package service

import (
	"testing"

	"github.com/ThotaNithin79/Billing-Application/internal/api/dto"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/testutil"
	"github.com/ThotaNithin79/Billing-Application/internal/types"
	"github.com/stretchr/testify/suite"
)

type UserServiceSuite struct {
	suite.Suite
	userStore *testutil.InMemoryUserStore
	service   UserService
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceSuite))
}

func (s *UserServiceSuite) SetupTest() {
	s.userStore = testutil.NewInMemoryUserStore()
	s.service = NewUserService(ServiceParams{
		Logger:   testutil.GetLogger(),
		DB:       testutil.NewMockPostgresClient(),
		UserRepo: s.userStore,
	})
}

func (s *UserServiceSuite) createUser(name, email string, roles ...string) *dto.UserResponse {
	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())
	resp, err := s.service.CreateUser(ctx, &dto.CreateUserRequest{
		Name:  name,
		Email: email,
		Roles: roles,
	})
	s.Require().NoError(err)
	return resp
}

func (s *UserServiceSuite) TestCreateUser() {
	resp := s.createUser("Asha Rao", "asha@example.com", types.RolePlanner.String())
	s.NotEmpty(resp.ID)
	s.True(resp.Active)
	s.Equal("user_admin1", resp.CreatedBy)
}

func (s *UserServiceSuite) TestCreateUserValidation() {
	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())

	_, err := s.service.CreateUser(ctx, &dto.CreateUserRequest{
		Name:  "Asha Rao",
		Email: "asha@example.com",
	})
	s.True(ierr.IsValidation(err))

	_, err = s.service.CreateUser(ctx, &dto.CreateUserRequest{
		Name:  "Asha Rao",
		Email: "asha@example.com",
		Roles: []string{"ROLE_BOGUS"},
	})
	s.True(ierr.IsValidation(err))
}

func (s *UserServiceSuite) TestCreateUserDuplicateEmail() {
	s.createUser("Asha Rao", "asha@example.com", types.RolePlanner.String())

	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())
	_, err := s.service.CreateUser(ctx, &dto.CreateUserRequest{
		Name:  "Another Asha",
		Email: "asha@example.com",
		Roles: []string{types.RolePlanner.String()},
	})
	s.True(ierr.IsAlreadyExists(err))
}

func (s *UserServiceSuite) TestLastAdminCannotLoseRole() {
	admin := s.createUser("Root Admin", "admin@example.com", types.RoleAdmin.String())
	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())

	_, err := s.service.UpdateUserRoles(ctx, admin.ID, &dto.UpdateUserRolesRequest{
		Roles: []string{types.RolePlanner.String()},
	})
	s.True(ierr.IsLastGuardian(err))

	// The failed attempt changed nothing.
	kept, err := s.service.GetUser(ctx, admin.ID)
	s.NoError(err)
	s.Equal([]string{types.RoleAdmin.String()}, []string(kept.Roles))
}

func (s *UserServiceSuite) TestLastAdminCannotBeDeactivated() {
	admin := s.createUser("Root Admin", "admin@example.com", types.RoleAdmin.String())
	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())

	_, err := s.service.ToggleUserStatus(ctx, admin.ID)
	s.True(ierr.IsLastGuardian(err))

	kept, err := s.service.GetUser(ctx, admin.ID)
	s.NoError(err)
	s.True(kept.Active)
}

func (s *UserServiceSuite) TestSecondAdminUnblocksTheGuard() {
	first := s.createUser("Root Admin", "admin@example.com", types.RoleAdmin.String())
	s.createUser("Backup Admin", "backup@example.com", types.RoleAdmin.String())
	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())

	resp, err := s.service.ToggleUserStatus(ctx, first.ID)
	s.NoError(err)
	s.False(resp.Active)

	// With the first admin inactive, the backup is now the last one.
	backup, err := s.userStore.GetByEmail(ctx, "backup@example.com")
	s.NoError(err)
	_, err = s.service.ToggleUserStatus(ctx, backup.ID)
	s.True(ierr.IsLastGuardian(err))

	// Reactivating an inactive user never trips the guard.
	resp, err = s.service.ToggleUserStatus(ctx, first.ID)
	s.NoError(err)
	s.True(resp.Active)
}

func (s *UserServiceSuite) TestGuardIgnoresNonAdmins() {
	s.createUser("Root Admin", "admin@example.com", types.RoleAdmin.String())
	planner := s.createUser("Asha Rao", "asha@example.com", types.RolePlanner.String())
	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())

	resp, err := s.service.ToggleUserStatus(ctx, planner.ID)
	s.NoError(err)
	s.False(resp.Active)

	resp, err = s.service.UpdateUserRoles(ctx, planner.ID, &dto.UpdateUserRolesRequest{
		Roles: []string{types.RoleROCreator.String()},
	})
	s.NoError(err)
	s.Equal([]string{types.RoleROCreator.String()}, []string(resp.Roles))
}

func (s *UserServiceSuite) TestListUsers() {
	s.createUser("Root Admin", "admin@example.com", types.RoleAdmin.String())
	s.createUser("Asha Rao", "asha@example.com", types.RolePlanner.String())

	ctx := testutil.SetupContext("user_admin1", types.RoleAdmin.String())
	resp, err := s.service.ListUsers(ctx)
	s.NoError(err)
	s.Equal(2, resp.Total)
	s.Len(resp.Items, 2)
}
