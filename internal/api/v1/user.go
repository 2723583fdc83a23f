package v1

import (
	"net/http"

	"github.com/ThotaNithin79/Billing-Application/internal/api/dto"
	ierr "github.com/ThotaNithin79/Billing-Application/internal/errors"
	"github.com/ThotaNithin79/Billing-Application/internal/logger"
	"github.com/ThotaNithin79/Billing-Application/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service service.UserService
	log     *logger.Logger
}

func NewUserHandler(service service.UserService, log *logger.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log,
	}
}

// @Summary Create a user
// @Tags Users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserRequest true "User"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 409 {object} ierr.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateUser(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get a user
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	resp, err := h.service.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Update a user's roles
// @Description Replace the role set; stripping the last active admin is refused
// @Tags Users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param roles body dto.UpdateUserRolesRequest true "Roles"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/users/{id}/roles [put]
func (h *UserHandler) UpdateUserRoles(c *gin.Context) {
	var req dto.UpdateUserRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateUserRoles(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Toggle a user's active flag
// @Description Deactivating the last active admin is refused
// @Tags Users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ierr.ErrorResponse
// @Failure 404 {object} ierr.ErrorResponse
// @Router /admin/users/{id}/toggle-status [patch]
func (h *UserHandler) ToggleUserStatus(c *gin.Context) {
	resp, err := h.service.ToggleUserStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List users
// @Tags Users
// @Produce json
// @Success 200 {object} dto.ListUsersResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.service.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
