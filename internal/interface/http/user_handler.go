package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/userhub/userhub/internal/application"
	"github.com/userhub/userhub/internal/domain/entity"
	"github.com/userhub/userhub/internal/interface/middleware"
	"github.com/userhub/userhub/pkg/apperr"
	"github.com/userhub/userhub/pkg/response"
	"github.com/userhub/userhub/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type createUserRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
	Password  string `json:"password" binding:"required,pwd"`
}

type updateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required,min=2,max=100"`
	LastName  string `json:"lastName" binding:"required,min=2,max=100"`
}

// Create POST /users
func (h *UserHandler) Create(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToFieldErrors(err)))
		return
	}
	dto, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, dto)
}

// Get GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	dto, err := h.Svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto)
}

// UpdateProfile PUT /users/:id. The caller may edit itself; admins may edit anyone.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id := c.Param("id")
	if id != c.GetString(middleware.CtxUserIDKey) && c.GetString(middleware.CtxRoleKey) != entity.RoleAdmin {
		response.FromError(c, apperr.Unauthorized("Insufficient permissions"))
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, apperr.Validation(validation.ToFieldErrors(err)))
		return
	}
	dto, err := h.Svc.UpdateProfile(c.Request.Context(), id, req.FirstName, req.LastName)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, dto)
}

// Deactivate POST /users/:id/deactivate (admin only; enforced by route middleware)
func (h *UserHandler) Deactivate(c *gin.Context) {
	if err := h.Svc.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
