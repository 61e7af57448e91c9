package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/userhub/userhub/internal/interface/http"
	"github.com/userhub/userhub/internal/interface/middleware"
	"github.com/userhub/userhub/pkg/helpers"
)

// UserModule wires user HTTP handlers and JWT middleware into routes.
// Public: POST /users
// Protected: GET /users/:id, PUT /users/:id
// Admin: POST /users/:id/deactivate
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", m.Handler.Create)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/users/:id", m.Handler.Get)
		auth.PUT("/users/:id", m.Handler.UpdateProfile)
		auth.POST("/users/:id/deactivate", middleware.RequireAdmin(), m.Handler.Deactivate)
	}
}
