package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/userhub/userhub/internal/interface/http"
)

// AuthModule wires the public authentication endpoints.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/refresh", m.Handler.Refresh)
}
