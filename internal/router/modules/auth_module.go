package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/climate-action-backend/internal/interface/http"
	"github.com/oksasatya/climate-action-backend/internal/interface/middleware"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /register, POST /login
// Protected: GET /profile, POST /logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/profile", m.Handler.Profile)
		auth.POST("/logout", m.Handler.Logout)
	}
}
