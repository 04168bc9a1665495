package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/climate-action-backend/internal/interface/http"
	"github.com/oksasatya/climate-action-backend/internal/interface/middleware"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

// GoalModule wires the goal routes; all of them require a bearer token.
type GoalModule struct {
	Handler *handlers.GoalHandler
	JWT     *helpers.JWTManager
}

func NewGoalModule(h *handlers.GoalHandler, jwt *helpers.JWTManager) *GoalModule {
	return &GoalModule{Handler: h, JWT: jwt}
}

func (m *GoalModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/add-goal", m.Handler.Add)
		auth.GET("/get-goals", m.Handler.List)
		auth.PATCH("/toggle-goal/:id", m.Handler.Toggle)
		auth.DELETE("/delete-goal/:id", m.Handler.Delete)
	}
}
