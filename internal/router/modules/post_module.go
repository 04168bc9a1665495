package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/climate-action-backend/internal/interface/http"
	"github.com/oksasatya/climate-action-backend/internal/interface/middleware"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

// PostModule wires story routes. Reads are public; writes are author-only.
type PostModule struct {
	Handler *handlers.PostHandler
	JWT     *helpers.JWTManager
}

func NewPostModule(h *handlers.PostHandler, jwt *helpers.JWTManager) *PostModule {
	return &PostModule{Handler: h, JWT: jwt}
}

func (m *PostModule) Register(rg *gin.RouterGroup) {
	rg.GET("/get-story", m.Handler.List)
	rg.GET("/get-story/:id", m.Handler.Get)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("/post-story", m.Handler.Create)
		auth.PUT("/update-story/:id", m.Handler.Update)
		auth.PATCH("/patch-story/:id", m.Handler.Patch)
		auth.POST("/upload-story-cover/:id", m.Handler.UploadCover)
	}
}
