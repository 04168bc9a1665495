package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/climate-action-backend/internal/interface/http"
)

type FootprintModule struct {
	Handler *handlers.FootprintHandler
}

func NewFootprintModule(h *handlers.FootprintHandler) *FootprintModule {
	return &FootprintModule{Handler: h}
}

func (m *FootprintModule) Register(rg *gin.RouterGroup) {
	rg.POST("/carbon-footprint", m.Handler.Estimate)
}
