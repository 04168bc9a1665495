package router

import (
	"strings"

	"github.com/gin-gonic/gin"
)

type Registry struct {
	Engine  *gin.Engine
	API     *gin.RouterGroup
	modules []Module
}

// NewRegistry mounts modules under basePath; an empty basePath mounts them at the root.
func NewRegistry(engine *gin.Engine, basePath string) *Registry {
	basePath = "/" + strings.Trim(basePath, "/")
	api := engine.Group(basePath)
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

func (r *Registry) RegisterAll() {
	for _, m := range r.modules {
		m.Register(r.API)
	}
}
