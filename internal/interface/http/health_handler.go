package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/climate-action-backend/pkg/response"
)

// Pinger is a dependency the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapts a function to Pinger.
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

type HealthHandler struct {
	AppName string
	Checks  map[string]Pinger
}

func NewHealthHandler(appName string, checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{AppName: appName, Checks: checks}
}

func (h *HealthHandler) Root(c *gin.Context) {
	response.Success(c, http.StatusOK, h.AppName+" is running", nil)
}

func (h *HealthHandler) Healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	checks := make(map[string]string, len(h.Checks))
	for name, p := range h.Checks {
		if err := p.Ping(ctx); err != nil {
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}
	if status != http.StatusOK {
		response.Error(c, status, "unhealthy", checks)
		return
	}
	response.Success(c, status, "healthy", gin.H{"checks": checks})
}
