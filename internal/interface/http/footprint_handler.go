package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/internal/domain/footprint"
	"github.com/oksasatya/climate-action-backend/pkg/response"
)

type FootprintHandler struct {
	Logger *logrus.Logger
}

func NewFootprintHandler(logger *logrus.Logger) *FootprintHandler {
	return &FootprintHandler{Logger: logger}
}

func (h *FootprintHandler) Estimate(c *gin.Context) {
	var in footprint.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		invalidPayload(c, err)
		return
	}
	res, err := footprint.Calculate(in)
	if err != nil {
		if errors.Is(err, footprint.ErrInvalidInput) {
			msg := strings.TrimPrefix(err.Error(), footprint.ErrInvalidInput.Error()+": ")
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"payload": msg})
			return
		}
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "carbon footprint estimated", gin.H{"footprint": res})
}
