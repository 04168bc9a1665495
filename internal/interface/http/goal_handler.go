package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/internal/application"
	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/interface/middleware"
	"github.com/oksasatya/climate-action-backend/pkg/response"
)

type GoalHandler struct {
	Svc    *application.GoalService
	Logger *logrus.Logger
}

func NewGoalHandler(svc *application.GoalService, logger *logrus.Logger) *GoalHandler {
	return &GoalHandler{Svc: svc, Logger: logger}
}

type goalRequest struct {
	Goal      string `json:"goal" binding:"required,notblank"`
	Category  string `json:"category" binding:"required,goalcategory"`
	Completed bool   `json:"completed"`
}

func (h *GoalHandler) Add(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidPayload(c, err)
		return
	}
	category, _ := entity.ParseGoalCategory(req.Category)
	g, err := h.Svc.Create(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), application.GoalInput{
		Goal:      req.Goal,
		Category:  category,
		Completed: req.Completed,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "goal created", gin.H{"goal": g})
}

func (h *GoalHandler) List(c *gin.Context) {
	goals, err := h.Svc.List(c.Request.Context(), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "goals", gin.H{"goals": goals})
}

func (h *GoalHandler) Toggle(c *gin.Context) {
	g, err := h.Svc.Toggle(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, g.StatusMessage(), gin.H{"goal": g})
}

func (h *GoalHandler) Delete(c *gin.Context) {
	g, err := h.Svc.Delete(c.Request.Context(), c.GetString(middleware.CtxUserIDKey), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "goal deleted", gin.H{"goal": g})
}
