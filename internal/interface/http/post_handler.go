package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/climate-action-backend/internal/application"
	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	"github.com/oksasatya/climate-action-backend/internal/interface/middleware"
	"github.com/oksasatya/climate-action-backend/pkg/response"
	"github.com/oksasatya/climate-action-backend/pkg/validation"
)

type PostHandler struct {
	Svc           *application.PostService
	Logger        *logrus.Logger
	CoverMaxBytes int64
}

func NewPostHandler(svc *application.PostService, logger *logrus.Logger, coverMaxBytes int64) *PostHandler {
	return &PostHandler{Svc: svc, Logger: logger, CoverMaxBytes: coverMaxBytes}
}

type postRequest struct {
	Title    string `json:"title" binding:"required,notblank,max=100"`
	Text     string `json:"text" binding:"required,notblank,max=2500"`
	Category string `json:"category" binding:"required,postcategory"`
}

func (r *postRequest) trim() {
	r.Title = strings.TrimSpace(r.Title)
	r.Text = strings.TrimSpace(r.Text)
	r.Category = strings.TrimSpace(r.Category)
}

func (r *postRequest) input() application.PostInput {
	category, _ := entity.ParsePostCategory(r.Category)
	return application.PostInput{Title: r.Title, Text: r.Text, Category: category}
}

var patchableFields = map[string]bool{"title": true, "text": true, "category": true}

// bindPost decodes and trims the body before validating, so length limits apply to the stored text.
func bindPost(c *gin.Context, req *postRequest) error {
	if err := json.NewDecoder(c.Request.Body).Decode(req); err != nil {
		return err
	}
	req.trim()
	return validation.Struct(req)
}

func (h *PostHandler) Create(c *gin.Context) {
	var req postRequest
	if err := bindPost(c, &req); err != nil {
		invalidPayload(c, err)
		return
	}
	author := entity.Author{
		UserID:   c.GetString(middleware.CtxUserIDKey),
		Username: c.GetString(middleware.CtxUserEmailKey),
	}
	p, err := h.Svc.Create(c.Request.Context(), author, req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, "story created", gin.H{"post": p})
}

// queryInt returns def for a missing or non-numeric parameter.
func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	if err != nil {
		return def
	}
	return v
}

func (h *PostHandler) List(c *gin.Context) {
	page, err := h.Svc.List(c.Request.Context(), application.ListParams{
		Search: c.Query("search"),
		Page:   queryInt(c, "page", 1),
		Limit:  queryInt(c, "limit", application.DefaultPageLimit),
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "stories", gin.H{
		"posts": page.Posts,
		"total": page.Total,
		"page":  page.Page,
		"limit": page.Limit,
		"pages": page.Pages,
	})
}

func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "story", gin.H{"post": p})
}

// editable resolves the post and checks authorship before any body is read.
func (h *PostHandler) editable(c *gin.Context) (*entity.Post, bool) {
	p, err := h.Svc.GetForEdit(c.Request.Context(), c.Param("id"), c.GetString(middleware.CtxUserIDKey))
	if err != nil {
		fail(c, h.Logger, err)
		return nil, false
	}
	return p, true
}

func (h *PostHandler) Update(c *gin.Context) {
	p, ok := h.editable(c)
	if !ok {
		return
	}
	var req postRequest
	if err := bindPost(c, &req); err != nil {
		invalidPayload(c, err)
		return
	}
	p, err := h.Svc.Replace(c.Request.Context(), p, req.input())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "story updated", gin.H{"post": p})
}

func (h *PostHandler) Patch(c *gin.Context) {
	p, ok := h.editable(c)
	if !ok {
		return
	}

	var fields map[string]json.RawMessage
	if err := json.NewDecoder(c.Request.Body).Decode(&fields); err != nil {
		var ute *json.UnmarshalTypeError
		if errors.As(err, &ute) {
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"payload": "must be a JSON object"})
			return
		}
		invalidPayload(c, err)
		return
	}
	if len(fields) == 0 {
		response.Error(c, http.StatusBadRequest, "no fields to update", map[string]string{
			"payload": "provide at least one of: title, text, category",
		})
		return
	}
	if details := disallowedFields(fields); details != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", details)
		return
	}

	// Validate the merged result; untouched fields are already valid.
	req := postRequest{Title: p.Title, Text: p.Text, Category: string(p.Category)}
	targets := map[string]*string{"title": &req.Title, "text": &req.Text, "category": &req.Category}
	for key, raw := range fields {
		if err := decodeString(raw, targets[key]); err != nil {
			response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{key: err.Error()})
			return
		}
	}
	req.trim()
	if err := validation.Struct(&req); err != nil {
		invalidPayload(c, err)
		return
	}

	in := req.input()
	var patch application.PostPatch
	if _, ok := fields["title"]; ok {
		patch.Title = &in.Title
	}
	if _, ok := fields["text"]; ok {
		patch.Text = &in.Text
	}
	if _, ok := fields["category"]; ok {
		patch.Category = &in.Category
	}
	p, err := h.Svc.Patch(c.Request.Context(), p, patch)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "story updated", gin.H{"post": p})
}

func disallowedFields(fields map[string]json.RawMessage) map[string]string {
	var out map[string]string
	for k := range fields {
		if patchableFields[k] {
			continue
		}
		if out == nil {
			out = map[string]string{}
		}
		out[k] = "is not allowed; updatable fields are title, text, category"
	}
	return out
}

var errNotString = errors.New("must be a string")

func decodeString(raw json.RawMessage, dst *string) error {
	if strings.TrimSpace(string(raw)) == "null" {
		return errNotString
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errNotString
	}
	return nil
}

func (h *PostHandler) UploadCover(c *gin.Context) {
	p, ok := h.editable(c)
	if !ok {
		return
	}
	if h.Svc.Covers == nil {
		fail(c, h.Logger, application.ErrStorageUnavailable)
		return
	}
	if h.CoverMaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.CoverMaxBytes+1<<20)
	}
	fh, err := c.FormFile("cover")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"cover": "is required"})
		return
	}
	if h.CoverMaxBytes > 0 && fh.Size > h.CoverMaxBytes {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{
			"cover": "must be at most " + strconv.FormatInt(h.CoverMaxBytes>>20, 10) + "MB",
		})
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"cover": "must be an image"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	p, err = h.Svc.UploadCover(c.Request.Context(), p, f, fh.Filename, contentType)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, "cover uploaded", gin.H{"post": p})
}
