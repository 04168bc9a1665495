package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/climate-action-backend/config"
	"github.com/oksasatya/climate-action-backend/internal/container"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
}

func testConfig() *config.Config {
	return &config.Config{
		AppName:             "climate-action-backend",
		Env:                 "test",
		StoreDriver:         "memory",
		JWTSecret:           "test-secret",
		JWTTTL:              time.Hour,
		PostCacheTTL:        time.Minute,
		CoverMaxBytes:       5 << 20,
		CORSAllowedOrigins:  "http://localhost:3000",
		ESPostsIndex:        "posts",
		DebugMetricsEnabled: true,
	}
}

func newTestAPI(t *testing.T, mutate func(c *container.Container)) *testAPI {
	t.Helper()
	c := container.New(testConfig(), helpers.NewNopLogger())
	if mutate != nil {
		mutate(c)
	}
	return &testAPI{t: t, engine: NewEngine(c)}
}

func (a *testAPI) do(method, path, token string, body any) (int, map[string]any) {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]any
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w.Code, out
}

func (a *testAPI) register(email string) string {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/register", "", gin.H{"fullName": "User " + email, "email": email, "password": "Passw0rd!"})
	require.Equal(a.t, http.StatusCreated, status, body)
	return body["token"].(string)
}

func (a *testAPI) login(email string) string {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/login", "", gin.H{"email": email, "password": "Passw0rd!"})
	require.Equal(a.t, http.StatusOK, status, body)
	return body["token"].(string)
}

func (a *testAPI) createPost(token, title string) map[string]any {
	a.t.Helper()
	status, body := a.do(http.MethodPost, "/post-story", token, gin.H{"title": title, "text": "About " + title, "category": "Education"})
	require.Equal(a.t, http.StatusCreated, status, body)
	return body["post"].(map[string]any)
}

func field(m map[string]any, path ...string) any {
	var cur any = m
	for _, p := range path {
		cur = cur.(map[string]any)[p]
	}
	return cur
}

func TestGoalScenario(t *testing.T) {
	api := newTestAPI(t, nil)

	api.register("a@x.com")
	tokenA := api.login("a@x.com")

	status, body := api.do(http.MethodPost, "/add-goal", tokenA, gin.H{"goal": "Compost", "category": "home"})
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, false, field(body, "goal", "completed"))
	goalID := field(body, "goal", "id").(string)

	status, body = api.do(http.MethodPatch, "/toggle-goal/"+goalID, tokenA, nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, field(body, "goal", "completed"))
	assert.Equal(t, "Goal marked as completed.", body["message"])

	tokenB := api.register("b@x.com")
	status, _ = api.do(http.MethodDelete, "/delete-goal/"+goalID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = api.do(http.MethodPatch, "/toggle-goal/"+goalID, tokenB, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = api.do(http.MethodGet, "/get-goals", tokenB, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["goals"])

	status, body = api.do(http.MethodPatch, "/toggle-goal/"+goalID, tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, false, field(body, "goal", "completed"))
	assert.Equal(t, "Goal marked as incomplete.", body["message"])

	status, body = api.do(http.MethodDelete, "/delete-goal/"+goalID, tokenA, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Compost", field(body, "goal", "goal"))

	status, _ = api.do(http.MethodDelete, "/delete-goal/does-not-exist", tokenA, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAddGoalValidation(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("a@x.com")

	tests := []struct {
		name string
		body any
		want int
	}{
		{"missing goal", gin.H{"category": "home"}, http.StatusBadRequest},
		{"blank goal", gin.H{"goal": "   ", "category": "home"}, http.StatusBadRequest},
		{"missing category", gin.H{"goal": "x"}, http.StatusBadRequest},
		{"unknown category", gin.H{"goal": "x", "category": "work"}, http.StatusBadRequest},
		{"completed not bool", gin.H{"goal": "x", "category": "home", "completed": "yes"}, http.StatusBadRequest},
		{"mixed case category", gin.H{"goal": "x", "category": "Community"}, http.StatusCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := api.do(http.MethodPost, "/add-goal", token, tt.body)
			assert.Equal(t, tt.want, status, body)
		})
	}

	_, body := api.do(http.MethodGet, "/get-goals", token, nil)
	goals := body["goals"].([]any)
	require.Len(t, goals, 1)
	assert.Equal(t, "community", goals[0].(map[string]any)["category"])
}

func TestAuthRoutes(t *testing.T) {
	api := newTestAPI(t, nil)

	status, body := api.do(http.MethodPost, "/register", "", gin.H{"fullName": "A", "email": "A@X.com", "password": "Passw0rd!"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "a@x.com", field(body, "user", "email"))
	assert.NotContains(t, body["user"], "passwordHash")
	assert.NotEmpty(t, body["request_id"])

	status, body = api.do(http.MethodPost, "/register", "", gin.H{"fullName": "A2", "email": "a@x.com", "password": "Passw0rd!"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "user with this email already exists", body["error"])

	status, body = api.do(http.MethodPost, "/register", "", gin.H{"fullName": "C", "email": "c@x.com", "password": "password"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["details"], "password")

	status, _ = api.do(http.MethodPost, "/register", "", gin.H{"email": "d@x.com", "password": "Passw0rd!"})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = api.do(http.MethodPost, "/register", "", gin.H{"fullName": "E", "email": "not-an-email", "password": "Passw0rd!"})
	assert.Equal(t, http.StatusBadRequest, status)
	status, body = api.do(http.MethodPost, "/register", "", gin.H{"fullName": "F", "email": `"a b"@x.com`, "password": "Passw0rd!"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "must be a valid email", field(body, "details", "email"))

	status, _ = api.do(http.MethodPost, "/login", "", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = api.do(http.MethodPost, "/login", "", gin.H{"email": "nobody@x.com", "password": "Passw0rd!"})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = api.do(http.MethodPost, "/login", "", gin.H{"email": "a@x.com", "password": "Wrong0rd!"})
	assert.Equal(t, http.StatusUnauthorized, status)

	token := api.login("a@x.com")
	status, body = api.do(http.MethodGet, "/profile", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "A", field(body, "user", "fullName"))

	status, body = api.do(http.MethodGet, "/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "authorization token is required", body["error"])

	status, body = api.do(http.MethodPost, "/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["logout"])

	// tokens are stateless, so the token still works after logout
	status, _ = api.do(http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestProfileOfUnknownUser(t *testing.T) {
	api := newTestAPI(t, nil)
	token, _, err := helpers.NewJWTManager("test-secret", time.Hour, "test").GenerateToken("ghost", "ghost@x.com")
	require.NoError(t, err)
	status, _ := api.do(http.MethodGet, "/profile", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostStoryMissingCategoryPersistsNothing(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("a@x.com")
	api.createPost(token, "First")

	_, before := api.do(http.MethodGet, "/get-story", "", nil)
	status, body := api.do(http.MethodPost, "/post-story", token, gin.H{"title": "T", "text": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["details"], "category")
	_, after := api.do(http.MethodGet, "/get-story", "", nil)
	assert.Equal(t, before["total"], after["total"])
}

func TestPostValidation(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("a@x.com")
	long := string(bytes.Repeat([]byte("a"), 101))

	tests := []struct {
		name string
		body any
		want int
	}{
		{"blank title", gin.H{"title": "  ", "text": "x", "category": "Education"}, http.StatusBadRequest},
		{"title too long", gin.H{"title": long, "text": "x", "category": "Education"}, http.StatusBadRequest},
		{"padded title within limit", gin.H{"title": "  " + long[:100] + "  ", "text": "x", "category": "Education"}, http.StatusCreated},
		{"lowercase category", gin.H{"title": "t", "text": "x", "category": "education"}, http.StatusBadRequest},
		{"empty body", "", http.StatusBadRequest},
		{"broken json", "{", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := api.do(http.MethodPost, "/post-story", token, tt.body)
			assert.Equal(t, tt.want, status, body)
		})
	}

	status, _ := api.do(http.MethodPost, "/post-story", "", gin.H{"title": "t", "text": "x", "category": "Education"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPostOwnership(t *testing.T) {
	api := newTestAPI(t, nil)
	tokenA := api.register("a@x.com")
	tokenB := api.register("b@x.com")
	post := api.createPost(tokenA, "Original")
	id := post["id"].(string)
	assert.Equal(t, "a@x.com", field(post, "author", "username"))

	replacement := gin.H{"title": "Hijacked", "text": "x", "category": "Education"}
	status, _ := api.do(http.MethodPut, "/update-story/"+id, tokenB, replacement)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = api.do(http.MethodPatch, "/patch-story/"+id, tokenB, gin.H{"title": "Hijacked"})
	assert.Equal(t, http.StatusForbidden, status)

	_, body := api.do(http.MethodGet, "/get-story/"+id, "", nil)
	assert.Equal(t, "Original", field(body, "post", "title"))

	status, _ = api.do(http.MethodPut, "/update-story/not-a-uuid", tokenA, replacement)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = api.do(http.MethodPut, "/update-story/00000000-0000-0000-0000-000000000000", tokenA, replacement)
	assert.Equal(t, http.StatusNotFound, status)

	// a non-author gets 403 even with an invalid body
	status, _ = api.do(http.MethodPut, "/update-story/"+id, tokenB, gin.H{})
	assert.Equal(t, http.StatusForbidden, status)

	status, body = api.do(http.MethodPut, "/update-story/"+id, tokenA, gin.H{"title": "Renamed", "text": "y"})
	assert.Equal(t, http.StatusBadRequest, status, body)

	status, body = api.do(http.MethodPut, "/update-story/"+id, tokenA, gin.H{"title": "Renamed", "text": "y", "category": "Climate Policy"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, "Climate Policy", field(body, "post", "category"))
}

func TestPatchStory(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("a@x.com")
	id := api.createPost(token, "Original")["id"].(string)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"empty object", gin.H{}, http.StatusBadRequest},
		{"unknown key", gin.H{"title": "ok", "author": "me"}, http.StatusBadRequest},
		{"array body", "[]", http.StatusBadRequest},
		{"null title", `{"title": null}`, http.StatusBadRequest},
		{"numeric text", gin.H{"text": 5}, http.StatusBadRequest},
		{"blank title", gin.H{"title": " "}, http.StatusBadRequest},
		{"bad category", gin.H{"category": "Sports"}, http.StatusBadRequest},
		{"title only", gin.H{"title": " Patched "}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := api.do(http.MethodPatch, "/patch-story/"+id, token, tt.body)
			assert.Equal(t, tt.want, status, body)
		})
	}

	_, body := api.do(http.MethodGet, "/get-story/"+id, "", nil)
	assert.Equal(t, "Patched", field(body, "post", "title"))
	assert.Equal(t, "About Original", field(body, "post", "text"))
}

func TestGetStory(t *testing.T) {
	api := newTestAPI(t, nil)
	status, _ := api.do(http.MethodGet, "/get-story/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	status, _ = api.do(http.MethodGet, "/get-story/00000000-0000-0000-0000-000000000000", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPaginationInvariant(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("a@x.com")
	const total = 23
	for i := 0; i < total; i++ {
		api.createPost(token, fmt.Sprintf("Story %d", i))
	}

	for _, limit := range []int{1, 5, 10, 23, 50} {
		for page := 1; page <= 6; page++ {
			status, body := api.do(http.MethodGet, fmt.Sprintf("/get-story?page=%d&limit=%d", page, limit), "", nil)
			require.Equal(t, http.StatusOK, status)
			assert.EqualValues(t, total, body["total"])
			assert.EqualValues(t, int(math.Ceil(float64(total)/float64(limit))), body["pages"])
			want := int(math.Min(float64(limit), math.Max(0, float64(total-(page-1)*limit))))
			assert.Len(t, body["posts"], want, "page=%d limit=%d", page, limit)
		}
	}

	_, body := api.do(http.MethodGet, "/get-story?page=0&limit=abc", "", nil)
	assert.EqualValues(t, 1, body["page"])
	assert.EqualValues(t, 10, body["limit"])
	first := body["posts"].([]any)[0].(map[string]any)
	assert.Equal(t, "Story 22", first["title"])


	_, body = api.do(http.MethodGet, "/get-story?search=story%2021", "", nil)
	assert.EqualValues(t, 1, body["total"])
}

func TestPaginationLargeLimit(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("a@x.com")
	const total = 150
	for i := 0; i < total; i++ {
		api.createPost(token, fmt.Sprintf("Story %d", i))
	}

	tests := []struct {
		page, limit, wantPages, wantPosts int
	}{
		{1, 150, 1, 150},
		{2, 150, 1, 0},
		{1, 1000, 1, 150},
		{2, 101, 2, 49},
	}
	for _, tt := range tests {
		status, body := api.do(http.MethodGet, fmt.Sprintf("/get-story?page=%d&limit=%d", tt.page, tt.limit), "", nil)
		require.Equal(t, http.StatusOK, status)
		assert.EqualValues(t, total, body["total"])
		assert.EqualValues(t, tt.limit, body["limit"])
		assert.EqualValues(t, tt.wantPages, body["pages"], "page=%d limit=%d", tt.page, tt.limit)
		assert.Len(t, body["posts"], tt.wantPosts, "page=%d limit=%d", tt.page, tt.limit)
	}
}

func TestGetStoryUsesRedisCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	api := newTestAPI(t, func(c *container.Container) { c.Redis = rdb })

	token := api.register("a@x.com")
	id := api.createPost(token, "Cached")["id"].(string)

	status, _ := api.do(http.MethodGet, "/get-story/"+id, "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, mr.Exists("post:"+id))

	status, _ = api.do(http.MethodPatch, "/patch-story/"+id, token, gin.H{"title": "Fresh"})
	require.Equal(t, http.StatusOK, status)
	assert.False(t, mr.Exists("post:"+id))

	_, body := api.do(http.MethodGet, "/get-story/"+id, "", nil)
	assert.Equal(t, "Fresh", field(body, "post", "title"))

	status, body = api.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", field(body, "checks", "redis"))

	mr.Close()
	status, _ = api.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func TestUploadCoverWithoutStorage(t *testing.T) {
	api := newTestAPI(t, nil)
	token := api.register("a@x.com")
	id := api.createPost(token, "Cover")["id"].(string)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("cover", "cover.png")
	require.NoError(t, err)
	_, _ = part.Write([]byte("png"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload-story-cover/"+id, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestPublicRoutes(t *testing.T) {
	api := newTestAPI(t, nil)

	status, body := api.do(http.MethodGet, "/", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "climate-action-backend is running", body["message"])

	status, body = api.do(http.MethodPost, "/carbon-footprint", "", gin.H{})
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 2.5, field(body, "footprint", "total"))

	status, _ = api.do(http.MethodPost, "/carbon-footprint", "", gin.H{"transport": gin.H{"carType": "rocket"}})
	assert.Equal(t, http.StatusBadRequest, status)

	api.register("metrics@x.com")
	status, body = api.do(http.MethodGet, "/debug/vars", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "registrations")

	status, body = api.do(http.MethodGet, "/no-such-route", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, false, body["success"])
}

func TestBasePath(t *testing.T) {
	c := container.New(testConfig(), helpers.NewNopLogger())
	c.Config.APIBasePath = "/api"
	api := &testAPI{t: t, engine: NewEngine(c)}

	status, _ := api.do(http.MethodGet, "/api/get-story", "", nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = api.do(http.MethodGet, "/get-story", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}
