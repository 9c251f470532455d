package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-catalog/internal/application"
	"github.com/oksasatya/go-ddd-catalog/internal/infrastructure/memory"
	handlers "github.com/oksasatya/go-ddd-catalog/internal/interface/http"
	"github.com/oksasatya/go-ddd-catalog/internal/interface/middleware"
	"github.com/oksasatya/go-ddd-catalog/internal/router/modules"
)

type envelope struct {
	Status    int                        `json:"status"`
	Success   bool                       `json:"success"`
	Message   string                     `json:"message"`
	RequestID string                     `json:"request_id"`
	Data      json.RawMessage            `json:"data"`
	Meta      map[string]any             `json:"meta"`
	Error     map[string]json.RawMessage `json:"error"`
}

func newServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	productSvc := application.NewProductService(memory.NewProductRepository(), nil, 0, nil, nil)
	userSvc := application.NewUserService(memory.NewUserRepository(), nil, 0, nil, nil)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	api := r.Group("/api")
	modules.NewProductModule(handlers.NewProductHandler(productSvc, nil), nil).Register(api)
	modules.NewUserModule(handlers.NewUserHandler(userSvc, nil), nil).Register(api)
	return r
}

func do(t *testing.T, r http.Handler, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func TestProductLifecycle(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, http.MethodPost, "/api/products", `{"name":"Desk","description":"pine","price":120,"stock":3}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.RequestID)

	var created map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, float64(1), created["id"])
	assert.Equal(t, "Desk", created["name"])
	assert.NotEmpty(t, created["created_at"])

	w, env = do(t, r, http.MethodPatch, "/api/products/1", `{"stock":0,"description":null}`)
	require.Equal(t, http.StatusOK, w.Code)
	var patched map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &patched))
	assert.Equal(t, float64(0), patched["stock"])
	assert.Equal(t, "", patched["description"])
	assert.Equal(t, float64(120), patched["price"])
	assert.Equal(t, created["created_at"], patched["created_at"])

	w, env = do(t, r, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), env.Meta["count"])

	w, _ = do(t, r, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = do(t, r, http.MethodGet, "/api/products/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "product not found", env.Message)
}

func TestProductErrors(t *testing.T) {
	r := newServer(t)
	_, _ = do(t, r, http.MethodPost, "/api/products", `{"name":"Desk","price":1,"stock":1}`)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
		field  string
	}{
		{"duplicate name", http.MethodPost, "/api/products", `{"name":"Desk","price":1,"stock":1}`, http.StatusConflict, ""},
		{"short name", http.MethodPost, "/api/products", `{"name":"ab","price":1,"stock":1}`, http.StatusBadRequest, "name"},
		{"negative price", http.MethodPut, "/api/products/1", `{"name":"Desk","price":-1,"stock":1}`, http.StatusBadRequest, "price"},
		{"null stock", http.MethodPatch, "/api/products/1", `{"stock":null}`, http.StatusBadRequest, "stock"},
		{"wrong type", http.MethodPatch, "/api/products/1", `{"price":"cheap"}`, http.StatusBadRequest, ""},
		{"broken json", http.MethodPost, "/api/products", `{"name":`, http.StatusBadRequest, "payload"},
		{"bad id", http.MethodGet, "/api/products/abc", "", http.StatusBadRequest, ""},
		{"zero id", http.MethodDelete, "/api/products/0", "", http.StatusBadRequest, ""},
		{"missing", http.MethodPut, "/api/products/99", `{"name":"Desk","price":1,"stock":1}`, http.StatusNotFound, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, tc.method, tc.path, tc.body)
			assert.Equal(t, tc.status, w.Code)
			assert.False(t, env.Success)
			if tc.field != "" {
				assert.Contains(t, env.Error, tc.field)
			}
		})
	}

	// None of the failed writes changed the stored product.
	_, env := do(t, r, http.MethodGet, "/api/products/1", "")
	var p map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, float64(1), p["price"])
	assert.Equal(t, float64(1), p["stock"])
}

func TestUserEndpoints(t *testing.T) {
	r := newServer(t)

	w, env := do(t, r, http.MethodPost, "/api/users", `{"name":"Ada","email":" Ada@Example.COM ","password":"correct-horse"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.NotContains(t, string(env.Data), "password")
	assert.NotContains(t, w.Body.String(), "correct-horse")

	var u map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, "ada@example.com", u["email"])

	w, _ = do(t, r, http.MethodPost, "/api/users", `{"name":"Other","email":"ada@example.com","password":"correct-horse"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env = do(t, r, http.MethodPatch, "/api/users/1", `{"password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `"min length 8"`, string(env.Error["password"]))

	w, env = do(t, r, http.MethodPut, "/api/users/1", `{"name":"Ada L","email":"LOVELACE@example.com","password":"another-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &u))
	assert.Equal(t, "lovelace@example.com", u["email"])
	assert.Equal(t, "Ada L", u["name"])

	w, _ = do(t, r, http.MethodDelete, "/api/users/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
