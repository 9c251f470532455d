package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-catalog/pkg/response"
)

// Registry collects modules and mounts them under /api.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll applies the shared middleware, registers every module and
// answers unknown routes and methods with the standard error envelope.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}

	r.Engine.HandleMethodNotAllowed = true
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error[any](c, http.StatusNotFound, "route not found", nil)
	})
	r.Engine.NoMethod(func(c *gin.Context) {
		response.Error[any](c, http.StatusMethodNotAllowed, "method not allowed", nil)
	})
}
