package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-catalog/internal/interface/http"
)

type UserModule struct {
	Handler *handlers.UserHandler
	Limiter gin.HandlerFunc
}

func NewUserModule(h *handlers.UserHandler, limiter gin.HandlerFunc) *UserModule {
	return &UserModule{Handler: h, Limiter: limiter}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("", m.Handler.List)
	g.GET("/:id", m.Handler.Get)

	w := g.Group("")
	if m.Limiter != nil {
		w.Use(m.Limiter)
	}
	w.POST("", m.Handler.Create)
	w.PUT("/:id", m.Handler.Update)
	w.PATCH("/:id", m.Handler.Patch)
	w.DELETE("/:id", m.Handler.Delete)
}
