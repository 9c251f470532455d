package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-ddd-catalog/internal/interface/http"
)

// ProductModule serves /products. Reads are open; writes pass through the limiter.
type ProductModule struct {
	Handler *handlers.ProductHandler
	Limiter gin.HandlerFunc
}

func NewProductModule(h *handlers.ProductHandler, limiter gin.HandlerFunc) *ProductModule {
	return &ProductModule{Handler: h, Limiter: limiter}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/products")
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
