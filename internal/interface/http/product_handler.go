package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-catalog/internal/application"
	"github.com/oksasatya/go-ddd-catalog/internal/application/dto"
	"github.com/oksasatya/go-ddd-catalog/pkg/response"
)

type ProductHandler struct {
	Svc    *application.ProductService
	Logger *logrus.Logger
}

func NewProductHandler(svc *application.ProductService, logger *logrus.Logger) *ProductHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ProductHandler{Svc: svc, Logger: logger}
}

func (h *ProductHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "products", map[string]any{"count": len(items)})
}

func (h *ProductHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	p, err := h.Svc.GetOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product", nil)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, p, "product created", nil)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var req dto.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

func (h *ProductHandler) Patch(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var req dto.PatchProductRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := h.Svc.PartialUpdate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, p, "product updated", nil)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "deleted": true}, "product deleted", nil)
}
