package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-catalog/internal/application"
	"github.com/oksasatya/go-ddd-catalog/internal/application/dto"
	"github.com/oksasatya/go-ddd-catalog/pkg/response"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &UserHandler{Svc: svc, Logger: logger}
}

func (h *UserHandler) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, items, "users", map[string]any{"count": len(items)})
}

func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	u, err := h.Svc.GetOne(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user", nil)
}

func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, u, "user created", nil)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var req dto.UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UserHandler) Patch(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	var req dto.PatchUserRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.PartialUpdate(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, u, "user updated", nil)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, map[string]any{"id": id, "deleted": true}, "user deleted", nil)
}
