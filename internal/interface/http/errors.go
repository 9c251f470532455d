package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-catalog/internal/domain/entity"
	"github.com/oksasatya/go-ddd-catalog/pkg/response"
	"github.com/oksasatya/go-ddd-catalog/pkg/validation"
)

var errInvalidID = errors.New("id must be a positive integer")

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidID
	}
	return id, nil
}

// bindJSON decodes the body and answers 400 on malformed input.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return false
	}
	return true
}

// respondError maps domain error kinds onto HTTP statuses. Anything unclassified
// is a 500 and its text is not sent to the caller.
func respondError(c *gin.Context, logger *logrus.Logger, err error) {
	var de *entity.Error
	if !errors.As(err, &de) {
		logger.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
		return
	}

	switch de.Kind {
	case entity.KindValidation:
		details := de.Details
		if len(details) == 0 && de.Field != "" {
			details = map[string]string{de.Field: de.Message}
		}
		response.Error[any](c, http.StatusBadRequest, "validation failed", details)
	case entity.KindNotFound:
		response.Error[any](c, http.StatusNotFound, de.Message, nil)
	case entity.KindConflict:
		response.Error[any](c, http.StatusConflict, de.Message, nil)
	default:
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
