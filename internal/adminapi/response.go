package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/talkincode/productcards/internal/catalog"
)

// Response is the envelope of every API reply
type Response struct {
	Code    string      `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: "SUCCESS", Data: data})
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, Response{Code: code, Message: message, Details: details})
}

// storeError maps catalog errors to an API failure
func storeError(c echo.Context, err error, alerts []string) error {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", verr.Message, map[string]interface{}{
			"field":  verr.Field,
			"alerts": alerts,
		})
	case errors.Is(err, catalog.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case errors.Is(err, catalog.ErrNotConfirmed):
		return fail(c, http.StatusConflict, "NOT_CONFIRMED", "Deletion requires confirm=true", nil)
	case errors.Is(err, catalog.ErrPersist):
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Change applied but not persisted", err.Error())
	default:
		return fail(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Unexpected error", err.Error())
	}
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}
