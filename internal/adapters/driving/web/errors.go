package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/foliolabs/folio/internal/core/domain"
)

// jsonError maps domain errors onto HTTP status codes.
func jsonError(c echo.Context, err error) error {
	status := http.StatusInternalServerError

	switch {
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrUnsupportedFileType):
		status = http.StatusUnsupportedMediaType
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrPageOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrTextNotOnPage):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrEngineUnavailable),
		errors.Is(err, domain.ErrAssistantUnavailable),
		errors.Is(err, domain.ErrSearchUnavailable):
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, echo.Map{"error": err.Error()})
}
