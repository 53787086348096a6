package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/ledger/internal/errors"
	"github.com/umalmyha/ledger/internal/validation"
)

// HTTPErrorHandler maps application errors to status codes, unknown errors are logged and hidden
func HTTPErrorHandler(logger logrus.FieldLogger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			pldErr  *validation.PayloadError
			nfErr   *apperrors.EntryNotFoundErr
			bErr    *apperrors.BusinessErr
			echoErr *echo.HTTPError
		)

		var (
			code int
			body any
		)

		switch {
		case errors.As(err, &pldErr):
			code, body = http.StatusBadRequest, pldErr
		case errors.As(err, &nfErr):
			code, body = http.StatusNotFound, echo.Map{"message": nfErr.Error()}
		case errors.As(err, &bErr):
			code, body = http.StatusBadRequest, bErr
		case errors.As(err, &echoErr):
			code, body = echoErr.Code, echo.Map{"message": echoErr.Message}
		default:
			logger.WithError(err).WithField("path", c.Path()).Error("request failed")
			code, body = http.StatusInternalServerError, echo.Map{"message": "Internal server error"}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, body)
		}

		if err != nil {
			logger.WithError(err).Error("failed to write error response")
		}
	}
}
