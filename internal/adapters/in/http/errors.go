package http

import (
	"errors"
	"net/http"

	"supplyhub/internal/core/application/usecases/commands"
	"supplyhub/internal/pkg/errs"
	"supplyhub/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	kindUnauthenticated = "unauthenticated"
	kindRateLimited     = "rate_limited"
	kindRequestInFlight = "request_in_flight"
)

var statusByKind = map[errs.Kind]int{
	errs.KindValidation:          http.StatusBadRequest,
	errs.KindNotFound:            http.StatusNotFound,
	errs.KindForbidden:           http.StatusForbidden,
	errs.KindIllegalTransition:   http.StatusConflict,
	errs.KindClaimConflict:       http.StatusConflict,
	errs.KindOrderCreationFailed: http.StatusInternalServerError,
	errs.KindStoreUnavailable:    http.StatusServiceUnavailable,
	errs.KindInternal:            http.StatusInternalServerError,
}

// writeError maps a use case error to its HTTP status and body. Internal
// details of 5xx errors are logged, not returned.
func (s *Server) writeError(c echo.Context, err error) error {
	if errors.Is(err, commands.ErrRequestInFlight) {
		return c.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Kind:    kindRequestInFlight,
			Message: err.Error(),
		})
	}

	kind := errs.KindOf(err)
	status := statusByKind[kind]
	body := Error{Code: status, Kind: string(kind), Message: err.Error()}

	var illegal *errs.IllegalTransitionError
	var conflict *errs.ClaimConflictError
	switch {
	case errors.As(err, &illegal):
		body.CurrentStatus = illegal.Current
	case errors.As(err, &conflict):
		body.CurrentStatus = conflict.Current
	}

	if status >= http.StatusInternalServerError {
		logger.FromCtx(c.Request().Context(), s.logger).Error("request failed",
			zap.String("kind", string(kind)),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		switch kind {
		case errs.KindStoreUnavailable:
			body.Message = "order store is unavailable, retry later"
		case errs.KindOrderCreationFailed:
			body.Message = "order could not be created"
		default:
			body.Message = "internal error"
		}
	}
	return c.JSON(status, body)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Kind:    string(errs.KindValidation),
		Message: message,
	})
}
