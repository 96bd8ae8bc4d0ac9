package http

import (
	"errors"
	"net/http"

	"orderledger/internal/core/application/usecases/commands"
	"orderledger/internal/core/domain/model/order"
	"orderledger/internal/core/domain/services"
	"orderledger/internal/generated/servers"
	"orderledger/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

var errOrderIDMissing = errs.NewValueIsRequiredError("orderId")

// statusFor maps specific failures first and error kinds second.
func statusFor(err error) int {
	switch {
	case errors.Is(err, commands.ErrOrderUpdateRolledBack),
		errors.Is(err, commands.ErrParcelFetchFailed),
		errors.Is(err, commands.ErrParcelUpdateFailed),
		errors.Is(err, commands.ErrProductNotFound):
		return http.StatusInternalServerError
	case errors.Is(err, order.ErrAlreadyPaid),
		errors.Is(err, services.ErrSignatureMismatch),
		errors.Is(err, commands.ErrAmountExceedsGatewayMax):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrExternalDependency):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(ctx echo.Context, err error) error {
	status := statusFor(err)

	body := servers.Error{
		Code:    status,
		Message: err.Error(),
	}

	var rolledBack *commands.OrderUpdateRolledBackError
	if errors.As(err, &rolledBack) {
		rollbackFailed := rolledBack.RollbackFailed
		body.RollbackFailed = &rollbackFailed
	}

	return ctx.JSON(status, body)
}
