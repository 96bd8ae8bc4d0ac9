package http

import (
	"encoding/json"
	"errors"
	"io"

	"orderledger/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// decodeStrict reads a single JSON document and rejects members the target type does
// not declare.
func decodeStrict(ctx echo.Context, dst any) error {
	decoder := json.NewDecoder(ctx.Request().Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errs.NewValueIsRequiredError("request body")
		}
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	if decoder.More() {
		return errs.NewValueIsInvalidError("request body has trailing data")
	}
	return nil
}
