package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/dmeter/dmeter-api/internal/metrics"
	"github.com/dmeter/dmeter-api/internal/schema"
)

// APIError is the body of every non-validation error response.
type APIError struct {
	Detail string `json:"detail"`
}

// ValidationErrorResponse is the body of a 422 response.
type ValidationErrorResponse struct {
	Detail []schema.FieldError `json:"detail"`
}

// InternalError marks a failure raised while producing a result, as opposed
// to a problem with the request itself.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return e.Err.Error() }

func (e *InternalError) Unwrap() error { return e.Err }

func internalError(err error) error {
	return &InternalError{Err: err}
}

// ErrorHandler is the centralized Fiber error handler. Validation failures
// become 422 with a list of field errors; everything else carries a single
// detail message, with 500 as the status for anything that is not a
// *fiber.Error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var verr *schema.ValidationError
	if errors.As(err, &verr) {
		metrics.ValidationFailures.WithLabelValues(c.Route().Path).Inc()
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ValidationErrorResponse{Detail: verr.Errors})
	}

	code := fiber.StatusInternalServerError
	var ferr *fiber.Error
	if errors.As(err, &ferr) {
		code = ferr.Code
	}

	return c.Status(code).JSON(APIError{Detail: err.Error()})
}
