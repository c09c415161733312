package presenters

import (
	"Cook-App-Backend/domain"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Kind    string      `json:"kind,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, statusCode int, message string) error {
	return c.Status(statusCode).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse writes err as JSON. Domain errors pick their own status from
// their kind; anything else uses statusCode.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string, err error) error {
	status, kind := StatusFor(err, statusCode)
	resp := Response{
		Status:  false,
		Message: message,
		Kind:    string(kind),
	}
	if err != nil {
		resp.Error = publicError(err)
	}
	return c.Status(status).JSON(resp)
}

func StatusFor(err error, fallback int) (int, domain.ErrorKind) {
	var de *domain.Error
	if errors.As(err, &de) {
		switch de.Kind {
		case domain.KindValidation:
			return fiber.StatusBadRequest, de.Kind
		case domain.KindNotFound:
			return fiber.StatusNotFound, de.Kind
		case domain.KindConflict:
			return fiber.StatusConflict, de.Kind
		case domain.KindUnauthorized:
			return fiber.StatusUnauthorized, de.Kind
		case domain.KindForbidden:
			return fiber.StatusForbidden, de.Kind
		case domain.KindDependency:
			return fiber.StatusBadGateway, de.Kind
		case domain.KindInternal:
			return fiber.StatusInternalServerError, de.Kind
		}
	}
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, domain.KindValidation
	}
	if fallback == 0 {
		fallback = fiber.StatusInternalServerError
	}
	return fallback, ""
}

// publicError hides the wrapped cause of dependency and internal failures.
func publicError(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		if de.Kind == domain.KindDependency || de.Kind == domain.KindInternal {
			return de.Message
		}
		return de.Error()
	}
	return err.Error()
}
