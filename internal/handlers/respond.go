package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/servicespot-backend/internal/services"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var errBadBody = errors.New("Invalid request body")

var validate = newValidator()

// newValidator reports field errors under their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// bind parses the JSON body into req and validates it.
func bind(c *fiber.Ctx, req interface{}) error {
	if err := c.BodyParser(req); err != nil {
		return errBadBody
	}
	return validate.Struct(req)
}

func paramID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid "+name)
	}
	return id, nil
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

// fail writes the error response for err.
func fail(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Error: true, Message: "Validation failed", ValidationErrors: fields,
		})
	}

	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Error: true, Message: fe.Message})
	}

	code := statusFor(err)
	if code >= fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: "Internal server error"})
	}
	return c.Status(code).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadBody),
		errors.Is(err, models.ErrInvalidBooker),
		errors.Is(err, services.ErrInvalidBookingDate),
		errors.Is(err, services.ErrInvalidBookingTime),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrServiceNotOffered),
		errors.Is(err, services.ErrInvalidCancelledBy),
		errors.Is(err, services.ErrSelfBooking),
		errors.Is(err, services.ErrInvalidStars),
		errors.Is(err, services.ErrContentRejected),
		errors.Is(err, services.ErrInvalidOTP),
		errors.Is(err, services.ErrEmptyImage),
		errors.Is(err, services.ErrInvalidNotification),
		errors.Is(err, services.ErrAdminPasswordRequired):
		return fiber.StatusBadRequest

	case errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrInvalidToken):
		return fiber.StatusUnauthorized

	case errors.Is(err, services.ErrEmailNotVerified):
		return fiber.StatusForbidden

	case errors.Is(err, services.ErrBookingNotFound),
		errors.Is(err, services.ErrRatingNotFound),
		errors.Is(err, services.ErrNotificationNotFound),
		errors.Is(err, services.ErrCustomerNotFound),
		errors.Is(err, services.ErrProviderNotFound),
		errors.Is(err, services.ErrServiceNotFound),
		errors.Is(err, services.ErrCategoryNotFound),
		errors.Is(err, services.ErrContactNotFound),
		errors.Is(err, services.ErrFAQNotFound),
		errors.Is(err, services.ErrArticleNotFound),
		errors.Is(err, services.ErrAdminNotFound),
		errors.Is(err, services.ErrAccountNotFound):
		return fiber.StatusNotFound

	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrPhoneTaken),
		errors.Is(err, services.ErrCategoryExists),
		errors.Is(err, services.ErrCategoryInUse),
		errors.Is(err, services.ErrAlreadyRated),
		errors.Is(err, services.ErrAlreadyVerified),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrBookingStateChanged):
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "len":
		return fmt.Sprintf("must be exactly %s characters", fe.Param())
	case "numeric":
		return "must contain digits only"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	}
	return "is invalid"
}
