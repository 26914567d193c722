package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/trentd187/golf-cup/internal/scoring"
	"github.com/trentd187/golf-cup/internal/tournament"
)

// validate checks request bodies against their `validate:"..."` struct tags.
// A single instance caches struct metadata across requests.
var validate = newValidator()

// newValidator reports fields by their JSON names so errors match the request body.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ErrorHandler renders every error returned by a handler as {"error": "..."}.
// It is installed as fiber.Config.ErrorHandler.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	} else {
		zap.L().Error("request failed", zap.String("method", c.Method()), zap.String("path", c.Path()), zap.Error(err))
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

// fail maps a service error to its HTTP status:
//   - not found            -> 404
//   - invalid entry        -> 400
//   - conflict, incomplete -> 409
//   - data integrity       -> 422
//
// Anything else is passed through and becomes a 500.
func fail(err error) error {
	switch {
	case errors.Is(err, tournament.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, tournament.ErrInvalidEntry):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, tournament.ErrConflict), errors.Is(err, tournament.ErrIncompleteHole):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, scoring.ErrDataIntegrity), errors.Is(err, scoring.ErrUnknownFormat):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	}
	return err
}

// bindJSON parses the JSON body into dst and validates it.
func bindJSON(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()))
			}
			return fiber.NewError(fiber.StatusBadRequest, "validation failed: "+strings.Join(fields, ", "))
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
