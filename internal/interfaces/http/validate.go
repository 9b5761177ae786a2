package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/pipeline-crm/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report json / query names instead of Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// errBadBody marks a body that could not be decoded at all.
var errBadBody = errors.New("invalid request body")

// bindAndValidate parses the body into dst and validates it. Validation failures come back
// as domain.ErrValidation listing each offending field.
func bindAndValidate(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return errBadBody
	}
	return validateStruct(dst)
}

// bindQuery parses query parameters into dst and validates it.
func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return domain.Validationf("invalid query: %v", err)
	}
	return validateStruct(dst)
}

func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return fmt.Errorf("validate: %w", err)
	}
	fields := make([]string, 0, len(ve))
	for _, fe := range ve {
		rule := fe.Tag()
		if fe.Param() != "" {
			rule += "=" + fe.Param()
		}
		fields = append(fields, fe.Namespace()[strings.Index(fe.Namespace(), ".")+1:]+": "+rule)
	}
	return domain.Validationf("%s", strings.Join(fields, "; "))
}

// handleBindError writes the response for a bindAndValidate failure.
func handleBindError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errBadBody) {
		return invalidBody(c)
	}
	return writeError(c, err)
}
