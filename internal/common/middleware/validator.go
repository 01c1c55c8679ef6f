package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ============================================================
// Struct Validator
// ============================================================

// StructValidator подключается в fiber.Config и проверяет DTO,
// которые читаются через c.Bind().Body().
type StructValidator struct {
	validate *validator.Validate
}

func NewStructValidator() *StructValidator {
	return &StructValidator{validate: validator.New()}
}

func (v *StructValidator) Validate(out any) error {
	return v.validate.Struct(out)
}

// ValidationMessage превращает ошибку валидатора в короткое сообщение
// вида "name: required". Остальные ошибки возвращаются как есть.
func ValidationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fe.Tag()
		if fe.Param() != "" {
			msg = fmt.Sprintf("%s=%s", fe.Tag(), fe.Param())
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToLower(fe.Field()), msg))
	}
	return strings.Join(parts, ", ")
}
