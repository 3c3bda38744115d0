package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/consensus-score/deployer/internal/domain/config"
	"github.com/go-playground/validator/v10"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator returns a singleton used to validate the runtime configuration
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the resolved configuration and reports every invalid field at once
func Validate(cfg *config.RuntimeConfig) error {
	err := Validator().Struct(cfg)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	problems := make([]string, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		problems = append(problems, describe(fieldErr))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
}

func describe(fieldErr validator.FieldError) string {
	field := strings.TrimPrefix(fieldErr.Namespace(), "RuntimeConfig.")
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "url":
		return fmt.Sprintf("%s must be a URL, got %q", field, fieldErr.Value())
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fieldErr.Param(), fieldErr.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fieldErr.Tag())
	}
}
