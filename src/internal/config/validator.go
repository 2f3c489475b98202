package config

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// ValidateConfig validates the entire configuration and returns all validation errors
func (c *Config) ValidateConfig() error {
	var validationErrors ValidationErrors

	if c.Connect == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "connect",
			Message:   "Missing section `connect`.",
		})
	}
	if c.DDNS == nil {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "ddns",
			Message:   "Missing section `ddns`.",
		})
	}
	if len(validationErrors) > 0 {
		return validationErrors
	}

	if err := validate.Struct(c.Connect); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "connect")...)
	}
	if err := validate.Struct(c.DDNS); err != nil {
		validationErrors = append(validationErrors, convertValidatorErrors(err, "ddns")...)
	}
	if c.DDNS.Provider == "dyndns2" && c.DDNS.Server == "" {
		validationErrors = append(validationErrors, ValidationError{
			FieldPath: "ddns.server",
			Message:   "is required for provider dyndns2",
		})
	}

	if c.Gateway != nil {
		if err := validate.Struct(c.Gateway); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "gateway")...)
		}
	}
	if c.Probe != nil {
		if err := validate.Struct(c.Probe); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "probe")...)
		}
	}
	if c.Log != nil {
		if err := validate.Struct(c.Log); err != nil {
			validationErrors = append(validationErrors, convertValidatorErrors(err, "log")...)
		}
	}

	if len(validationErrors) > 0 {
		return validationErrors
	}

	return nil
}

// convertValidatorErrors converts go-playground/validator errors to our ValidationError format
func convertValidatorErrors(err error, fieldPrefix string) ValidationErrors {
	var validationErrors ValidationErrors

	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			fieldPath := fieldPrefix
			if e.Field() != "" {
				// e.Field() returns the TOML tag name because we registered TagNameFunc
				fieldPath = fieldPrefix + "." + e.Field()
			}

			validationErrors = append(validationErrors, ValidationError{
				FieldPath: fieldPath,
				Message:   getValidationMessage(e),
			})
		}
	}

	return validationErrors
}
