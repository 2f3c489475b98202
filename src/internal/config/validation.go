package config

import (
	"fmt"
	"net"
	"net/netip"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/valyala/fasttemplate"
)

// getValidationMessage returns a human-readable message for a validation error
func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "Missing key."
	case "min":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "gte":
		return fmt.Sprintf("must be >= %s", e.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", e.Param())
	case "hostname_rfc1123":
		return "must be a valid host name"
	case "update_url_or_empty":
		return "must be an http:// or https:// URL template or empty"
	case "arg_template":
		return "must be a valid template, every {{ needs a closing }}"
	case "nameserver_or_empty":
		return "must be an IP address, optionally with :port, or empty"
	default:
		return fmt.Sprintf("validation failed: %s", e.Tag())
	}
}

// ValidationError represents a single validation error with context
type ValidationError struct {
	FieldPath string // Dot-notation field path (e.g., "connect.scope")
	Message   string // Human-readable error message
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return fmt.Sprintf("%s: %s", ve[0].FieldPath, ve[0].Message)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("validation failed with %d error(s):", len(ve)))
	for i, err := range ve {
		sb.WriteString(fmt.Sprintf(" %d. %s: %s;", i+1, err.FieldPath, err.Message))
	}
	return strings.TrimSuffix(sb.String(), ";")
}

var validate *validator.Validate

func init() {
	validate = validator.New()

	if err := validate.RegisterValidation("update_url_or_empty", validateUpdateURLOrEmpty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("nameserver_or_empty", validateNameserverOrEmpty); err != nil {
		panic(err)
	}
	if err := validate.RegisterValidation("arg_template", validateArgTemplate); err != nil {
		panic(err)
	}

	// Register function to get field name from "toml" tag
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validator: update URL template, the {{...}} placeholders make url.Parse unreliable
func validateUpdateURLOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		return false
	}
	return isValidTemplate(value)
}

// Custom validator: gateway argument template
func validateArgTemplate(fl validator.FieldLevel) bool {
	return isValidTemplate(fl.Field().String())
}

func isValidTemplate(value string) bool {
	_, err := fasttemplate.NewTemplate(value, "{{", "}}")
	return err == nil
}

// Custom validator: nameserver as ip or ip:port
func validateNameserverOrEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if _, err := netip.ParseAddr(value); err == nil {
		return true
	}
	host, port, err := net.SplitHostPort(value)
	if err != nil || port == "" {
		return false
	}
	_, err = netip.ParseAddr(host)
	return err == nil
}
