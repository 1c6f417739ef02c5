package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errors ValidationErrors

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, ValidationError{
			Field:   "server.port",
			Message: fmt.Sprintf("must be between 1 and 65535, got %d", c.Server.Port),
		})
	}
	if c.Server.RateLimit < 0 {
		errors = append(errors, ValidationError{
			Field:   "server.rate_limit",
			Message: "must not be negative",
		})
	}

	if strings.TrimSpace(c.Data.Source) == "" {
		errors = append(errors, ValidationError{
			Field:   "data.source",
			Message: "is required",
		})
	}
	if c.Data.Timeout < 0 {
		errors = append(errors, ValidationError{
			Field:   "data.timeout",
			Message: "must not be negative",
		})
	}

	if c.Dashboard.TargetRole == "" {
		errors = append(errors, ValidationError{
			Field:   "dashboard.target_role",
			Message: "is required",
		})
	}
	if c.Dashboard.PreviewRows < 1 {
		errors = append(errors, ValidationError{
			Field:   "dashboard.preview_rows",
			Message: "must be at least 1",
		})
	}
	errors = append(errors, validateSlider("dashboard.top_n", c.Dashboard.TopN)...)
	errors = append(errors, validateSlider("dashboard.bins", c.Dashboard.Bins)...)

	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func validateSlider(field string, s SliderConfig) []ValidationError {
	var errs []ValidationError
	if s.Min < 1 {
		errs = append(errs, ValidationError{Field: field + ".min", Message: "must be at least 1"})
	}
	if s.Max < s.Min {
		errs = append(errs, ValidationError{Field: field + ".max", Message: "must not be below min"})
	}
	if s.Default < s.Min || s.Default > s.Max {
		errs = append(errs, ValidationError{
			Field:   field + ".default",
			Message: fmt.Sprintf("must be within [%d, %d]", s.Min, s.Max),
		})
	}
	return errs
}

func (c *Config) validateLogging() []ValidationError {
	var errs []ValidationError
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.level",
			Message: fmt.Sprintf("invalid level %q (use debug, info, warn, error)", c.Logging.Level),
		})
	}
	switch c.Logging.Format {
	case "json", "text", "":
	default:
		errs = append(errs, ValidationError{
			Field:   "logging.format",
			Message: fmt.Sprintf("invalid format %q (use json or text)", c.Logging.Format),
		})
	}
	return errs
}
