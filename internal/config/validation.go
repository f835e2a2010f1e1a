package config

import (
	"fmt"
	"strings"

	"github.com/dbsmedya/framepairs/internal/framerange"
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
// Mode names and parameter keys are checked by the job package, which knows
// the sampling modes.
func (c *Config) Validate() error {
	var errors ValidationErrors

	errors = append(errors, c.validateStore()...)

	if len(c.Jobs) == 0 {
		errors = append(errors, ValidationError{
			Field:   "jobs",
			Message: "at least one job must be defined",
		})
	}
	for name, job := range c.Jobs {
		errors = append(errors, c.validateJob(name, &job)...)
	}

	for i, req := range c.Sampling.Requests {
		errors = append(errors, validateRequest(fmt.Sprintf("sampling.requests[%d]", i), &req)...)
	}

	errors = append(errors, validateProcessing("processing", &c.Processing)...)
	errors = append(errors, c.validateLogging()...)

	if len(errors) > 0 {
		return errors
	}
	return nil
}

func (c *Config) validateStore() ValidationErrors {
	var errors ValidationErrors
	s := &c.Store

	switch s.Driver {
	case "mysql":
		if s.Host == "" {
			errors = append(errors, ValidationError{Field: "store.host", Message: "host is required for mysql"})
		}
		if s.Port <= 0 || s.Port > 65535 {
			errors = append(errors, ValidationError{Field: "store.port", Message: "port must be between 1 and 65535"})
		}
		if s.User == "" {
			errors = append(errors, ValidationError{Field: "store.user", Message: "user is required for mysql"})
		}
		if s.Database == "" {
			errors = append(errors, ValidationError{Field: "store.database", Message: "database name is required for mysql"})
		}
		validTLS := map[string]bool{"disable": true, "preferred": true, "required": true, "": true}
		if !validTLS[s.TLS] {
			errors = append(errors, ValidationError{
				Field:   "store.tls",
				Message: "tls must be 'disable', 'preferred', or 'required'",
			})
		}
	case "sqlite":
		if s.Path == "" {
			errors = append(errors, ValidationError{Field: "store.path", Message: "path is required for sqlite"})
		}
	default:
		errors = append(errors, ValidationError{Field: "store.driver", Message: "driver must be 'mysql' or 'sqlite'"})
	}

	if s.Table == "" {
		errors = append(errors, ValidationError{Field: "store.table", Message: "table is required"})
	}
	if s.MaxConnections < 0 {
		errors = append(errors, ValidationError{Field: "store.max_connections", Message: "max_connections cannot be negative"})
	}
	if s.MaxIdleConnections < 0 {
		errors = append(errors, ValidationError{Field: "store.max_idle_connections", Message: "max_idle_connections cannot be negative"})
	}

	return errors
}

func (c *Config) validateJob(name string, job *JobConfig) ValidationErrors {
	var errors ValidationErrors
	prefix := fmt.Sprintf("jobs.%s", name)

	if job.NumFrames < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".num_frames",
			Message: "num_frames cannot be negative",
		})
	}
	if job.NumFrames == 0 && job.Frames == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".num_frames",
			Message: "num_frames or frames is required",
		})
	}

	for field, expr := range map[string]string{
		"frames":       job.Frames,
		"active":       job.Active,
		"valid_frames": job.ValidFrames,
	} {
		if _, err := framerange.ParseOptionalSet(expr); err != nil {
			errors = append(errors, ValidationError{
				Field:   prefix + "." + field,
				Message: err.Error(),
			})
		}
	}

	for i, op := range job.FlowOps {
		if strings.TrimSpace(op) == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("%s.flow_ops[%d]", prefix, i),
				Message: "mode name is empty",
			})
		}
	}
	for i, req := range job.Requests {
		errors = append(errors, validateRequest(fmt.Sprintf("%s.requests[%d]", prefix, i), &req)...)
	}

	if job.Processing != nil {
		errors = append(errors, validateJobProcessing(prefix+".processing", job.Processing)...)
	}

	return errors
}

func validateRequest(prefix string, req *RequestConfig) ValidationErrors {
	var errors ValidationErrors
	if strings.TrimSpace(req.Mode) == "" {
		errors = append(errors, ValidationError{
			Field:   prefix + ".mode",
			Message: "mode is required",
		})
	}
	return errors
}

func validateProcessing(prefix string, p *ProcessingConfig) ValidationErrors {
	var errors ValidationErrors

	if p.BatchSize <= 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".batch_size",
			Message: "batch_size must be positive",
		})
	}
	if p.Parallelism < 0 {
		errors = append(errors, ValidationError{
			Field:   prefix + ".parallelism",
			Message: "parallelism cannot be negative",
		})
	}

	return errors
}

// validateJobProcessing allows zero values, which fall back to the global settings.
func validateJobProcessing(prefix string, p *ProcessingConfig) ValidationErrors {
	var errors ValidationErrors
	if p.BatchSize < 0 {
		errors = append(errors, ValidationError{Field: prefix + ".batch_size", Message: "batch_size cannot be negative"})
	}
	if p.Parallelism < 0 {
		errors = append(errors, ValidationError{Field: prefix + ".parallelism", Message: "parallelism cannot be negative"})
	}
	return errors
}

func (c *Config) validateLogging() ValidationErrors {
	var errors ValidationErrors

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "": true}
	if !validLevels[c.Logging.Level] {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Message: "level must be 'debug', 'info', 'warn', or 'error'",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true, "": true}
	if !validFormats[c.Logging.Format] {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Message: "format must be 'json' or 'text'",
		})
	}

	return errors
}
