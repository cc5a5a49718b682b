package profile

import (
	"fmt"
	"math"
	"strings"

	"github.com/quarrylabs/exprquest/internal/search"
)

// Validation error codes (E100-E199).
const (
	ErrTargetMissing     = "E101" // target is required
	ErrTargetInvalid     = "E102" // target not a finite number
	ErrAtomsInvalid      = "E103" // atoms not a non-negative integer
	ErrMaxCostMissing    = "E104" // max_cost is required
	ErrMaxCostInvalid    = "E105" // max_cost not a positive integer
	ErrMaxSecondsInvalid = "E106" // max_seconds not a non-negative number
	ErrKeepTopInvalid    = "E107" // keep_top not a positive integer
	ErrKeepSideInvalid   = "E108" // keep_side not greater/less/both
	ErrConstantInvalid   = "E109" // constant value not a finite number
	ErrUnaryInvalid      = "E110" // unary entry not a string
	ErrUnaryUnknown      = "E111" // unknown unary function name
	ErrUnaryDuplicate    = "E112" // unary function listed twice
	ErrEpsilonInvalid    = "E113" // epsilon not a non-negative number
	ErrPowerInvalid      = "E114" // power not a bool
)

// ValidationError is one problem found in a profile.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Errors aggregates all validation errors of one profile.
type Errors []ValidationError

// Error implements the error interface, one problem per line.
func (e Errors) Error() string {
	lines := make([]string, len(e))
	for i, ve := range e {
		lines[i] = ve.Error()
	}
	return strings.Join(lines, "\n")
}

// Validate checks range constraints on a compiled configuration.
// Returns all errors found (does not fail-fast).
func Validate(cfg *search.Config) []ValidationError {
	var errs []ValidationError

	if math.IsNaN(cfg.Target) || math.IsInf(cfg.Target, 0) {
		errs = append(errs, ValidationError{
			Field: "target", Code: ErrTargetInvalid,
			Message: "target must be a finite number",
		})
	}
	if cfg.AtomCount < 0 {
		errs = append(errs, ValidationError{
			Field: "atoms", Code: ErrAtomsInvalid,
			Message: fmt.Sprintf("atoms must be >= 0, got %d", cfg.AtomCount),
		})
	}
	if cfg.MaxCost < 1 {
		errs = append(errs, ValidationError{
			Field: "max_cost", Code: ErrMaxCostInvalid,
			Message: fmt.Sprintf("max_cost must be >= 1, got %d", cfg.MaxCost),
		})
	}
	if cfg.MaxDuration < 0 {
		errs = append(errs, ValidationError{
			Field: "max_seconds", Code: ErrMaxSecondsInvalid,
			Message: "max_seconds must be >= 0",
		})
	}
	if cfg.KeepTop < 1 {
		errs = append(errs, ValidationError{
			Field: "keep_top", Code: ErrKeepTopInvalid,
			Message: fmt.Sprintf("keep_top must be >= 1, got %d", cfg.KeepTop),
		})
	}
	if cfg.Epsilon < 0 {
		errs = append(errs, ValidationError{
			Field: "epsilon", Code: ErrEpsilonInvalid,
			Message: "epsilon must be >= 0",
		})
	}
	for _, k := range cfg.Constants {
		if k.Name == "" {
			errs = append(errs, ValidationError{
				Field: "constants", Code: ErrConstantInvalid,
				Message: "constant name must be non-empty",
			})
			continue
		}
		if math.IsNaN(k.Value) || math.IsInf(k.Value, 0) {
			errs = append(errs, ValidationError{
				Field: "constants." + k.Name, Code: ErrConstantInvalid,
				Message: "constant value must be a finite number",
			})
		}
	}
	return errs
}
