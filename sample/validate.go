package sample

import (
	"fmt"
	"strings"
)

// ValidationError represents a row quality issue with context.
type ValidationError struct {
	Field   string // Field path (e.g., "contributors[0].identifier")
	Code    string // Error code (e.g., "required", "invalid_format")
	Message string // Human-readable message
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationResult contains all quality findings for a row. Warnings
// never block the row; the import workflow favors showing the curator
// everything that is wrong in one pass.
type ValidationResult struct {
	Warnings []ValidationError
}

// HasWarnings reports whether any issues were found.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Summary returns a combined message, or "" when clean.
func (r *ValidationResult) Summary() string {
	if !r.HasWarnings() {
		return ""
	}
	msgs := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		msgs = append(msgs, w.Error())
	}
	return strings.Join(msgs, "; ")
}

// ValidationOptions configures row validation.
type ValidationOptions struct {
	// RequiredFields must carry non-empty values on every row.
	RequiredFields []string
	// CheckIdentifierFormats verifies ORCID and IGSN well-formedness.
	CheckIdentifierFormats bool
	// CheckCoordinates verifies latitude/longitude bounds.
	CheckCoordinates bool
}

// DefaultValidationOptions returns the standard import checks.
func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{
		RequiredFields:         []string{"igsn", "title", "name"},
		CheckIdentifierFormats: true,
		CheckCoordinates:       true,
	}
}

// ValidateRow runs curator-facing quality checks on a parsed row.
func ValidateRow(r *Row, opts ValidationOptions) *ValidationResult {
	result := &ValidationResult{}

	for _, f := range opts.RequiredFields {
		if r.GetField(f) == "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   f,
				Code:    "required",
				Message: "required value is empty",
			})
		}
	}

	if opts.CheckIdentifierFormats {
		if igsn := r.IGSN(); igsn != "" && !ValidIGSN(igsn) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "igsn",
				Code:    "invalid_format",
				Message: fmt.Sprintf("%q is not a DOI-form IGSN", igsn),
			})
		}
		if r.Creator != nil && r.Creator.ORCID != "" && !ValidORCID(r.Creator.ORCID) {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "creator.orcid",
				Code:    "invalid_format",
				Message: fmt.Sprintf("%q is not a well-formed ORCID", r.Creator.ORCID),
			})
		}
		for i, c := range r.Contributors {
			if strings.EqualFold(c.IdentifierType, "ORCID") && c.Identifier != "" && !ValidORCID(c.Identifier) {
				result.Warnings = append(result.Warnings, ValidationError{
					Field:   fmt.Sprintf("contributors[%d].identifier", i),
					Code:    "invalid_format",
					Message: fmt.Sprintf("%q is not a well-formed ORCID", c.Identifier),
				})
			}
		}
	}

	for i, c := range r.Contributors {
		if c.Name == "" && c.Identifier != "" {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("contributors[%d].name", i),
				Code:    "required",
				Message: "contributor has an identifier but no name",
			})
		}
	}

	if opts.CheckCoordinates && r.GeoLocation != nil && !r.GeoLocation.InBounds() {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "geo_location",
			Code:    "out_of_range",
			Message: fmt.Sprintf("coordinates (%v, %v) are outside WGS 84 bounds", r.GeoLocation.Latitude, r.GeoLocation.Longitude),
		})
	}

	return result
}
