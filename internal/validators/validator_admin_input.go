package validators

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/MKhiriev/token-guard/models"
)

const (
	FieldToken       = "token"
	FieldPolicyID    = "policy_id"
	FieldGeoLocation = "geo_location"
)

type AdminInputValidator struct {
}

func NewAdminInputValidator() Validator {
	return &AdminInputValidator{}
}

func (v *AdminInputValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.GeoLocation:
		return validateGeoLocation(value)
	case []models.GeoLocation:
		for _, loc := range value {
			if err := validateGeoLocation(loc); err != nil {
				return fmt.Errorf("%q: %w", loc, err)
			}
		}
		return nil

	case string:
		return v.validateString(value, fields...)
	case []string:
		for _, s := range value {
			if err := v.validateString(s, fields...); err != nil {
				return fmt.Errorf("%q: %w", s, err)
			}
		}
		return nil

	default:
		return ErrUnsupportedType
	}
}

func (v *AdminInputValidator) validateString(value string, fields ...string) error {
	if len(fields) != 1 {
		return ErrUnknownField
	}

	switch fields[0] {
	case FieldToken:
		return validateToken(value)
	case FieldPolicyID:
		return validatePolicyID(value)
	case FieldGeoLocation:
		return validateGeoLocation(models.GeoLocation(value))
	default:
		return ErrUnknownField
	}
}

func validateToken(token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	if strings.ContainsFunc(token, unicode.IsSpace) {
		return ErrInvalidToken
	}
	return nil
}

func validatePolicyID(id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrEmptyPolicyID
	}
	if strings.ContainsFunc(id, unicode.IsSpace) {
		return ErrInvalidPolicyID
	}
	return nil
}

// validateGeoLocation accepts any non-empty code without whitespace or
// commas, since the admin API stores the list as free-form strings.
func validateGeoLocation(loc models.GeoLocation) error {
	s := string(loc)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return unicode.IsSpace(r) || r == ',' }) {
		return ErrInvalidGeoLocation
	}
	return nil
}
