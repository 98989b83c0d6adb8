package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyToken         = errors.New("token is required")
	ErrInvalidToken       = errors.New("token must not contain whitespace")
	ErrEmptyPolicyID      = errors.New("policy id is required")
	ErrInvalidPolicyID    = errors.New("policy id must not contain whitespace")
	ErrInvalidGeoLocation = errors.New("invalid geo location code")
)
