package adapter

import (
	"strings"

	"github.com/MKhiriev/token-guard/internal/utils"
)

// tokenClaim returns the value sent as token_claim in ban requests: the
// token's JWT subject when it has one, otherwise fallback.
func tokenClaim(token, fallback string) string {
	if bare, err := utils.ParseBearerToken(token); err == nil {
		token = bare
	}

	sub, err := utils.TokenSubject(token)
	if err != nil || strings.TrimSpace(sub) == "" {
		return fallback
	}
	return sub
}
