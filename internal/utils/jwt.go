package utils

import (
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNotJWT is returned by TokenSubject for strings that are not JWTs.
var ErrNotJWT = errors.New("token is not a jwt")

// TokenSubject returns the "sub" claim of a JWT without verifying its
// signature. The console only reads the claim to describe the token in ban
// requests; it never trusts it.
//
// Tokens that are not three dot-separated segments return [ErrNotJWT].
func TokenSubject(token string) (string, error) {
	token = strings.TrimSpace(token)
	if strings.Count(token, ".") != 2 {
		return "", ErrNotJWT
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", errors.Join(ErrNotJWT, err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}

	return claims.GetSubject()
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
