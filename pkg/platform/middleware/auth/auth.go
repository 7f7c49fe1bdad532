// Package auth provides optional bearer-token identification. The resume flow
// is deliberately unauthenticated — the token in the URL is the credential —
// so a missing Authorization header is always fine. When a bearer token is
// present and valid, the subject is attached to the context and ends up as
// the response owner and the audit user ID.
package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"surveyor/pkg/requestcontext"
)

// Claims carries the subset of JWT claims this service cares about.
type Claims struct {
	UserID string
}

// Validator validates bearer tokens.
type Validator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// HS256Validator validates HMAC-signed tokens against a shared key.
type HS256Validator struct {
	key []byte
}

func NewHS256Validator(signingKey string) *HS256Validator {
	return &HS256Validator{key: []byte(signingKey)}
}

func (v *HS256Validator) ValidateToken(tokenString string) (*Claims, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, errors.New("token missing sub claim")
	}
	return &Claims{UserID: sub}, nil
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// Optional identifies the caller when a bearer token is presented. Absent
// header: anonymous, proceed. Present but invalid: 401, because a caller that
// tried to authenticate should not silently continue as someone else.
func Optional(validator Validator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "invalid_request", "malformed authorization header")
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				ctx := r.Context()
				logger.WarnContext(ctx, "invalid bearer token",
					"request_id", requestcontext.RequestID(ctx),
					"error", err,
				)
				writeJSONError(w, http.StatusUnauthorized, "invalid_token", "token validation failed")
				return
			}
			ctx := requestcontext.WithUserID(r.Context(), claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
