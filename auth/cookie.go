// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"net/http"
)

const (
	VoterCookieName   = "voter_uuid"
	VoterCookieMaxAge = 365 * 24 * 60 * 60 // one year, in seconds
)

type contextKey struct{}

// EnsureVoterToken returns the voter token carried by the request cookie.
// When the cookie is missing a new token is generated and a Set-Cookie
// header is added to w. The second return value reports whether the token
// was issued by this call.
func EnsureVoterToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	if c, err := r.Cookie(VoterCookieName); err == nil && c.Value != "" {
		return c.Value, false
	}

	token := GenerateVoterToken()
	http.SetCookie(w, &http.Cookie{
		Name:     VoterCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   VoterCookieMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return token, true
}

// WithVoterToken stores the voter token in ctx.
func WithVoterToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextKey{}, token)
}

// VoterTokenFromContext returns the token stored by WithVoterToken.
func VoterTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(contextKey{}).(string)
	return token, ok && token != ""
}
