// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides voter identity and admin key utilities.

# Voter Tokens

Voters are anonymous. Each browser holds a voter_uuid cookie containing a
random UUIDv4:

	token, issued := auth.EnsureVoterToken(w, r)

A request without the cookie gets a fresh token and a Set-Cookie header
(HttpOnly, Path=/, one year). A request with the cookie keeps its token
unchanged. The middleware package stores the token in the request context:

	token, ok := auth.VoterTokenFromContext(r.Context())

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(pollID, salt)
	err := auth.ValidateAdminKey(pollID, adminKey, salt)

The key is URL-safe base64 encoded without padding. They guard the vote
reset endpoint when ADMIN_KEY_SALT is configured.

# IP Hashing

Voter rows record a salted hash of the client address, never the address:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
