// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

	mux.HandleFunc("GET /health", middleware.WithLogging(handler))

Logs request start (method, path, remote) and completion (duration_ms).

# Metrics

	mux.HandleFunc("GET /poll/{id}", middleware.WithMetrics(m, "/poll/{id}", handler))

Counts requests by method, route pattern and status and observes latency.

# Voter Token

WithVoterToken issues the voter_uuid cookie when absent and stores the token
in the request context, where handlers read it with
auth.VoterTokenFromContext.

# CORS Middleware

	server := http.Server{
		Handler: middleware.CORS(mux),
	}

Allows methods GET, POST, DELETE, OPTIONS with headers Content-Type and
X-Admin-Key.

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

ErrorResponse writes {"error": message}. ParseJSONBody caps bodies at 64 KiB.

# Client IP Extraction

	ip := middleware.GetClientIP(r)

Handles X-Forwarded-For and X-Real-IP. The IP is only stored hashed.
*/
package middleware
