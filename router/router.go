// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(store *db.Store, cfg cliparse.Config, m *metrics.Service) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(store, cfg)
	votingHandler := handlers.NewVotingHandler(store, cfg, m)
	resultsHandler := handlers.NewResultsHandler(store, cfg)

	// route wraps a handler with metrics and request logging
	route := func(pattern string, h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithMetrics(m, pattern, middleware.WithLogging(h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Voting (public, every request carries a voter token)
	mux.HandleFunc("GET /poll/{id}", route("/poll/{id}", middleware.WithVoterToken(pollHandler.GetPoll)))
	mux.HandleFunc("POST /poll/{id}/vote", route("/poll/{id}/vote", middleware.WithVoterToken(votingHandler.SubmitVote)))
	mux.HandleFunc("GET /poll/{id}/results", route("/poll/{id}/results", resultsHandler.GetResults))

	// Maintenance
	mux.HandleFunc("DELETE /poll/{id}/votes", route("/poll/{id}/votes", votingHandler.ResetVotes))

	// Anything else on a poll route is a 405 with a JSON body
	mux.HandleFunc("/poll/{id}", route("/poll/{id}", middleware.MethodNotAllowed("GET, HEAD")))
	mux.HandleFunc("/poll/{id}/vote", route("/poll/{id}/vote", middleware.MethodNotAllowed("POST")))
	mux.HandleFunc("/poll/{id}/results", route("/poll/{id}/results", middleware.MethodNotAllowed("GET, HEAD")))
	mux.HandleFunc("/poll/{id}/votes", route("/poll/{id}/votes", middleware.MethodNotAllowed("DELETE")))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}
