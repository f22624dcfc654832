// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

type ResultsStore interface {
	GetResults(ctx context.Context, pollID int64) ([]models.OptionResult, error)
}

type ResultsHandler struct {
	store ResultsStore
	cfg   cliparse.Config
}

func NewResultsHandler(store ResultsStore, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: store, cfg: cfg}
}

// GetResults handles GET /poll/{id}/results
// Results are public and live; every option is listed, zero-vote ones included
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDFromPath(w, r)
	if !ok {
		return
	}

	results, err := h.store.GetResults(r.Context(), pollID)
	if errors.Is(err, db.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query results", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var total int64
	for _, res := range results {
		total += res.Votes
	}
	slog.Debug("results served", "poll_id", pollID, "options", len(results), "votes", humanize.Comma(total))

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{Results: results})
}
