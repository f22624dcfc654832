// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

// PollStore is the read side of the store used by the poll view.
type PollStore interface {
	GetPoll(ctx context.Context, pollID int64) (models.Poll, error)
	ListOptions(ctx context.Context, pollID int64) ([]models.Option, error)
	HasVoted(ctx context.Context, pollID int64, voterToken string) (bool, error)
}

type PollHandler struct {
	store PollStore
	cfg   cliparse.Config
}

func NewPollHandler(store PollStore, cfg cliparse.Config) *PollHandler {
	return &PollHandler{store: store, cfg: cfg}
}

// GetPoll handles GET /poll/{id}
// Returns the poll, its options and whether this voter already voted
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDFromPath(w, r)
	if !ok {
		return
	}

	voterToken := currentVoter(w, r)

	poll, err := h.store.GetPoll(r.Context(), pollID)
	if errors.Is(err, db.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	options, err := h.store.ListOptions(r.Context(), pollID)
	if err != nil {
		slog.Error("failed to query options", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voted, err := h.store.HasVoted(r.Context(), pollID, voterToken)
	if err != nil {
		slog.Error("failed to query voter status", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	view := models.PollView{
		Poll:    poll,
		Options: options,
	}
	if voted {
		view.AlreadyVoted = 1
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// pollIDFromPath reads the {id} path value, writing the error response itself
// when it cannot name a poll. Ids are positive, so a non-positive number is
// an unknown poll rather than a malformed one.
func pollIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid poll id")
		return 0, false
	}
	if id <= 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return 0, false
	}
	return id, true
}

// currentVoter returns the token placed in the context by the token
// middleware, issuing one directly if the handler is mounted without it.
func currentVoter(w http.ResponseWriter, r *http.Request) string {
	if token, ok := auth.VoterTokenFromContext(r.Context()); ok {
		return token
	}
	token, _ := auth.EnsureVoterToken(w, r)
	return token
}
