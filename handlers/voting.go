// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
)

// VoteStore is the write side of the store.
type VoteStore interface {
	SubmitVote(ctx context.Context, ballot models.Ballot) (models.Admission, error)
	ResetVotes(ctx context.Context, pollID int64) (int64, error)
}

type VotingHandler struct {
	store   VoteStore
	cfg     cliparse.Config
	metrics *metrics.Service
}

func NewVotingHandler(store VoteStore, cfg cliparse.Config, m *metrics.Service) *VotingHandler {
	return &VotingHandler{store: store, cfg: cfg, metrics: m}
}

// SubmitVote handles POST /poll/{id}/vote
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDFromPath(w, r)
	if !ok {
		return
	}

	voterToken := currentVoter(w, r)

	// Parse request
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ballot := models.Ballot{
		PollID:     pollID,
		VoterToken: voterToken,
		Choices:    req.Choices,
		UserAgent:  r.UserAgent(),
	}
	if h.cfg.IPHashSalt != "" {
		ballot.IPHash = auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt)
	}

	admission, err := h.store.SubmitVote(r.Context(), ballot)
	switch {
	case errors.Is(err, db.ErrNoChoices):
		h.reject(w, http.StatusBadRequest, metrics.ReasonNoChoices, "No choices provided")
		return
	case errors.Is(err, db.ErrInvalidSelection):
		h.reject(w, http.StatusBadRequest, metrics.ReasonInvalidSelection, "Invalid option selected")
		return
	case errors.Is(err, db.ErrPollNotFound):
		h.reject(w, http.StatusNotFound, metrics.ReasonPollNotFound, "Poll not found")
		return
	case errors.Is(err, db.ErrAlreadyVoted):
		slog.Info("duplicate vote rejected", "poll_id", pollID)
		h.reject(w, http.StatusForbidden, metrics.ReasonAlreadyVoted, "You already voted")
		return
	case err != nil:
		slog.Error("failed to record vote", "error", err, "poll_id", pollID)
		h.reject(w, http.StatusInternalServerError, metrics.ReasonStorage, "Failed to record vote")
		return
	}

	h.metrics.IncVoteAdmitted(admission.Recorded)
	slog.Info("vote recorded", "poll_id", pollID, "options", admission.Recorded)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{OK: true})
}

// ResetVotes handles DELETE /poll/{id}/votes
// Wipes votes and voter status. Requires X-Admin-Key when an admin salt is configured.
func (h *VotingHandler) ResetVotes(w http.ResponseWriter, r *http.Request) {
	pollID, ok := pollIDFromPath(w, r)
	if !ok {
		return
	}

	if h.cfg.AdminKeySalt != "" {
		adminKey := r.Header.Get("X-Admin-Key")
		if adminKey == "" {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Admin-Key header required")
			return
		}
		if err := auth.ValidateAdminKey(pollID, adminKey, h.cfg.AdminKeySalt); err != nil {
			middleware.ErrorResponse(w, http.StatusForbidden, "Invalid admin key")
			return
		}
	}

	deleted, err := h.store.ResetVotes(r.Context(), pollID)
	if errors.Is(err, db.ErrPollNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to reset votes", "error", err, "poll_id", pollID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to reset votes")
		return
	}

	slog.Warn("votes reset", "poll_id", pollID, "deleted", humanize.Comma(deleted))

	middleware.JSONResponse(w, http.StatusOK, models.ResetResponse{OK: true, Deleted: deleted})
}

func (h *VotingHandler) reject(w http.ResponseWriter, status int, reason, message string) {
	h.metrics.IncVoteRejected(reason)
	middleware.ErrorResponse(w, status, message)
}
