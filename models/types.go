// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Default seed poll
const (
	DefaultPollTitle   = "Vote Your Favourites"
	DefaultOptionCount = 19
)

// Request types

type VoteRequest struct {
	Choices []int64 `json:"choices"`
}

// Response types

type PollView struct {
	Poll         Poll     `json:"poll"`
	Options      []Option `json:"options"`
	AlreadyVoted int      `json:"alreadyVoted"` // 0 or 1
}

type ResultsResponse struct {
	Results []OptionResult `json:"results"`
}

type VoteResponse struct {
	OK bool `json:"ok"`
}

type ResetResponse struct {
	OK      bool  `json:"ok"`
	Deleted int64 `json:"deleted"`
}

// Domain types

type Poll struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type Option struct {
	ID     int64  `json:"id"`
	PollID int64  `json:"poll_id"`
	Label  string `json:"label"`
}

// Ballot is one vote submission as seen by the admission protocol.
type Ballot struct {
	PollID     int64
	VoterToken string
	Choices    []int64
	IPHash     string
	UserAgent  string
}

// Admission is the outcome of an accepted ballot.
type Admission struct {
	PollID   int64     `json:"poll_id"`
	Recorded int       `json:"recorded"` // distinct options written
	VotedAt  time.Time `json:"voted_at"`
}

type OptionResult struct {
	OptionID int64  `json:"-"`
	Label    string `json:"label"`
	Votes    int64  `json:"votes"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}
