// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/danielhkuo/quickly-vote/metrics"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

// TestConcurrentSameVoter fires two votes with the same cookie at once.
// Exactly one is admitted and only its rows exist afterwards.
func TestConcurrentSameVoter(t *testing.T) {
	store := testutil.SetupTestDB(t)
	handler := NewVotingHandler(store, testutil.GetTestConfig(), metrics.NewService())

	pollID := testutil.CreateTestPoll(t, store, "Race")
	opt1 := testutil.AddTestOption(t, store, pollID, "Option A")
	opt2 := testutil.AddTestOption(t, store, pollID, "Option B")
	opt3 := testutil.AddTestOption(t, store, pollID, "Option C")

	voter := testutil.NewVoter()
	selections := [][]int64{
		{opt1, opt2},
		{opt2, opt3},
	}

	var okCount, forbiddenCount atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})

	for _, choices := range selections {
		wg.Add(1)
		go func(choices []int64) {
			defer wg.Done()
			req := testutil.WithVoterCookie(pollRequest("POST", pollPath(pollID), "/vote", models.VoteRequest{Choices: choices}), voter)
			w := httptest.NewRecorder()

			<-start
			handler.SubmitVote(w, req)

			switch w.Code {
			case http.StatusOK:
				okCount.Add(1)
			case http.StatusForbidden:
				forbiddenCount.Add(1)
			default:
				t.Errorf("Unexpected status %d: %s", w.Code, w.Body.String())
			}
		}(choices)
	}
	close(start)
	wg.Wait()

	if okCount.Load() != 1 || forbiddenCount.Load() != 1 {
		t.Fatalf("Expected one 200 and one 403, got %d and %d", okCount.Load(), forbiddenCount.Load())
	}
	if got := testutil.CountVotes(t, store, pollID, voter); got != 2 {
		t.Errorf("Expected exactly 2 vote rows for the winning selection, got %d", got)
	}
}

// TestConcurrentDistinctVoters verifies that many simultaneous voters are all
// admitted and every selection is counted once
func TestConcurrentDistinctVoters(t *testing.T) {
	store := testutil.SetupTestDB(t)
	votingHandler := NewVotingHandler(store, testutil.GetTestConfig(), metrics.NewService())
	resultsHandler := NewResultsHandler(store, testutil.GetTestConfig())

	pollID := testutil.CreateTestPoll(t, store, "Crowd")
	opts := []int64{
		testutil.AddTestOption(t, store, pollID, "Option A"),
		testutil.AddTestOption(t, store, pollID, "Option B"),
		testutil.AddTestOption(t, store, pollID, "Option C"),
	}

	numVoters := 12
	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(voterIdx int) {
			defer wg.Done()

			choices := []int64{opts[voterIdx%3]}
			req := testutil.WithVoterCookie(pollRequest("POST", pollPath(pollID), "/vote", models.VoteRequest{Choices: choices}), testutil.NewVoter())
			w := httptest.NewRecorder()

			votingHandler.SubmitVote(w, req)

			if w.Code == http.StatusOK {
				successCount.Add(1)
			} else {
				t.Errorf("Voter %d failed: %d - %s", voterIdx, w.Code, w.Body.String())
			}
		}(i)
	}
	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	w := httptest.NewRecorder()
	resultsHandler.GetResults(w, pollRequest("GET", pollPath(pollID), "/results", nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.ResultsResponse
	testutil.AssertJSON(t, w, &resp)
	for _, r := range resp.Results {
		if r.Votes != int64(numVoters/3) {
			t.Errorf("Expected %d votes for %s, got %d", numVoters/3, r.Label, r.Votes)
		}
	}
}

// TestConcurrentVotesAndReads checks that readers never observe a vote
// without its voter status, or vice versa, while writes are in flight
func TestConcurrentVotesAndReads(t *testing.T) {
	store := testutil.SetupTestDB(t)
	votingHandler := NewVotingHandler(store, testutil.GetTestConfig(), metrics.NewService())
	pollHandler := NewPollHandler(store, testutil.GetTestConfig())

	pollID := testutil.CreateTestPoll(t, store, "Busy")
	opt := testutil.AddTestOption(t, store, pollID, "Only")

	voters := make([]string, 6)
	for i := range voters {
		voters[i] = testutil.NewVoter()
	}

	var wg sync.WaitGroup
	for _, voter := range voters {
		wg.Add(2)
		go func(voter string) {
			defer wg.Done()
			req := testutil.WithVoterCookie(pollRequest("POST", pollPath(pollID), "/vote", models.VoteRequest{Choices: []int64{opt}}), voter)
			w := httptest.NewRecorder()
			votingHandler.SubmitVote(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("Vote failed: %d - %s", w.Code, w.Body.String())
			}
		}(voter)
		go func(voter string) {
			defer wg.Done()
			req := testutil.WithVoterCookie(pollRequest("GET", pollPath(pollID), "", nil), voter)
			w := httptest.NewRecorder()
			pollHandler.GetPoll(w, req)
			if w.Code != http.StatusOK {
				t.Errorf("Read failed: %d - %s", w.Code, w.Body.String())
			}
		}(voter)
	}
	wg.Wait()

	if got := testutil.CountVoters(t, store, pollID); got != len(voters) {
		t.Errorf("Expected %d voter rows, got %d", len(voters), got)
	}
	if got := testutil.CountVotes(t, store, pollID, ""); got != len(voters) {
		t.Errorf("Expected %d vote rows, got %d", len(voters), got)
	}
}
