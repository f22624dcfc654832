// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly Vote API.

# Handler Types

Each handler is a struct holding a narrow store interface and the config:

  - PollHandler: Poll view with the caller's alreadyVoted flag
  - VotingHandler: Vote admission and admin vote reset
  - ResultsHandler: Live per-option tallies

*db.Store satisfies every interface, so the router builds them all from one
store:

	pollHandler := handlers.NewPollHandler(store, cfg)

# Voting Flow

	GET  /poll/{id}         → GetPoll (issues voter_uuid if missing)
	POST /poll/{id}/vote    → SubmitVote
	GET  /poll/{id}/results → GetResults

SubmitVote maps admission outcomes to status codes:

	200 {"ok":true}                       admitted
	400 {"error":"No choices provided"}   empty selection
	400 {"error":"Invalid option selected"}
	404 {"error":"Poll not found"}
	403 {"error":"You already voted"}     token already admitted
	500 {"error":"Failed to record vote"}

Rejections leave the store untouched.

# Maintenance

	DELETE /poll/{id}/votes → ResetVotes

When ADMIN_KEY_SALT is set the request must carry X-Admin-Key, the HMAC of
the poll id under that salt.
*/
package handlers
