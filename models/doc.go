// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

  - VoteRequest: choices ([]int64 option IDs)

# Response Types

  - PollView: poll, options, alreadyVoted (0 or 1)
  - ResultsResponse: results ([]OptionResult)
  - VoteResponse: ok
  - ResetResponse: ok, deleted
  - ErrorResponse: error

# Domain Types

  - Poll: id and title, immutable once seeded
  - Option: selectable option, ordered by id
  - Ballot: a vote submission handed to the store
  - Admission: result of an accepted ballot
  - OptionResult: label and vote count for one option

# Constants

The poll created on first startup:

	DefaultPollTitle   = "Vote Your Favourites"
	DefaultOptionCount = 19
*/
package models
