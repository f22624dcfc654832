// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

	mux := router.NewRouter(store, cfg, metricsService)

Endpoints:

	GET    /health             - Liveness
	GET    /metrics            - Prometheus exposition
	GET    /poll/{id}          - Poll, options, alreadyVoted
	POST   /poll/{id}/vote     - Submit choices
	GET    /poll/{id}/results  - Live tallies
	DELETE /poll/{id}/votes    - Reset votes (X-Admin-Key when configured)

Other methods on the poll routes get a JSON 405 with an Allow header.
*/
package router
