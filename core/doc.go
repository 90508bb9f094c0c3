// Package core contains the business logic for the portfolio server.
// It is framework-agnostic: nothing here imports the HTTP layer, templates
// or a concrete cache.
//
// The core package is organized into several sub-packages:
//
// - domain: pure models (Quest, Board, StatsSnapshot, Profile)
// - quest: quest log aggregation from the local document and remote badges
// - stats: LeetCode and Codeforces statistics
// - contact: the contact form state machine and submission service
// - theme, navigator: request-scoped page state
// - fallback: ordered strategies with a per-attempt timeout
// - relay: CORS relay URL building and unwrapping
// - workers: the background refresh loop
// - errors: typed errors mapped to HTTP statuses by the API
// - interfaces: contracts for external dependencies (cache, HTTP, logger, email)
//
// # Design Principles
//
// - All external dependencies are injected via interfaces
// - A failing source degrades to an empty section instead of an error
// - Services keep their latest snapshot so reads never wait on the network
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	quests := quest.NewQuestService(deps, quest.DefaultConfig())
//	board, err := quests.Sync(ctx)
//	if err != nil {
//	    // the state now reads as failed with the last good board
//	}
package core
