// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the aggregators and the contact workflow

// Package interfaces holds the contracts the portfolio core depends on:
// logging, the snapshot cache, outbound HTTP and the email relay.
package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache stores the latest aggregator snapshots
	Cache Cache

	// HTTPClient provides HTTP request functionality
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
