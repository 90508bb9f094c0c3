// Package api provides the HTTP layer for the portfolio server.
// It uses the Huma framework for the JSON API, with automatic OpenAPI
// documentation and request validation, and mounts the server-rendered
// pages on the same chi router.
//
// # Architecture
//
// - server.go: router, middleware and Huma API setup
// - handlers/: JSON operations and the HTML page handler
// - dto/: request and response shapes for the JSON API
// - middleware/: request logging and per-IP rate limiting
//
// # Endpoints
//
// JSON:
//
//	GET  /api/quests
//	GET  /api/quests/{id}
//	POST /api/quests/sync
//	GET  /api/stats
//	POST /api/contact
//	POST /api/navigation/resolve
//	GET  /api/theme/toggle?theme=
//	GET  /api/profile
//	GET  /healthz
//
// HTML:
//
//	GET  /                      ?theme=dark|light&section=&menu=open
//	GET  /quests/{group}        running, upcoming or completed
//	GET  /quests/item/{id}
//	POST /quests/sync           retry, redirects back to #quests
//	POST /contact               form-encoded
//	GET  {base}data/challenges.json
//
// # Usage Example
//
//	humaAPI, router := api.NewAPI(api.APIConfig{
//	    Logger:       logger,
//	    Docs:         true,
//	    Limiter:      middleware.NewRateLimiter(5, 3),
//	    LimitedPaths: []string{"/contact", "/api/contact"},
//	})
//	handlers.NewStatsHandler(statsService).RegisterRoutes(humaAPI)
//	pages.Mount(router)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// JSON errors follow RFC 7807:
//
//	{
//	    "status": 404,
//	    "title": "Not Found",
//	    "detail": "quest not found: badge-9"
//	}
//
// Domain errors are mapped to status codes in handlers/errors.go. Source
// failures never surface here; they degrade to empty sections.
package api
