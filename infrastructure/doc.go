// Package infrastructure provides concrete implementations of the interfaces
// defined in the core package: snapshot caches, the HTTP client, logging,
// the email relay and the challenge document watcher.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-memory cache using patrickmn/go-cache
// - cache/redis: Redis cache using go-redis
// - cache/sqlite: persistent cache using go-sqlite3
// - http/standard: net/http client with retry on server errors
// - logger/structured: logrus-backed structured logger
// - email/emailjs: EmailJS relay for the contact form
// - watch: fsnotify watcher for data/challenges.json
//
// # Cache Implementations
//
//	cache := memory.NewMemoryCache(10 * time.Minute)
//	err := cache.Set(ctx, "stats:snapshot", payload, time.Hour)
//	data, err := cache.Get(ctx, "stats:snapshot")
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
//
//	cache, err := sqlite.NewSQLiteCache("data/cache.db", 5*time.Minute)
//	defer cache.Close()
//
// # HTTP Client
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	resp, err := client.Get(ctx, "https://codeforces.com/api/user.info?handles=mishurahman")
//	if err != nil {
//	    // Handle error
//	}
//	defer resp.Body().Close()
//
// # Logger
//
//	logger := structured.New(structured.Options{Level: "debug", Format: "text"})
//	logger.Info("Quest log synced", map[string]interface{}{
//	    "running": 2,
//	})
package infrastructure
