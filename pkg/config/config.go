// ABOUTME: Configuration management with defaults, an optional YAML file and environment overrides
// ABOUTME: Defines configuration structures for the server, cache, profile sources, quests, contact and logging

package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_SERVER__PORT
	EnvPrefix = "PORTFOLIO_"

	// FileEnv names the variable holding the config file path
	FileEnv = "PORTFOLIO_CONFIG"

	// DefaultFile is read when FileEnv is not set
	DefaultFile = "portfolio.yml"

	// defaultCandidateCount is how many URLs the quest log tries when no candidate paths are set
	defaultCandidateCount = 4
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig `koanf:"server"`

	// Cache contains snapshot cache configuration
	Cache CacheConfig `koanf:"cache"`

	// Profiles configures the coding-profile statistics sources
	Profiles ProfilesConfig `koanf:"profiles"`

	// Quests configures the quest log sources
	Quests QuestsConfig `koanf:"quests"`

	// Contact configures the email relay behind the contact form
	Contact ContactConfig `koanf:"contact"`

	// Log configures the structured logger
	Log LogConfig `koanf:"log"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string `koanf:"port"`

	// RefreshInterval is how often the aggregators are refreshed
	RefreshInterval time.Duration `koanf:"refresh_interval"`

	// JobTimeout bounds one refresh job run
	JobTimeout time.Duration `koanf:"job_timeout"`

	// PublicURL is the absolute URL the site is served from
	PublicURL string `koanf:"public_url"`

	// BasePath is the deployment root, e.g. /portfolio/
	BasePath string `koanf:"base_path"`

	// DataDir holds challenges.json
	DataDir string `koanf:"data_dir"`

	// AllowedOrigins are the CORS origins for the JSON API
	AllowedOrigins []string `koanf:"allowed_origins"`
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory/sqlite)
	Type string `koanf:"type"`

	// TTL bounds how long a snapshot is served
	TTL time.Duration `koanf:"ttl"`

	// Redis contains Redis-specific configuration
	Redis RedisConfig `koanf:"redis"`

	// Memory contains in-memory cache configuration
	Memory MemoryConfig `koanf:"memory"`

	// SQLite contains the persistent cache configuration
	SQLite SQLiteConfig `koanf:"sqlite"`
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	Address  string `koanf:"address"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// CleanupInterval is how often expired snapshots are purged
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// SQLiteConfig holds the persistent cache file settings
type SQLiteConfig struct {
	Path            string        `koanf:"path"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// ProfilesConfig holds the public profile handles and stats endpoints
type ProfilesConfig struct {
	LeetCodeUser       string        `koanf:"leetcode_user"`
	CodeforcesUser     string        `koanf:"codeforces_user"`
	LeetCodeEndpoint   string        `koanf:"leetcode_endpoint"`
	CodeforcesEndpoint string        `koanf:"codeforces_endpoint"`
	StatsProxy         string        `koanf:"stats_proxy"`
	Timeout            time.Duration `koanf:"timeout"`
}

// QuestsConfig holds the quest log source settings
type QuestsConfig struct {
	CandidatePaths  []string      `koanf:"candidate_paths"`
	AttemptTimeout  time.Duration `koanf:"attempt_timeout"`
	ProxyTimeout    time.Duration `koanf:"proxy_timeout"`
	GraphQLEndpoint string        `koanf:"graphql_endpoint"`
	PrimaryProxy    string        `koanf:"primary_proxy"`
	FallbackProxy   string        `koanf:"fallback_proxy"`
}

// ContactConfig holds the email relay identifiers and form limits
type ContactConfig struct {
	Endpoint       string        `koanf:"endpoint"`
	ServiceID      string        `koanf:"service_id"`
	TemplateID     string        `koanf:"template_id"`
	PublicKey      string        `koanf:"public_key"`
	SuccessDisplay time.Duration `koanf:"success_display"`

	// RatePerMinute and Burst limit submissions per client IP
	RatePerMinute int     `koanf:"rate_per_minute"`
	Burst         int     `koanf:"burst"`
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8000",
			RefreshInterval: 15 * time.Minute,
			JobTimeout:      45 * time.Second,
			PublicURL:       "http://localhost:8000",
			BasePath:        "/portfolio/",
			DataDir:         "data",
			AllowedOrigins:  []string{"*"},
		},
		Cache: CacheConfig{
			Type: "memory",
			TTL:  time.Hour,
			Redis: RedisConfig{
				Address: "localhost:6379",
			},
			Memory: MemoryConfig{
				CleanupInterval: 10 * time.Minute,
			},
			SQLite: SQLiteConfig{
				Path:            "data/cache.db",
				CleanupInterval: 5 * time.Minute,
			},
		},
		Profiles: ProfilesConfig{
			LeetCodeUser:       "mishurahman",
			CodeforcesUser:     "mishurahman",
			LeetCodeEndpoint:   "https://leetcode-stats-api.herokuapp.com/",
			CodeforcesEndpoint: "https://codeforces.com/api/user.info?handles=",
			StatsProxy:         "https://api.allorigins.win/get?url=",
			Timeout:            10 * time.Second,
		},
		Quests: QuestsConfig{
			AttemptTimeout:  3 * time.Second,
			ProxyTimeout:    8 * time.Second,
			GraphQLEndpoint: "https://leetcode.com/graphql",
			PrimaryProxy:    "https://corsproxy.io/?url=",
			FallbackProxy:   "https://api.allorigins.win/get?url=",
		},
		Contact: ContactConfig{
			Endpoint:       "https://api.emailjs.com/api/v1.0/email/send",
			SuccessDisplay: 5 * time.Second,
			RatePerMinute:  5,
			Burst:          3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load starts from the defaults, overlays the YAML file at path if it
// exists, then overlays PORTFOLIO_* environment variables. A double
// underscore separates nesting levels: PORTFOLIO_CACHE__REDIS__ADDRESS.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps PORTFOLIO_SERVER__PUBLIC_URL to server.public_url
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// LoadFromEnv loads the file named by PORTFOLIO_CONFIG (or portfolio.yml)
// plus environment overrides. PORT is honoured for hosting platforms that set it.
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(FileEnv)
	if path == "" {
		path = DefaultFile
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if port := os.Getenv("PORT"); port != "" && os.Getenv(EnvPrefix+"SERVER__PORT") == "" {
		cfg.Server.Port = port
	}

	return cfg, nil
}

// QuestSyncBudget is the longest a quest sync can take when every attempt
// times out: the data file and each candidate URL, then both badge relays.
func (c *Config) QuestSyncBudget() time.Duration {
	candidates := len(c.Quests.CandidatePaths)
	if candidates == 0 {
		candidates = defaultCandidateCount
	}
	return time.Duration(candidates+1)*c.Quests.AttemptTimeout + 2*c.Quests.ProxyTimeout
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RefreshInterval < time.Second {
		return errors.New("refresh interval must be at least 1 second")
	}

	if c.Server.PublicURL != "" {
		u, err := url.Parse(c.Server.PublicURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("public url %q must be absolute", c.Server.PublicURL)
		}
	}

	switch c.Cache.Type {
	case "redis", "memory", "sqlite":
	default:
		return errors.New("cache type must be 'redis', 'memory' or 'sqlite'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Cache.Type == "sqlite" && c.Cache.SQLite.Path == "" {
		return errors.New("sqlite path cannot be empty when using sqlite cache")
	}

	if c.Quests.AttemptTimeout <= 0 || c.Quests.ProxyTimeout <= 0 {
		return errors.New("quest timeouts must be positive")
	}

	// A network where every attempt times out must still finish inside the job
	if budget := c.QuestSyncBudget(); c.Server.JobTimeout < budget {
		return fmt.Errorf("job timeout %s is shorter than the quest sync budget %s", c.Server.JobTimeout, budget)
	}

	if c.Contact.RatePerMinute < 0 || c.Contact.Burst < 0 {
		return errors.New("contact rate limit must be non-negative")
	}

	switch c.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log format %q must be 'json' or 'text'", c.Log.Format)
	}

	return nil
}

// ContactConfigured reports whether all three relay identifiers are set
func (c *Config) ContactConfigured() bool {
	return c.Contact.ServiceID != "" && c.Contact.TemplateID != "" && c.Contact.PublicKey != ""
}
