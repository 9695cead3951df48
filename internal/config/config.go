package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenPort      string        // ex: ":5000"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	DataFile       string        // path to the flights dataset (JSON, or YAML for fixtures)
	ReloadInterval time.Duration // periodic dataset reload; 0 = manual reload only

	CORSOrigins []string // allowed CORS origins (default: any)

	// Bookings (enabled only when RedisAddr is set)
	BookingRetention time.Duration // cancelled bookings older than this are pruned
	JanitorInterval  time.Duration // how often the booking janitor runs

	// Rate limiting for booking writes
	BookingBurst     int // per-IP burst
	BookingPerMinute int // per-IP sustained writes/min

	// Redis
	RedisAddr             string        // ex: "localhost:6379"; empty = search-only mode
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => refuse to start without a password
	RedisDB               int           // Redis DB number
	RedisDialTimeout      time.Duration // ex: 5s
	RedisReadTimeout      time.Duration // ex: 3s
	RedisWriteTimeout     time.Duration // ex: 3s
	RedisPoolSize         int           // connection pool size
	RedisConnectTimeout   time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait          time.Duration // cap on the retry wait
	RedisPingTimeout      time.Duration // timeout per ping attempt
	RedisWarnThreshold    int           // warn after this many attempts

	AdminCIDRs []string // optional, restrict /api/reload to these IPs/CIDRs
	TrustProxy bool     // true => trust X-Forwarded-For style headers
}

func Load() *Config {
	// Same convenience the Node predecessor had via dotenv: a local .env is
	// picked up when present, real env always wins.
	_ = godotenv.Load()

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("FLIGHTS_LISTEN_PORT", ":5000"),
		ShutdownTimeout: mustDuration("FLIGHTS_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("FLIGHTS_LOG_LEVEL", "info"),
		PrettyLog: mustBool("FLIGHTS_PRETTY_LOG", true),

		// Dataset
		DataFile:       getenv("FLIGHTS_DATA_FILE", "data/flights.json"),
		ReloadInterval: mustDuration("FLIGHTS_RELOAD_INTERVAL", 0),

		CORSOrigins: splitAndTrim(getenv("FLIGHTS_CORS_ORIGINS", "*")),

		// Bookings
		BookingRetention: mustDuration("FLIGHTS_BOOKING_RETENTION", 30*24*time.Hour),
		JanitorInterval:  mustDuration("FLIGHTS_JANITOR_INTERVAL", 24*time.Hour),
		BookingBurst:     getenvInt("FLIGHTS_BOOKING_BURST", 5),
		BookingPerMinute: getenvInt("FLIGHTS_BOOKING_PER_MINUTE", 10),

		// Redis settings
		RedisAddr:             getenv("FLIGHTS_REDIS_ADDR", ""),
		RedisUser:             getenv("FLIGHTS_REDIS_USERNAME", "default"),
		RedisPassword:         getenv("FLIGHTS_REDIS_PASSWORD", ""),
		RedisPasswordRequired: mustBool("FLIGHTS_REDIS_PASSWORD_REQUIRED", false),
		RedisDB:               getenvInt("FLIGHTS_REDIS_DB", 0),
		RedisDialTimeout:      mustDuration("FLIGHTS_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:      mustDuration("FLIGHTS_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:     mustDuration("FLIGHTS_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:         getenvInt("FLIGHTS_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("FLIGHTS_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("FLIGHTS_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:          mustDuration("FLIGHTS_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("FLIGHTS_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisWarnThreshold:    getenvInt("FLIGHTS_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AdminCIDRs: splitAndTrim(getenv("FLIGHTS_ADMIN_CIDRS", "")),
		TrustProxy: mustBool("FLIGHTS_TRUST_PROXY", false),
	}

	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired && cfg.RedisPassword == "" {
		panic("FATAL: FLIGHTS_REDIS_PASSWORD is required when FLIGHTS_REDIS_PASSWORD_REQUIRED=true")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
