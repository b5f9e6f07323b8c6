package config

import (
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Config stores service-delivery and worker settings.
type Config struct {
	Port      int
	LogLevel  string
	DB        DB
	Redis     Redis
	Kafka     Kafka
	Maps      Maps
	MPesa     MPesa
	Firebase  Firebase
	Tracking  Tracking
	RateLimit RateLimit
	Pprof     PprofConfig
}

// DB holds PostgreSQL connection settings.
type DB struct {
	Host string
	Port string
	User string
	Pass string
	Name string
}

// DSN builds a pgx connection string.
func (d DB) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		d.User, d.Pass, net.JoinHostPort(d.Host, d.Port), d.Name)
}

// Redis holds the quote cache and live broker settings. An empty Addr disables Redis.
type Redis struct {
	Addr          string
	Password      string
	DB            int
	QuoteCacheTTL time.Duration
}

// Kafka holds payment-result consumer settings.
type Kafka struct {
	Brokers       []string
	PaymentsTopic string
	GroupID       string
}

// Maps holds geocoding/directions settings.
type Maps struct {
	APIKey          string
	Region          string
	MaxAttempts     int
	BaseDelay       time.Duration
	MaxDelay        time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// MPesa holds Daraja STK push settings.
type MPesa struct {
	BaseURL        string
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	PassKey        string
	CallbackURL    string
}

// Firebase holds FCM settings. Empty CredentialsFile disables push notifications.
type Firebase struct {
	CredentialsFile string
	RiderTopic      string
}

// Tracking holds live position settings.
type Tracking struct {
	PositionPersistInterval time.Duration
}

// RateLimit holds HTTP rate limiter settings.
type RateLimit struct {
	Enabled       bool
	Rate          float64
	Burst         int
	FeeRate       float64
	FeeBurst      int
	LocationRate  float64
	LocationBurst int
	TTL           time.Duration
	MaxBuckets    int
}

// PprofConfig holds the debug server settings.
type PprofConfig struct {
	Enabled bool
	Addr    string
	User    string
	Pass    string
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	cfg := defaultConfig()
	env := envReader{}

	cfg.Port = env.int("PORT", cfg.Port)
	cfg.LogLevel = env.string("LOG_LEVEL", cfg.LogLevel)

	cfg.DB.Host = env.string("POSTGRES_HOST", cfg.DB.Host)
	cfg.DB.Port = env.string("POSTGRES_PORT", cfg.DB.Port)
	cfg.DB.User = env.string("POSTGRES_USER", cfg.DB.User)
	cfg.DB.Pass = env.string("POSTGRES_PASSWORD", cfg.DB.Pass)
	cfg.DB.Name = env.string("POSTGRES_DB", cfg.DB.Name)

	cfg.Redis.Addr = env.string("REDIS_ADDR", cfg.Redis.Addr)
	cfg.Redis.Password = env.string("REDIS_PASSWORD", cfg.Redis.Password)
	cfg.Redis.DB = env.int("REDIS_DB", cfg.Redis.DB)
	cfg.Redis.QuoteCacheTTL = env.duration("QUOTE_CACHE_TTL", cfg.Redis.QuoteCacheTTL)

	cfg.Kafka.Brokers = env.list("KAFKA_BROKERS", cfg.Kafka.Brokers)
	cfg.Kafka.PaymentsTopic = env.string("KAFKA_PAYMENTS_TOPIC", cfg.Kafka.PaymentsTopic)
	cfg.Kafka.GroupID = env.string("KAFKA_GROUP_ID", cfg.Kafka.GroupID)

	cfg.Maps.APIKey = env.string("GOOGLE_MAPS_API_KEY", cfg.Maps.APIKey)
	cfg.Maps.Region = env.string("MAPS_REGION", cfg.Maps.Region)
	cfg.Maps.MaxAttempts = env.int("MAPS_MAX_ATTEMPTS", cfg.Maps.MaxAttempts)
	cfg.Maps.BaseDelay = env.duration("MAPS_BASE_DELAY", cfg.Maps.BaseDelay)
	cfg.Maps.MaxDelay = env.duration("MAPS_MAX_DELAY", cfg.Maps.MaxDelay)
	cfg.Maps.BreakerFailures = uint32(env.int("MAPS_BREAKER_FAILURES", int(cfg.Maps.BreakerFailures)))
	cfg.Maps.BreakerTimeout = env.duration("MAPS_BREAKER_TIMEOUT", cfg.Maps.BreakerTimeout)

	cfg.MPesa.BaseURL = env.string("MPESA_BASE_URL", cfg.MPesa.BaseURL)
	cfg.MPesa.ConsumerKey = env.string("MPESA_CONSUMER_KEY", cfg.MPesa.ConsumerKey)
	cfg.MPesa.ConsumerSecret = env.string("MPESA_CONSUMER_SECRET", cfg.MPesa.ConsumerSecret)
	cfg.MPesa.ShortCode = env.string("MPESA_SHORTCODE", cfg.MPesa.ShortCode)
	cfg.MPesa.PassKey = env.string("MPESA_PASSKEY", cfg.MPesa.PassKey)
	cfg.MPesa.CallbackURL = env.string("MPESA_CALLBACK_URL", cfg.MPesa.CallbackURL)

	cfg.Firebase.CredentialsFile = env.string("FIREBASE_CREDENTIALS", cfg.Firebase.CredentialsFile)
	cfg.Firebase.RiderTopic = env.string("FIREBASE_RIDER_TOPIC", cfg.Firebase.RiderTopic)

	cfg.Tracking.PositionPersistInterval = env.duration("POSITION_PERSIST_INTERVAL", cfg.Tracking.PositionPersistInterval)

	cfg.RateLimit.Enabled = env.bool("RATE_LIMIT_ENABLED", cfg.RateLimit.Enabled)
	cfg.RateLimit.Rate = env.float("RATE_LIMIT_RATE", cfg.RateLimit.Rate)
	cfg.RateLimit.Burst = env.int("RATE_LIMIT_BURST", cfg.RateLimit.Burst)
	cfg.RateLimit.FeeRate = env.float("RATE_LIMIT_FEE_RATE", cfg.RateLimit.FeeRate)
	cfg.RateLimit.FeeBurst = env.int("RATE_LIMIT_FEE_BURST", cfg.RateLimit.FeeBurst)
	cfg.RateLimit.LocationRate = env.float("RATE_LIMIT_LOCATION_RATE", cfg.RateLimit.LocationRate)
	cfg.RateLimit.LocationBurst = env.int("RATE_LIMIT_LOCATION_BURST", cfg.RateLimit.LocationBurst)
	cfg.RateLimit.TTL = env.duration("RATE_LIMIT_TTL", cfg.RateLimit.TTL)
	cfg.RateLimit.MaxBuckets = env.int("RATE_LIMIT_MAX_BUCKETS", cfg.RateLimit.MaxBuckets)

	cfg.Pprof.Enabled = env.bool("PPROF_ENABLED", cfg.Pprof.Enabled)
	cfg.Pprof.Addr = env.string("PPROF_ADDR", cfg.Pprof.Addr)
	cfg.Pprof.User = env.string("PPROF_USER", cfg.Pprof.User)
	cfg.Pprof.Pass = env.string("PPROF_PASS", cfg.Pprof.Pass)

	if err := env.err(); err != nil {
		return nil, err
	}

	pflag.IntVarP(&cfg.Port, "port", "p", cfg.Port, "port to listen on")
	pflag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	if err := pflag.CommandLine.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if p, err := strconv.Atoi(c.DB.Port); err != nil || p <= 0 || p > 65535 {
		return fmt.Errorf("invalid POSTGRES_PORT: %q", c.DB.Port)
	}
	if c.Maps.MaxAttempts < 1 {
		return fmt.Errorf("invalid MAPS_MAX_ATTEMPTS: %d", c.Maps.MaxAttempts)
	}
	if c.Tracking.PositionPersistInterval <= 0 {
		return fmt.Errorf("invalid POSITION_PERSIST_INTERVAL: %s", c.Tracking.PositionPersistInterval)
	}
	if c.Redis.QuoteCacheTTL <= 0 {
		return fmt.Errorf("invalid QUOTE_CACHE_TTL: %s", c.Redis.QuoteCacheTTL)
	}
	if rl := c.RateLimit; rl.Enabled {
		if rl.Rate <= 0 || rl.Burst <= 0 {
			return fmt.Errorf("invalid rate limit: rate=%v burst=%d", rl.Rate, rl.Burst)
		}
		if rl.FeeRate <= 0 || rl.FeeBurst <= 0 {
			return fmt.Errorf("invalid fee rate limit: rate=%v burst=%d", rl.FeeRate, rl.FeeBurst)
		}
		if rl.LocationRate <= 0 || rl.LocationBurst <= 0 {
			return fmt.Errorf("invalid location rate limit: rate=%v burst=%d", rl.LocationRate, rl.LocationBurst)
		}
	}
	return nil
}

// envReader reads typed environment values and remembers the first parse error.
type envReader struct {
	first error
}

func (r *envReader) fail(key, v string, err error) {
	if r.first == nil {
		r.first = fmt.Errorf("invalid %s=%q: %w", key, v, err)
	}
}

func (r *envReader) err() error { return r.first }

func (r *envReader) string(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func (r *envReader) int(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return n
}

func (r *envReader) float(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return f
}

func (r *envReader) bool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return b
}

func (r *envReader) duration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, v, err)
		return def
	}
	return d
}

func (r *envReader) list(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
