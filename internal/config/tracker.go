package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"
)

// Tracker stores settings of the tracking session CLI.
type Tracker struct {
	APIBaseURL   string
	DeliveryID   int64
	UserID       int64
	Rider        bool
	PollInterval time.Duration
	MaxAttempts  int
	LogLevel     string
	// Command is what is left after flags, e.g. ["edit", "dropoff", "Karatina"].
	Command []string
}

const defaultPollInterval = 5 * time.Second

// LoadTracker reads CLI settings: environment first, then flags from args.
func LoadTracker(args []string) (*Tracker, error) {
	env := envReader{}
	cfg := &Tracker{
		APIBaseURL:   env.string("DELIVERY_API_URL", "http://localhost:8080"),
		UserID:       int64(env.int("TRACKER_USER_ID", 0)),
		PollInterval: env.duration("TRACKING_POLL_INTERVAL", defaultPollInterval),
		MaxAttempts:  env.int("DELIVERY_API_MAX_ATTEMPTS", 3),
		LogLevel:     env.string("LOG_LEVEL", defaultLogLevel),
	}
	if err := env.err(); err != nil {
		return nil, err
	}

	fs := pflag.NewFlagSet("tracker", pflag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "api", cfg.APIBaseURL, "service-delivery base URL")
	fs.Int64VarP(&cfg.DeliveryID, "delivery", "d", 0, "delivery id to track")
	fs.Int64VarP(&cfg.UserID, "user", "u", cfg.UserID, "acting user id")
	fs.BoolVar(&cfg.Rider, "rider", false, "act as the assigned rider and stream position samples")
	fs.DurationVar(&cfg.PollInterval, "poll-interval", cfg.PollInterval, "reconciliation poll interval")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.SetOutput(os.Stderr)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}
	cfg.Command = fs.Args()

	if cfg.DeliveryID <= 0 {
		return nil, fmt.Errorf("invalid delivery id: %d", cfg.DeliveryID)
	}
	if cfg.UserID <= 0 {
		return nil, fmt.Errorf("invalid user id: %d", cfg.UserID)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("invalid poll interval: %s", cfg.PollInterval)
	}
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("invalid DELIVERY_API_MAX_ATTEMPTS: %d", cfg.MaxAttempts)
	}
	return cfg, nil
}
