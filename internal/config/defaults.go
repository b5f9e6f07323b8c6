package config

import "time"

const (
	defaultPort     = 8080
	defaultLogLevel = "info"
)

var defaultDB = DB{
	Host: "127.0.0.1",
	Port: "5432",
	User: "myuser",
	Pass: "mypassword",
	Name: "logistics",
}

var defaultRedis = Redis{
	QuoteCacheTTL: 24 * time.Hour,
}

var defaultKafka = Kafka{
	Brokers:       []string{"localhost:9092"},
	PaymentsTopic: "payments.results",
	GroupID:       "service-delivery-worker",
}

var defaultMaps = Maps{
	Region:          "ke",
	MaxAttempts:     3,
	BaseDelay:       150 * time.Millisecond,
	MaxDelay:        time.Second,
	BreakerFailures: 5,
	BreakerTimeout:  30 * time.Second,
}

var defaultMPesa = MPesa{
	BaseURL: "https://sandbox.safaricom.co.ke",
}

var defaultFirebase = Firebase{
	RiderTopic: "riders",
}

var defaultTracking = Tracking{
	PositionPersistInterval: 5 * time.Second,
}

var defaultRateLimit = RateLimit{
	Enabled:       false,
	Rate:          10,
	Burst:         20,
	FeeRate:       1,
	FeeBurst:      5,
	LocationRate:  5,
	LocationBurst: 10,
	TTL:           time.Minute,
	MaxBuckets:    10000,
}

var defaultPprof = PprofConfig{
	Addr: "127.0.0.1:6060",
}

func defaultConfig() *Config {
	return &Config{
		Port:      defaultPort,
		LogLevel:  defaultLogLevel,
		DB:        defaultDB,
		Redis:     defaultRedis,
		Kafka:     Kafka{Brokers: append([]string(nil), defaultKafka.Brokers...), PaymentsTopic: defaultKafka.PaymentsTopic, GroupID: defaultKafka.GroupID},
		Maps:      defaultMaps,
		MPesa:     defaultMPesa,
		Firebase:  defaultFirebase,
		Tracking:  defaultTracking,
		RateLimit: defaultRateLimit,
		Pprof:     defaultPprof,
	}
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultDB returns the default database settings.
func DefaultDB() DB {
	return defaultDB
}

// DefaultMaps returns the default maps gateway settings.
func DefaultMaps() Maps {
	return defaultMaps
}
