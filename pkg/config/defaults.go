package config

import "time"

const (
	DefaultAPIBaseURL = "http://localhost:5000"
	DefaultAPITimeout = 15 * time.Second
	DefaultTimeZone   = "Local"
	// Calendar screens load a whole month of events in one page.
	DefaultPageSize = 400
	MaxPageSize     = 1000

	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "studiodesk"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultSessionTTL        = 12 * time.Hour

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB
	DefaultIdempotencyTTL = 10 * time.Minute

	DefaultRateLimitRequests = 300
	DefaultRateLimitWindow   = time.Minute

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
