package utils

import (
	"time"
)

// Context keys shared between the HTTP layer and business flows
type contextKey string

const (
	// RequestIDKey carries the request id assigned by the requestid middleware
	RequestIDKey contextKey = "X-Request-ID"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)

// Generation defaults
const (
	// DefaultGenerationBatchSize is the number of rows per INSERT statement
	DefaultGenerationBatchSize = 100

	// DefaultGenerationMaxRows is the row limit of a single data source
	DefaultGenerationMaxRows = 50000

	// DefaultGenerationLockTTL bounds how long a campaign-set lock survives a crashed holder
	DefaultGenerationLockTTL = 5 * time.Minute

	// GenerationLockKeyPrefix prefixes redis keys used for campaign-set locks
	GenerationLockKeyPrefix = "generation:lock:"
)
