package llm

import "time"

// Config controls queue behavior
type Config struct {
	// Concurrency control
	MaxConcurrent int

	// Queue sizes
	CriticalQueueSize   int // Interactive requests
	BackgroundQueueSize int // Cache warming and other deferred work

	// Timeouts
	CriticalTimeout   time.Duration
	BackgroundTimeout time.Duration

	// Circuit breaker
	FailureThreshold int
	OpenTimeout      time.Duration
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		MaxConcurrent:       2,
		CriticalQueueSize:   20,
		BackgroundQueueSize: 100,
		CriticalTimeout:     60 * time.Second,
		BackgroundTimeout:   120 * time.Second,
		FailureThreshold:    3,
		OpenTimeout:         5 * time.Minute,
	}
}
