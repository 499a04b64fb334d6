package client

import (
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRetries = 3
)

type ApiConnectionDetails struct {
	SsmUrl   string
	Username string
	Password string
	// Timeout bounds every single HTTP request, retries included separately.
	Timeout time.Duration
	// Retries is the number of additional attempts made for failed reads.
	Retries uint
	// RetryDelay is the initial delay between retries; it doubles on every attempt.
	RetryDelay time.Duration
}

func (d *ApiConnectionDetails) timeout() time.Duration {
	if d.Timeout <= 0 {
		return defaultTimeout
	}
	return d.Timeout
}
