package health

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"k8s.io/utils/clock"
)

type Checker interface {
	Check() error
}

// RecencyChecker fails unless MarkSuccess has been called within the last maxAge.
type RecencyChecker struct {
	name        string
	maxAge      time.Duration
	clock       clock.PassiveClock
	mu          sync.Mutex
	lastSuccess time.Time
}

func NewRecencyChecker(name string, maxAge time.Duration, clock clock.PassiveClock) *RecencyChecker {
	return &RecencyChecker{
		name:   name,
		maxAge: maxAge,
		clock:  clock,
	}
}

func (c *RecencyChecker) MarkSuccess() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastSuccess = c.clock.Now()
}

func (c *RecencyChecker) Check() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.lastSuccess.IsZero() {
		return errors.Errorf("%s has not succeeded yet", c.name)
	}
	if age := c.clock.Since(c.lastSuccess); age > c.maxAge {
		return errors.Errorf("%s last succeeded %s ago", c.name, age.Round(time.Second))
	}
	return nil
}
