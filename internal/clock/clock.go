package clock

import "time"

// Clock abstracts the current time so year-bound rules can be tested
type Clock interface {
	Now() time.Time
}

// Real reads the system clock in UTC
type Real struct{}

// Now returns the current UTC time
func (Real) Now() time.Time {
	return time.Now().UTC()
}

// Fake is a settable clock for tests
type Fake struct {
	now time.Time
}

// NewFake creates a Fake clock pinned to t
func NewFake(t time.Time) *Fake {
	return &Fake{now: t.UTC()}
}

// Now returns the pinned time
func (c *Fake) Now() time.Time {
	return c.now
}

// Advance moves the pinned time forward by d
func (c *Fake) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
