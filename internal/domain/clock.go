package domain

import "time"

// Clock abstracts wall-clock access so schedule computations can run against
// a virtual now. Every aggregate computation samples the clock exactly once.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func SystemClock() Clock { return systemClock{} }

// FixedClock always reports the same instant. Test helper.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time { return c.Instant }
