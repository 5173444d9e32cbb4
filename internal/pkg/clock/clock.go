package clock

import (
	"sync"
	"time"
)

// Clock supplies the current moment to code that derives attendance times.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System reads the local wall clock.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant. Set moves it.
// T must not be written directly once the clock is shared.
type Fixed struct {
	mu sync.Mutex
	T  time.Time
}

func (f *Fixed) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.T
}

func (f *Fixed) Set(t time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.T = t
}
