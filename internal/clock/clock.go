// Package clock provides the time source and periodic scheduling used by the timer.
package clock

import (
	"sync"
	"time"
)

// Cancel stops a periodic schedule. Calling it more than once is safe.
type Cancel func()

// Clock reports the current time and runs callbacks on a fixed period.
type Clock interface {
	Now() time.Time
	Every(period time.Duration, fn func()) Cancel
}

// Real is the wall clock backed by time.Ticker.
type Real struct{}

// Now implements Clock.
func (Real) Now() time.Time {
	return time.Now()
}

// Every implements Clock. fn runs on a dedicated goroutine.
func (Real) Every(period time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(period)
	done := make(chan struct{})
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()
	var once sync.Once
	return func() {
		once.Do(func() { close(done) })
	}
}
