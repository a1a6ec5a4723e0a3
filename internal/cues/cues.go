// Package cues implements the host capabilities used during a session:
// haptic pulses, spoken prompts and the screen wake lock.
package cues

import (
	"errors"
	"fmt"
	"io"
	"time"
)

// ErrUnsupported reports that the host lacks a capability.
var ErrUnsupported = errors.New("capability unsupported")

// Unsupported is a stand-in for hosts without haptics, speech or a wake lock.
type Unsupported struct{}

// Pulse always fails with ErrUnsupported.
func (Unsupported) Pulse(time.Duration) error { return ErrUnsupported }

// Speak always fails with ErrUnsupported.
func (Unsupported) Speak(string) error { return ErrUnsupported }

// Request never acquires a lock.
func (Unsupported) Request() bool { return false }

// Release does nothing.
func (Unsupported) Release() {}

// Bell rings the terminal bell as a stand-in for vibration.
type Bell struct {
	W io.Writer
}

// Pulse writes BEL. The duration is ignored; terminals have a single bell length.
func (b Bell) Pulse(time.Duration) error {
	if b.W == nil {
		return ErrUnsupported
	}
	if _, err := io.WriteString(b.W, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
