package cues

import (
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"sync"
)

// speechRate is relative to the command default; prompts are read a little slower.
var speechRate = 0.9

var speechCommands = []string{"say", "spd-say", "espeak-ng", "espeak"}

// CommandSpeaker speaks through the first text-to-speech command found on PATH.
// A new utterance cancels the one still playing.
type CommandSpeaker struct {
	name    string
	path    string
	command func(path string, args ...string) *exec.Cmd

	mu      sync.Mutex
	current *exec.Cmd
}

// NewCommandSpeaker locates a speech command. It returns ErrUnsupported when none exists.
func NewCommandSpeaker() (*CommandSpeaker, error) {
	return newCommandSpeaker(exec.LookPath, exec.Command)
}

func newCommandSpeaker(lookPath func(string) (string, error), command func(string, ...string) *exec.Cmd) (*CommandSpeaker, error) {
	for _, name := range speechCommands {
		path, err := lookPath(name)
		if err != nil {
			continue
		}
		return &CommandSpeaker{name: name, path: path, command: command}, nil
	}
	return nil, fmt.Errorf("no speech command found (%v): %w", speechCommands, ErrUnsupported)
}

// Name returns the speech command in use.
func (s *CommandSpeaker) Name() string {
	return s.name
}

// Speak starts speaking text without waiting for it to finish.
func (s *CommandSpeaker) Speak(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
	cmd := s.command(s.path, speechArgs(s.name, text)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", s.name, err)
	}
	s.current = cmd
	go func() {
		_ = cmd.Wait()
		s.mu.Lock()
		if s.current == cmd {
			s.current = nil
		}
		s.mu.Unlock()
	}()
	return nil
}

// Close cancels any utterance in progress.
func (s *CommandSpeaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

func (s *CommandSpeaker) cancelLocked() {
	if s.current == nil || s.current.Process == nil {
		return
	}
	// Best-effort: the process may already have exited.
	_ = s.current.Process.Kill()
	s.current = nil
}

func speechArgs(name, text string) []string {
	switch name {
	case "say":
		// say takes words per minute; 175 is its default.
		return []string{"-r", strconv.Itoa(int(175 * speechRate)), text}
	case "spd-say":
		// spd-say rate runs from -100 to 100.
		return []string{"-r", strconv.Itoa(int(math.Round((speechRate - 1) * 100))), text}
	case "espeak", "espeak-ng":
		return []string{"-s", strconv.Itoa(int(175 * speechRate)), text}
	default:
		return []string{text}
	}
}
