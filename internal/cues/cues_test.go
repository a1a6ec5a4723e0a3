package cues

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestUnsupportedReportsUnsupported(t *testing.T) {
	var u Unsupported
	if err := u.Pulse(100 * time.Millisecond); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported from Pulse, got %v", err)
	}
	if err := u.Speak("Hold"); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported from Speak, got %v", err)
	}
	if u.Request() {
		t.Fatalf("expected Request to report false")
	}
	u.Release()
}

func TestBellWritesBEL(t *testing.T) {
	var buf bytes.Buffer
	if err := (Bell{W: &buf}).Pulse(100 * time.Millisecond); err != nil {
		t.Fatalf("pulse: %v", err)
	}
	if buf.String() != "\a" {
		t.Fatalf("expected BEL, got %q", buf.String())
	}
	if err := (Bell{}).Pulse(0); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported without writer, got %v", err)
	}
}

func TestNewCommandSpeakerPicksFirstAvailable(t *testing.T) {
	lookPath := func(name string) (string, error) {
		if name == "espeak" {
			return "/usr/bin/espeak", nil
		}
		return "", exec.ErrNotFound
	}
	speaker, err := newCommandSpeaker(lookPath, exec.Command)
	if err != nil {
		t.Fatalf("new speaker: %v", err)
	}
	if speaker.Name() != "espeak" {
		t.Fatalf("expected espeak, got %s", speaker.Name())
	}
}

func TestNewCommandSpeakerUnsupported(t *testing.T) {
	lookPath := func(string) (string, error) { return "", exec.ErrNotFound }
	if _, err := newCommandSpeaker(lookPath, exec.Command); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestSpeechArgs(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{name: "say", want: "-r 157 Breathe in"},
		{name: "spd-say", want: "-r -10 Breathe in"},
		{name: "espeak", want: "-s 157 Breathe in"},
		{name: "other", want: "Breathe in"},
	}
	for _, tc := range cases {
		got := strings.Join(speechArgs(tc.name, "Breathe in"), " ")
		if got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestInhibitorArgv(t *testing.T) {
	if argv := inhibitorArgv("darwin"); len(argv) == 0 || argv[0] != "caffeinate" {
		t.Fatalf("unexpected darwin argv: %v", argv)
	}
	if argv := inhibitorArgv("linux"); len(argv) == 0 || argv[0] != "systemd-inhibit" {
		t.Fatalf("unexpected linux argv: %v", argv)
	}
	if argv := inhibitorArgv("plan9"); argv != nil {
		t.Fatalf("expected no inhibitor on plan9, got %v", argv)
	}
}

func TestInhibitLockRequestRelease(t *testing.T) {
	sleepPath, err := exec.LookPath("sleep")
	if err != nil {
		t.Skip("sleep not available")
	}
	lock := &InhibitLock{argv: []string{sleepPath, "30"}, command: exec.Command}
	if !lock.Request() {
		t.Fatalf("expected request to succeed")
	}
	if !lock.Active() {
		t.Fatalf("expected lock to be active")
	}
	if !lock.Request() {
		t.Fatalf("expected repeated request to succeed")
	}
	lock.Release()
	if lock.Active() {
		t.Fatalf("expected lock to be released")
	}
	lock.Release()
}
