package cues

import (
	"os/exec"
	"runtime"
	"sync"
)

// InhibitLock keeps the display awake by holding an inhibitor process open.
type InhibitLock struct {
	argv    []string
	command func(path string, args ...string) *exec.Cmd

	mu     sync.Mutex
	cmd    *exec.Cmd
	exited chan struct{}
}

// NewInhibitLock picks the inhibitor for the current OS. It returns ErrUnsupported when
// the command is missing.
func NewInhibitLock() (*InhibitLock, error) {
	argv := inhibitorArgv(runtime.GOOS)
	if argv == nil {
		return nil, ErrUnsupported
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return nil, ErrUnsupported
	}
	argv[0] = path
	return &InhibitLock{argv: argv, command: exec.Command}, nil
}

func inhibitorArgv(goos string) []string {
	switch goos {
	case "darwin":
		return []string{"caffeinate", "-d"}
	case "linux":
		return []string{"systemd-inhibit", "--what=idle", "--who=tuibreathe", "--why=breathing session", "sleep", "infinity"}
	default:
		return nil
	}
}

// Request starts the inhibitor if it is not already held.
func (l *InhibitLock) Request() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.activeLocked() {
		return true
	}
	cmd := l.command(l.argv[0], l.argv[1:]...)
	if err := cmd.Start(); err != nil {
		return false
	}
	exited := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()
	l.cmd = cmd
	l.exited = exited
	return true
}

// Release stops the inhibitor.
func (l *InhibitLock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cmd == nil {
		return
	}
	if l.activeLocked() {
		_ = l.cmd.Process.Kill()
		<-l.exited
	}
	l.cmd = nil
	l.exited = nil
}

// Active reports whether the lock is held. The OS may end the inhibitor at any time.
func (l *InhibitLock) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.activeLocked()
}

func (l *InhibitLock) activeLocked() bool {
	if l.cmd == nil {
		return false
	}
	select {
	case <-l.exited:
		return false
	default:
		return true
	}
}
