package proc

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"time"
)

// Child is a process started on behalf of the viewer.
type Child struct {
	Cmd  *exec.Cmd
	Name string
	done chan struct{}
}

// Exited reports whether the child has been reaped.
func (c *Child) Exited() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Supervisor tracks external viewers so they can be stopped when the
// comparison view goes away.
type Supervisor struct {
	mu     sync.Mutex
	childs map[string]*Child
	seq    int
	log    func(format string, args ...any)
}

func NewSupervisor(logger func(string, ...any)) *Supervisor {
	if logger == nil {
		logger = func(string, ...any) {}
	}
	return &Supervisor{childs: map[string]*Child{}, log: logger}
}

// Start runs cmd in its own process group and reaps it in the background.
func (s *Supervisor) Start(name string, cmd *exec.Cmd) (*Child, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	key := fmt.Sprintf("%s#%d", name, s.seq)
	cmd.SysProcAttr = newSysProcAttrForGroup()
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	ch := &Child{Cmd: cmd, Name: key, done: make(chan struct{})}
	s.childs[key] = ch
	s.log("started %s (pid=%d)", key, cmd.Process.Pid)
	go func() {
		_ = cmd.Wait()
		close(ch.done)
		s.mu.Lock()
		delete(s.childs, key)
		s.mu.Unlock()
	}()
	return ch, nil
}

// Running returns the number of children not yet reaped.
func (s *Supervisor) Running() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.childs)
}

// ChildPID returns the pid of a running child, or 0.
func (s *Supervisor) ChildPID(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.childs[name]; ok && ch.Cmd != nil && ch.Cmd.Process != nil {
		return ch.Cmd.Process.Pid
	}
	return 0
}

// StopAll terminates every child's process group and waits briefly for them.
func (s *Supervisor) StopAll(ctx context.Context) error {
	s.mu.Lock()
	childs := make([]*Child, 0, len(s.childs))
	for _, ch := range s.childs {
		if !ch.Exited() {
			childs = append(childs, ch)
		}
	}
	s.mu.Unlock()

	var first error
	for _, ch := range childs {
		if ch.Cmd.Process == nil || ch.Exited() {
			continue
		}
		s.log("stopping %s (pid=%d)", ch.Name, ch.Cmd.Process.Pid)
		if err := terminate(ch.Cmd); err != nil && first == nil {
			first = fmt.Errorf("%s: %w", ch.Name, err)
		}
	}

	waitCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	for _, ch := range childs {
		select {
		case <-waitCtx.Done():
			_ = ch.Cmd.Process.Kill()
		case <-ch.done:
		}
		s.log("stopped %s", ch.Name)
	}
	return first
}

func terminate(cmd *exec.Cmd) error {
	if cmd.Process == nil {
		return errors.New("no process")
	}
	return killProcessGroupOS(cmd.Process.Pid)
}
