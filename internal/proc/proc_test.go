//go:build !windows

package proc

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenerCommand(t *testing.T) {
	name, args := OpenerCommand("darwin", "a.png")
	assert.Equal(t, "open", name)
	assert.Equal(t, []string{"a.png"}, args)
	name, _ = OpenerCommand("linux", "a.png")
	assert.Equal(t, "xdg-open", name)
	name, args = OpenerCommand("windows", "a.png")
	assert.Equal(t, "rundll32", name)
	assert.Equal(t, "a.png", args[len(args)-1])
}

func TestSupervisorStopAll(t *testing.T) {
	if _, err := exec.LookPath("sleep"); err != nil {
		t.Skip("sleep not available")
	}
	var lines []string
	sup := NewSupervisor(func(f string, a ...any) { lines = append(lines, f) })
	ch, err := sup.Start("sleeper", exec.Command("sleep", "30"))
	require.NoError(t, err)
	assert.Equal(t, 1, sup.Running())
	assert.NotZero(t, sup.ChildPID(ch.Name))

	require.NoError(t, sup.StopAll(context.Background()))
	assert.Eventually(t, ch.Exited, 5*time.Second, 20*time.Millisecond)
	assert.Eventually(t, func() bool { return sup.Running() == 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestSupervisorStartFailure(t *testing.T) {
	sup := NewSupervisor(nil)
	_, err := sup.Start("missing", exec.Command("/nonexistent/artlens-opener"))
	assert.Error(t, err)
	assert.Equal(t, 0, sup.Running())
}

func TestStopAllSkipsExitedChildren(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	var lines []string
	sup := NewSupervisor(func(f string, a ...any) { lines = append(lines, f) })
	ch, err := sup.Start("quick", exec.Command("true"))
	require.NoError(t, err)
	assert.Eventually(t, ch.Exited, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, sup.StopAll(context.Background()))
	assert.NotContains(t, lines, "stopping %s (pid=%d)")
}
