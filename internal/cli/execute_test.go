package cli

import (
	"bufio"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	envExecuteChild = "TRACKERS_TEST_EXECUTE_CHILD"
	envChildDir     = "TRACKERS_TEST_CHILD_DIR"
)

// TestInterruptEndsWaitingPrompt runs Execute in a child process whose stdin
// stays open, waits for the tasks menu prompt, and sends SIGINT. The child
// must die from the signal instead of waiting for more input.
func TestInterruptEndsWaitingPrompt(t *testing.T) {
	if os.Getenv(envExecuteChild) == "1" {
		os.Args = []string{"trackers", "--config-dir", os.Getenv(envChildDir), "tasks"}
		Execute()
		return
	}
	if runtime.GOOS == "windows" {
		t.Skip("os.Interrupt cannot be sent to a process on windows")
	}

	cmd := exec.Command(os.Args[0], "-test.run=^TestInterruptEndsWaitingPrompt$")
	cmd.Env = append(os.Environ(), envExecuteChild+"=1", envChildDir+"="+t.TempDir())
	stdin, err := cmd.StdinPipe()
	require.NoError(t, err)
	defer stdin.Close()
	stdout, err := cmd.StdoutPipe()
	require.NoError(t, err)
	require.NoError(t, cmd.Start())

	prompted := make(chan bool, 1)
	go func() {
		r := bufio.NewReader(stdout)
		var seen strings.Builder
		buf := make([]byte, 256)
		for {
			n, err := r.Read(buf)
			seen.Write(buf[:n])
			if strings.Contains(seen.String(), "Choose an option: ") {
				prompted <- true
				return
			}
			if err != nil {
				prompted <- false
				return
			}
		}
	}()

	select {
	case ok := <-prompted:
		require.True(t, ok, "child exited before showing the menu")
	case <-time.After(10 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("menu prompt never appeared")
	}

	require.NoError(t, cmd.Process.Signal(os.Interrupt))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()
	select {
	case err := <-done:
		assert.Error(t, err)
		assert.Equal(t, -1, cmd.ProcessState.ExitCode(), "child should be terminated by the signal")
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("child still running after SIGINT")
	}
}
