package menu

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/trackers/internal/memory"
	"github.com/mesh-intelligence/trackers/pkg/types"
)

// attach returns a memory backend with the default config, detached when the
// test ends.
func attach(t *testing.T) types.Backend {
	t.Helper()
	b := memory.NewBackend()
	require.NoError(t, b.Attach(types.DefaultConfig()))
	t.Cleanup(func() { _ = b.Detach() })
	return b
}

// script returns a Prompter that reads the given lines and the buffer it
// writes to.
func script(lines ...string) (*Prompter, *bytes.Buffer) {
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	return NewPrompter(in, &out), &out
}
