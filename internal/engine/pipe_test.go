package engine

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeR2 mimics `r2 -q0`: a NUL once loaded, then one NUL-terminated reply
// per line read.
const fakeR2 = `#!/bin/sh
printf '\000'
while IFS= read -r line; do
  case "$line" in
    "q!") exit 0 ;;
  esac
  printf 'reply:%s\n\000' "$line"
done
`

func writeFakeR2(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engine needs a POSIX shell")
	}
	path := filepath.Join(t.TempDir(), "r2")
	require.NoError(t, os.WriteFile(path, []byte(fakeR2), 0o755))
	return path
}

func TestPipeTransport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	p, err := StartPipe(ctx, writeFakeR2(t), "/bin/ls")
	require.NoError(t, err)
	defer p.Close()

	out, err := p.Cmd(ctx, "ij")
	require.NoError(t, err)
	assert.Equal(t, "reply:ij\n", out)

	out, err = p.Cmd(ctx, "s main")
	require.NoError(t, err)
	assert.Equal(t, "reply:s main\n", out)
}

func TestPipeTransport_RejectsMultiline(t *testing.T) {
	ctx := context.Background()
	p, err := StartPipe(ctx, writeFakeR2(t), "")
	require.NoError(t, err)
	defer p.Close()

	_, err = p.Cmd(ctx, "s main\ne-")
	assert.Error(t, err)
}

func TestPipeTransport_ClosedTransport(t *testing.T) {
	ctx := context.Background()
	p, err := StartPipe(ctx, writeFakeR2(t), "")
	require.NoError(t, err)
	require.NoError(t, p.Close())
	require.NoError(t, p.Close())

	_, err = p.Cmd(ctx, "ij")
	assert.ErrorIs(t, err, ErrClosed)
}

func TestStartPipe_MissingBinary(t *testing.T) {
	_, err := StartPipe(context.Background(), filepath.Join(t.TempDir(), "nope"), "")
	assert.Error(t, err)
}
