package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCached_ServesRepeatedListings(t *testing.T) {
	stub := NewStub()
	stub.Reply("aflj", "[]")
	c, err := NewCached(NewClient(stub), 8)
	require.NoError(t, err)
	ctx := context.Background()

	for range 3 {
		_, err := c.Execute(ctx, Listing(KindFunctions))
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"aflj"}, stub.Calls())
	assert.Equal(t, 1, c.Len())
}

func TestCached_MutationPurges(t *testing.T) {
	stub := NewStub()
	stub.Reply("aflj", "[]")
	c, err := NewCached(NewClient(stub), 8)
	require.NoError(t, err)
	ctx := context.Background()

	_, _ = c.Execute(ctx, Listing(KindFunctions))
	_, _ = c.Execute(ctx, Analyze(1))
	assert.Equal(t, 0, c.Len())
	_, _ = c.Execute(ctx, Listing(KindFunctions))

	assert.Equal(t, []string{"aflj", "aaa", "aflj"}, stub.Calls())
}

func TestCached_SetConfigPurges(t *testing.T) {
	stub := NewStub()
	c, err := NewCached(NewClient(stub), 8)
	require.NoError(t, err)
	ctx := context.Background()

	_, _ = c.Execute(ctx, Disassemble(16))
	require.Equal(t, 1, c.Len())
	require.NoError(t, c.SetConfig(ctx, "asm.bytes", "true"))
	assert.Equal(t, 0, c.Len())
}

func TestCached_ErrorsNotCached(t *testing.T) {
	stub := NewStub()
	stub.Reply("izj", "oops")
	c, err := NewCached(NewClient(stub), 8)
	require.NoError(t, err)

	_, err = c.Execute(context.Background(), Listing(KindStrings))
	require.Error(t, err)
	assert.Equal(t, 0, c.Len())
}
