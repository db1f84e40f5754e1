package node

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castornet/castor/interfaces"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestMemoryNode_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNode("n1", testLogger())

	payload := []byte("Hello World")
	id := interfaces.ComputeID(payload)

	// Absent before put
	_, err := n.Get(ctx, id)
	assert.ErrorIs(t, err, interfaces.ErrReplicaNotFound)

	require.NoError(t, n.Put(ctx, id, payload))

	got, err := n.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, 1, n.Len())

	require.NoError(t, n.Delete(ctx, id))
	_, err = n.Get(ctx, id)
	assert.ErrorIs(t, err, interfaces.ErrReplicaNotFound)
	assert.Equal(t, 0, n.Len())

	// Deleting an absent entry is a no-op
	assert.NoError(t, n.Delete(ctx, id))
}

func TestMemoryNode_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNode("n1", testLogger())

	id := interfaces.ComputeID([]byte("v1"))
	require.NoError(t, n.Put(ctx, id, []byte("v1")))
	require.NoError(t, n.Put(ctx, id, []byte("v2")))

	got, err := n.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)
	assert.Equal(t, 1, n.Len())
}

func TestMemoryNode_PutCopiesPayload(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNode("n1", testLogger())

	payload := []byte("immutable")
	id := interfaces.ComputeID(payload)
	require.NoError(t, n.Put(ctx, id, payload))

	// Mutating the caller's slice must not corrupt the stored replica.
	payload[0] = 'X'

	got, err := n.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), got)
}

func TestMemoryNode_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	n := NewMemoryNode("n1", testLogger())

	payload := []byte("immutable")
	id := interfaces.ComputeID(payload)
	require.NoError(t, n.Put(ctx, id, payload))

	// Mutating a retrieved slice must not corrupt the stored replica.
	first, err := n.Get(ctx, id)
	require.NoError(t, err)
	first[0] = 'X'

	second, err := n.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []byte("immutable"), second)
}

func TestMemoryNode_Identity(t *testing.T) {
	n := NewMemoryNode("n1", testLogger())
	assert.Equal(t, interfaces.NodeID("n1"), n.ID())
	assert.Equal(t, "mem://n1", n.LocationURI())
	assert.True(t, n.Available(context.Background()))
}
