package registry

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castornet/castor/interfaces"
	"github.com/castornet/castor/node"
)

func testRegistry() *Registry {
	return NewRegistry(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func memNode(id string) interfaces.StorageNode {
	return node.NewMemoryNode(interfaces.NodeID(id), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegistry_AddAndLookup(t *testing.T) {
	r := testRegistry()

	n1 := memNode("n1")
	require.NoError(t, r.Add(n1))
	assert.Equal(t, 1, r.Len())

	got, ok := r.Lookup("n1")
	require.True(t, ok)
	assert.Equal(t, n1, got)

	_, ok = r.Lookup("unknown")
	assert.False(t, ok)
}

func TestRegistry_AddDuplicateRejected(t *testing.T) {
	r := testRegistry()

	first := memNode("n1")
	require.NoError(t, r.Add(first))

	err := r.Add(memNode("n1"))
	assert.ErrorIs(t, err, interfaces.ErrNodeAlreadyRegistered)

	// Registry unchanged: still the original node
	assert.Equal(t, 1, r.Len())
	got, ok := r.Lookup("n1")
	require.True(t, ok)
	assert.Same(t, first, got)
}

func TestRegistry_Remove(t *testing.T) {
	r := testRegistry()
	require.NoError(t, r.Add(memNode("n1")))
	require.NoError(t, r.Add(memNode("n2")))

	r.Remove("n1")
	assert.Equal(t, 1, r.Len())
	_, ok := r.Lookup("n1")
	assert.False(t, ok)

	// Removing an absent node is a no-op
	r.Remove("n1")
	r.Remove("never-added")
	assert.Equal(t, 1, r.Len())
}

func TestRegistry_SnapshotInsertionOrder(t *testing.T) {
	r := testRegistry()
	for _, id := range []string{"n3", "n1", "n2"} {
		require.NoError(t, r.Add(memNode(id)))
	}

	var ids []interfaces.NodeID
	for _, n := range r.Snapshot() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []interfaces.NodeID{"n3", "n1", "n2"}, ids)

	// Order is re-packed after removal
	r.Remove("n1")
	ids = nil
	for _, n := range r.Snapshot() {
		ids = append(ids, n.ID())
	}
	assert.Equal(t, []interfaces.NodeID{"n3", "n2"}, ids)
}

func TestRegistry_SnapshotIsACopy(t *testing.T) {
	r := testRegistry()
	require.NoError(t, r.Add(memNode("n1")))

	snap := r.Snapshot()
	r.Remove("n1")

	// The earlier snapshot is unaffected by later mutations
	require.Len(t, snap, 1)
	assert.Equal(t, interfaces.NodeID("n1"), snap[0].ID())
}
