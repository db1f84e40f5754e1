package placement

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castornet/castor/interfaces"
	"github.com/castornet/castor/node"
)

func testNodes(ids ...string) []interfaces.StorageNode {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	nodes := make([]interfaces.StorageNode, len(ids))
	for i, id := range ids {
		nodes[i] = node.NewMemoryNode(interfaces.NodeID(id), logger)
	}
	return nodes
}

func TestRandomSelector_SizeAndDistinctness(t *testing.T) {
	nodes := testNodes("n1", "n2", "n3", "n4", "n5")
	s := NewRandomSelector(1)

	selected, err := s.Select(nodes, 3)
	require.NoError(t, err)
	require.Len(t, selected, 3)

	seen := make(map[interfaces.NodeID]bool)
	for _, n := range selected {
		assert.False(t, seen[n.ID()], "node %s selected twice", n.ID())
		seen[n.ID()] = true
	}
}

func TestRandomSelector_DeterministicWithSeed(t *testing.T) {
	nodes := testNodes("n1", "n2", "n3", "n4", "n5")

	a, err := NewRandomSelector(42).Select(nodes, 3)
	require.NoError(t, err)
	b, err := NewRandomSelector(42).Select(nodes, 3)
	require.NoError(t, err)

	assert.Equal(t, nodeIDs(a), nodeIDs(b))
}

func TestRandomSelector_FullSetWhenFactorEqualsSize(t *testing.T) {
	nodes := testNodes("n1", "n2", "n3")

	selected, err := NewRandomSelector(7).Select(nodes, 3)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]interfaces.NodeID{"n1", "n2", "n3"},
		nodeIDs(selected))
}

func TestRandomSelector_InsufficientReplicas(t *testing.T) {
	s := NewRandomSelector(1)

	tests := []struct {
		name   string
		nodes  []interfaces.StorageNode
		factor int
	}{
		{name: "fewer nodes than factor", nodes: testNodes("n1", "n2"), factor: 3},
		{name: "no nodes", nodes: nil, factor: 1},
		{name: "zero factor", nodes: testNodes("n1"), factor: 0},
		{name: "negative factor", nodes: testNodes("n1"), factor: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Select(tt.nodes, tt.factor)
			assert.ErrorIs(t, err, interfaces.ErrInsufficientReplicas)
		})
	}
}

func nodeIDs(nodes []interfaces.StorageNode) []interfaces.NodeID {
	ids := make([]interfaces.NodeID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids
}
