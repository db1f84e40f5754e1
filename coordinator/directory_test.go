package coordinator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castornet/castor/interfaces"
)

func TestDirectory_PutIsInsertIfAbsent(t *testing.T) {
	d := NewDirectory()
	id := interfaces.ComputeID([]byte("payload"))

	assert.False(t, d.Contains(id))

	original := interfaces.ReplicaRecord{Filename: "a.txt", Nodes: []interfaces.NodeID{"n1", "n2"}}
	assert.True(t, d.Put(id, original))
	assert.True(t, d.Contains(id))
	assert.Equal(t, 1, d.Len())

	// A second put must not mutate the existing record
	assert.False(t, d.Put(id, interfaces.ReplicaRecord{Filename: "b.txt", Nodes: []interfaces.NodeID{"n3"}}))

	record, ok := d.Get(id)
	require.True(t, ok)
	assert.Equal(t, original, record)
	assert.Equal(t, 1, d.Len())
}

func TestDirectory_Remove(t *testing.T) {
	d := NewDirectory()
	id := interfaces.ComputeID([]byte("payload"))

	d.Put(id, interfaces.ReplicaRecord{Filename: "a.txt", Nodes: []interfaces.NodeID{"n1"}})
	d.Remove(id)

	assert.False(t, d.Contains(id))
	_, ok := d.Get(id)
	assert.False(t, ok)

	// Removing an absent record is a no-op
	d.Remove(id)
	assert.Equal(t, 0, d.Len())
}
