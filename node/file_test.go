package node

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castornet/castor/interfaces"
)

func TestFileNode_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	n, err := NewFileNode("f1", dir, testLogger())
	require.NoError(t, err)

	payload := []byte("Hello World")
	id := interfaces.ComputeID(payload)

	_, err = n.Get(ctx, id)
	assert.ErrorIs(t, err, interfaces.ErrReplicaNotFound)

	require.NoError(t, n.Put(ctx, id, payload))

	// The replica is a file named by the content ID
	_, err = os.Stat(filepath.Join(dir, id.String()))
	require.NoError(t, err)

	got, err := n.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	require.NoError(t, n.Delete(ctx, id))
	_, err = n.Get(ctx, id)
	assert.ErrorIs(t, err, interfaces.ErrReplicaNotFound)

	assert.NoError(t, n.Delete(ctx, id))
}

func TestFileNode_CreatesBaseDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "replicas")

	n, err := NewFileNode("f1", dir, testLogger())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.True(t, n.Available(context.Background()))
}

func TestFileNode_UnavailableWhenDirRemoved(t *testing.T) {
	dir := t.TempDir()
	n, err := NewFileNode("f1", dir, testLogger())
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(dir))
	assert.False(t, n.Available(context.Background()))
}
