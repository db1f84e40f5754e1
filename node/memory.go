package node

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/castornet/castor/interfaces"
)

// MemoryNode implements a storage node holding replicas in an in-process map.
// All operations are total over its local state: Put always installs, Get
// reports absence via ErrReplicaNotFound, Delete of an absent entry is a
// no-op. Contents are lost when the node is removed from the registry.
type MemoryNode struct {
	id          interfaces.NodeID
	mu          sync.RWMutex
	blobs       map[interfaces.ContentID][]byte
	log         *slog.Logger
	locationURI string
}

// NewMemoryNode creates a new in-memory storage node.
func NewMemoryNode(id interfaces.NodeID, log *slog.Logger) *MemoryNode {
	return &MemoryNode{
		id:          id,
		blobs:       make(map[interfaces.ContentID][]byte),
		log:         log,
		locationURI: fmt.Sprintf("mem://%s", id),
	}
}

// ID returns the node's registry identifier.
func (n *MemoryNode) ID() interfaces.NodeID {
	return n.id
}

// Put installs or overwrites the payload under id.
func (n *MemoryNode) Put(ctx context.Context, id interfaces.ContentID, data []byte) error {
	// Copy so later mutation of the caller's slice cannot corrupt the replica.
	replica := make([]byte, len(data))
	copy(replica, data)

	n.mu.Lock()
	n.blobs[id] = replica
	n.mu.Unlock()

	n.log.Debug("Stored replica in memory",
		slog.String("node_id", string(n.id)),
		slog.String("content_id", id.String()),
		slog.Int("size", len(data)))

	return nil
}

// Get retrieves the payload stored under id. The returned slice is a copy,
// so callers mutating it cannot corrupt the stored replica.
func (n *MemoryNode) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	n.mu.RLock()
	data, ok := n.blobs[id]
	n.mu.RUnlock()

	if !ok {
		return nil, interfaces.ErrReplicaNotFound
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Delete removes the payload stored under id, a no-op if absent.
func (n *MemoryNode) Delete(ctx context.Context, id interfaces.ContentID) error {
	n.mu.Lock()
	delete(n.blobs, id)
	n.mu.Unlock()
	return nil
}

// Available always reports true: the map has no failure modes.
func (n *MemoryNode) Available(ctx context.Context) bool {
	return true
}

// LocationURI returns the URI that identifies this node's storage engine.
func (n *MemoryNode) LocationURI() string {
	return n.locationURI
}

// Len reports how many replicas the node currently holds.
func (n *MemoryNode) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.blobs)
}
