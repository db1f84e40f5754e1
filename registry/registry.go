package registry

import (
	"log/slog"
	"sync"

	"github.com/castornet/castor/interfaces"
)

// Registry maintains the live set of storage nodes. Mutations appear atomic
// to concurrent readers; Snapshot returns nodes in insertion order so that
// placement sampling is stable for a given seed.
type Registry struct {
	mu    sync.RWMutex
	order []interfaces.NodeID
	nodes map[interfaces.NodeID]interfaces.StorageNode
	log   *slog.Logger
}

// NewRegistry creates an empty node registry.
func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		nodes: make(map[interfaces.NodeID]interfaces.StorageNode),
		log:   log,
	}
}

// Add inserts a node into the registry.
// Returns ErrNodeAlreadyRegistered, leaving the registry unchanged, if a
// node with the same ID is already present.
func (r *Registry) Add(n interfaces.StorageNode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := n.ID()
	if _, exists := r.nodes[id]; exists {
		return interfaces.ErrNodeAlreadyRegistered
	}

	r.nodes[id] = n
	r.order = append(r.order, id)

	r.log.Info("Node added",
		slog.String("node_id", string(id)),
		slog.String("location", n.LocationURI()),
		slog.Int("node_count", len(r.order)))

	return nil
}

// Remove deletes a node from the registry, a no-op if absent. Replicas held
// by the node are considered lost; replica records referencing it are not
// repaired or purged.
func (r *Registry) Remove(id interfaces.NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.nodes[id]; !exists {
		return
	}

	delete(r.nodes, id)
	for i, nodeID := range r.order {
		if nodeID == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.log.Info("Node removed",
		slog.String("node_id", string(id)),
		slog.Int("node_count", len(r.order)))
}

// Snapshot returns a copy of the current node set in insertion order.
func (r *Registry) Snapshot() []interfaces.StorageNode {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]interfaces.StorageNode, 0, len(r.order))
	for _, id := range r.order {
		nodes = append(nodes, r.nodes[id])
	}
	return nodes
}

// Lookup returns the node registered under id, if any.
func (r *Registry) Lookup(id interfaces.NodeID) (interfaces.StorageNode, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.nodes[id]
	return n, ok
}

// Len reports how many nodes are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
