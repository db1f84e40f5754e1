package coordinator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/castornet/castor/interfaces"
	"github.com/castornet/castor/registry"
)

// Coordinator orchestrates store, retrieve and delete operations across the
// node registry, the placement selector and the replica directory. It is the
// sole boundary exposed to the transport layer and the exclusive owner of
// both the registry and the directory.
//
// A store's check-then-insert sequence (directory check, placement, node
// writes, record insert) runs as a single critical section, so two
// concurrent stores of identical content cannot both pass the "absent"
// check and double-place. The node writes themselves fan out in parallel
// within that section.
type Coordinator struct {
	registry  *registry.Registry
	selector  interfaces.PlacementSelector
	directory *Directory
	factor    int
	log       *slog.Logger

	// mu serializes store and delete end to end. Retrieval only snapshots
	// the record and reads nodes, so it stays off this lock.
	mu sync.Mutex
}

// New creates a coordinator replicating each payload to factor nodes.
func New(reg *registry.Registry, selector interfaces.PlacementSelector, factor int, log *slog.Logger) *Coordinator {
	return &Coordinator{
		registry:  reg,
		selector:  selector,
		directory: NewDirectory(),
		factor:    factor,
		log:       log,
	}
}

// ReplicationFactor returns the target number of replicas per payload.
func (c *Coordinator) ReplicationFactor() int {
	return c.factor
}

// AddNode registers a storage node.
// Returns ErrNodeAlreadyRegistered if the node ID is already in use.
func (c *Coordinator) AddNode(n interfaces.StorageNode) error {
	return c.registry.Add(n)
}

// RemoveNode removes a node from the registry (node departure). Replicas it
// held are lost; records referencing it are not repaired.
func (c *Coordinator) RemoveNode(id interfaces.NodeID) {
	c.registry.Remove(id)
}

// NodeCount reports how many nodes are currently registered.
func (c *Coordinator) NodeCount() int {
	return c.registry.Len()
}

// Store replicates the payload to factor randomly selected nodes and records
// the placement. Storing a payload whose ContentID already has a record is a
// no-op returning the same ID: no new writes occur, even if the original
// node set has since diverged.
//
// The store is all-or-nothing: if any node write fails, writes that
// succeeded are rolled back and the store fails with ErrPartialReplication,
// leaving no record behind.
func (c *Coordinator) Store(ctx context.Context, filename string, payload []byte) (interfaces.ContentID, error) {
	start := time.Now()
	id := interfaces.ComputeID(payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.directory.Contains(id) {
		c.log.Info("Content already stored",
			slog.String("filename", filename),
			slog.String("content_id", id.String()))
		return id, nil
	}

	selected, err := c.selector.Select(c.registry.Snapshot(), c.factor)
	if err != nil {
		return interfaces.ContentID{}, err
	}

	if err := c.writeReplicas(ctx, id, payload, selected); err != nil {
		return interfaces.ContentID{}, err
	}

	nodeIDs := make([]interfaces.NodeID, len(selected))
	for i, n := range selected {
		nodeIDs[i] = n.ID()
	}
	c.directory.Put(id, interfaces.ReplicaRecord{Filename: filename, Nodes: nodeIDs})

	c.log.Info("Stored content",
		slog.String("filename", filename),
		slog.String("content_id", id.String()),
		slog.Any("nodes", nodeIDs),
		slog.Int("size", len(payload)),
		slog.Duration("duration", time.Since(start)))

	return id, nil
}

// writeReplicas writes the payload to every selected node in parallel and
// rolls back successful writes if any write fails.
func (c *Coordinator) writeReplicas(ctx context.Context, id interfaces.ContentID, payload []byte, selected []interfaces.StorageNode) error {
	var (
		writtenMu sync.Mutex
		written   []interfaces.StorageNode
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, n := range selected {
		n := n
		g.Go(func() error {
			if err := n.Put(gctx, id, payload); err != nil {
				return fmt.Errorf("%s: %w", n.ID(), err)
			}
			writtenMu.Lock()
			written = append(written, n)
			writtenMu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, n := range written {
			if derr := n.Delete(ctx, id); derr != nil {
				c.log.Warn("Rollback delete failed",
					slog.String("node_id", string(n.ID())),
					slog.String("content_id", id.String()),
					"err", derr)
			}
		}
		c.log.Error("Replication failed, rolled back partial writes",
			slog.String("content_id", id.String()),
			slog.Int("rolled_back", len(written)),
			"err", err)
		return fmt.Errorf("%w: %v", interfaces.ErrPartialReplication, err)
	}

	return nil
}

// Retrieve returns the payload stored under id and the filename it was
// stored with, reading the first replica that can produce it. Returns
// ErrContentNotFound when no record exists and ErrContentUnretrievable when
// a record exists but every listed node has departed or lost the content.
func (c *Coordinator) Retrieve(ctx context.Context, id interfaces.ContentID) ([]byte, string, error) {
	record, ok := c.directory.Get(id)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", interfaces.ErrContentNotFound, id)
	}

	for _, nodeID := range record.Nodes {
		n, registered := c.registry.Lookup(nodeID)
		if !registered {
			c.log.Debug("Replica node departed",
				slog.String("node_id", string(nodeID)),
				slog.String("content_id", id.String()))
			continue
		}

		data, err := n.Get(ctx, id)
		if err == nil {
			return data, record.Filename, nil
		}
		if !errors.Is(err, interfaces.ErrReplicaNotFound) {
			c.log.Warn("Replica read failed",
				slog.String("node_id", string(nodeID)),
				slog.String("content_id", id.String()),
				"err", err)
		}
	}

	c.log.Error("Content not retrievable from any replica",
		slog.String("content_id", id.String()),
		slog.Int("replicas", len(record.Nodes)))

	return nil, "", fmt.Errorf("%w: %s", interfaces.ErrContentUnretrievable, id)
}

// Delete removes the payload's replicas from every listed node still present
// in the registry (best-effort; a departed node is skipped) and then removes
// the record unconditionally. Returns ErrContentNotFound when no record
// exists. Delete is terminal: once the record is gone the ContentID is
// absent again.
func (c *Coordinator) Delete(ctx context.Context, id interfaces.ContentID) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	record, ok := c.directory.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", interfaces.ErrContentNotFound, id)
	}

	for _, nodeID := range record.Nodes {
		n, registered := c.registry.Lookup(nodeID)
		if !registered {
			continue
		}
		if err := n.Delete(ctx, id); err != nil {
			// Node-level delete failures don't fail the operation; the
			// record is removed regardless.
			c.log.Warn("Node delete failed",
				slog.String("node_id", string(nodeID)),
				slog.String("content_id", id.String()),
				"err", err)
		}
	}

	c.directory.Remove(id)

	c.log.Info("Deleted content",
		slog.String("content_id", id.String()),
		slog.String("filename", record.Filename))

	return nil
}
