package interfaces

// ReplicaRecord is the replication metadata kept for one stored payload.
// Exactly one record exists per distinct ContentID; it is created on the
// first successful store and removed on delete, never partially.
type ReplicaRecord struct {
	// Filename is the display name supplied by the caller. Metadata only,
	// never used for addressing.
	Filename string

	// Nodes lists, in placement order, every node that received a replica
	// at store time. A node's later departure from the registry does not
	// update this list.
	Nodes []NodeID
}

// PlacementSelector chooses which nodes host a payload's replicas.
type PlacementSelector interface {
	// Select returns a uniformly random subset of distinct nodes of size
	// factor. Returns ErrInsufficientReplicas when fewer than factor nodes
	// are available: the system fails closed rather than silently
	// under-replicating.
	Select(nodes []StorageNode, factor int) ([]StorageNode, error)
}
