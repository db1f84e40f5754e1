// Package interfaces defines core interfaces and types for the castor
// replicated blob store, separating interface definitions from
// implementations.
//
// # Content Addressing
//
// ContentID is the 32-byte SHA-256 digest of a payload and acts as the
// primary key for all stored content. ComputeID is the content addressor:
// identical payloads always produce the same ContentID, and hash collisions
// are treated as negligible rather than handled as a distinct error case.
//
// # Storage Nodes
//
// StorageNode is the contract a node must satisfy: an exclusive local
// mapping from ContentID to payload bytes with Put/Get/Delete operations.
// The node's internal storage engine is an implementation detail; the node
// package provides in-memory, filesystem, Redis, and S3-backed engines,
// selected by NodeLocation URIs (mem://, file://, redis://, s3://) through
// a NodeFactory.
//
// # Placement
//
// PlacementSelector picks the distinct subset of registered nodes that will
// host a new payload's replicas. Selection is uniformly random without
// replacement; a shortfall against the replication factor fails the store
// with ErrInsufficientReplicas.
//
// # Errors
//
// The package defines the sentinel errors shared across the system,
// distinguishing directory-level absence (ErrContentNotFound) from the case
// where a record exists but no replica can produce bytes
// (ErrContentUnretrievable), and store-time failures
// (ErrInsufficientReplicas, ErrPartialReplication) from node-local
// conditions (ErrReplicaNotFound, ErrNodeUnavailable).
package interfaces
