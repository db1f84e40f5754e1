// Package coordinator implements the storage coordinator: the core state
// machine orchestrating replication, placement, retrieval and deletion.
//
// Each distinct payload moves through a per-ContentID lifecycle of
// Absent -> Stored -> Absent. A store computes the content ID, short-circuits
// if a replica record already exists (idempotent store), otherwise places the
// payload on a randomly selected node subset, writes all replicas in
// parallel, and records the placement. Node writes are all-or-nothing: a
// failed write rolls back the writes that succeeded so no partial record can
// ever exist.
//
// The coordinator exclusively owns the node registry and the replica
// directory. Store and delete run under a single mutation guard spanning
// their whole check-then-mutate sequence; retrieval reads a record snapshot
// and walks its replicas lock-free.
package coordinator
