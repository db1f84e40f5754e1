// Package placement chooses which storage nodes host a payload's replicas.
//
// RandomSelector samples uniformly at random without replacement from the
// registry snapshot it is handed. When the snapshot cannot satisfy the
// replication factor the selection fails closed with
// interfaces.ErrInsufficientReplicas rather than degrading to fewer
// replicas.
package placement
