// Package registry maintains the live set of storage nodes.
//
// The registry is the coordinator's view of node membership: placement
// samples from its snapshot, and retrieval/deletion look nodes up by ID
// (a node listed in a replica record may have departed since the store).
// All mutations are serialized behind an RWMutex so readers always see a
// consistent node set.
package registry
