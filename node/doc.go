// Package node provides storage node implementations with pluggable engines.
//
// Every node satisfies the interfaces.StorageNode contract: an exclusive
// local mapping from ContentID to payload bytes with Put/Get/Delete
// operations. The engine behind that mapping is selected by a location URI:
//
//   - mem://node-id - in-process map, for tests and single-process setups
//   - file:///var/lib/castor/n1/ - local filesystem, one file per replica
//   - redis://:password@host:6379/?db=0 - Redis database
//   - s3://KEY:SECRET@bucket/prefix/?region=us-west-2 - S3-compatible store
//
// # Node Factory
//
// Factory creates nodes from URIs:
//
//	factory := node.NewFactory(logger)
//	loc, err := interfaces.NewNodeLocation("mem://n1")
//	n, err := factory.NodeFor("n1", loc)
//
// Nodes are not thread-safe by contract; the coordinator serializes
// concurrent writes to the same node.
package node
