// Package httpserver provides the HTTP transport adapter for the blob store.
//
// The server is a thin layer over the storage coordinator: handlers decode
// request bodies into primitive coordinator arguments, encode content IDs
// and payloads back into responses, and map each coordinator failure kind
// to an HTTP status:
//
//   - ErrContentNotFound, ErrContentUnretrievable -> 404
//   - ErrNodeAlreadyRegistered -> 409
//   - ErrInvalidLocationURI, malformed IDs/bodies -> 400
//   - ErrInsufficientReplicas, ErrPartialReplication -> 500
//
// # Endpoints
//
//	POST   /api/v1/nodes                 register a storage node
//	DELETE /api/v1/nodes/{node_id}       remove a node (node departure)
//	POST   /api/v1/blobs                 store a payload, returns content ID
//	GET    /api/v1/blobs/{content_id}    retrieve payload bytes; the stored
//	                                     filename rides the Content-Disposition header
//	DELETE /api/v1/blobs/{content_id}    delete a payload and its replicas
//
// Plus the operational set: /livez, /readyz, /drain, /undrain, optional
// pprof under /debug, and Prometheus metrics on a separate listener.
package httpserver
