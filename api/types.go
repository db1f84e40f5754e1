package api

// Wire types for the blob store HTTP API. The transport layer decodes these
// into primitive coordinator arguments and encodes coordinator results back.

// AddNodeRequest registers a new storage node.
type AddNodeRequest struct {
	// NodeID is the node's unique registry identifier.
	NodeID string `json:"node_id"`

	// Location selects the node's storage engine (mem://, file://, redis://,
	// s3://). Defaults to mem://<node_id> when empty.
	Location string `json:"location,omitempty"`
}

// AddNodeResponse confirms node registration.
type AddNodeResponse struct {
	NodeID   string `json:"node_id"`
	Location string `json:"location"`
}

// RemoveNodeResponse confirms node removal.
type RemoveNodeResponse struct {
	NodeID string `json:"node_id"`
	Status string `json:"status"`
}

// StoreRequest submits a payload for replicated storage. Data is
// base64-encoded on the wire, per encoding/json []byte handling.
type StoreRequest struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// StoreResponse returns the content ID the payload is addressable by.
type StoreResponse struct {
	ContentID string `json:"content_id"`
}

// ErrorResponse carries a failure description.
type ErrorResponse struct {
	Error string `json:"error"`
}
