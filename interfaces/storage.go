package interfaces

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ContentID is a 32-byte SHA-256 hash uniquely identifying a payload.
// It is the primary key for all stored content: identical payloads always
// map to the same ContentID, and an ID is never reused for different bytes.
type ContentID [32]byte

// NewContentIDFromBytes creates a content ID from a raw 32-byte slice.
func NewContentIDFromBytes(source []byte) (ContentID, error) {
	if len(source) != 32 {
		return ContentID{}, errors.New("invalid ContentID conversion from bytes: incorrect length")
	}

	var hash [32]byte
	copy(hash[:], source)
	return ContentID(hash), nil
}

// NewContentIDFromHex parses a content ID from its hex representation.
func NewContentIDFromHex(source string) (ContentID, error) {
	// Remove 0x prefix if present
	clean := strings.TrimPrefix(source, "0x")
	if len(clean) != 64 {
		return ContentID{}, errors.New("invalid content ID length: hex string must be 64 characters")
	}

	hashBytes, err := hex.DecodeString(clean)
	if err != nil {
		return ContentID{}, fmt.Errorf("invalid hex format: %w", err)
	}

	var hash [32]byte
	copy(hash[:], hashBytes)
	return ContentID(hash), nil
}

// ComputeID calculates the content ID of a payload. This is the system's
// content addressor: a pure SHA-256 digest of the payload bytes.
func ComputeID(data []byte) ContentID {
	hash := sha256.Sum256(data)
	return ContentID(hash)
}

// String returns hex representation.
func (id ContentID) String() string {
	return hex.EncodeToString(id[:])
}

// Bytes returns raw 32-byte hash.
func (id ContentID) Bytes() []byte {
	return id[:]
}

// Equal compares two content IDs.
func (id ContentID) Equal(other ContentID) bool {
	return bytes.Equal(id[:], other[:])
}

// NodeID uniquely identifies a storage node within the registry.
type NodeID string

// NodeLocation represents the parsed URI selecting a node's storage engine.
type NodeLocation struct {
	Raw    string     // Original URI
	Scheme string     // Storage engine
	Host   string     // Hostname
	Path   string     // Resource path
	Query  url.Values // Query parameters
	Auth   string     // Authentication info
}

// NewNodeLocation creates a node location from a URI string with validation.
func NewNodeLocation(uri string) (NodeLocation, error) {
	parsed, err := url.Parse(uri)
	if err != nil {
		return NodeLocation{}, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	scheme := parsed.Scheme
	switch scheme {
	case "mem", "file", "redis", "s3":
		// Valid scheme
	default:
		return NodeLocation{}, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, scheme)
	}

	var auth string
	if parsed.User != nil {
		auth = parsed.User.String()
	}

	return NodeLocation{
		Raw:    uri,
		Scheme: scheme,
		Host:   parsed.Host,
		Path:   parsed.Path,
		Query:  parsed.Query(),
		Auth:   auth,
	}, nil
}

// String returns the original URI string.
func (loc NodeLocation) String() string {
	return loc.Raw
}

// GetParam returns a query parameter value.
func (loc NodeLocation) GetParam(name string) string {
	return loc.Query.Get(name)
}

var (
	// ErrContentNotFound is returned when an operation references a ContentID
	// that has no replica record.
	ErrContentNotFound = errors.New("content not found")

	// ErrContentUnretrievable is returned when a replica record exists but no
	// listed, still-registered node currently holds the bytes.
	ErrContentUnretrievable = errors.New("content not retrievable from any replica")

	// ErrInsufficientReplicas is returned when placement cannot meet the
	// replication factor. The store fails before any node writes occur.
	ErrInsufficientReplicas = errors.New("not enough nodes to satisfy replication factor")

	// ErrPartialReplication is returned when a node write failed mid-store.
	// Already-written replicas are rolled back and no record is created.
	ErrPartialReplication = errors.New("replication failed on one or more nodes")

	// ErrReplicaNotFound is returned by a node when it does not hold the
	// requested content locally.
	ErrReplicaNotFound = errors.New("replica not found on node")

	// ErrNodeUnavailable is returned when a node's storage engine is not
	// accessible, e.g. a Redis or S3 outage.
	ErrNodeUnavailable = errors.New("storage node unavailable")

	// ErrNodeAlreadyRegistered is returned when adding a node whose ID is
	// already present in the registry.
	ErrNodeAlreadyRegistered = errors.New("node already registered")

	// ErrInvalidLocationURI is returned when a node location URI is malformed
	// or names an unsupported storage engine.
	ErrInvalidLocationURI = errors.New("invalid node location URI")
)

// StorageNode holds replicas in an exclusive local mapping from ContentID to
// payload bytes. Implementations are not required to be thread-safe; the
// coordinator serializes concurrent writes to the same node.
type StorageNode interface {
	// ID returns the node's registry identifier.
	ID() NodeID

	// Put installs or overwrites the payload under id.
	Put(ctx context.Context, id ContentID, data []byte) error

	// Get retrieves the payload stored under id.
	// Returns ErrReplicaNotFound if the node does not hold it.
	Get(ctx context.Context, id ContentID) ([]byte, error)

	// Delete removes the payload stored under id, a no-op if absent.
	Delete(ctx context.Context, id ContentID) error

	// Available checks if the node's storage engine is accessible.
	Available(ctx context.Context) bool

	// LocationURI returns the URI identifying this node's storage engine.
	LocationURI() string
}

// NodeFactory creates storage nodes.
type NodeFactory interface {
	// NodeFor creates a node with the given ID backed by the engine the
	// location URI selects. Supports mem://, file://, redis://, s3://
	NodeFor(id NodeID, location NodeLocation) (StorageNode, error)
}
