package node

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/castornet/castor/interfaces"
)

// Factory creates storage nodes from location URIs.
type Factory struct {
	log *slog.Logger
}

// NewFactory creates a new factory instance that can create storage nodes.
func NewFactory(log *slog.Logger) *Factory {
	return &Factory{log: log}
}

// NodeFor creates a storage node from a location URI.
// The URI format should be [scheme]://[auth@]host[:port][/path][?params]
//
// Supported schemes:
//   - mem:// - In-process map storage
//   - file:// - Local filesystem storage
//   - redis:// - Redis database storage
//   - s3:// - Amazon S3 or compatible object storage
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (f *Factory) NodeFor(id interfaces.NodeID, location interfaces.NodeLocation) (interfaces.StorageNode, error) {
	switch strings.ToLower(location.Scheme) {
	case "mem":
		return f.createMemoryNode(id, location)
	case "file":
		return f.createFileNode(id, location)
	case "redis":
		return f.createRedisNode(id, location)
	case "s3":
		return f.createS3Node(id, location)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", interfaces.ErrInvalidLocationURI, location.Scheme)
	}
}

// createMemoryNode creates an in-memory storage node.
// URI format: mem://node-id
func (f *Factory) createMemoryNode(id interfaces.NodeID, location interfaces.NodeLocation) (interfaces.StorageNode, error) {
	f.log.Debug("Creating memory node", slog.String("uri", location.String()))
	return NewMemoryNode(id, f.log), nil
}

// createFileNode creates a file system storage node.
// URI format: file:///absolute/path/ or file://./relative/path/
func (f *Factory) createFileNode(id interfaces.NodeID, location interfaces.NodeLocation) (interfaces.StorageNode, error) {
	f.log.Debug("Creating file node", slog.String("uri", location.String()))

	path := location.Path
	if location.Host != "" {
		path = location.Host + "/" + strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path in file URI %q", interfaces.ErrInvalidLocationURI, location.String())
	}

	return NewFileNode(id, path, f.log)
}

// createRedisNode creates a Redis-backed storage node.
// URI format: redis://[:password@]host:port/?db=0
func (f *Factory) createRedisNode(id interfaces.NodeID, location interfaces.NodeLocation) (interfaces.StorageNode, error) {
	f.log.Debug("Creating redis node", slog.String("uri", location.String()))

	addr := location.Host
	if addr == "" {
		addr = "127.0.0.1:6379"
	}

	var password string
	if location.Auth != "" {
		// Auth is [user]:password; Redis only uses the password part.
		if idx := strings.LastIndex(location.Auth, ":"); idx >= 0 {
			password = location.Auth[idx+1:]
		} else {
			password = location.Auth
		}
	}

	db := 0
	if dbParam := location.GetParam("db"); dbParam != "" {
		parsed, err := strconv.Atoi(dbParam)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid db parameter %q", interfaces.ErrInvalidLocationURI, dbParam)
		}
		db = parsed
	}

	return NewRedisNode(id, addr, password, db, f.log), nil
}

// createS3Node creates an S3 or S3-compatible storage node.
// URI format: s3://[ACCESS_KEY:SECRET_KEY@]bucket-name/path/?region=us-west-2&endpoint=custom.s3.com
func (f *Factory) createS3Node(id interfaces.NodeID, location interfaces.NodeLocation) (interfaces.StorageNode, error) {
	f.log.Debug("Creating S3 node", slog.String("uri", location.String()))

	bucketName := location.Host
	if bucketName == "" {
		return nil, fmt.Errorf("%w: missing bucket name in S3 URI %q", interfaces.ErrInvalidLocationURI, location.String())
	}
	prefix := strings.TrimPrefix(location.Path, "/")

	region := location.GetParam("region")
	if region == "" {
		region = "us-east-1"
	}
	endpoint := location.GetParam("endpoint")

	var accessKey, secretKey string
	if location.Auth != "" {
		parts := strings.SplitN(location.Auth, ":", 2)
		accessKey = parts[0]
		if len(parts) == 2 {
			secretKey = parts[1]
		}
	} else {
		f.log.Debug("No credentials provided, S3 bucket assumed to be public, write operations may fail")
	}

	return NewS3Node(id, bucketName, prefix, region, endpoint, accessKey, secretKey, f.log)
}
