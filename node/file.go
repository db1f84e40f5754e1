package node

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/castornet/castor/interfaces"
)

// FileNode implements a storage node backed by the local file system.
// Replicas are stored as individual files named by their content ID.
type FileNode struct {
	id          interfaces.NodeID
	baseDir     string
	log         *slog.Logger
	locationURI string
}

// NewFileNode creates a new file-backed storage node rooted at baseDir.
// The directory is created if it doesn't exist.
func NewFileNode(id interfaces.NodeID, baseDir string, log *slog.Logger) (*FileNode, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &FileNode{
		id:          id,
		baseDir:     baseDir,
		log:         log,
		locationURI: fmt.Sprintf("file://%s", baseDir),
	}, nil
}

// ID returns the node's registry identifier.
func (n *FileNode) ID() interfaces.NodeID {
	return n.id
}

// Put writes the payload to disk under the content ID's hex name.
func (n *FileNode) Put(ctx context.Context, id interfaces.ContentID, data []byte) error {
	filePath := n.getFilePath(id)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write replica file: %w", err)
	}

	n.log.Debug("Stored replica in file",
		slog.String("node_id", string(n.id)),
		slog.String("path", filePath),
		slog.Int("size", len(data)))

	return nil
}

// Get reads the payload from disk.
// Returns ErrReplicaNotFound if the file doesn't exist.
func (n *FileNode) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	filePath := n.getFilePath(id)

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, interfaces.ErrReplicaNotFound
		}
		return nil, fmt.Errorf("failed to read replica file: %w", err)
	}

	return data, nil
}

// Delete removes the replica file, a no-op if it doesn't exist.
func (n *FileNode) Delete(ctx context.Context, id interfaces.ContentID) error {
	err := os.Remove(n.getFilePath(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove replica file: %w", err)
	}
	return nil
}

// Available checks that the base directory still exists.
func (n *FileNode) Available(ctx context.Context) bool {
	_, err := os.Stat(n.baseDir)
	if err != nil {
		n.log.Debug("File node unavailable",
			slog.String("node_id", string(n.id)),
			"err", err)
		return false
	}
	return true
}

// LocationURI returns the URI that identifies this node's storage engine.
func (n *FileNode) LocationURI() string {
	return n.locationURI
}

// getFilePath generates the replica file path for a content ID.
func (n *FileNode) getFilePath(id interfaces.ContentID) string {
	return filepath.Join(n.baseDir, id.String())
}
