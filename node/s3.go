package node

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/castornet/castor/interfaces"
)

// S3Node implements a storage node backed by Amazon S3 or a compatible
// object store. It supports both public read-only access and authenticated
// write access.
type S3Node struct {
	id             interfaces.NodeID
	client         *s3.S3
	writeClient    *s3.S3
	bucketName     string
	prefix         string
	log            *slog.Logger
	locationURI    string
	hasWriteAccess bool
}

// NewS3Node creates a new S3-backed storage node.
// If accessKey and secretKey are provided, the node will have write access.
// Otherwise, it is read-only for publicly accessible objects.
func NewS3Node(id interfaces.NodeID, bucketName, prefix, region, endpoint, accessKey, secretKey string, log *slog.Logger) (*S3Node, error) {
	uri := fmt.Sprintf("s3://%s/%s?region=%s", bucketName, prefix, region)
	if endpoint != "" {
		uri += fmt.Sprintf("&endpoint=%s", endpoint)
	}

	baseCfg := aws.Config{
		Region: aws.String(region),
	}
	if endpoint != "" {
		baseCfg.Endpoint = aws.String(endpoint)
	}

	// Session for read operations; no credentials required for public buckets.
	baseSess, err := session.NewSession(&baseCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	readClient := s3.New(baseSess)

	hasWriteAccess := accessKey != "" && secretKey != ""
	var writeClient *s3.S3

	if hasWriteAccess {
		writeCfg := baseCfg.Copy()
		writeCfg.Credentials = credentials.NewStaticCredentials(accessKey, secretKey, "")

		writeSess, err := session.NewSession(writeCfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS write session: %w", err)
		}
		writeClient = s3.New(writeSess)
	} else {
		writeClient = readClient
		log.Warn("No S3 credentials provided - write operations may fail unless bucket is public writable",
			slog.String("node_id", string(id)))
	}

	return &S3Node{
		id:             id,
		client:         readClient,
		writeClient:    writeClient,
		bucketName:     bucketName,
		prefix:         strings.TrimSuffix(prefix, "/"),
		log:            log,
		locationURI:    uri,
		hasWriteAccess: hasWriteAccess,
	}, nil
}

// ID returns the node's registry identifier.
func (n *S3Node) ID() interfaces.NodeID {
	return n.id
}

// Put uploads the payload to S3 under the content ID's hex key.
func (n *S3Node) Put(ctx context.Context, id interfaces.ContentID, data []byte) error {
	key := n.getObjectKey(id)

	_, err := n.writeClient.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket: aws.String(n.bucketName),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		if !n.hasWriteAccess {
			return fmt.Errorf("failed to upload replica to S3 (no write credentials provided): %w", err)
		}
		return fmt.Errorf("failed to upload replica to S3: %w", err)
	}

	n.log.Debug("Stored replica in S3",
		slog.String("node_id", string(n.id)),
		slog.String("bucket", n.bucketName),
		slog.String("key", key),
		slog.Int("size", len(data)))

	return nil
}

// Get downloads the payload from S3.
// Returns ErrReplicaNotFound if the object doesn't exist.
func (n *S3Node) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	start := time.Now()
	key := n.getObjectKey(id)

	result, err := n.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(n.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") || strings.Contains(err.Error(), "404") {
			return nil, interfaces.ErrReplicaNotFound
		}

		n.log.Error("Failed to get replica from S3",
			slog.String("node_id", string(n.id)),
			slog.String("bucket", n.bucketName),
			slog.String("key", key),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return nil, fmt.Errorf("failed to get replica from S3: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read replica body: %w", err)
	}

	return data, nil
}

// Delete removes the object from S3, a no-op if it doesn't exist.
func (n *S3Node) Delete(ctx context.Context, id interfaces.ContentID) error {
	key := n.getObjectKey(id)

	// S3 DeleteObject succeeds on missing keys, matching the node contract.
	_, err := n.writeClient.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(n.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete replica from S3: %w", err)
	}

	return nil
}

// Available checks if the bucket is accessible.
func (n *S3Node) Available(ctx context.Context) bool {
	start := time.Now()

	_, err := n.client.HeadBucketWithContext(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(n.bucketName),
	})
	if err != nil {
		n.log.Warn("S3 node unavailable",
			slog.String("node_id", string(n.id)),
			slog.String("bucket", n.bucketName),
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return false
	}

	return true
}

// LocationURI returns the URI that identifies this node's storage engine.
func (n *S3Node) LocationURI() string {
	return n.locationURI
}

// getObjectKey generates an S3 object key based on the content ID.
func (n *S3Node) getObjectKey(id interfaces.ContentID) string {
	if n.prefix == "" {
		return id.String()
	}
	return path.Join(n.prefix, id.String())
}
