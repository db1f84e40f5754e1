package node

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/castornet/castor/interfaces"
)

// redisKeyPrefix namespaces replica keys so several nodes can share one
// Redis database without colliding.
const redisKeyPrefix = "castor:replica"

// RedisNode implements a storage node backed by a Redis database.
type RedisNode struct {
	id          interfaces.NodeID
	client      *redis.Client
	log         *slog.Logger
	locationURI string
}

// NewRedisNode creates a new Redis-backed storage node.
func NewRedisNode(id interfaces.NodeID, addr, password string, db int, log *slog.Logger) *RedisNode {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	return &RedisNode{
		id:          id,
		client:      client,
		log:         log,
		locationURI: fmt.Sprintf("redis://%s/%d", addr, db),
	}
}

// ID returns the node's registry identifier.
func (n *RedisNode) ID() interfaces.NodeID {
	return n.id
}

// Put installs or overwrites the payload under id. Replicas are stored
// without expiry; deletion is always explicit.
func (n *RedisNode) Put(ctx context.Context, id interfaces.ContentID, data []byte) error {
	if err := n.client.Set(ctx, n.key(id), data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", interfaces.ErrNodeUnavailable, err)
	}

	n.log.Debug("Stored replica in redis",
		slog.String("node_id", string(n.id)),
		slog.String("content_id", id.String()),
		slog.Int("size", len(data)))

	return nil
}

// Get retrieves the payload stored under id.
// Returns ErrReplicaNotFound if the key doesn't exist.
func (n *RedisNode) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	data, err := n.client.Get(ctx, n.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, interfaces.ErrReplicaNotFound
		}
		return nil, fmt.Errorf("%w: %v", interfaces.ErrNodeUnavailable, err)
	}
	return data, nil
}

// Delete removes the payload stored under id, a no-op if absent.
func (n *RedisNode) Delete(ctx context.Context, id interfaces.ContentID) error {
	if err := n.client.Del(ctx, n.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: %v", interfaces.ErrNodeUnavailable, err)
	}
	return nil
}

// Available checks if the Redis server responds to a ping.
func (n *RedisNode) Available(ctx context.Context) bool {
	if err := n.client.Ping(ctx).Err(); err != nil {
		n.log.Debug("Redis node unavailable",
			slog.String("node_id", string(n.id)),
			"err", err)
		return false
	}
	return true
}

// LocationURI returns the URI that identifies this node's storage engine.
func (n *RedisNode) LocationURI() string {
	return n.locationURI
}

// key generates the Redis key for a content ID, scoped by node ID.
func (n *RedisNode) key(id interfaces.ContentID) string {
	return fmt.Sprintf("%s:%s:%s", redisKeyPrefix, n.id, id.String())
}
