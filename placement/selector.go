package placement

import (
	"fmt"
	"math/rand"
	"sync"

	"github.com/castornet/castor/interfaces"
)

// RandomSelector chooses replica placements uniformly at random without
// replacement. The RNG is injected so tests can seed it and assert exact
// node sets.
type RandomSelector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSelector creates a selector seeded from seed.
func NewRandomSelector(seed int64) *RandomSelector {
	return &RandomSelector{rng: rand.New(rand.NewSource(seed))}
}

// Select returns a uniformly random subset of factor distinct nodes.
// Returns ErrInsufficientReplicas when fewer than factor nodes are
// available: storing on fewer nodes than requested would be silent
// under-replication, a latent data-loss risk, so the store fails instead.
func (s *RandomSelector) Select(nodes []interfaces.StorageNode, factor int) ([]interfaces.StorageNode, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("%w: replication factor must be positive, got %d", interfaces.ErrInsufficientReplicas, factor)
	}
	if len(nodes) < factor {
		return nil, fmt.Errorf("%w: need %d nodes, have %d", interfaces.ErrInsufficientReplicas, factor, len(nodes))
	}

	s.mu.Lock()
	perm := s.rng.Perm(len(nodes))
	s.mu.Unlock()

	selected := make([]interfaces.StorageNode, factor)
	for i := 0; i < factor; i++ {
		selected[i] = nodes[perm[i]]
	}
	return selected, nil
}
