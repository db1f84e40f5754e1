package coordinator

import (
	"sync"

	"github.com/castornet/castor/interfaces"
)

// Directory is the shared mapping from ContentID to replication metadata:
// the single source of truth for "does this content exist, and where".
// It is exclusively owned by the Coordinator; all operations are atomic
// under concurrent access.
type Directory struct {
	mu      sync.RWMutex
	records map[interfaces.ContentID]interfaces.ReplicaRecord
}

// NewDirectory creates an empty replica directory.
func NewDirectory() *Directory {
	return &Directory{records: make(map[interfaces.ContentID]interfaces.ReplicaRecord)}
}

// Contains reports whether a record exists for id.
func (d *Directory) Contains(id interfaces.ContentID) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.records[id]
	return ok
}

// Put inserts a record for id only if none exists, enforcing store
// idempotence at the directory level. Returns false if a record was
// already present.
func (d *Directory) Put(id interfaces.ContentID, record interfaces.ReplicaRecord) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.records[id]; ok {
		return false
	}
	d.records[id] = record
	return true
}

// Get returns the record for id, if any.
func (d *Directory) Get(id interfaces.ContentID) (interfaces.ReplicaRecord, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	record, ok := d.records[id]
	return record, ok
}

// Remove deletes the record for id, a no-op if absent.
func (d *Directory) Remove(id interfaces.ContentID) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.records, id)
}

// Len reports how many records the directory holds.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.records)
}
