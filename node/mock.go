package node

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/castornet/castor/interfaces"
)

// MockNode mocks the interfaces.StorageNode interface for tests that need to
// inject node write/read failures or assert on call counts.
type MockNode struct {
	mock.Mock
	NodeID interfaces.NodeID
}

// ID returns the mock's fixed node ID.
func (m *MockNode) ID() interfaces.NodeID {
	return m.NodeID
}

// Put mocks the Put method.
func (m *MockNode) Put(ctx context.Context, id interfaces.ContentID, data []byte) error {
	args := m.Called(ctx, id, data)
	return args.Error(0)
}

// Get mocks the Get method.
func (m *MockNode) Get(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// Delete mocks the Delete method.
func (m *MockNode) Delete(ctx context.Context, id interfaces.ContentID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Available mocks the Available method.
func (m *MockNode) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// LocationURI returns a synthetic URI for logging.
func (m *MockNode) LocationURI() string {
	return "mock://" + string(m.NodeID)
}
