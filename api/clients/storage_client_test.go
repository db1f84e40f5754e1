package clients

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/castornet/castor/coordinator"
	"github.com/castornet/castor/httpserver"
	"github.com/castornet/castor/interfaces"
	"github.com/castornet/castor/node"
	"github.com/castornet/castor/placement"
	"github.com/castornet/castor/registry"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	reg := registry.NewRegistry(logger)
	coord := coordinator.New(reg, placement.NewRandomSelector(1), 3, logger)
	handler := httpserver.NewHandler(coord, node.NewFactory(logger), logger)

	mux := chi.NewRouter()
	mux.Post("/api/v1/nodes", handler.HandleAddNode)
	mux.Delete("/api/v1/nodes/{node_id}", handler.HandleRemoveNode)
	mux.Post("/api/v1/blobs", handler.HandleStore)
	mux.Get("/api/v1/blobs/{content_id}", handler.HandleRetrieve)
	mux.Delete("/api/v1/blobs/{content_id}", handler.HandleDelete)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestStorageClient_Roundtrip(t *testing.T) {
	srv := newTestServer(t)
	client := &StorageClient{ServerAddr: srv.URL}

	for _, id := range []string{"n1", "n2", "n3"} {
		require.NoError(t, client.AddNode(id, ""))
	}

	payload := []byte("Hello World")
	id, err := client.Store("test.txt", payload)
	require.NoError(t, err)
	assert.Equal(t, interfaces.ComputeID(payload), id)

	got, filename, err := client.Retrieve(id)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	assert.Equal(t, "test.txt", filename)

	require.NoError(t, client.Delete(id))

	_, _, err = client.Retrieve(id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestStorageClient_Errors(t *testing.T) {
	srv := newTestServer(t)
	client := &StorageClient{ServerAddr: srv.URL}

	require.NoError(t, client.AddNode("n1", "mem://n1"))

	// Duplicate node registration
	err := client.AddNode("n1", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")

	// One node cannot satisfy replication factor 3
	_, err = client.Store("test.txt", []byte("Hello World"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	// Deleting unknown content
	err = client.Delete(interfaces.ComputeID([]byte("never stored")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
