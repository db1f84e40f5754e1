package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/castornet/castor/api"
	"github.com/castornet/castor/coordinator"
	"github.com/castornet/castor/interfaces"
	"github.com/castornet/castor/metrics"
)

// maxBodySize is the maximum allowed request body size (16MB). The base64
// encoding of payloads inflates the wire size by a third.
const maxBodySize = 16 * 1024 * 1024

// Handler processes HTTP requests for the blob store. It decodes request
// bodies into coordinator arguments, encodes results back, and maps each
// coordinator failure kind to an HTTP status.
type Handler struct {
	coordinator *coordinator.Coordinator
	nodeFactory interfaces.NodeFactory
	log         *slog.Logger

	// metrics is assigned by httpserver.New; nil in handler-only tests.
	metrics *metrics.MetricsServer
}

// NewHandler creates a new HTTP request handler.
//
// Parameters:
//   - coord: the storage coordinator, sole owner of registry and directory
//   - nodeFactory: factory building storage nodes from location URIs
//   - log: structured logger for operational insights
func NewHandler(coord *coordinator.Coordinator, nodeFactory interfaces.NodeFactory, log *slog.Logger) *Handler {
	return &Handler{
		coordinator: coord,
		nodeFactory: nodeFactory,
		log:         log,
	}
}

// HandleAddNode registers a new storage node.
//
// URL format: POST /api/v1/nodes
// Request body: {"node_id": "n1", "location": "mem://n1"}
// The location is optional and defaults to an in-memory engine.
func (h *Handler) HandleAddNode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req api.AddNodeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}
	if req.NodeID == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("node_id is required"))
		return
	}
	if req.Location == "" {
		req.Location = "mem://" + req.NodeID
	}

	err := h.addNode(req)
	h.recordOp("add_node", err, start)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrInvalidLocationURI):
			h.writeError(w, http.StatusBadRequest, err)
		case errors.Is(err, interfaces.ErrNodeAlreadyRegistered):
			h.writeError(w, http.StatusConflict, err)
		default:
			h.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	h.writeJSON(w, api.AddNodeResponse{NodeID: req.NodeID, Location: req.Location})
}

func (h *Handler) addNode(req api.AddNodeRequest) error {
	location, err := interfaces.NewNodeLocation(req.Location)
	if err != nil {
		return err
	}

	n, err := h.nodeFactory.NodeFor(interfaces.NodeID(req.NodeID), location)
	if err != nil {
		return err
	}

	return h.coordinator.AddNode(n)
}

// HandleRemoveNode removes a storage node from the registry.
//
// URL format: DELETE /api/v1/nodes/{node_id}
// Removal of an unknown node is a no-op, matching the registry contract.
func (h *Handler) HandleRemoveNode(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	nodeID := chi.URLParam(r, "node_id")
	if nodeID == "" {
		h.writeError(w, http.StatusBadRequest, errors.New("node_id is required"))
		return
	}

	h.coordinator.RemoveNode(interfaces.NodeID(nodeID))
	h.recordOp("remove_node", nil, start)

	h.writeJSON(w, api.RemoveNodeResponse{NodeID: nodeID, Status: "removed"})
}

// HandleStore replicates a payload and returns its content ID.
//
// URL format: POST /api/v1/blobs
// Request body: {"filename": "test.txt", "data": "<base64>"}
//
// Placement shortfall and mid-store write failures are server errors; the
// store is all-or-nothing, so a failed store leaves no state behind.
func (h *Handler) HandleStore(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req api.StoreRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize)).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	id, err := h.coordinator.Store(r.Context(), req.Filename, req.Data)
	h.recordOp("store", err, start)
	if err != nil {
		// Both ErrInsufficientReplicas and ErrPartialReplication are
		// server-side conditions, not client mistakes.
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if h.metrics != nil {
		h.metrics.BlobBytes.Observe(float64(len(req.Data)))
	}

	h.writeJSON(w, api.StoreResponse{ContentID: id.String()})
}

// HandleRetrieve returns the payload stored under a content ID.
//
// URL format: GET /api/v1/blobs/{content_id}
// Response: payload bytes as application/octet-stream, with the stored
// filename carried in the Content-Disposition header.
//
// Both "no such content" and "content known but no replica reachable" map
// to 404, with distinct bodies so operators can tell them apart.
func (h *Handler) HandleRetrieve(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := interfaces.NewContentIDFromHex(chi.URLParam(r, "content_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	data, filename, err := h.coordinator.Retrieve(r.Context(), id)
	h.recordOp("retrieve", err, start)
	if err != nil {
		switch {
		case errors.Is(err, interfaces.ErrContentNotFound),
			errors.Is(err, interfaces.ErrContentUnretrievable):
			h.writeError(w, http.StatusNotFound, err)
		default:
			h.writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if filename != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// HandleDelete removes a payload and its replicas.
//
// URL format: DELETE /api/v1/blobs/{content_id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := interfaces.NewContentIDFromHex(chi.URLParam(r, "content_id"))
	if err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return
	}

	err = h.coordinator.Delete(r.Context(), id)
	h.recordOp("delete", err, start)
	if err != nil {
		if errors.Is(err, interfaces.ErrContentNotFound) {
			h.writeError(w, http.StatusNotFound, err)
			return
		}
		h.writeError(w, http.StatusInternalServerError, err)
		return
	}

	h.writeJSON(w, map[string]string{"status": "deleted", "content_id": id.String()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(api.ErrorResponse{Error: err.Error()}); encErr != nil {
		h.log.Error("Failed to encode error response", "err", encErr)
	}
}

func (h *Handler) recordOp(operation string, err error, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordOp(operation, err, time.Since(start).Seconds())
}
