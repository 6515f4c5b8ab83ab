package testsnapshot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
)

// Path is where the handler serves the document, mirroring the real API.
const Path = "/api/bootstrap-static/"

// Handler serves a fixed payload. It can be switched to fail with a given
// status to exercise fetch errors.
type Handler struct {
	body   []byte
	status atomic.Int32
	hits   atomic.Int64
}

// NewHandler encodes p once and returns a handler serving it.
func NewHandler(p Payload) (*Handler, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	h := &Handler{body: body}
	h.status.Store(http.StatusOK)
	return h, nil
}

// FailWith makes subsequent requests answer with status; http.StatusOK restores the payload.
func (h *Handler) FailWith(status int) { h.status.Store(int32(status)) } //nolint:gosec // HTTP status fits int32

// Hits returns the number of requests served.
func (h *Handler) Hits() int64 { return h.hits.Load() }

// Body returns the encoded payload.
func (h *Handler) Body() []byte { return h.body }

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.hits.Add(1)
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if r.URL.Path != Path {
		http.NotFound(w, r)
		return
	}
	status := int(h.status.Load())
	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(h.body)
}
