package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/eugenenazirov/envprops/internal/properties"
	"github.com/eugenenazirov/envprops/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

// Handler wires the resolver and override storage into HTTP handlers.
type Handler struct {
	resolver *properties.Resolver
	storage  storage.Storage

	clock func() time.Time

	mu                 sync.RWMutex
	overridesUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(resolver *properties.Resolver, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		resolver: resolver,
		storage:  store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.overridesUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	prop, found, err := h.resolver.Lookup(r.PathValue("key"))
	if err != nil {
		writeKeyError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Property not found",
			"no local override or environment variable is set for "+r.PathValue("key"))
		return
	}

	writeJSON(w, http.StatusOK, propertyResponse{
		Key:    prop.Key,
		Value:  prop.Value,
		Source: prop.Source,
	})
}

func (h *Handler) handleListOverrides(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := overridesResponse{
		Overrides: h.storage.All(),
		UpdatedAt: h.currentOverridesUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutOverride(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}
	if req.Value == nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "value is required")
		return
	}

	if err := h.storage.Set(key, *req.Value); err != nil {
		writeKeyError(w, err)
		return
	}
	h.markOverridesUpdated()

	resp := overrideResponse{
		Key:       key,
		Value:     *req.Value,
		UpdatedAt: h.currentOverridesUpdatedAt(),
		Message:   "Override stored successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleDeleteOverride(w http.ResponseWriter, r *http.Request) {
	if err := h.storage.Unset(r.PathValue("key")); err != nil {
		writeKeyError(w, err)
		return
	}
	h.markOverridesUpdated()
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) currentOverridesUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.overridesUpdatedAt
}

func (h *Handler) markOverridesUpdated() {
	h.mu.Lock()
	h.overridesUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type overrideRequest struct {
	Value *string `json:"value"`
}

type propertyResponse struct {
	Key    string `json:"key"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

type overrideResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
	Message   string    `json:"message,omitempty"`
}

type overridesResponse struct {
	Overrides map[string]string `json:"overrides"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, errorResponse{
		Error:   message,
		Details: details,
	})
}

func writeKeyError(w http.ResponseWriter, err error) {
	if errors.Is(err, properties.ErrInvalidKey) {
		writeError(w, http.StatusBadRequest, "Invalid key", err.Error())
		return
	}
	writeInternalError(w, err)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
