package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/eugenenazirov/cargo-planner/internal/cargo"
	"github.com/eugenenazirov/cargo-planner/internal/planner"
	"github.com/eugenenazirov/cargo-planner/internal/report"
	"github.com/eugenenazirov/cargo-planner/internal/routing"
	"github.com/eugenenazirov/cargo-planner/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const (
	maxRequestBytes = 1 << 20
	maxPlanItems    = 10_000
)

// Handler wires planner and storage dependencies into HTTP handlers.
type Handler struct {
	planner *planner.Service
	storage storage.Storage

	clock func() time.Time
	newID func() string

	mu                  sync.RWMutex
	containersUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithIDGenerator overrides how plan identifiers are generated.
func WithIDGenerator(newID func() string) HandlerOption {
	return func(h *Handler) {
		h.newID = newID
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(svc *planner.Service, store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		planner: svc,
		storage: store,
		clock: func() time.Time {
			return time.Now().UTC()
		},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.containersUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetContainers(w http.ResponseWriter, _ *http.Request) {
	specs, err := h.storage.GetContainers()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := containersResponse{
		Containers: specs,
		UpdatedAt:  h.currentContainersUpdatedAt(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePutContainers(w http.ResponseWriter, r *http.Request) {
	var req containersRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	specs, err := req.specs()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid containers", err.Error())
		return
	}

	if err := h.storage.SetContainers(specs); err != nil {
		if errors.Is(err, storage.ErrInvalidContainers) {
			writeError(w, http.StatusBadRequest, "Invalid containers", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markContainersUpdated()

	stored, err := h.storage.GetContainers()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	resp := containersResponse{
		Containers: stored,
		UpdatedAt:  h.currentContainersUpdatedAt(),
		Message:    "Containers updated successfully",
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handlePlan(w http.ResponseWriter, r *http.Request) {
	var req planRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Items) > maxPlanItems {
		writeError(w, http.StatusBadRequest, "Invalid request", fmt.Sprintf("at most %d items are accepted per plan", maxPlanItems))
		return
	}

	items, err := req.items()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid items", err.Error())
		return
	}

	var specs []cargo.ContainerSpec
	if len(req.Containers) > 0 {
		specs, err = containersRequest{Containers: req.Containers}.specs()
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid containers", err.Error())
			return
		}
	} else {
		specs, err = h.storage.GetContainers()
		if err != nil {
			writeInternalError(w, err)
			return
		}
	}

	start := time.Now()
	result, planErr := h.planner.Plan(items, specs)
	elapsed := time.Since(start)

	if planErr != nil {
		switch {
		case errors.Is(planErr, routing.ErrMandatoryCapacityExceeded):
			suggestion := "Increase the capacity of the protect or cold container, or ship the item separately"
			writeError(w, http.StatusUnprocessableEntity, "Mandatory placement impossible", planErr.Error(), suggestion)
		case errors.Is(planErr, cargo.ErrStructuralInput):
			writeError(w, http.StatusBadRequest, "Invalid input", planErr.Error())
		default:
			writeInternalError(w, planErr)
		}
		return
	}

	resp := planResponse{
		PlanID:            h.newID(),
		Containers:        result.Report.Containers,
		Items:             result.Report.Items,
		Totals:            result.Report.Totals,
		CalculationTimeMs: elapsed.Milliseconds(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) currentContainersUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.containersUpdatedAt
}

func (h *Handler) markContainersUpdated() {
	h.mu.Lock()
	h.containersUpdatedAt = h.clock()
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

type containerPayload struct {
	Role     string `json:"role"`
	Capacity int    `json:"capacity"`
	Cost     int    `json:"cost"`
}

type itemPayload struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
	Size int    `json:"size"`
}

type containersRequest struct {
	Containers []containerPayload `json:"containers"`
}

func (r containersRequest) specs() ([]cargo.ContainerSpec, error) {
	specs := make([]cargo.ContainerSpec, 0, len(r.Containers))
	for _, c := range r.Containers {
		role, err := cargo.ParseRole(c.Role)
		if err != nil {
			return nil, err
		}
		specs = append(specs, cargo.ContainerSpec{Role: role, Capacity: c.Capacity, Cost: c.Cost})
	}
	return specs, nil
}

type planRequest struct {
	Items      []itemPayload      `json:"items"`
	Containers []containerPayload `json:"containers,omitempty"`
}

func (r planRequest) items() ([]cargo.Item, error) {
	items := make([]cargo.Item, 0, len(r.Items))
	for i, raw := range r.Items {
		kind, err := cargo.ParseKind(raw.Kind)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i+1, err)
		}
		item, err := cargo.NewItem(i, raw.Name, kind, raw.Size)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

type planResponse struct {
	PlanID            string                    `json:"planId"`
	Containers        []report.ContainerSummary `json:"containers"`
	Items             []report.ItemRecord       `json:"items"`
	Totals            report.Totals             `json:"totals"`
	CalculationTimeMs int64                     `json:"calculationTimeMs"`
}

type containersResponse struct {
	Containers []cargo.ContainerSpec `json:"containers"`
	UpdatedAt  time.Time             `json:"updatedAt"`
	Message    string                `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	return json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
