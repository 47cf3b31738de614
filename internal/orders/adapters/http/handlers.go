package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mfcarvalho/orders-api/internal/auth"
	"github.com/mfcarvalho/orders-api/internal/orders/app"
	"github.com/mfcarvalho/orders-api/internal/orders/app/queries"
	"github.com/mfcarvalho/orders-api/internal/orders/domain"
	"github.com/mfcarvalho/orders-api/internal/orders/ports"
)

// Handler exposes HTTP endpoints for order operations.
type Handler struct {
	service  *app.Service
	verifier *auth.Verifier
	logger   *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service, verifier *auth.Verifier, logger *slog.Logger) *Handler {
	return &Handler{service: service, verifier: verifier, logger: logger}
}

// Register binds the order handlers to the provided ServeMux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/orders", h.handleCollection)
	mux.HandleFunc("/orders/", h.handleOrderPath)
}

func (h *Handler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createOrder(w, r)
	case http.MethodGet:
		h.listOrders(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) handleOrderPath(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/orders/"), "/")
	if id == "" {
		// Trailing-slash form of the collection path.
		h.handleCollection(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getOrder(w, r, id)
	case http.MethodPatch:
		h.updateOrder(w, r, id)
	case http.MethodDelete:
		h.deleteOrder(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	ctx, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var payload app.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.CreateOrder(ctx, payload)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request, id string) {
	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	skip := int64(0)
	if param := r.URL.Query().Get("skip"); param != "" {
		parsed, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "skip must be an integer")
			return
		}
		skip = parsed
	}

	limit := int64(queries.DefaultLimit)
	if param := r.URL.Query().Get("limit"); param != "" {
		parsed, err := strconv.ParseInt(param, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
		limit = parsed
	}

	orders, err := h.service.ListOrders(r.Context(), skip, limit)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request, id string) {
	ctx, ok := h.authenticate(w, r)
	if !ok {
		return
	}

	var patch domain.OrderPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateOrder(ctx, id, patch)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// deleteOrder intentionally requires no token, matching the reference
// surface where only create and update are protected.
func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request, id string) {
	removed, err := h.service.DeleteOrder(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeServiceError maps classified gateway and validation failures to
// status codes. Anything unclassified is logged and surfaced as a 500
// without leaking the underlying error.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, ports.ErrDuplicateKey):
		writeError(w, http.StatusBadRequest, "resource already exists")
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	default:
		h.logger.ErrorContext(r.Context(), "unexpected service error",
			"error", err,
			"method", r.Method,
			"path", r.URL.Path,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
