// Package orders provides the back-office order management API:
// paginated listing, detail, and fulfillment status transitions.
package orders

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/vitrine/internal/app/store/orderstore"
	"github.com/dalemusser/vitrine/internal/app/store/storeutil"
	"github.com/dalemusser/vitrine/internal/app/system/auth"
	"github.com/dalemusser/vitrine/internal/app/system/jsonutil"
	"github.com/dalemusser/vitrine/internal/app/system/normalize"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides order handlers.
type Handler struct {
	orders *orderstore.Store
	logger *zap.Logger
}

// NewHandler creates a new orders Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		orders: orderstore.New(db),
		logger: logger,
	}
}

// AdminRoutes returns the order management API.
//
// When mounted at /admin/api/orders:
//   - GET  /              - paginated list, ?status= filter
//   - GET  /{id}          - order detail
//   - POST /{id}/status   - status transition
func AdminRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin"))

	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/{id}/status", h.SetStatus)

	return r
}

// List handles GET /admin/api/orders.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	status := models.OrderStatus(normalize.Status(r.URL.Query().Get("status")))
	if status != "" && !models.IsValidOrderStatus(status) {
		jsonutil.BadRequest(w, "unknown order status")
		return
	}

	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if limit <= 0 {
		limit = storeutil.DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}

	orders, err := h.orders.List(r.Context(), status, limit, page)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		jsonutil.InternalError(w, "failed to list orders")
		return
	}
	jsonutil.OK(w, map[string]any{
		"orders": orders,
		"page":   page,
		"limit":  limit,
	})
}

// Get handles GET /admin/api/orders/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid order id")
		return
	}

	order, err := h.orders.GetByID(r.Context(), id)
	if errors.Is(err, orderstore.ErrNotFound) {
		jsonutil.NotFound(w, "order not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get order", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to get order")
		return
	}
	jsonutil.OK(w, order)
}

type statusRequest struct {
	Status models.OrderStatus `json:"status"`
}

// SetStatus handles POST /admin/api/orders/{id}/status.
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid order id")
		return
	}

	var req statusRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	order, err := h.orders.SetStatus(r.Context(), id, req.Status)
	switch {
	case errors.Is(err, orderstore.ErrInvalidStatus):
		jsonutil.BadRequest(w, "unknown order status")
	case errors.Is(err, orderstore.ErrNotFound):
		jsonutil.NotFound(w, "order not found")
	case err != nil:
		h.logger.Error("failed to update order status", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update order")
	default:
		h.logger.Info("order status updated",
			zap.String("id", id.Hex()),
			zap.String("status", string(req.Status)))
		jsonutil.OK(w, order)
	}
}
