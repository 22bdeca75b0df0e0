// Package productpage serves the storefront product detail surface:
// the product document together with its page layout slots, and the
// variant resolution endpoint the attribute pickers call.
package productpage

import (
	"errors"
	"net/http"

	"github.com/dalemusser/vitrine/internal/app/store/layoutstore"
	"github.com/dalemusser/vitrine/internal/app/store/productstore"
	"github.com/dalemusser/vitrine/internal/app/system/jsonutil"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"github.com/dalemusser/vitrine/internal/domain/variants"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides product page handlers.
type Handler struct {
	products *productstore.Store
	layout   *layoutstore.Store
	logger   *zap.Logger
}

// NewHandler creates a new productpage Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		products: productstore.New(db),
		layout:   layoutstore.New(db),
		logger:   logger,
	}
}

// Detail handles GET /api/products/{slug}. The response carries the
// product and the visible layout slots so the storefront renders the
// page with one round trip. Draft and archived products 404 on this
// surface; they exist only for the back office.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	product, err := h.products.GetBySlug(r.Context(), slug)
	if errors.Is(err, productstore.ErrNotFound) {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", zap.String("slug", slug), zap.Error(err))
		jsonutil.InternalError(w, "failed to load product")
		return
	}
	if product.Status != models.ProductStatusActive {
		jsonutil.NotFound(w, "product not found")
		return
	}

	slots, err := h.layout.GetLayout(r.Context())
	if err != nil {
		h.logger.Error("failed to get page layout", zap.Error(err))
		jsonutil.InternalError(w, "failed to load product")
		return
	}

	jsonutil.OK(w, map[string]any{
		"product": product,
		"layout":  slots,
	})
}

type resolveRequest struct {
	Selection map[string]string `json:"selection"`
}

type resolveResponse struct {
	State     variants.State              `json:"state"`
	Price     float64                     `json:"price"`
	Stock     int                         `json:"stock"`
	VariantID string                      `json:"variant_id,omitempty"`
	SKU       string                      `json:"sku,omitempty"`
	Options   []variants.AttributeOptions `json:"options"`
}

// Resolve handles POST /api/products/{id}/resolve. It runs the
// variant resolver over the stored product with the caller's
// attribute selection and returns the resulting state, price, stock,
// and per-attribute availability.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid product id")
		return
	}

	var req resolveRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if errors.Is(err, productstore.ErrNotFound) {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to load product")
		return
	}

	res, err := variants.Resolve(
		product.AttributeDefinitions,
		product.Variants,
		product.Price,
		variants.Selection(req.Selection),
	)
	if errors.Is(err, variants.ErrAmbiguousVariant) {
		// Duplicate active combinations are a catalog data defect.
		h.logger.Error("ambiguous variant combination",
			zap.String("product_id", id.Hex()))
		jsonutil.Error(w, http.StatusConflict, "product variants are misconfigured")
		return
	}
	if err != nil {
		h.logger.Error("variant resolution failed", zap.String("product_id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to resolve variant")
		return
	}

	out := resolveResponse{
		State:   res.State,
		Price:   res.Price,
		Stock:   res.Stock,
		Options: res.Options,
	}
	if res.Variant != nil {
		out.VariantID = res.Variant.ID.Hex()
		out.SKU = res.Variant.SKU
	}
	jsonutil.OK(w, out)
}

// GetLayoutConfig handles GET /admin/api/product-layout. Unlike the
// storefront read it returns every slot, hidden included, so the
// back office can toggle them.
func (h *Handler) GetLayoutConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.layout.GetOrCreate(r.Context())
	if err != nil {
		h.logger.Error("failed to load layout config", zap.Error(err))
		jsonutil.InternalError(w, "failed to load layout")
		return
	}
	jsonutil.OK(w, cfg)
}

type saveLayoutRequest struct {
	Sections []models.LayoutSlot `json:"sections"`
}

// SaveLayoutConfig handles PUT /admin/api/product-layout.
func (h *Handler) SaveLayoutConfig(w http.ResponseWriter, r *http.Request) {
	var req saveLayoutRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	err := h.layout.Save(r.Context(), req.Sections)
	if errors.Is(err, layoutstore.ErrDuplicateSlot) {
		jsonutil.BadRequest(w, "layout contains a duplicate section id")
		return
	}
	if err != nil {
		h.logger.Error("failed to save layout config", zap.Error(err))
		jsonutil.InternalError(w, "failed to save layout")
		return
	}

	cfg, err := h.layout.GetOrCreate(r.Context())
	if err != nil {
		h.logger.Error("failed to reload layout config", zap.Error(err))
		jsonutil.InternalError(w, "failed to save layout")
		return
	}
	jsonutil.OK(w, cfg)
}
