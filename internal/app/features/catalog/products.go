// Package catalog provides the back-office JSON CRUD for products,
// categories, and brands.
package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dalemusser/vitrine/internal/app/store/brandstore"
	"github.com/dalemusser/vitrine/internal/app/store/categorystore"
	"github.com/dalemusser/vitrine/internal/app/store/productstore"
	"github.com/dalemusser/vitrine/internal/app/store/storeutil"
	"github.com/dalemusser/vitrine/internal/app/system/jsonutil"
	"github.com/dalemusser/vitrine/internal/app/system/normalize"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides catalog handlers.
type Handler struct {
	products   *productstore.Store
	categories *categorystore.Store
	brands     *brandstore.Store
	logger     *zap.Logger
}

// NewHandler creates a new catalog Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		products:   productstore.New(db),
		categories: categorystore.New(db),
		brands:     brandstore.New(db),
		logger:     logger,
	}
}

type productRequest struct {
	Name        string   `json:"name"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Stock       int      `json:"stock"`
	Status      string   `json:"status"`
	Images      []string `json:"images"`
	CategoryID  string   `json:"category_id"`
	BrandID     string   `json:"brand_id"`

	HasVariants          bool                         `json:"has_variants"`
	AttributeDefinitions []models.AttributeDefinition `json:"attribute_definitions"`
	Variants             []models.Variant             `json:"variants"`
}

// ListProducts handles GET /products with ?status=, ?category=,
// ?page=, ?limit= filters.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := productstore.ListFilter{
		Status: normalize.QueryParam(r.URL.Query().Get("status")),
	}
	if cat := r.URL.Query().Get("category"); cat != "" {
		id, err := primitive.ObjectIDFromHex(cat)
		if err != nil {
			jsonutil.BadRequest(w, "invalid category id")
			return
		}
		filter.CategoryID = id
	}

	limit, page := pagination(r)
	products, err := h.products.List(r.Context(), filter, limit, page)
	if err != nil {
		h.logger.Error("failed to list products", zap.Error(err))
		jsonutil.InternalError(w, "failed to list products")
		return
	}
	jsonutil.OK(w, map[string]any{
		"products": products,
		"page":     page,
		"limit":    limit,
	})
}

// GetProduct handles GET /products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	product, err := h.products.GetByID(r.Context(), id)
	if errors.Is(err, productstore.ErrNotFound) {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get product", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to get product")
		return
	}
	jsonutil.OK(w, product)
}

// CreateProduct handles POST /products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	input := productstore.CreateInput{
		Name:                 req.Name,
		Slug:                 productSlug(req.Slug, req.Name),
		Description:          req.Description,
		Price:                req.Price,
		Stock:                req.Stock,
		Status:               req.Status,
		Images:               req.Images,
		HasVariants:          req.HasVariants,
		AttributeDefinitions: req.AttributeDefinitions,
		Variants:             req.Variants,
	}
	var ok bool
	if input.CategoryID, ok = optionalID(w, req.CategoryID, "category_id"); !ok {
		return
	}
	if input.BrandID, ok = optionalID(w, req.BrandID, "brand_id"); !ok {
		return
	}

	product, err := h.products.Create(r.Context(), input)
	switch {
	case errors.Is(err, productstore.ErrEmptyName):
		jsonutil.BadRequest(w, "product name must not be empty")
	case errors.Is(err, productstore.ErrDuplicateSlug):
		jsonutil.Error(w, http.StatusConflict, "slug already in use")
	case err != nil:
		h.logger.Error("failed to create product", zap.Error(err))
		jsonutil.InternalError(w, "failed to create product")
	default:
		h.logger.Info("product created",
			zap.String("id", product.ID.Hex()),
			zap.String("slug", product.Slug))
		jsonutil.Created(w, product)
	}
}

type productPatch struct {
	Name        *string   `json:"name"`
	Slug        *string   `json:"slug"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Stock       *int      `json:"stock"`
	Status      *string   `json:"status"`
	Images      *[]string `json:"images"`

	HasVariants          *bool                         `json:"has_variants"`
	AttributeDefinitions *[]models.AttributeDefinition `json:"attribute_definitions"`
	Variants             *[]models.Variant             `json:"variants"`
}

// UpdateProduct handles PATCH /products/{id}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req productPatch
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	product, err := h.products.Update(r.Context(), id, productstore.UpdateInput{
		Name:                 req.Name,
		Slug:                 req.Slug,
		Description:          req.Description,
		Price:                req.Price,
		Stock:                req.Stock,
		Status:               req.Status,
		Images:               req.Images,
		HasVariants:          req.HasVariants,
		AttributeDefinitions: req.AttributeDefinitions,
		Variants:             req.Variants,
	})
	switch {
	case errors.Is(err, productstore.ErrNotFound):
		jsonutil.NotFound(w, "product not found")
	case errors.Is(err, productstore.ErrEmptyName):
		jsonutil.BadRequest(w, "product name must not be empty")
	case errors.Is(err, productstore.ErrDuplicateSlug):
		jsonutil.Error(w, http.StatusConflict, "slug already in use")
	case err != nil:
		h.logger.Error("failed to update product", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update product")
	default:
		jsonutil.OK(w, product)
	}
}

// DeleteProduct handles DELETE /products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := h.products.Delete(r.Context(), id)
	if errors.Is(err, productstore.ErrNotFound) {
		jsonutil.NotFound(w, "product not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete product", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete product")
		return
	}
	h.logger.Info("product deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}

// productSlug falls back to a slug derived from the name when the
// admin leaves the slug blank.
func productSlug(slug, name string) string {
	if s := normalize.Slug(slug); s != "" {
		return s
	}
	return normalize.Slug(name)
}

func pathID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}

func optionalID(w http.ResponseWriter, hex, field string) (primitive.ObjectID, bool) {
	if hex == "" {
		return primitive.NilObjectID, true
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		jsonutil.BadRequest(w, "invalid "+field)
		return primitive.NilObjectID, false
	}
	return id, true
}

func pagination(r *http.Request) (limit, page int64) {
	limit, _ = strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	page, _ = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if limit <= 0 {
		limit = storeutil.DefaultPageSize
	}
	if page <= 0 {
		page = 1
	}
	return limit, page
}
