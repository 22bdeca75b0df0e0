// internal/app/features/catalog/categories.go
package catalog

import (
	"errors"
	"net/http"

	"github.com/dalemusser/vitrine/internal/app/store/brandstore"
	"github.com/dalemusser/vitrine/internal/app/store/categorystore"
	"github.com/dalemusser/vitrine/internal/app/system/jsonutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	ParentID    string `json:"parent_id"`
	IsVisible   *bool  `json:"is_visible"`
}

// ListCategories handles GET /categories.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		jsonutil.InternalError(w, "failed to list categories")
		return
	}
	jsonutil.OK(w, map[string]any{"categories": categories})
}

// CreateCategory handles POST /categories.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	input := categorystore.CreateInput{
		Name:        req.Name,
		Slug:        productSlug(req.Slug, req.Name),
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsVisible:   true,
	}
	if req.IsVisible != nil {
		input.IsVisible = *req.IsVisible
	}
	if req.ParentID != "" {
		id, err := primitive.ObjectIDFromHex(req.ParentID)
		if err != nil {
			jsonutil.BadRequest(w, "invalid parent_id")
			return
		}
		input.ParentID = &id
	}

	category, err := h.categories.Create(r.Context(), input)
	if errors.Is(err, categorystore.ErrEmptyName) {
		jsonutil.BadRequest(w, "category name must not be empty")
		return
	}
	if err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		jsonutil.InternalError(w, "failed to create category")
		return
	}
	h.logger.Info("category created", zap.String("id", category.ID.Hex()))
	jsonutil.Created(w, category)
}

type categoryPatch struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image_url"`
	IsVisible   *bool   `json:"is_visible"`
}

// UpdateCategory handles PATCH /categories/{id}.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req categoryPatch
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	category, err := h.categories.Update(r.Context(), id, categorystore.UpdateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		IsVisible:   req.IsVisible,
	})
	switch {
	case errors.Is(err, categorystore.ErrNotFound):
		jsonutil.NotFound(w, "category not found")
	case errors.Is(err, categorystore.ErrEmptyName):
		jsonutil.BadRequest(w, "category name must not be empty")
	case err != nil:
		h.logger.Error("failed to update category", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update category")
	default:
		jsonutil.OK(w, category)
	}
}

// DeleteCategory handles DELETE /categories/{id}.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := h.categories.Delete(r.Context(), id)
	if errors.Is(err, categorystore.ErrNotFound) {
		jsonutil.NotFound(w, "category not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete category", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete category")
		return
	}
	jsonutil.NoContent(w)
}

type brandRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	IsVisible   *bool  `json:"is_visible"`
}

// ListBrands handles GET /brands.
func (h *Handler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brands.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list brands", zap.Error(err))
		jsonutil.InternalError(w, "failed to list brands")
		return
	}
	jsonutil.OK(w, map[string]any{"brands": brands})
}

// CreateBrand handles POST /brands.
func (h *Handler) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var req brandRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	input := brandstore.CreateInput{
		Name:        req.Name,
		Slug:        productSlug(req.Slug, req.Name),
		Description: req.Description,
		LogoURL:     req.LogoURL,
		IsVisible:   true,
	}
	if req.IsVisible != nil {
		input.IsVisible = *req.IsVisible
	}

	brand, err := h.brands.Create(r.Context(), input)
	if errors.Is(err, brandstore.ErrEmptyName) {
		jsonutil.BadRequest(w, "brand name must not be empty")
		return
	}
	if err != nil {
		h.logger.Error("failed to create brand", zap.Error(err))
		jsonutil.InternalError(w, "failed to create brand")
		return
	}
	jsonutil.Created(w, brand)
}

type brandPatch struct {
	Name        *string `json:"name"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	LogoURL     *string `json:"logo_url"`
	IsVisible   *bool   `json:"is_visible"`
}

// UpdateBrand handles PATCH /brands/{id}.
func (h *Handler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req brandPatch
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	brand, err := h.brands.Update(r.Context(), id, brandstore.UpdateInput{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		IsVisible:   req.IsVisible,
	})
	switch {
	case errors.Is(err, brandstore.ErrNotFound):
		jsonutil.NotFound(w, "brand not found")
	case errors.Is(err, brandstore.ErrEmptyName):
		jsonutil.BadRequest(w, "brand name must not be empty")
	case err != nil:
		h.logger.Error("failed to update brand", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update brand")
	default:
		jsonutil.OK(w, brand)
	}
}

// DeleteBrand handles DELETE /brands/{id}.
func (h *Handler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := h.brands.Delete(r.Context(), id)
	if errors.Is(err, brandstore.ErrNotFound) {
		jsonutil.NotFound(w, "brand not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete brand", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete brand")
		return
	}
	jsonutil.NoContent(w)
}
