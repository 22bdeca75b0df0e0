// Package homesections provides the homepage section endpoints: the
// admin CRUD/visibility/reorder surface and the anonymous storefront
// read that returns visible sections as render models.
package homesections

import (
	"errors"
	"net/http"

	"github.com/dalemusser/vitrine/internal/app/store/categorystore"
	"github.com/dalemusser/vitrine/internal/app/store/productstore"
	"github.com/dalemusser/vitrine/internal/app/store/sectionstore"
	"github.com/dalemusser/vitrine/internal/app/system/htmlsanitize"
	"github.com/dalemusser/vitrine/internal/app/system/jsonutil"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"github.com/dalemusser/vitrine/internal/domain/render"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler provides homepage section handlers.
type Handler struct {
	sections   *sectionstore.Store
	products   *productstore.Store
	categories *categorystore.Store
	logger     *zap.Logger
}

// NewHandler creates a new homesections Handler.
func NewHandler(db *mongo.Database, logger *zap.Logger) *Handler {
	return &Handler{
		sections:   sectionstore.New(db),
		products:   productstore.New(db),
		categories: categorystore.New(db),
		logger:     logger,
	}
}

// Home handles GET /api/home. It returns the visible sections in
// display order, with product and category references resolved and
// each section passed through the renderer. Custom HTML is sanitized
// on the way out so stale stored markup can never reach a browser raw.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sections.ListVisible(r.Context())
	if err != nil {
		h.logger.Error("failed to list visible sections", zap.Error(err))
		jsonutil.InternalError(w, "failed to load homepage")
		return
	}

	if err := h.populate(r, sections); err != nil {
		// Population failures degrade to bare references; the
		// renderer substitutes placeholders for those.
		h.logger.Warn("failed to populate section items", zap.Error(err))
	}

	out := make([]render.Model, 0, len(sections))
	for _, sec := range sections {
		m := render.Render(sec)
		if m.HTML != "" {
			m.HTML = htmlsanitize.Sanitize(m.HTML)
		}
		out = append(out, m)
	}

	jsonutil.OK(w, map[string]any{"sections": out})
}

// populate resolves every product and category reference across the
// given sections with two batched lookups.
func (h *Handler) populate(r *http.Request, sections []models.HomepageSection) error {
	var productIDs, categoryIDs []primitive.ObjectID
	for _, sec := range sections {
		for _, it := range sec.Content.Items {
			if it.ItemID.IsZero() {
				continue
			}
			switch it.ItemType {
			case models.ItemTypeProduct:
				productIDs = append(productIDs, it.ItemID)
			case models.ItemTypeCategory:
				categoryIDs = append(categoryIDs, it.ItemID)
			}
		}
	}
	if len(productIDs) == 0 && len(categoryIDs) == 0 {
		return nil
	}

	products, err := h.products.GetByIDs(r.Context(), productIDs)
	if err != nil {
		return err
	}
	categories, err := h.categories.GetByIDs(r.Context(), categoryIDs)
	if err != nil {
		return err
	}

	for si := range sections {
		items := sections[si].Content.Items
		for ii := range items {
			switch items[ii].ItemType {
			case models.ItemTypeProduct:
				items[ii].Product = products[items[ii].ItemID]
			case models.ItemTypeCategory:
				items[ii].Category = categories[items[ii].ItemID]
			}
		}
	}
	return nil
}

// List handles GET /admin/api/sections. All sections, hidden included.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sections, err := h.sections.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list sections", zap.Error(err))
		jsonutil.InternalError(w, "failed to list sections")
		return
	}
	jsonutil.OK(w, map[string]any{"sections": sections})
}

// Get handles GET /admin/api/sections/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sectionID(w, r)
	if !ok {
		return
	}
	sec, err := h.sections.GetByID(r.Context(), id)
	if errors.Is(err, sectionstore.ErrNotFound) {
		jsonutil.NotFound(w, "section not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to get section", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to get section")
		return
	}
	jsonutil.OK(w, sec)
}

type createRequest struct {
	Name      string                `json:"name"`
	Type      models.SectionType    `json:"type"`
	Content   models.SectionContent `json:"content"`
	IsVisible *bool                 `json:"is_visible"`
	Order     *int                  `json:"order"`
}

// Create handles POST /admin/api/sections.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	sanitizeContent(&req.Content)

	sec, err := h.sections.Create(r.Context(), sectionstore.CreateInput{
		Name:      req.Name,
		Type:      req.Type,
		Content:   req.Content,
		IsVisible: req.IsVisible,
		Order:     req.Order,
	})
	switch {
	case errors.Is(err, sectionstore.ErrInvalidSectionType):
		jsonutil.BadRequest(w, "unknown section type")
	case errors.Is(err, sectionstore.ErrEmptyName):
		jsonutil.BadRequest(w, "section name must not be empty")
	case err != nil:
		h.logger.Error("failed to create section", zap.Error(err))
		jsonutil.InternalError(w, "failed to create section")
	default:
		h.logger.Info("section created",
			zap.String("id", sec.ID.Hex()),
			zap.String("type", string(sec.Type)))
		jsonutil.Created(w, sec)
	}
}

type updateRequest struct {
	Name      *string                `json:"name"`
	Content   *models.SectionContent `json:"content"`
	IsVisible *bool                  `json:"is_visible"`
	Order     *int                   `json:"order"`
}

// Update handles PATCH /admin/api/sections/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sectionID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	if req.Content != nil {
		sanitizeContent(req.Content)
	}

	sec, err := h.sections.Update(r.Context(), id, sectionstore.UpdateInput{
		Name:      req.Name,
		Content:   req.Content,
		IsVisible: req.IsVisible,
		Order:     req.Order,
	})
	switch {
	case errors.Is(err, sectionstore.ErrNotFound):
		jsonutil.NotFound(w, "section not found")
	case errors.Is(err, sectionstore.ErrEmptyName):
		jsonutil.BadRequest(w, "section name must not be empty")
	case err != nil:
		h.logger.Error("failed to update section", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update section")
	default:
		jsonutil.OK(w, sec)
	}
}

type visibilityRequest struct {
	IsVisible bool `json:"is_visible"`
}

// SetVisibility handles POST /admin/api/sections/{id}/visibility.
func (h *Handler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sectionID(w, r)
	if !ok {
		return
	}

	var req visibilityRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}

	sec, err := h.sections.SetVisibility(r.Context(), id, req.IsVisible)
	if errors.Is(err, sectionstore.ErrNotFound) {
		jsonutil.NotFound(w, "section not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to set section visibility", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to update section")
		return
	}
	jsonutil.OK(w, sec)
}

// Delete handles DELETE /admin/api/sections/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sectionID(w, r)
	if !ok {
		return
	}

	err := h.sections.Delete(r.Context(), id)
	if errors.Is(err, sectionstore.ErrNotFound) {
		jsonutil.NotFound(w, "section not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to delete section", zap.String("id", id.Hex()), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete section")
		return
	}
	h.logger.Info("section deleted", zap.String("id", id.Hex()))
	jsonutil.NoContent(w)
}

type reorderRequest struct {
	Sections []sectionstore.ReorderEntry `json:"sections"`
}

// Reorder handles POST /admin/api/sections/reorder. Bad entries are
// skipped; the response reports how many orders were applied so the
// admin UI can detect partial application.
func (h *Handler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := jsonutil.Decode(r, &req); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if len(req.Sections) == 0 {
		jsonutil.BadRequest(w, "sections list must not be empty")
		return
	}

	applied, err := h.sections.BulkReorder(r.Context(), req.Sections)
	if err != nil {
		h.logger.Error("failed to reorder sections", zap.Error(err))
		jsonutil.InternalError(w, "failed to reorder sections")
		return
	}
	if applied < len(req.Sections) {
		h.logger.Warn("reorder skipped entries",
			zap.Int("requested", len(req.Sections)),
			zap.Int("applied", applied))
	}
	jsonutil.OK(w, map[string]int{
		"requested": len(req.Sections),
		"applied":   applied,
	})
}

// sanitizeContent cleans merchant-authored markup at write time.
func sanitizeContent(c *models.SectionContent) {
	if c.HTMLContent != "" {
		c.HTMLContent = htmlsanitize.Sanitize(c.HTMLContent)
	}
}

func (h *Handler) sectionID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid section id")
		return primitive.NilObjectID, false
	}
	return id, true
}
