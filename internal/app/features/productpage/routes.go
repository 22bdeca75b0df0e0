// internal/app/features/productpage/routes.go
package productpage

import (
	"net/http"

	"github.com/dalemusser/vitrine/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// StorefrontRoutes returns the anonymous product page API.
//
// When mounted at /api/products:
//   - GET  /{slug}        - product detail plus visible layout slots
//   - POST /{id}/resolve  - variant resolution for an attribute selection
func StorefrontRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/{slug}", h.Detail)
	r.Post("/{id}/resolve", h.Resolve)
	return r
}

// AdminRoutes returns the layout configuration API.
//
// When mounted at /admin/api/product-layout:
//   - GET / - full layout config, hidden slots included
//   - PUT / - replace the slot list
func AdminRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin", "editor"))

	r.Get("/", h.GetLayoutConfig)
	r.Put("/", h.SaveLayoutConfig)

	return r
}
