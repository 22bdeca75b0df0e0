// internal/app/features/homesections/routes.go
package homesections

import (
	"net/http"

	"github.com/dalemusser/vitrine/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the admin section API.
//
// When mounted at /admin/api/sections:
//   - GET    /                 - list all sections, hidden included
//   - POST   /                 - create a section
//   - POST   /reorder          - bulk reorder
//   - GET    /{id}             - get one section
//   - PATCH  /{id}             - partial update
//   - POST   /{id}/visibility  - show or hide a section
//   - DELETE /{id}             - delete a section
func AdminRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin", "editor"))

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Post("/reorder", h.Reorder)
	r.Get("/{id}", h.Get)
	r.Patch("/{id}", h.Update)
	r.Post("/{id}/visibility", h.SetVisibility)
	r.Delete("/{id}", h.Delete)

	return r
}

// StorefrontRoutes returns the anonymous storefront read surface.
//
// When mounted at /api/home:
//   - GET / - visible sections rendered and in display order
func StorefrontRoutes(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	return r
}
