// internal/app/features/catalog/routes.go
package catalog

import (
	"net/http"

	"github.com/dalemusser/vitrine/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// AdminRoutes returns the catalog administration API.
//
// When mounted at /admin/api/catalog:
//   - GET/POST           /products
//   - GET/PATCH/DELETE   /products/{id}
//   - GET/POST           /categories
//   - PATCH/DELETE       /categories/{id}
//   - GET/POST           /brands
//   - PATCH/DELETE       /brands/{id}
func AdminRoutes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireRole("admin", "editor"))

	r.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.ListProducts)
		pr.Post("/", h.CreateProduct)
		pr.Get("/{id}", h.GetProduct)
		pr.Patch("/{id}", h.UpdateProduct)
		pr.Delete("/{id}", h.DeleteProduct)
	})

	r.Route("/categories", func(cr chi.Router) {
		cr.Get("/", h.ListCategories)
		cr.Post("/", h.CreateCategory)
		cr.Patch("/{id}", h.UpdateCategory)
		cr.Delete("/{id}", h.DeleteCategory)
	})

	r.Route("/brands", func(br chi.Router) {
		br.Get("/", h.ListBrands)
		br.Post("/", h.CreateBrand)
		br.Patch("/{id}", h.UpdateBrand)
		br.Delete("/{id}", h.DeleteBrand)
	})

	return r
}
