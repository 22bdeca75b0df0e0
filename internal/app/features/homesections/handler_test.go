package homesections

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dalemusser/vitrine/internal/app/store/productstore"
	"github.com/dalemusser/vitrine/internal/app/store/sectionstore"
	"github.com/dalemusser/vitrine/internal/app/system/auth"
	"github.com/dalemusser/vitrine/internal/domain/models"
	"github.com/dalemusser/vitrine/internal/domain/render"
	"github.com/dalemusser/vitrine/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*Handler, http.Handler, http.Handler) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()
	h := NewHandler(db, logger)

	sm, err := auth.NewSessionManager(
		"0123456789abcdef0123456789abcdef", "vitrine-test", "",
		time.Hour, false, logger)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return h, AdminRoutes(h, sm), StorefrontRoutes(h)
}

func adminJSON(t *testing.T, admin http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	req = testutil.WithUser(req, testutil.AdminUser())

	rec := httptest.NewRecorder()
	admin.ServeHTTP(rec, req)
	return rec
}

func TestCreateAndList(t *testing.T) {
	_, admin, _ := newTestRouter(t)

	rec := adminJSON(t, admin, http.MethodPost, "/", map[string]any{
		"name": "Spring Hero",
		"type": "hero",
		"content": map[string]any{
			"title":    "Spring Sale",
			"subtitle": "Up to 50% off",
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created models.HomepageSection
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("created section id should not be empty")
	}
	if !created.IsVisible {
		t.Error("created section should default to visible")
	}

	rec = adminJSON(t, admin, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want %d", rec.Code, http.StatusOK)
	}
	var list struct {
		Sections []models.HomepageSection `json:"sections"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	if len(list.Sections) != 1 {
		t.Fatalf("list returned %d sections, want 1", len(list.Sections))
	}
}

func TestCreateRejectsUnknownType(t *testing.T) {
	_, admin, _ := newTestRouter(t)

	rec := adminJSON(t, admin, http.MethodPost, "/", map[string]any{
		"name": "Bad",
		"type": "notARealType",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("create status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateSanitizesCustomHTML(t *testing.T) {
	_, admin, _ := newTestRouter(t)

	rec := adminJSON(t, admin, http.MethodPost, "/", map[string]any{
		"name": "Promo HTML",
		"type": "customHtml",
		"content": map[string]any{
			"html_content": `<p>hello</p><script>alert("x")</script>`,
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}

	var created models.HomepageSection
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	if got := created.Content.HTMLContent; got != "<p>hello</p>" {
		t.Errorf("stored html = %q, want script stripped", got)
	}
}

func TestRequiresAuthentication(t *testing.T) {
	_, admin, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	admin.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestVisibilityAndStorefrontRead(t *testing.T) {
	h, admin, storefront := newTestRouter(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	visible, err := h.sections.Create(ctx, sectionstore.CreateInput{
		Name: "Visible Banner", Type: models.SectionTypeBanner,
		Content: models.SectionContent{Title: "On Sale"},
	})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}
	hidden, err := h.sections.Create(ctx, sectionstore.CreateInput{
		Name: "Hidden Banner", Type: models.SectionTypeBanner,
	})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}

	rec := adminJSON(t, admin, http.MethodPost,
		fmt.Sprintf("/%s/visibility", hidden.ID.Hex()),
		map[string]any{"is_visible": false})
	if rec.Code != http.StatusOK {
		t.Fatalf("visibility status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	srec := httptest.NewRecorder()
	storefront.ServeHTTP(srec, req)
	if srec.Code != http.StatusOK {
		t.Fatalf("storefront status = %d, want %d", srec.Code, http.StatusOK)
	}

	var home struct {
		Sections []render.Model `json:"sections"`
	}
	if err := json.NewDecoder(srec.Body).Decode(&home); err != nil {
		t.Fatalf("failed to decode storefront response: %v", err)
	}
	if len(home.Sections) != 1 {
		t.Fatalf("storefront returned %d sections, want 1", len(home.Sections))
	}
	if home.Sections[0].ID != visible.ID.Hex() {
		t.Errorf("storefront section id = %q, want %q", home.Sections[0].ID, visible.ID.Hex())
	}
	if home.Sections[0].Title != "On Sale" {
		t.Errorf("storefront section title = %q, want %q", home.Sections[0].Title, "On Sale")
	}
}

func TestStorefrontPopulatesProductReferences(t *testing.T) {
	h, _, storefront := newTestRouter(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	prod, err := h.products.Create(ctx, productstore.CreateInput{
		Name:   "Canvas Tote",
		Slug:   "canvas-tote",
		Price:  39.5,
		Status: models.ProductStatusActive,
		Images: []string{"/img/tote.jpg"},
	})
	if err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	_, err = h.sections.Create(ctx, sectionstore.CreateInput{
		Name: "Featured", Type: models.SectionTypeFeaturedProducts,
		Content: models.SectionContent{
			Title: "Staff Picks",
			Items: []models.SectionItem{
				{ItemID: prod.ID, ItemType: models.ItemTypeProduct},
			},
		},
	})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	storefront.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("storefront status = %d, want %d", rec.Code, http.StatusOK)
	}

	var home struct {
		Sections []render.Model `json:"sections"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&home); err != nil {
		t.Fatalf("failed to decode storefront response: %v", err)
	}
	if len(home.Sections) != 1 || len(home.Sections[0].Items) != 1 {
		t.Fatalf("unexpected shape: %+v", home.Sections)
	}

	item := home.Sections[0].Items[0]
	if item.Title != "Canvas Tote" {
		t.Errorf("item title = %q, want populated product name", item.Title)
	}
	if item.ImageURL != "/img/tote.jpg" {
		t.Errorf("item image = %q, want product image", item.ImageURL)
	}
	if item.Link != "/products/canvas-tote" {
		t.Errorf("item link = %q, want slug link", item.Link)
	}
	if item.Price == nil || *item.Price != 39.5 {
		t.Errorf("item price = %v, want 39.5", item.Price)
	}
}

func TestReorderEndpoint(t *testing.T) {
	h, admin, _ := newTestRouter(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	var ids []string
	for i, name := range []string{"first", "second", "third"} {
		order := i
		sec, err := h.sections.Create(ctx, sectionstore.CreateInput{
			Name: name, Type: models.SectionTypeBanner, Order: &order,
		})
		if err != nil {
			t.Fatalf("failed to create section: %v", err)
		}
		ids = append(ids, sec.ID.Hex())
	}

	// Reverse, with one bad id the store skips.
	rec := adminJSON(t, admin, http.MethodPost, "/reorder", map[string]any{
		"sections": []map[string]any{
			{"id": ids[0], "order": 2},
			{"id": ids[2], "order": 0},
			{"id": "not-a-hex-id", "order": 9},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("reorder status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	var resp struct {
		Requested int `json:"requested"`
		Applied   int `json:"applied"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode reorder response: %v", err)
	}
	if resp.Requested != 3 || resp.Applied != 2 {
		t.Errorf("reorder counts = %+v, want requested 3 applied 2", resp)
	}

	sections, err := h.sections.List(ctx)
	if err != nil {
		t.Fatalf("failed to list sections: %v", err)
	}
	want := []string{"third", "second", "first"}
	for i, sec := range sections {
		if sec.Name != want[i] {
			t.Errorf("position %d = %q, want %q", i, sec.Name, want[i])
		}
	}
}

func TestDeleteSection(t *testing.T) {
	h, admin, _ := newTestRouter(t)

	ctx, cancel := testutil.TestContext()
	defer cancel()

	sec, err := h.sections.Create(ctx, sectionstore.CreateInput{
		Name: "Doomed", Type: models.SectionTypeBanner,
	})
	if err != nil {
		t.Fatalf("failed to create section: %v", err)
	}

	rec := adminJSON(t, admin, http.MethodDelete, "/"+sec.ID.Hex(), nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want %d", rec.Code, http.StatusNoContent)
	}

	rec = adminJSON(t, admin, http.MethodDelete, "/"+sec.ID.Hex(), nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
