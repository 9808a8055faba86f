package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/smartdukaan/backend-dukaan/internal/gst"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

type stubRepo struct {
	created store.ProductInput
}

func (s *stubRepo) CreateProduct(ctx context.Context, in store.ProductInput) (store.Product, error) {
	s.created = in
	return store.Product{ID: "p1", SKU: in.SKU, Name: in.Name, Category: in.Category,
		Unit: in.Unit, CostPrice: in.CostPrice, SellingPrice: in.SellingPrice, GSTRate: in.GSTRate}, nil
}

func (s *stubRepo) GetProduct(ctx context.Context, id string) (store.Product, error) {
	return store.Product{}, store.ErrNotFound
}

func (s *stubRepo) GetProductBySKU(ctx context.Context, sku string) (store.Product, error) {
	return store.Product{}, store.ErrNotFound
}

func (s *stubRepo) ListProducts(ctx context.Context, search string, limit, offset int) ([]store.Product, error) {
	return nil, nil
}

func (s *stubRepo) CountProducts(ctx context.Context, search string) (int64, error) {
	return 0, nil
}

func (s *stubRepo) UpdateProduct(ctx context.Context, id string, in store.ProductInput) (store.Product, error) {
	return store.Product{}, store.ErrNotFound
}

func (s *stubRepo) DeleteProduct(ctx context.Context, id string) error { return nil }

func (s *stubRepo) ListLowStockProducts(ctx context.Context) ([]store.Product, error) {
	return nil, nil
}

func newTestService(repo Repo) *Service {
	return NewService(ServiceConfig{
		Repo:     repo,
		Resolver: gst.DefaultResolver(),
		Pricer:   gst.DefaultPricer(),
		RandInt:  func(n int) int { return 42 },
	})
}

func TestGenerateSKU(t *testing.T) {
	svc := newTestService(&stubRepo{})

	if got := svc.GenerateSKU("Basmati Rice", "grocery"); got != "GRO-BAS-042" {
		t.Fatalf("unexpected sku %q", got)
	}
	if got := svc.GenerateSKU("TV", ""); got != "PRD-TV-042" {
		t.Fatalf("unexpected sku for empty category %q", got)
	}
	// Spaces inside the first three characters are stripped after truncation.
	if got := svc.GenerateSKU("A B C", "dairy"); got != "DAI-AB-042" {
		t.Fatalf("unexpected sku for spaced name %q", got)
	}
}

func TestFindStandardProduct(t *testing.T) {
	std, ok := FindStandardProduct("basmati rice 5kg bag")
	if !ok || std.Name != "Basmati Rice (5kg)" {
		t.Fatalf("expected basmati match, got %+v ok=%v", std, ok)
	}
	std, ok = FindStandardProduct("MAGGI 2-minute")
	if !ok || std.Name != "Instant Noodles" {
		t.Fatalf("expected noodles match, got %+v ok=%v", std, ok)
	}
	if _, ok := FindStandardProduct("quantum flux capacitor"); ok {
		t.Fatal("expected no match")
	}
	if _, ok := FindStandardProduct(""); ok {
		t.Fatal("expected no match for empty name")
	}
}

func TestSuggestStandardMatch(t *testing.T) {
	svc := newTestService(&stubRepo{})

	sug := svc.Suggest("loose milk", "", 100)
	if !sug.MatchedStandard {
		t.Fatal("expected standard match")
	}
	if sug.Name != "Milk (Fresh/Toned)" || sug.Category != "dairy" || sug.Unit != "liter" {
		t.Fatalf("unexpected suggestion %+v", sug)
	}
	if sug.GSTRate != 0 {
		t.Fatalf("milk should be exempt, got %v", sug.GSTRate)
	}
	if sug.SellingPrice != 125 {
		t.Fatalf("expected dairy margin price 125, got %v", sug.SellingPrice)
	}
}

func TestSuggestFallsBackToCategory(t *testing.T) {
	svc := newTestService(&stubRepo{})

	sug := svc.Suggest("widget xyz", "grocery", 33.33)
	if sug.MatchedStandard {
		t.Fatal("expected no standard match")
	}
	if sug.GSTRate != 5 {
		t.Fatalf("expected grocery rate 5, got %v", sug.GSTRate)
	}
	if sug.SellingPrice != 36.66 {
		t.Fatalf("expected price 36.66, got %v", sug.SellingPrice)
	}
}

func TestCreateAutoFills(t *testing.T) {
	repo := &stubRepo{}
	svc := newTestService(repo)

	product, err := svc.Create(context.Background(), ProductInput{
		Name:      "Amul Milk 500ml",
		Category:  "Dairy",
		CostPrice: 20,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.created.SKU != "DAI-AMU-042" {
		t.Fatalf("expected generated sku, got %q", repo.created.SKU)
	}
	if repo.created.GSTRate != 0 {
		t.Fatalf("milk keyword should win over dairy category, got %v", repo.created.GSTRate)
	}
	if repo.created.SellingPrice != 25 {
		t.Fatalf("expected dairy margin price 25, got %v", repo.created.SellingPrice)
	}
	if repo.created.Unit != "piece" {
		t.Fatalf("expected default unit, got %q", repo.created.Unit)
	}
	if product.ID == "" {
		t.Fatal("expected id from repo")
	}
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(&stubRepo{})

	if _, err := svc.Create(context.Background(), ProductInput{Category: "grocery"}); err == nil {
		t.Fatal("expected error for missing name")
	}
	if _, err := svc.Create(context.Background(), ProductInput{Name: "Rice"}); err == nil {
		t.Fatal("expected error for missing category")
	}
	if _, err := svc.Create(context.Background(), ProductInput{Name: "Rice", Category: "grocery", CostPrice: -1}); err == nil {
		t.Fatal("expected error for negative cost")
	}
}

func TestListPaginationReportsRequestedPageSize(t *testing.T) {
	h := &Handler{Svc: newTestService(&stubRepo{})}

	req := httptest.NewRequest(http.MethodGet, "/?page=2&limit=5", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	var body struct {
		Pagination struct {
			Page    int `json:"page"`
			PerPage int `json:"per_page"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response: %v", err)
	}
	// The envelope reports the page size asked for, not the rows returned.
	if body.Pagination.Page != 2 || body.Pagination.PerPage != 5 {
		t.Fatalf("unexpected pagination: %+v", body.Pagination)
	}

	// Omitted and oversized limits clamp to the service bounds.
	if got := h.Svc.PageSize(0); got != 20 {
		t.Fatalf("expected default page size 20, got %d", got)
	}
	if got := h.Svc.PageSize(1000); got != 100 {
		t.Fatalf("expected max page size 100, got %d", got)
	}
}
