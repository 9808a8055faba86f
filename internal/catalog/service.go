package catalog

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/smartdukaan/backend-dukaan/internal/common"
	"github.com/smartdukaan/backend-dukaan/internal/gst"
	"github.com/smartdukaan/backend-dukaan/internal/store"
)

// Repo defines the persistence operations the catalog needs.
type Repo interface {
	CreateProduct(ctx context.Context, in store.ProductInput) (store.Product, error)
	GetProduct(ctx context.Context, id string) (store.Product, error)
	GetProductBySKU(ctx context.Context, sku string) (store.Product, error)
	ListProducts(ctx context.Context, search string, limit, offset int) ([]store.Product, error)
	CountProducts(ctx context.Context, search string) (int64, error)
	UpdateProduct(ctx context.Context, id string, in store.ProductInput) (store.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	ListLowStockProducts(ctx context.Context) ([]store.Product, error)
}

// Service orchestrates product catalog operations.
type Service struct {
	repo         Repo
	cache        *Cache
	resolver     gst.Resolver
	pricer       gst.Pricer
	defaultLimit int
	maxLimit     int
	randInt      func(n int) int
}

// ServiceConfig groups Service dependencies.
type ServiceConfig struct {
	Repo         Repo
	Cache        *Cache
	Resolver     gst.Resolver
	Pricer       gst.Pricer
	DefaultLimit int
	MaxLimit     int
	RandInt      func(n int) int
}

// NewService constructs a catalog service.
func NewService(cfg ServiceConfig) *Service {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 20
	}
	if cfg.MaxLimit <= 0 {
		cfg.MaxLimit = 100
	}
	if cfg.RandInt == nil {
		cfg.RandInt = rand.Intn
	}
	return &Service{
		repo:         cfg.Repo,
		cache:        cfg.Cache,
		resolver:     cfg.Resolver,
		pricer:       cfg.Pricer,
		defaultLimit: cfg.DefaultLimit,
		maxLimit:     cfg.MaxLimit,
		randInt:      cfg.RandInt,
	}
}

// Product is the API representation of a catalog row.
type Product struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	NameHindi    string    `json:"name_hindi,omitempty"`
	Category     string    `json:"category"`
	Unit         string    `json:"unit"`
	CostPrice    float64   `json:"cost_price"`
	SellingPrice float64   `json:"selling_price"`
	GSTRate      float64   `json:"gst_rate"`
	Stock        float64   `json:"stock"`
	LowStockAt   float64   `json:"low_stock_at,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProductInput captures payload for creating or updating a product.
type ProductInput struct {
	SKU          string  `json:"sku"`
	Name         string  `json:"name"`
	NameHindi    string  `json:"name_hindi"`
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	CostPrice    float64 `json:"cost_price"`
	SellingPrice float64 `json:"selling_price"`
	GSTRate      float64 `json:"gst_rate"`
	Stock        float64 `json:"stock"`
	LowStockAt   float64 `json:"low_stock_at"`
}

// Suggestion is returned by the autofill endpoint for a typed product name.
type Suggestion struct {
	Name            string  `json:"name,omitempty"`
	Category        string  `json:"category,omitempty"`
	Unit            string  `json:"unit,omitempty"`
	GSTRate         float64 `json:"gst_rate"`
	SellingPrice    float64 `json:"selling_price,omitempty"`
	MatchedStandard bool    `json:"matched_standard"`
}

func convertProduct(p store.Product) Product {
	return Product{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		NameHindi:    p.NameHindi,
		Category:     p.Category,
		Unit:         p.Unit,
		CostPrice:    p.CostPrice,
		SellingPrice: p.SellingPrice,
		GSTRate:      p.GSTRate,
		Stock:        p.Stock,
		LowStockAt:   p.LowStockAt,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (s *Service) validateInput(in *ProductInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(strings.ToLower(in.Category))
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Name == "" {
		return common.BadRequest("name is required")
	}
	if in.Category == "" {
		return common.BadRequest("category is required")
	}
	if in.Unit == "" {
		in.Unit = "piece"
	}
	if in.CostPrice < 0 || in.SellingPrice < 0 || in.Stock < 0 || in.LowStockAt < 0 {
		return common.BadRequest("prices and stock must not be negative")
	}
	if in.GSTRate < 0 || in.GSTRate > 40 {
		return common.BadRequest("gst_rate must be between 0 and 40")
	}
	return nil
}

// fill derives the optional fields the shopkeeper left blank.
func (s *Service) fill(in *ProductInput) {
	if in.GSTRate == 0 {
		in.GSTRate = s.resolver.Rate(gst.Category(in.Category), in.Name)
	}
	if in.SellingPrice == 0 && in.CostPrice > 0 {
		in.SellingPrice = s.pricer.SuggestSellingPrice(in.CostPrice, gst.Category(in.Category))
	}
	if in.SKU == "" {
		in.SKU = s.GenerateSKU(in.Name, in.Category)
	}
}

// GenerateSKU builds a short code like GRO-BAS-042 from category, name and a
// random suffix.
func (s *Service) GenerateSKU(name, category string) string {
	prefix := "PRD"
	if category != "" {
		prefix = strings.ToUpper(firstN(category, 3))
	}
	nameCode := strings.ReplaceAll(strings.ToUpper(firstN(name, 3)), " ", "")
	return fmt.Sprintf("%s-%s-%03d", prefix, nameCode, s.randInt(1000))
}

func firstN(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// Suggest assembles autofill data for a typed product name: standard product
// metadata when recognised, a suggested GST rate and a suggested selling
// price when a cost is supplied.
func (s *Service) Suggest(name, category string, costPrice float64) Suggestion {
	sug := Suggestion{}
	cat := gst.Category(strings.ToLower(strings.TrimSpace(category)))
	if std, ok := FindStandardProduct(name); ok {
		sug.MatchedStandard = true
		sug.Name = std.Name
		sug.Unit = std.Unit
		if cat == gst.CategoryUnknown {
			cat = std.Category
		}
		sug.Category = string(cat)
	} else if cat != gst.CategoryUnknown {
		sug.Category = string(cat)
	}
	lookup := name
	if sug.Name != "" {
		lookup = sug.Name
	}
	sug.GSTRate = s.resolver.Rate(cat, lookup)
	if costPrice > 0 {
		sug.SellingPrice = s.pricer.SuggestSellingPrice(costPrice, cat)
	}
	return sug
}

// Create validates, auto-fills and persists a new product.
func (s *Service) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := s.validateInput(&in); err != nil {
		return Product{}, err
	}
	s.fill(&in)
	p, err := s.repo.CreateProduct(ctx, storeInput(in))
	if err != nil {
		return Product{}, err
	}
	s.cache.Invalidate(ctx, firstPageCacheKey)
	return convertProduct(p), nil
}

// Get fetches a product by id.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Product{}, common.NotFound("product not found")
		}
		return Product{}, err
	}
	return convertProduct(p), nil
}

// PageSize clamps a requested page size to the service limits.
func (s *Service) PageSize(perPage int) int {
	if perPage <= 0 {
		return s.defaultLimit
	}
	if perPage > s.maxLimit {
		return s.maxLimit
	}
	return perPage
}

// List returns a page of products with the total count. The first unfiltered
// page is served from cache when possible.
func (s *Service) List(ctx context.Context, search string, page, perPage int) ([]Product, int64, error) {
	if page <= 0 {
		page = 1
	}
	perPage = s.PageSize(perPage)
	offset := (page - 1) * perPage
	search = strings.TrimSpace(search)

	type listPayload struct {
		Products []Product `json:"products"`
		Total    int64     `json:"total"`
	}
	key := ""
	if search == "" && page == 1 && perPage == s.defaultLimit {
		key = firstPageCacheKey
		var cached listPayload
		if ok, _ := s.cache.GetJSON(ctx, key, &cached); ok {
			return cached.Products, cached.Total, nil
		}
	}

	rows, err := s.repo.ListProducts(ctx, search, perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountProducts(ctx, search)
	if err != nil {
		return nil, 0, err
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, convertProduct(row))
	}
	if key != "" {
		_ = s.cache.SetJSON(ctx, key, listPayload{Products: products, Total: total})
	}
	return products, total, nil
}

// Update validates and persists changes to an existing product.
func (s *Service) Update(ctx context.Context, id string, in ProductInput) (Product, error) {
	if err := s.validateInput(&in); err != nil {
		return Product{}, err
	}
	s.fill(&in)
	p, err := s.repo.UpdateProduct(ctx, id, storeInput(in))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Product{}, common.NotFound("product not found")
		}
		return Product{}, err
	}
	s.cache.Invalidate(ctx, firstPageCacheKey)
	return convertProduct(p), nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return common.NotFound("product not found")
		}
		return err
	}
	s.cache.Invalidate(ctx, firstPageCacheKey)
	return nil
}

// LowStock lists products at or below their low-stock threshold.
func (s *Service) LowStock(ctx context.Context) ([]Product, error) {
	rows, err := s.repo.ListLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, convertProduct(row))
	}
	return products, nil
}

func storeInput(in ProductInput) store.ProductInput {
	return store.ProductInput{
		SKU:          in.SKU,
		Name:         in.Name,
		NameHindi:    in.NameHindi,
		Category:     in.Category,
		Unit:         in.Unit,
		CostPrice:    in.CostPrice,
		SellingPrice: in.SellingPrice,
		GSTRate:      in.GSTRate,
		Stock:        in.Stock,
		LowStockAt:   in.LowStockAt,
	}
}

// firstPageCacheKey caches only the unfiltered first page, which is what the
// POS screen loads on every visit.
const firstPageCacheKey = "catalog:list:first"
