package services

import (
	"sort"
	"strings"

	"loja/internal/catalog"
	"loja/internal/models"
	"loja/internal/repositories"
)

// Sort keys accepted by the catalog view. The values are the selector
// options of the storefront and double as the `ordenar` query values.
const (
	SortRelevance   = "relevancia"
	SortPriceAsc    = "preco-menor"
	SortPriceDesc   = "preco-maior"
	SortNewest      = "mais-recentes"
	SortBestSelling = "mais-vendidos"
)

// Filter is the catalog view state reconstructed from the navigational
// query string. All fields are optional and compose with AND. A MaxPrice
// of zero means no upper bound.
type Filter struct {
	CategorySlug string
	Query        string
	NewOnly      bool
	SaleOnly     bool
	MinPrice     float64
	MaxPrice     float64
	Sort         string
}

// CatalogService handles catalog lookups and the filtered/sorted product
// view.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	categoryRepo repositories.CategoryRepository
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(productRepo repositories.ProductRepository, categoryRepo repositories.CategoryRepository) *CatalogService {
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
	}
}

// GetAllProducts retrieves all products in catalog order.
func (s *CatalogService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *CatalogService) GetProductByID(id int) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

// GetCategories retrieves the browsable categories.
func (s *CatalogService) GetCategories() ([]models.Category, error) {
	return s.categoryRepo.GetAll()
}

// GetFeaturedProducts returns the products flagged as featured.
func (s *CatalogService) GetFeaturedProducts() ([]models.Product, error) {
	return s.selectProducts(func(p models.Product) bool { return p.Featured })
}

// GetNewProducts returns the products flagged as new.
func (s *CatalogService) GetNewProducts() ([]models.Product, error) {
	return s.selectProducts(func(p models.Product) bool { return p.New })
}

// GetSaleProducts returns the products flagged as on sale.
func (s *CatalogService) GetSaleProducts() ([]models.Product, error) {
	return s.selectProducts(func(p models.Product) bool { return p.Sale })
}

// GetProductsByCategory returns the products of a category, by name.
func (s *CatalogService) GetProductsByCategory(category string) ([]models.Product, error) {
	return s.selectProducts(func(p models.Product) bool { return p.Category == category })
}

// CreateProduct creates a new product.
func (s *CatalogService) CreateProduct(product *models.Product) error {
	return s.productRepo.Create(product)
}

// UpdateProduct updates an existing product.
func (s *CatalogService) UpdateProduct(product *models.Product) error {
	return s.productRepo.Update(product)
}

// DeleteProduct deletes a product by its ID.
func (s *CatalogService) DeleteProduct(id int) error {
	return s.productRepo.Delete(id)
}

// Search applies the filter to the catalog and returns the resulting view,
// recomputed from scratch on every call.
func (s *CatalogService) Search(filter Filter) ([]models.Product, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}
	return ApplyFilter(products, filter), nil
}

func (s *CatalogService) selectProducts(keep func(models.Product) bool) ([]models.Product, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0)
	for _, p := range products {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out, nil
}

// ApplyFilter derives the filtered and sorted view of a product list. The
// input slice is taken to be in catalog order, which every sort uses as
// its tie-break. Pure: the input is not modified.
func ApplyFilter(products []models.Product, filter Filter) []models.Product {
	result := make([]models.Product, 0, len(products))

	categoryName := ""
	if filter.CategorySlug != "" {
		// An unknown slug leaves the category filter off, matching the
		// storefront's behavior.
		if c, ok := catalog.CategoryBySlug(filter.CategorySlug); ok {
			categoryName = c.Name
		}
	}
	query := strings.ToLower(filter.Query)

	for _, p := range products {
		if query != "" && !matchesQuery(p, query) {
			continue
		}
		if categoryName != "" && p.Category != categoryName {
			continue
		}
		if filter.NewOnly && !p.New {
			continue
		}
		if filter.SaleOnly && !p.Sale {
			continue
		}
		if p.Price < filter.MinPrice {
			continue
		}
		if filter.MaxPrice > 0 && p.Price > filter.MaxPrice {
			continue
		}
		result = append(result, p)
	}

	switch filter.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	case SortNewest:
		result = groupFirst(result, func(p models.Product) bool { return p.New })
	case SortBestSelling:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	default:
		// Relevance: featured products first, catalog order within each
		// group.
		result = groupFirst(result, func(p models.Product) bool { return p.Featured })
	}

	return result
}

// matchesQuery reports whether any of name, description or category
// contains the lower-cased query.
func matchesQuery(p models.Product, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) ||
		strings.Contains(strings.ToLower(p.Category), query)
}

// groupFirst partitions products into those matching the predicate
// followed by the rest, keeping relative order inside each group.
func groupFirst(products []models.Product, first func(models.Product) bool) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if first(p) {
			out = append(out, p)
		}
	}
	for _, p := range products {
		if !first(p) {
			out = append(out, p)
		}
	}
	return out
}
