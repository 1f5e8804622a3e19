package service

import (
	"context"
	"fmt"
	"strings"

	"strikex/internal/model"
	"strikex/internal/repository"

	"github.com/rs/zerolog"
)

const categoryPageSize = 20

// catalogService implements CatalogService.
type catalogService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(productRepo repository.ProductRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "catalog").Logger(),
	}
}

// ByCategory lists decoded products in a category.
func (s *catalogService) ByCategory(ctx context.Context, category string) ([]model.ProductView, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Category is required")
	}

	products, err := s.productRepo.ByCategory(ctx, category, categoryPageSize)
	if err != nil {
		s.logger.Error().Err(err).Str("category", category).Msg("failed to list category")
		return nil, fmt.Errorf("failed to list category: %w", err)
	}

	return s.decodeAll(products), nil
}

// Search matches a keyword across name, category, sku and description.
func (s *catalogService) Search(ctx context.Context, keyword string) ([]model.ProductView, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Search query is required")
	}

	products, err := s.productRepo.Search(ctx, keyword)
	if err != nil {
		s.logger.Error().Err(err).Str("keyword", keyword).Msg("search failed")
		return nil, fmt.Errorf("search failed: %w", err)
	}

	return s.decodeAll(products), nil
}

// GetProduct returns one decoded product, or nil when absent.
func (s *catalogService) GetProduct(ctx context.Context, id string) (*model.ProductView, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, nil
	}

	view := s.decode(product)
	return &view, nil
}

// decodeAll skips rows whose price data cannot be decoded rather than
// failing the whole listing.
func (s *catalogService) decodeAll(products []model.Product) []model.ProductView {
	views := make([]model.ProductView, 0, len(products))
	for i := range products {
		if _, _, err := products[i].UnitPrice(); err != nil {
			s.logger.Warn().Str("product_id", products[i].ID).Msg("skipping product with unusable price data")
			continue
		}
		views = append(views, s.decode(&products[i]))
	}
	return views
}

func (s *catalogService) decode(p *model.Product) model.ProductView {
	view := model.ProductView{
		ID:          p.ID,
		SKU:         p.SKU,
		Title:       p.Name,
		Description: p.Description,
		Category:    p.Category,
		Images:      p.ImageURLs(),
		Available:   p.Quantity > 0 && p.Status == "active",
	}
	if amount, currency, err := p.UnitPrice(); err == nil {
		view.Price = model.Money{
			Amount:       fmt.Sprintf("%.2f", amount),
			CurrencyCode: currency,
		}
	}
	return view
}
