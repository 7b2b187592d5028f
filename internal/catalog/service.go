package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/viscontilabs/bitstore-backend/pkg/config"
	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
	"github.com/viscontilabs/bitstore-backend/pkg/logger"
)

// Service exposes read access to the product catalog.
type Service interface {
	GetProduct(ctx context.Context, id string) (*Product, error)
	ListProducts(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	ListFeatured(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type repository interface {
	FindByID(ctx context.Context, id string) (*Product, error)
	ListAll(ctx context.Context) ([]Product, error)
	ListByCategory(ctx context.Context, category string) ([]Product, error)
	ListFeatured(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]string, error)
}

type service struct {
	repo repository
	cfg  config.CatalogConfig
	logg *logger.Logger
}

// NewService constructs a catalog service instance.
func NewService(repo repository, cfg config.CatalogConfig, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo, cfg: cfg, logg: logg}, nil
}

func (s *service) GetProduct(ctx context.Context, id string) (*Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return rows, nil
}

// ListByCategory resolves the category query against the indexed column. When
// that yields nothing and the scan fallback is enabled, it re-reads the whole
// catalog and filters in memory, which tolerates rows whose stored category
// drifted in casing or whitespace.
func (s *service) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	normalized := strings.ToLower(strings.TrimSpace(category))
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category required")
	}

	rows, err := s.repo.ListByCategory(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products by category")
	}
	if len(rows) > 0 || !s.cfg.ScanFallback {
		return rows, nil
	}

	if s.logg != nil {
		s.logg.Warn(ctx, fmt.Sprintf("category %q matched nothing, scanning catalog", normalized))
	}
	all, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan catalog")
	}
	filtered := make([]Product, 0)
	for _, product := range all {
		if strings.ToLower(strings.TrimSpace(product.Category)) == normalized {
			filtered = append(filtered, product)
		}
	}
	return filtered, nil
}

func (s *service) ListFeatured(ctx context.Context) ([]Product, error) {
	rows, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list featured products")
	}
	return rows, nil
}

func (s *service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list categories")
	}
	return categories, nil
}
