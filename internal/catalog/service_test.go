package catalog

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/viscontilabs/bitstore-backend/pkg/config"
	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
)

type stubRepo struct {
	products      []Product
	byCategory    map[string][]Product
	findErr       error
	listErr       error
	categoryCalls int
	listAllCalls  int
}

func (s *stubRepo) FindByID(_ context.Context, id string) (*Product, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	for i := range s.products {
		if s.products[i].ID == id {
			return &s.products[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListAll(_ context.Context) ([]Product, error) {
	s.listAllCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.products, nil
}

func (s *stubRepo) ListByCategory(_ context.Context, category string) ([]Product, error) {
	s.categoryCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.byCategory[category], nil
}

func (s *stubRepo) ListFeatured(_ context.Context) ([]Product, error) {
	var rows []Product
	for _, p := range s.products {
		if p.Featured {
			rows = append(rows, p)
		}
	}
	return rows, nil
}

func (s *stubRepo) Categories(_ context.Context) ([]string, error) {
	return []string{"auriculares"}, nil
}

func TestServiceGetProduct(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{products: []Product{{ID: "slug-a", Name: "A"}}}
	svc, err := NewService(repo, config.CatalogConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	product, err := svc.GetProduct(context.Background(), "slug-a")
	if err != nil {
		t.Fatalf("GetProduct: %v", err)
	}
	if product.Name != "A" {
		t.Fatalf("unexpected product: %+v", product)
	}
}

func TestServiceGetProductNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{}, config.CatalogConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), "missing")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceGetProductBlankID(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{}, config.CatalogConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), "   ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGetProductDependencyFailure(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{findErr: errors.New("connection reset")}
	svc, err := NewService(repo, config.CatalogConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetProduct(context.Background(), "slug-a")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceListByCategoryNormalizesQuery(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{byCategory: map[string][]Product{
		"auriculares": {{ID: "a", Category: "auriculares"}},
	}}
	svc, err := NewService(repo, config.CatalogConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	rows, err := svc.ListByCategory(context.Background(), "  AURICULARES ")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 product, got %d", len(rows))
	}
}

func TestServiceListByCategoryScanFallback(t *testing.T) {
	t.Parallel()

	// stored category has drifted casing, so the indexed query misses it
	repo := &stubRepo{products: []Product{{ID: "a", Category: " Auriculares "}}}
	svc, err := NewService(repo, config.CatalogConfig{ScanFallback: true}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	rows, err := svc.ListByCategory(context.Background(), "auriculares")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected fallback to recover the row, got %d", len(rows))
	}
	if repo.listAllCalls != 1 {
		t.Fatalf("expected one full scan, got %d", repo.listAllCalls)
	}
}

func TestServiceListByCategoryFallbackDisabled(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{products: []Product{{ID: "a", Category: " Auriculares "}}}
	svc, err := NewService(repo, config.CatalogConfig{ScanFallback: false}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	rows, err := svc.ListByCategory(context.Background(), "auriculares")
	if err != nil {
		t.Fatalf("ListByCategory: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows with fallback disabled, got %d", len(rows))
	}
	if repo.listAllCalls != 0 {
		t.Fatalf("expected no full scan, got %d", repo.listAllCalls)
	}
}

func TestServiceListByCategoryBlank(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{}, config.CatalogConfig{}, nil)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.ListByCategory(context.Background(), "")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil, config.CatalogConfig{}, nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
