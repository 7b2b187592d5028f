package catalog

import (
	"context"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// Repository wires together catalog persistence helpers.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads one listing. Missing rows surface as gorm.ErrRecordNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (*Product, error) {
	var product Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListAll returns every listing ordered by display name.
func (r *Repository) ListAll(ctx context.Context) ([]Product, error) {
	var rows []Product
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListByCategory returns the listings in the given category ordered by display
// name. Matching ignores case and surrounding whitespace.
func (r *Repository) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	var rows []Product
	err := r.db.WithContext(ctx).
		Where("LOWER(category) = ?", strings.ToLower(strings.TrimSpace(category))).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// ListFeatured returns the listings flagged for the storefront landing page.
func (r *Repository) ListFeatured(ctx context.Context) ([]Product, error) {
	var rows []Product
	err := r.db.WithContext(ctx).
		Where("featured = ?", true).
		Order("name ASC").
		Find(&rows).
		Error
	return rows, err
}

// Categories returns the distinct category slugs in alphabetical order.
func (r *Repository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&Product{}).
		Distinct().
		Where("category <> ''").
		Pluck("category", &categories).
		Error
	if err != nil {
		return nil, err
	}
	sort.Strings(categories)
	return categories, nil
}

// Count reports how many listings exist.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Product{}).Count(&count).Error
	return count, err
}
