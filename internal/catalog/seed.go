package catalog

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm/clause"
)

func seedProducts() []Product {
	return []Product{
		{
			ID:          "auricular-apple-airpods-pro",
			Name:        "Apple AirPods Pro (2ª generación)",
			Description: "Auriculares inalámbricos con cancelación activa de ruido, audio espacial personalizado y hasta 6 horas de autonomía.",
			Price:       decimal.NewFromInt(249999),
			Category:    "auriculares",
			Image:       "https://images.unsplash.com/photo-1572569511254-d8f925fe2cbb?w=400&h=400&fit=crop",
			Stock:       25,
			Featured:    true,
		},
		{
			ID:          "auricular-sony-wh1000xm5",
			Name:        "Sony WH-1000XM5",
			Description: "Auriculares inalámbricos con la mejor cancelación de ruido de la industria y hasta 30 horas de batería.",
			Price:       decimal.NewFromInt(179999),
			Category:    "auriculares",
			Image:       "https://images.unsplash.com/photo-1583394838336-acd977736f90?w=400&h=400&fit=crop",
			Stock:       18,
		},
		{
			ID:          "auricular-bose-quietcomfort-45",
			Name:        "Bose QuietComfort 45",
			Description: "Auriculares con cancelación de ruido líder mundial y comodidad excepcional para uso prolongado.",
			Price:       decimal.NewFromInt(159999),
			Category:    "auriculares",
			Image:       "https://images.unsplash.com/photo-1546435770-a3e426bf472b?w=400&h=400&fit=crop",
			Stock:       12,
		},
		{
			ID:          "notebook-macbook-air-m2",
			Name:        "MacBook Air M2 13\"",
			Description: "Laptop ultraportátil con chip M2, pantalla Liquid Retina de 13.6\", hasta 18 horas de batería y diseño ultra delgado.",
			Price:       decimal.NewFromInt(899999),
			Category:    "notebooks",
			Image:       "https://images.unsplash.com/photo-1541807084-5c52b6b3adef?w=400&h=400&fit=crop",
			Stock:       8,
			Featured:    true,
		},
		{
			ID:          "notebook-dell-xps-13",
			Name:        "Dell XPS 13",
			Description: "Ultrabook premium con procesador Intel Core i7, 16GB RAM, SSD 512GB y pantalla InfinityEdge 13.4\".",
			Price:       decimal.NewFromInt(749999),
			Category:    "notebooks",
			Image:       "https://images.unsplash.com/photo-1588872657578-7efd1f1555ed?w=400&h=400&fit=crop",
			Stock:       15,
		},
		{
			ID:          "celular-iphone-15-pro",
			Name:        "iPhone 15 Pro 128GB",
			Description: "El iPhone más avanzado con chip A17 Pro, sistema de cámaras Pro y estructura de titanio resistente y ligera.",
			Price:       decimal.NewFromInt(999999),
			Category:    "celulares",
			Image:       "https://images.unsplash.com/photo-1592750475338-74b7b21085ab?w=400&h=400&fit=crop",
			Stock:       20,
			Featured:    true,
		},
		{
			ID:          "celular-samsung-galaxy-s24",
			Name:        "Samsung Galaxy S24 256GB",
			Description: "Smartphone flagship con IA Galaxy, cámara de 50MP, pantalla Dynamic AMOLED 2X de 6.2\" y carga rápida.",
			Price:       decimal.NewFromInt(749999),
			Category:    "celulares",
			Image:       "https://images.unsplash.com/photo-1610945265064-0e34e5519bbf?w=400&h=400&fit=crop",
			Stock:       30,
		},
		{
			ID:          "tablet-ipad-air",
			Name:        "iPad Air 11\" M2",
			Description: "Tablet potente con chip M2, pantalla Liquid Retina de 11\", compatibilidad con Apple Pencil y Magic Keyboard.",
			Price:       decimal.NewFromInt(549999),
			Category:    "tablets",
			Image:       "https://images.unsplash.com/photo-1544244015-0df4b3ffc6b0?w=400&h=400&fit=crop",
			Stock:       22,
		},
	}
}

// Seed upserts the initial catalog. Safe to run on every boot; existing rows
// are refreshed in place so slugs stay stable.
func (r *Repository) Seed(ctx context.Context) error {
	products := seedProducts()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&products).
		Error
}
