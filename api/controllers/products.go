package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/viscontilabs/bitstore-backend/api/responses"
	catalogsvc "github.com/viscontilabs/bitstore-backend/internal/catalog"
	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
	"github.com/viscontilabs/bitstore-backend/pkg/logger"
)

// ListProducts serves the catalog, optionally narrowed by ?category= or
// ?featured=true.
func ListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var (
			rows []catalogsvc.Product
			err  error
		)
		switch {
		case r.URL.Query().Get("category") != "":
			rows, err = svc.ListByCategory(r.Context(), r.URL.Query().Get("category"))
		case strings.EqualFold(r.URL.Query().Get("featured"), "true"):
			rows, err = svc.ListFeatured(r.Context())
		default:
			rows, err = svc.ListProducts(r.Context())
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rows)
	}
}

// GetProduct serves one catalog listing by its slug.
func GetProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetProduct(r.Context(), chi.URLParam(r, "productID"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListCategories serves the distinct category slugs.
func ListCategories(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		categories, err := svc.Categories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, categories)
	}
}
