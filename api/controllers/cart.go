package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/viscontilabs/bitstore-backend/api/middleware"
	"github.com/viscontilabs/bitstore-backend/api/responses"
	"github.com/viscontilabs/bitstore-backend/api/validators"
	cartsvc "github.com/viscontilabs/bitstore-backend/internal/cart"
	catalogsvc "github.com/viscontilabs/bitstore-backend/internal/catalog"
	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
	"github.com/viscontilabs/bitstore-backend/pkg/logger"
)

type cartItemView struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type cartView struct {
	Items      []cartItemView  `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func newCartView(state cartsvc.State) cartView {
	items := make([]cartItemView, 0, len(state.Lines))
	for _, line := range state.Lines {
		items = append(items, cartItemView{
			ID:          line.Product.ID,
			Name:        line.Product.Name,
			Description: line.Product.Description,
			Price:       line.Product.Price,
			Category:    line.Product.Category,
			Image:       line.Product.Image,
			Stock:       line.Product.Stock,
			Featured:    line.Product.Featured,
			Quantity:    line.Quantity,
			Subtotal:    line.Subtotal(),
		})
	}
	return cartView{
		Items:      items,
		TotalItems: state.TotalQuantity,
		TotalPrice: state.TotalPrice,
	}
}

func sessionFromRequest(manager *cartsvc.Manager, r *http.Request) (*cartsvc.Session, error) {
	if manager == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart manager unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session not resolved")
	}
	return manager.Session(sessionID), nil
}

// CartFetch returns the session's cart.
func CartFetch(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(manager, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartView(session.State(r.Context())))
	}
}

type addCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// CartAddItem resolves the product in the catalog and merges it into the cart.
// The quantity is additive; omitting it adds a single unit. The stock limit is
// enforced here against the resolved product, not inside the state machine.
func CartAddItem(manager *cartsvc.Manager, catalog catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(manager, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if catalog == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if payload.Quantity < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative"))
			return
		}

		product, err := catalog.GetProduct(r.Context(), payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		requested := payload.Quantity
		if requested < 1 {
			requested = 1
		}
		if held := session.State(r.Context()).Quantity(product.ID); held+requested > product.Stock {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "not enough stock for this product"))
			return
		}

		state := session.Dispatch(r.Context(), cartsvc.AddItemAction{
			Product:  product.CartSnapshot(),
			Quantity: payload.Quantity,
		})
		responses.WriteSuccess(w, newCartView(state))
	}
}

type updateCartItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// CartUpdateItem sets an absolute quantity for one line; zero removes it.
func CartUpdateItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(manager, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if *payload.Quantity < 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative"))
			return
		}

		state := session.Dispatch(r.Context(), cartsvc.UpdateQuantityAction{
			ProductID: chi.URLParam(r, "productID"),
			Quantity:  *payload.Quantity,
		})
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartRemoveItem drops one line from the cart; unknown ids are a no-op.
func CartRemoveItem(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(manager, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := session.Dispatch(r.Context(), cartsvc.RemoveItemAction{
			ProductID: chi.URLParam(r, "productID"),
		})
		responses.WriteSuccess(w, newCartView(state))
	}
}

// CartClear empties the cart.
func CartClear(manager *cartsvc.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(manager, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := session.Dispatch(r.Context(), cartsvc.ClearAction{})
		responses.WriteSuccess(w, newCartView(state))
	}
}
