package controllers

import (
	"net/http"

	"github.com/viscontilabs/bitstore-backend/api/responses"
	"github.com/viscontilabs/bitstore-backend/api/validators"
	cartsvc "github.com/viscontilabs/bitstore-backend/internal/cart"
	checkoutsvc "github.com/viscontilabs/bitstore-backend/internal/checkout"
	checkoutform "github.com/viscontilabs/bitstore-backend/pkg/checkout"
	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
	"github.com/viscontilabs/bitstore-backend/pkg/logger"
)

// CheckoutSubmit confirms the session's cart as an order.
func CheckoutSubmit(manager *cartsvc.Manager, svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := sessionFromRequest(manager, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var form checkoutform.BuyerForm
		if err := validators.DecodeJSONBody(r, &form); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Submit(r.Context(), session, form)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
