package checkout

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/viscontilabs/bitstore-backend/internal/cart"
	"github.com/viscontilabs/bitstore-backend/internal/orders"
	checkoutform "github.com/viscontilabs/bitstore-backend/pkg/checkout"
	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
	"github.com/viscontilabs/bitstore-backend/pkg/logger"
	"github.com/viscontilabs/bitstore-backend/pkg/metrics"
)

const (
	outcomeConfirmed  = "confirmed"
	outcomeRejected   = "rejected"
	outcomeDependency = "dependency_error"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service executes checkout orchestration: it validates the buyer form,
// freezes the cart into an order, persists it, and clears the cart only after
// the order is durably stored.
type Service interface {
	Submit(ctx context.Context, session *cart.Session, form checkoutform.BuyerForm) (*orders.Order, error)
}

type service struct {
	tx         txRunner
	ordersRepo orders.Repository
	logg       *logger.Logger
	metrics    *metrics.StorefrontMetrics
	now        func() time.Time
}

// NewService builds the checkout service.
func NewService(tx txRunner, ordersRepo orders.Repository, logg *logger.Logger, m *metrics.StorefrontMetrics) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{
		tx:         tx,
		ordersRepo: ordersRepo,
		logg:       logg,
		metrics:    m,
		now:        time.Now,
	}, nil
}

func (s *service) Submit(ctx context.Context, session *cart.Session, form checkoutform.BuyerForm) (*orders.Order, error) {
	started := s.now()
	order, err := s.submit(ctx, session, form)
	s.metrics.ObserveCheckout(s.now().Sub(started))
	return order, err
}

func (s *service) submit(ctx context.Context, session *cart.Session, form checkoutform.BuyerForm) (*orders.Order, error) {
	if session == nil {
		s.metrics.IncCheckoutOutcome(outcomeRejected)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session required")
	}

	if err := checkoutform.ValidateBuyerForm(form); err != nil {
		s.metrics.IncCheckoutOutcome(outcomeRejected)
		return nil, err
	}

	state := session.State(ctx)
	if state.IsEmpty() {
		s.metrics.IncCheckoutOutcome(outcomeRejected)
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "cart is empty")
	}

	order := s.buildOrder(state, form.Normalized())

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.ordersRepo.WithTx(tx).CreateOrder(ctx, order)
		return err
	})
	if err != nil {
		// the cart stays intact so the buyer can retry
		s.metrics.IncCheckoutOutcome(outcomeDependency)
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store order")
	}

	session.Dispatch(ctx, cart.ClearAction{})
	s.metrics.IncCheckoutOutcome(outcomeConfirmed)
	if s.logg != nil {
		s.logg.Info(
			s.logg.WithSessionID(ctx, session.ID()),
			fmt.Sprintf("order %s confirmed, %d items", order.OrderNumber, order.TotalItems),
		)
	}
	return order, nil
}

func (s *service) buildOrder(state cart.State, buyer checkoutform.BuyerForm) *orders.Order {
	items := make([]orders.OrderItem, 0, len(state.Lines))
	for _, line := range state.Lines {
		items = append(items, orders.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Price:     line.Product.Price,
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		})
	}
	return &orders.Order{
		OrderNumber: s.orderNumber(),
		Status:      orders.StatusConfirmed,
		Buyer: orders.Buyer{
			Name:       buyer.Name,
			Email:      buyer.Email,
			Phone:      buyer.Phone,
			Address:    buyer.Address,
			City:       buyer.City,
			PostalCode: buyer.PostalCode,
		},
		Items:      items,
		Total:      state.TotalPrice,
		TotalItems: state.TotalQuantity,
	}
}

func (s *service) orderNumber() string {
	return fmt.Sprintf("ORD-%d", s.now().UnixMilli())
}
