package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
)

// StatusConfirmed is the only status an order carries today; payment and
// fulfillment flows are out of scope for the storefront.
const StatusConfirmed = "confirmed"

// Service exposes read access to confirmed orders.
type Service interface {
	GetOrder(ctx context.Context, ref string) (*Order, error)
	ListRecent(ctx context.Context, limit int) ([]Order, error)
}

type service struct {
	repo Repository
}

// NewService constructs an orders service instance.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

// GetOrder resolves a confirmation reference, accepting either the row id or
// the public ORD- number the buyer received.
func (s *service) GetOrder(ctx context.Context, ref string) (*Order, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order reference required")
	}

	var (
		order *Order
		err   error
	)
	if id, parseErr := uuid.Parse(ref); parseErr == nil {
		order, err = s.repo.FindByID(ctx, id)
	} else {
		order, err = s.repo.FindByNumber(ctx, ref)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) ListRecent(ctx context.Context, limit int) ([]Order, error) {
	rows, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}
