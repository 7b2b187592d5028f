package orders

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/viscontilabs/bitstore-backend/pkg/errors"
)

type stubRepo struct {
	byID     map[uuid.UUID]*Order
	byNumber map[string]*Order
	err      error

	findByIDCalls     int
	findByNumberCalls int
}

func (s *stubRepo) WithTx(_ *gorm.DB) Repository { return s }

func (s *stubRepo) CreateOrder(_ context.Context, order *Order) (*Order, error) {
	return order, s.err
}

func (s *stubRepo) FindByID(_ context.Context, id uuid.UUID) (*Order, error) {
	s.findByIDCalls++
	if s.err != nil {
		return nil, s.err
	}
	if order, ok := s.byID[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) FindByNumber(_ context.Context, number string) (*Order, error) {
	s.findByNumberCalls++
	if s.err != nil {
		return nil, s.err
	}
	if order, ok := s.byNumber[number]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubRepo) ListRecent(_ context.Context, _ int) ([]Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	rows := make([]Order, 0, len(s.byNumber))
	for _, order := range s.byNumber {
		rows = append(rows, *order)
	}
	return rows, nil
}

func TestServiceGetOrderByUUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	repo := &stubRepo{byID: map[uuid.UUID]*Order{id: {ID: id, OrderNumber: "ORD-1"}}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	order, err := svc.GetOrder(context.Background(), id.String())
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order.OrderNumber != "ORD-1" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if repo.findByIDCalls != 1 || repo.findByNumberCalls != 0 {
		t.Fatalf("uuid ref should hit FindByID, calls: id=%d number=%d", repo.findByIDCalls, repo.findByNumberCalls)
	}
}

func TestServiceGetOrderByNumber(t *testing.T) {
	t.Parallel()

	repo := &stubRepo{byNumber: map[string]*Order{"ORD-99": {OrderNumber: "ORD-99"}}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	order, err := svc.GetOrder(context.Background(), " ORD-99 ")
	if err != nil {
		t.Fatalf("GetOrder: %v", err)
	}
	if order.OrderNumber != "ORD-99" {
		t.Fatalf("unexpected order: %+v", order)
	}
	if repo.findByNumberCalls != 1 {
		t.Fatalf("expected FindByNumber, calls=%d", repo.findByNumberCalls)
	}
}

func TestServiceGetOrderNotFound(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetOrder(context.Background(), "ORD-404")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestServiceGetOrderBlankRef(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetOrder(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceGetOrderDependencyFailure(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{err: errors.New("db gone")})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.GetOrder(context.Background(), "ORD-1")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestServiceListRecent(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{byNumber: map[string]*Order{
		"ORD-1": {OrderNumber: "ORD-1"},
		"ORD-2": {OrderNumber: "ORD-2"},
	}})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	rows, err := svc.ListRecent(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(rows))
	}
}

func TestServiceListRecentDependencyFailure(t *testing.T) {
	t.Parallel()

	svc, err := NewService(&stubRepo{err: errors.New("db down")})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	_, err = svc.ListRecent(context.Background(), 10)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	t.Parallel()

	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error for nil repository")
	}
}
