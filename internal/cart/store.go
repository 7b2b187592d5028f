package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Store keeps one named slot in durable storage synchronized with a session's
// cart. Load reports absence instead of failing when the slot is missing or
// malformed; callers treat absence as an empty cart.
type Store interface {
	Load(ctx context.Context, sessionID string) (State, bool, error)
	Save(ctx context.Context, sessionID string, state State) error
	Clear(ctx context.Context, sessionID string) error
}

// persistedItem is the canonical serialized line: product fields flattened
// with the quantity inline.
type persistedItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
	Quantity    int             `json:"quantity"`
}

type persistedCart struct {
	Items      []persistedItem `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func encodeState(state State) persistedCart {
	items := make([]persistedItem, 0, len(state.Lines))
	for _, line := range state.Lines {
		items = append(items, persistedItem{
			ID:          line.Product.ID,
			Name:        line.Product.Name,
			Description: line.Product.Description,
			Price:       line.Product.Price,
			Category:    line.Product.Category,
			Image:       line.Product.Image,
			Stock:       line.Product.Stock,
			Featured:    line.Product.Featured,
			Quantity:    line.Quantity,
		})
	}
	return persistedCart{
		Items:      items,
		TotalItems: state.TotalQuantity,
		TotalPrice: state.TotalPrice,
	}
}

// decodeState rebuilds a State from the persisted shape. The stored totals are
// ignored; the projections are re-derived from the lines.
func decodeState(p persistedCart) (State, error) {
	lines := make([]Line, 0, len(p.Items))
	for _, item := range p.Items {
		lines = append(lines, Line{
			Product: Product{
				ID:          item.ID,
				Name:        item.Name,
				Description: item.Description,
				Price:       item.Price,
				Category:    item.Category,
				Image:       item.Image,
				Stock:       item.Stock,
				Featured:    item.Featured,
			},
			Quantity: item.Quantity,
		})
	}
	candidate := State{Lines: lines}
	if !validSnapshot(candidate) {
		return EmptyState(), fmt.Errorf("persisted cart violates the data model")
	}
	return recompute(lines), nil
}

type kvStore interface {
	GetOptional(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

// RedisStore persists cart slots in Redis under bitstore:cart:<session-id>.
type RedisStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewRedisStore builds the durable slot adapter. A zero TTL keeps slots until
// explicitly cleared.
func NewRedisStore(kv kvStore, ttl time.Duration) (*RedisStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("kv store required")
	}
	return &RedisStore{kv: kv, ttl: ttl}, nil
}

// Load reads the session's slot. Missing keys and malformed payloads both
// report absence; only transport failures surface as errors.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (State, bool, error) {
	raw, found, err := s.kv.GetOptional(ctx, s.kv.CartKey(sessionID))
	if err != nil {
		return EmptyState(), false, fmt.Errorf("read cart slot: %w", err)
	}
	if !found {
		return EmptyState(), false, nil
	}

	var payload persistedCart
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return EmptyState(), false, fmt.Errorf("parse cart slot: %w", err)
	}
	state, err := decodeState(payload)
	if err != nil {
		return EmptyState(), false, err
	}
	return state, true, nil
}

// Save overwrites the session's slot with the serialized state.
func (s *RedisStore) Save(ctx context.Context, sessionID string, state State) error {
	payload, err := json.Marshal(encodeState(state))
	if err != nil {
		return fmt.Errorf("serialize cart: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return fmt.Errorf("write cart slot: %w", err)
	}
	return nil
}

// Clear removes the session's slot.
func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(sessionID)); err != nil {
		return fmt.Errorf("delete cart slot: %w", err)
	}
	return nil
}
