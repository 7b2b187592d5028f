package cart

import (
	"github.com/shopspring/decimal"
)

// Product is the immutable snapshot of a catalog product taken at the moment
// it enters the cart. Later catalog changes never reach existing lines.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Featured    bool            `json:"featured"`
}

// Line pairs a product snapshot with a quantity. A line never persists with
// quantity below 1; transitions that would take it there remove it instead.
type Line struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// Subtotal returns price times quantity for the line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// State is the cart at one instant: an insertion-ordered sequence of lines
// unique by product id, plus cached projections of the totals. The totals are
// always recomputed from the lines, never adjusted incrementally.
type State struct {
	Lines         []Line
	TotalQuantity int
	TotalPrice    decimal.Decimal
}

// EmptyState returns the zero cart.
func EmptyState() State {
	return State{TotalPrice: decimal.Zero}
}

// IsEmpty reports whether the cart has no lines.
func (s State) IsEmpty() bool {
	return len(s.Lines) == 0
}

// Contains reports whether the product id is present in the cart.
func (s State) Contains(productID string) bool {
	return s.Quantity(productID) > 0
}

// Quantity returns the quantity held for the product id, or 0 when absent.
func (s State) Quantity(productID string) int {
	for _, line := range s.Lines {
		if line.Product.ID == productID {
			return line.Quantity
		}
	}
	return 0
}

// recompute folds the lines into a fresh state with derived totals.
func recompute(lines []Line) State {
	state := State{Lines: lines, TotalPrice: decimal.Zero}
	for _, line := range lines {
		state.TotalQuantity += line.Quantity
		state.TotalPrice = state.TotalPrice.Add(line.Subtotal())
	}
	return state
}

// cloneLines copies the line slice so transitions never alias prior states.
func cloneLines(lines []Line) []Line {
	if len(lines) == 0 {
		return nil
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return out
}
