package cart

import (
	"testing"

	"github.com/shopspring/decimal"
)

func product(id string, price int64) Product {
	return Product{
		ID:       id,
		Name:     "Product " + id,
		Price:    decimal.NewFromInt(price),
		Category: "misc",
		Stock:    10,
	}
}

func assertInvariants(t *testing.T, state State) {
	t.Helper()

	qty := 0
	total := decimal.Zero
	seen := map[string]struct{}{}
	for _, line := range state.Lines {
		if line.Quantity < 1 {
			t.Fatalf("line %s has quantity %d", line.Product.ID, line.Quantity)
		}
		if _, dup := seen[line.Product.ID]; dup {
			t.Fatalf("duplicate line for product %s", line.Product.ID)
		}
		seen[line.Product.ID] = struct{}{}
		qty += line.Quantity
		total = total.Add(line.Subtotal())
	}
	if state.TotalQuantity != qty {
		t.Fatalf("totalQuantity %d != derived %d", state.TotalQuantity, qty)
	}
	if !state.TotalPrice.Equal(total) {
		t.Fatalf("totalPrice %s != derived %s", state.TotalPrice, total)
	}
}

func TestReduceScenario(t *testing.T) {
	t.Parallel()

	state := EmptyState()

	state = Reduce(state, AddItemAction{Product: product("A", 100), Quantity: 2})
	assertInvariants(t, state)
	if state.TotalQuantity != 2 || !state.TotalPrice.Equal(decimal.NewFromInt(200)) {
		t.Fatalf("after add A x2: qty=%d total=%s", state.TotalQuantity, state.TotalPrice)
	}

	state = Reduce(state, AddItemAction{Product: product("B", 50), Quantity: 1})
	assertInvariants(t, state)
	if state.TotalQuantity != 3 || !state.TotalPrice.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("after add B: qty=%d total=%s", state.TotalQuantity, state.TotalPrice)
	}

	state = Reduce(state, UpdateQuantityAction{ProductID: "A", Quantity: 1})
	assertInvariants(t, state)
	if state.TotalQuantity != 2 || !state.TotalPrice.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("after update A=1: qty=%d total=%s", state.TotalQuantity, state.TotalPrice)
	}

	state = Reduce(state, RemoveItemAction{ProductID: "B"})
	assertInvariants(t, state)
	if state.TotalQuantity != 1 || !state.TotalPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("after remove B: qty=%d total=%s", state.TotalQuantity, state.TotalPrice)
	}

	state = Reduce(state, ClearAction{})
	assertInvariants(t, state)
	if !state.IsEmpty() || state.TotalQuantity != 0 || !state.TotalPrice.Equal(decimal.Zero) {
		t.Fatalf("after clear: %+v", state)
	}
}

func TestAddIsAdditiveUpdateIsAbsolute(t *testing.T) {
	t.Parallel()

	p := product("A", 10)
	state := Reduce(EmptyState(), AddItemAction{Product: p, Quantity: 2})
	state = Reduce(state, AddItemAction{Product: p, Quantity: 3})
	if got := state.Quantity("A"); got != 5 {
		t.Fatalf("add should increment, got quantity %d", got)
	}

	state = Reduce(state, UpdateQuantityAction{ProductID: "A", Quantity: 3})
	if got := state.Quantity("A"); got != 3 {
		t.Fatalf("update should set absolute quantity, got %d", got)
	}
	assertInvariants(t, state)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	t.Parallel()

	state := Reduce(EmptyState(), AddItemAction{Product: product("A", 10), Quantity: 2})
	state = Reduce(state, UpdateQuantityAction{ProductID: "A", Quantity: 0})
	if state.Contains("A") {
		t.Fatal("expected line removed at quantity 0")
	}
	if !state.IsEmpty() {
		t.Fatalf("expected empty cart, got %+v", state)
	}

	// the follow-up remove is a no-op
	after := Reduce(state, RemoveItemAction{ProductID: "A"})
	if len(after.Lines) != 0 || after.TotalQuantity != 0 {
		t.Fatalf("remove on absent id should be a no-op, got %+v", after)
	}
}

func TestRemoveUnknownIDReturnsStateUnchanged(t *testing.T) {
	t.Parallel()

	state := Reduce(EmptyState(), AddItemAction{Product: product("A", 10), Quantity: 1})
	after := Reduce(state, RemoveItemAction{ProductID: "nope"})
	if after.TotalQuantity != state.TotalQuantity || len(after.Lines) != len(state.Lines) {
		t.Fatalf("expected unchanged state, got %+v", after)
	}
}

func TestClearIsIdempotent(t *testing.T) {
	t.Parallel()

	state := Reduce(EmptyState(), AddItemAction{Product: product("A", 10), Quantity: 4})
	once := Reduce(state, ClearAction{})
	twice := Reduce(once, ClearAction{})
	if !once.IsEmpty() || !twice.IsEmpty() {
		t.Fatal("clear should always yield empty state")
	}
	if once.TotalQuantity != twice.TotalQuantity || !once.TotalPrice.Equal(twice.TotalPrice) {
		t.Fatalf("clear applied twice diverged: %+v vs %+v", once, twice)
	}
}

func TestReaddedProductGoesToTheEnd(t *testing.T) {
	t.Parallel()

	state := EmptyState()
	state = Reduce(state, AddItemAction{Product: product("A", 10), Quantity: 1})
	state = Reduce(state, AddItemAction{Product: product("B", 20), Quantity: 1})
	state = Reduce(state, RemoveItemAction{ProductID: "A"})
	state = Reduce(state, AddItemAction{Product: product("A", 10), Quantity: 1})

	if len(state.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(state.Lines))
	}
	if state.Lines[0].Product.ID != "B" || state.Lines[1].Product.ID != "A" {
		t.Fatalf("expected insertion order B,A got %s,%s", state.Lines[0].Product.ID, state.Lines[1].Product.ID)
	}
}

func TestAddClampsQuantityToOne(t *testing.T) {
	t.Parallel()

	state := Reduce(EmptyState(), AddItemAction{Product: product("A", 10), Quantity: 0})
	if got := state.Quantity("A"); got != 1 {
		t.Fatalf("expected quantity clamped to 1, got %d", got)
	}
	assertInvariants(t, state)
}

func TestLoadReplacesStateWholesale(t *testing.T) {
	t.Parallel()

	current := Reduce(EmptyState(), AddItemAction{Product: product("X", 5), Quantity: 9})
	snapshot := State{Lines: []Line{
		{Product: product("A", 100), Quantity: 2},
		{Product: product("B", 50), Quantity: 1},
	}}

	state := Reduce(current, LoadAction{Snapshot: snapshot})
	assertInvariants(t, state)
	if state.Contains("X") {
		t.Fatal("load should replace, not merge")
	}
	if state.TotalQuantity != 3 || !state.TotalPrice.Equal(decimal.NewFromInt(250)) {
		t.Fatalf("load should re-derive totals: qty=%d total=%s", state.TotalQuantity, state.TotalPrice)
	}
}

func TestLoadMalformedSnapshotFallsBackToEmpty(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		snapshot State
	}{
		{"duplicate ids", State{Lines: []Line{
			{Product: product("A", 10), Quantity: 1},
			{Product: product("A", 10), Quantity: 2},
		}}},
		{"zero quantity", State{Lines: []Line{{Product: product("A", 10), Quantity: 0}}}},
		{"missing id", State{Lines: []Line{{Product: Product{Price: decimal.NewFromInt(1)}, Quantity: 1}}}},
		{"negative price", State{Lines: []Line{{Product: product("A", -1), Quantity: 1}}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := Reduce(EmptyState(), LoadAction{Snapshot: tc.snapshot})
			if !state.IsEmpty() {
				t.Fatalf("expected fallback to empty, got %+v", state)
			}
		})
	}
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	original := Reduce(EmptyState(), AddItemAction{Product: product("A", 10), Quantity: 2})
	_ = Reduce(original, UpdateQuantityAction{ProductID: "A", Quantity: 7})
	if got := original.Quantity("A"); got != 2 {
		t.Fatalf("input state mutated: quantity %d", got)
	}
}
