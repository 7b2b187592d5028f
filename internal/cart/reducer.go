package cart

// Action is a discrete cart transition request.
type Action interface {
	name() string
}

// LoadAction replaces the state wholesale. It is dispatched once at session
// hydration; a snapshot that violates the data model falls back to empty.
type LoadAction struct {
	Snapshot State
}

// AddItemAction merges a product snapshot into the cart. When the product id
// is already present its quantity is incremented; otherwise a new line is
// appended. Add is additive, unlike UpdateQuantityAction.
type AddItemAction struct {
	Product  Product
	Quantity int
}

// RemoveItemAction drops the line for the product id entirely. A no-op when
// the id is absent.
type RemoveItemAction struct {
	ProductID string
}

// UpdateQuantityAction sets the line's quantity to an absolute value.
// A quantity of zero or below removes the line, same as RemoveItemAction.
type UpdateQuantityAction struct {
	ProductID string
	Quantity  int
}

// ClearAction resets the cart to empty. Idempotent.
type ClearAction struct{}

func (LoadAction) name() string           { return "load" }
func (AddItemAction) name() string        { return "add_item" }
func (RemoveItemAction) name() string     { return "remove_item" }
func (UpdateQuantityAction) name() string { return "update_quantity" }
func (ClearAction) name() string          { return "clear" }

// Reduce is the pure transition function of the cart state machine. It never
// performs I/O, and the returned state's totals are always re-derived by
// folding over the lines.
func Reduce(state State, action Action) State {
	switch a := action.(type) {
	case LoadAction:
		return reduceLoad(a)
	case AddItemAction:
		return reduceAdd(state, a)
	case RemoveItemAction:
		return reduceRemove(state, a.ProductID)
	case UpdateQuantityAction:
		return reduceUpdateQuantity(state, a)
	case ClearAction:
		return EmptyState()
	default:
		return state
	}
}

func reduceLoad(a LoadAction) State {
	if !validSnapshot(a.Snapshot) {
		return EmptyState()
	}
	return recompute(cloneLines(a.Snapshot.Lines))
}

func reduceAdd(state State, a AddItemAction) State {
	qty := a.Quantity
	if qty < 1 {
		qty = 1
	}

	lines := cloneLines(state.Lines)
	merged := false
	for i := range lines {
		if lines[i].Product.ID == a.Product.ID {
			lines[i].Quantity += qty
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, Line{Product: a.Product, Quantity: qty})
	}
	return recompute(lines)
}

func reduceRemove(state State, productID string) State {
	lines := make([]Line, 0, len(state.Lines))
	for _, line := range state.Lines {
		if line.Product.ID == productID {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) == len(state.Lines) {
		return state
	}
	return recompute(lines)
}

func reduceUpdateQuantity(state State, a UpdateQuantityAction) State {
	if a.Quantity <= 0 {
		return reduceRemove(state, a.ProductID)
	}

	lines := cloneLines(state.Lines)
	for i := range lines {
		if lines[i].Product.ID == a.ProductID {
			lines[i].Quantity = a.Quantity
			return recompute(lines)
		}
	}
	return state
}

// validSnapshot checks the loaded state against the data model: unique product
// ids, quantities of at least 1 and non-negative prices.
func validSnapshot(s State) bool {
	seen := make(map[string]struct{}, len(s.Lines))
	for _, line := range s.Lines {
		if line.Product.ID == "" || line.Quantity < 1 {
			return false
		}
		if line.Product.Price.IsNegative() {
			return false
		}
		if _, dup := seen[line.Product.ID]; dup {
			return false
		}
		seen[line.Product.ID] = struct{}{}
	}
	return true
}
