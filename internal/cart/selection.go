package cart

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Selection maps store-product ids to the quantity a user picked on the
// current inventory page. Quantities are always positive: a zero or blank
// entry is removed, never stored.
type Selection struct {
	quantities map[string]int
}

// NewSelection returns an empty selection.
func NewSelection() *Selection {
	return &Selection{quantities: map[string]int{}}
}

// Set applies a raw quantity input for a store-product. Blank or zero removes
// the entry. Inputs that do not parse as a finite number are ignored and the
// prior value is retained. Valid positive values are floored.
func (s *Selection) Set(storeProductID, raw string) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		delete(s.quantities, storeProductID)
		return
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return
	}
	quantity := int(math.Floor(parsed))
	if quantity <= 0 {
		delete(s.quantities, storeProductID)
		return
	}
	s.quantities[storeProductID] = quantity
}

// Quantity returns the stored quantity for a store-product, zero when absent.
func (s *Selection) Quantity(storeProductID string) int {
	return s.quantities[storeProductID]
}

// Prune drops entries whose ids are not in the visible page, keeping the rest
// untouched. Called whenever pagination, search or filtering swaps the
// underlying product set.
func (s *Selection) Prune(visibleIDs []string) {
	visible := make(map[string]struct{}, len(visibleIDs))
	for _, id := range visibleIDs {
		visible[id] = struct{}{}
	}
	for id := range s.quantities {
		if _, ok := visible[id]; !ok {
			delete(s.quantities, id)
		}
	}
}

// Len reports how many lines are selected.
func (s *Selection) Len() int {
	return len(s.quantities)
}

// Empty reports whether nothing is selected; the quote action is disabled in
// that state.
func (s *Selection) Empty() bool {
	return len(s.quantities) == 0
}

// Clear resets every quantity.
func (s *Selection) Clear() {
	s.quantities = map[string]int{}
}

// Item is one line of a quote request.
type Item struct {
	StoreProductID string `json:"storeProductId"`
	Quantity       int    `json:"quantity"`
}

// Items returns the selection as quote request lines in a deterministic
// order.
func (s *Selection) Items() []Item {
	ids := make([]string, 0, len(s.quantities))
	for id := range s.quantities {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{StoreProductID: id, Quantity: s.quantities[id]})
	}
	return items
}

// FromForm rebuilds a selection from posted qty_<id> form fields, applying the
// same pruning rules as interactive edits.
func FromForm(values map[string][]string) *Selection {
	s := NewSelection()
	for key, vals := range values {
		id, ok := strings.CutPrefix(key, "qty_")
		if !ok || id == "" || len(vals) == 0 {
			continue
		}
		s.Set(id, vals[0])
	}
	return s
}
