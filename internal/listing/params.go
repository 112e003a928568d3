package listing

import (
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Params is the canonical list state shared by the stores and inventory views.
// The URL owns this state: every field round-trips through Encode/Decode so a
// reloaded or shared link reproduces the exact same view.
type Params struct {
	Page        int
	Limit       int
	Query       string
	InStockOnly bool
}

// Defaults carries the per-view fallback values used when a parameter is
// absent or unparseable.
type Defaults struct {
	Limit int
}

// StoresDefaults matches the stores list view.
var StoresDefaults = Defaults{Limit: 10}

// InventoryDefaults matches the store inventory view.
var InventoryDefaults = Defaults{Limit: 20}

var truthy = map[string]bool{
	"true": true,
	"1":    true,
	"yes":  true,
	"on":   true,
}

// Decode parses raw query values into typed list state. Invalid numbers fall
// back to defaults rather than erroring: no untyped value crosses this
// boundary.
func Decode(values url.Values, defs Defaults) Params {
	return Params{
		Page:        positiveInt(values.Get("page"), 1),
		Limit:       positiveInt(values.Get("limit"), defs.Limit),
		Query:       strings.TrimSpace(values.Get("q")),
		InStockOnly: truthy[strings.ToLower(strings.TrimSpace(values.Get("inStock")))],
	}
}

// Encode renders the state as a minimal query string: parameters equal to
// their defaults are omitted so canonical URLs stay short.
func (p Params) Encode(defs Defaults) url.Values {
	values := url.Values{}
	if p.Page > 1 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit != defs.Limit {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Query != "" {
		values.Set("q", p.Query)
	}
	if p.InStockOnly {
		values.Set("inStock", "true")
	}
	return values
}

// URL joins the encoded state onto a path, omitting the "?" when the encoding
// is empty.
func (p Params) URL(path string, defs Defaults) string {
	encoded := p.Encode(defs).Encode()
	if encoded == "" {
		return path
	}
	return path + "?" + encoded
}

// WithPage returns the state moved to the requested page, preserving query and
// filter. No clamping happens here: an out-of-range page is the backend's to
// answer with an empty data slice.
func (p Params) WithPage(page int) Params {
	next := p
	next.Page = page
	return next
}

// WithQuery returns the state reset to page 1 with the trimmed query text,
// preserving the stock filter.
func (p Params) WithQuery(query string) Params {
	next := p
	next.Page = 1
	next.Query = strings.TrimSpace(query)
	return next
}

// WithStockToggle returns the state reset to page 1 with the stock filter
// inverted, preserving the query.
func (p Params) WithStockToggle() Params {
	next := p
	next.Page = 1
	next.InStockOnly = !p.InStockOnly
	return next
}

func positiveInt(raw string, fallback int) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return fallback
	}
	value := int(parsed)
	if value <= 0 || float64(value) != parsed {
		return fallback
	}
	return value
}
