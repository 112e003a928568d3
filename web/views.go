package web

// Base carries the fields the layout renders on every page.
type Base struct {
	Title     string
	UserEmail string
	Flash     string
}

// LoginView backs the login page, round-tripping the submitted email and the
// post-login destination.
type LoginView struct {
	Base
	Email        string
	Next         string
	FieldErrors  map[string]string
	ErrorMessage string
}

// StoreRow is one row of the stores table.
type StoreRow struct {
	ID        string
	Name      string
	Address   string
	Active    bool
	DetailURL string
}

// PagerView is the slice of pagination state the templates need.
type PagerView struct {
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

// StoresView backs the paginated, searchable stores list.
type StoresView struct {
	Base
	Query        string
	InStockOnly  bool
	Stores       []StoreRow
	Pager        PagerView
	ToggleURL    string
	SearchAction string
	ErrorMessage string
}

// InventoryRow is one store product with its current selection quantity.
type InventoryRow struct {
	ID          string
	ProductName string
	Price       string
	Stock       int
	InStock     bool
	Quantity    int
}

// QuoteLineView is a priced quote line ready for display.
type QuoteLineView struct {
	ProductName string
	Quantity    int
	UnitPrice   string
	Subtotal    string
}

// QuoteView is a rendered cart quote; Total comes from the backend verbatim.
type QuoteView struct {
	Lines []QuoteLineView
	Total string
}

// StoreDetailView backs the store detail page. Found false renders the
// not-found panel instead of the inventory.
type StoreDetailView struct {
	Base
	Found        bool
	StoreID      string
	StoreName    string
	StoreAddress string
	Active       bool
	Query        string
	InStockOnly  bool
	Inventory    []InventoryRow
	Pager        PagerView
	ToggleURL    string
	FormAction   string
	ClearURL     string
	HasSelection bool
	Quote        *QuoteView
	QuoteError   string
	ErrorMessage string
}

// StoreFormView backs the store create/edit form.
type StoreFormView struct {
	ID           string
	Name         string
	Address      string
	FieldErrors  map[string]string
	ErrorMessage string
}

// ProductFormView backs the product create/edit form.
type ProductFormView struct {
	ID           string
	Name         string
	Description  string
	FieldErrors  map[string]string
	ErrorMessage string
}

// AdminView backs the admin page with its store and product forms.
type AdminView struct {
	Base
	StoreForm   StoreFormView
	ProductForm ProductFormView
}

// ErrorView backs the generic error page.
type ErrorView struct {
	Base
	Status  int
	Message string
}
