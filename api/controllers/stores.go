package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/choppi/admin-web/internal/backend"
	"github.com/choppi/admin-web/internal/cart"
	"github.com/choppi/admin-web/internal/listing"
	pkgerrors "github.com/choppi/admin-web/pkg/errors"
	"github.com/choppi/admin-web/pkg/logger"
	"github.com/choppi/admin-web/web"
)

// StoresPage renders the paginated, searchable stores list. The URL owns the
// list state: page, query and stock filter all round-trip through it.
func StoresPage(stores backend.StoresAPI, defs listing.Defaults, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := listing.Decode(r.URL.Query(), defs)
		view := web.StoresView{
			Base:         baseView(r, "Tiendas"),
			Query:        params.Query,
			InStockOnly:  params.InStockOnly,
			SearchAction: "/stores",
			ToggleURL:    params.WithStockToggle().URL("/stores", defs),
		}

		page, err := stores.List(authContext(r), backend.ListOptions{
			Page:    params.Page,
			Limit:   params.Limit,
			Query:   params.Query,
			InStock: params.InStockOnly,
		})
		if err != nil {
			status, message := publicError(err)
			if logg != nil {
				logg.Error(r.Context(), "stores.list_failed", err)
			}
			view.ErrorMessage = message
			view.Pager = web.PagerView{Page: params.Page, TotalPages: 1}
			rnd.Render(w, r, status, "stores", view)
			return
		}

		view.Stores = make([]web.StoreRow, 0, len(page.Data))
		for _, store := range page.Data {
			row := web.StoreRow{
				ID:        store.ID,
				Name:      store.Name,
				Active:    store.Active(),
				DetailURL: "/stores/" + store.ID,
			}
			if store.Address != nil {
				row.Address = *store.Address
			}
			view.Stores = append(view.Stores, row)
		}
		view.Pager = pagerView(params, page.Meta.Total, "/stores", defs)

		rnd.Render(w, r, http.StatusOK, "stores", view)
	}
}

// StoreDetailPage renders a store with its inventory. A fresh GET always
// starts with an empty selection and no quote.
func StoreDetailPage(stores backend.StoresAPI, products backend.StoreProductsAPI, defs listing.Defaults, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params := listing.Decode(r.URL.Query(), defs)
		view, status := storeDetailView(r, stores, products, defs, params, cart.NewSelection(), logg)
		rnd.Render(w, r, status, "store_detail", view)
	}
}

// StoreQuote recomputes the inventory view for the posted list state, prunes
// the selection to what is visible, and asks the backend to price it. The
// total shown is the backend's verbatim.
func StoreQuote(stores backend.StoresAPI, products backend.StoreProductsAPI, cartAPI backend.CartAPI, defs listing.Defaults, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "bad form", http.StatusBadRequest)
			return
		}
		params := listing.Decode(r.URL.Query(), defs)
		selection := cart.FromForm(r.PostForm)

		view, status := storeDetailView(r, stores, products, defs, params, selection, logg)
		if !view.Found || view.ErrorMessage != "" {
			rnd.Render(w, r, status, "store_detail", view)
			return
		}

		if selection.Empty() {
			view.QuoteError = "Selecciona al menos un producto para cotizar."
			rnd.Render(w, r, http.StatusOK, "store_detail", view)
			return
		}

		items := make([]backend.CartQuoteItem, 0, selection.Len())
		for _, item := range selection.Items() {
			items = append(items, backend.CartQuoteItem{
				StoreProductID: item.StoreProductID,
				Quantity:       item.Quantity,
			})
		}

		quote, err := cartAPI.Quote(authContext(r), items)
		if err != nil {
			quoteStatus, message := publicError(err)
			if logg != nil {
				logg.Error(r.Context(), "cart.quote_failed", err)
			}
			view.QuoteError = message
			rnd.Render(w, r, quoteStatus, "store_detail", view)
			return
		}

		result := &web.QuoteView{Total: web.Money(quote.Total)}
		result.Lines = make([]web.QuoteLineView, 0, len(quote.Items))
		for _, line := range quote.Items {
			result.Lines = append(result.Lines, web.QuoteLineView{
				ProductName: line.Product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   web.Money(line.UnitPrice),
				Subtotal:    web.Money(line.Subtotal),
			})
		}
		view.Quote = result

		rnd.Render(w, r, http.StatusOK, "store_detail", view)
	}
}

// storeDetailView assembles the detail page for one list state. The selection
// is pruned against the visible inventory before quantities are rendered.
func storeDetailView(r *http.Request, stores backend.StoresAPI, products backend.StoreProductsAPI, defs listing.Defaults, params listing.Params, selection *cart.Selection, logg *logger.Logger) (web.StoreDetailView, int) {
	storeID := chi.URLParam(r, "storeID")
	ctx := authContext(r)
	path := "/stores/" + storeID

	view := web.StoreDetailView{
		Base:        baseView(r, "Tienda"),
		Query:       params.Query,
		InStockOnly: params.InStockOnly,
		StoreID:     storeID,
		ToggleURL:   params.WithStockToggle().URL(path, defs),
		FormAction:  params.URL(path, defs),
		ClearURL:    params.URL(path, defs),
	}

	store, err := stores.Get(ctx, storeID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			view.Found = false
			return view, http.StatusNotFound
		}
		status, message := publicError(err)
		if logg != nil {
			logg.Error(r.Context(), "stores.get_failed", err)
		}
		view.Found = true
		view.ErrorMessage = message
		view.Pager = web.PagerView{Page: params.Page, TotalPages: 1}
		return view, status
	}

	view.Found = true
	view.StoreName = store.Name
	view.Active = store.Active()
	view.Title = store.Name
	if store.Address != nil {
		view.StoreAddress = *store.Address
	}

	inventory, err := products.List(ctx, storeID, backend.ListOptions{
		Page:    params.Page,
		Limit:   params.Limit,
		Query:   params.Query,
		InStock: params.InStockOnly,
	})
	if err != nil {
		status, message := publicError(err)
		if logg != nil {
			logg.Error(r.Context(), "inventory.list_failed", err)
		}
		view.ErrorMessage = message
		view.Pager = web.PagerView{Page: params.Page, TotalPages: 1}
		return view, status
	}

	visible := make([]string, 0, len(inventory.Data))
	for _, item := range inventory.Data {
		visible = append(visible, item.ID)
	}
	selection.Prune(visible)
	view.HasSelection = !selection.Empty()

	view.Inventory = make([]web.InventoryRow, 0, len(inventory.Data))
	for _, item := range inventory.Data {
		view.Inventory = append(view.Inventory, web.InventoryRow{
			ID:          item.ID,
			ProductName: item.Product.Name,
			Price:       web.Money(item.Price),
			Stock:       item.Stock,
			InStock:     item.Stock > 0,
			Quantity:    selection.Quantity(item.ID),
		})
	}
	view.Pager = pagerView(params, inventory.Meta.Total, path, defs)

	return view, http.StatusOK
}

// pagerView derives the pager links for a list state from the backend's total.
func pagerView(params listing.Params, total int, path string, defs listing.Defaults) web.PagerView {
	pager := listing.NewPager(params.Page, params.Limit, total)
	view := web.PagerView{Page: pager.Page, TotalPages: pager.TotalPages}
	if pager.HasPrev() {
		view.PrevURL = params.WithPage(pager.PrevPage()).URL(path, defs)
	}
	if pager.HasNext() {
		view.NextURL = params.WithPage(pager.NextPage()).URL(path, defs)
	}
	return view
}
