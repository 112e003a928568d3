package controllers

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/choppi/admin-web/api/validators"
	"github.com/choppi/admin-web/internal/backend"
	"github.com/choppi/admin-web/pkg/logger"
	"github.com/choppi/admin-web/web"
)

type storeForm struct {
	Name    string `form:"name" validate:"required,min=2,max=120"`
	Address string `form:"address" validate:"omitempty,max=240"`
}

type productForm struct {
	Name        string `form:"name" validate:"required,min=2,max=120"`
	Description string `form:"description" validate:"omitempty,max=500"`
}

// AdminPage renders the management forms. Passing ?store=<id> or
// ?product=<id> preloads the matching entity for editing.
func AdminPage(stores backend.StoresAPI, products backend.ProductsAPI, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := authContext(r)
		view := web.AdminView{Base: baseView(r, "Administración")}

		if id := r.URL.Query().Get("store"); id != "" {
			store, err := stores.Get(ctx, id)
			if err != nil {
				_, message := publicError(err)
				view.StoreForm.ErrorMessage = message
			} else {
				view.StoreForm.ID = store.ID
				view.StoreForm.Name = store.Name
				if store.Address != nil {
					view.StoreForm.Address = *store.Address
				}
			}
		}

		if id := r.URL.Query().Get("product"); id != "" {
			product, err := products.Get(ctx, id)
			if err != nil {
				_, message := publicError(err)
				view.ProductForm.ErrorMessage = message
			} else {
				view.ProductForm.ID = product.ID
				view.ProductForm.Name = product.Name
				if product.Description != nil {
					view.ProductForm.Description = *product.Description
				}
			}
		}

		rnd.Render(w, r, http.StatusOK, "admin", view)
	}
}

// CreateStore handles the new-store form.
func CreateStore(stores backend.StoresAPI, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, view, ok := parseStoreForm(w, r, rnd, "")
		if !ok {
			return
		}

		store, err := stores.Create(authContext(r), backend.CreateStoreInput{
			Name:    form.Name,
			Address: form.Address,
		})
		if err != nil {
			renderStoreFormError(w, r, rnd, view, err, logg)
			return
		}

		redirectAdmin(w, r, url.Values{"store": {store.ID}, "toast": {"Tienda creada"}})
	}
}

// UpdateStore handles the edit-store form.
func UpdateStore(stores backend.StoresAPI, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID := chi.URLParam(r, "storeID")
		form, view, ok := parseStoreForm(w, r, rnd, storeID)
		if !ok {
			return
		}

		input := backend.UpdateStoreInput{Name: &form.Name}
		if form.Address != "" {
			input.Address = &form.Address
		}
		if _, err := stores.Update(authContext(r), storeID, input); err != nil {
			renderStoreFormError(w, r, rnd, view, err, logg)
			return
		}

		redirectAdmin(w, r, url.Values{"store": {storeID}, "toast": {"Tienda actualizada"}})
	}
}

// DeleteStore soft-deletes a store; it stays fetchable but inactive.
func DeleteStore(stores backend.StoresAPI, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storeID := chi.URLParam(r, "storeID")
		if _, err := stores.Delete(authContext(r), storeID); err != nil {
			view := web.AdminView{Base: baseView(r, "Administración")}
			view.StoreForm.ID = storeID
			renderStoreFormError(w, r, rnd, view, err, logg)
			return
		}
		redirectAdmin(w, r, url.Values{"toast": {"Tienda eliminada"}})
	}
}

// CreateProduct handles the new-product form.
func CreateProduct(products backend.ProductsAPI, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, view, ok := parseProductForm(w, r, rnd, "")
		if !ok {
			return
		}

		product, err := products.Create(authContext(r), backend.CreateProductInput{
			Name:        form.Name,
			Description: form.Description,
		})
		if err != nil {
			renderProductFormError(w, r, rnd, view, err, logg)
			return
		}

		redirectAdmin(w, r, url.Values{"product": {product.ID}, "toast": {"Producto creado"}})
	}
}

// UpdateProduct handles the edit-product form.
func UpdateProduct(products backend.ProductsAPI, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")
		form, view, ok := parseProductForm(w, r, rnd, productID)
		if !ok {
			return
		}

		input := backend.UpdateProductInput{Name: &form.Name}
		if form.Description != "" {
			input.Description = &form.Description
		}
		if _, err := products.Update(authContext(r), productID, input); err != nil {
			renderProductFormError(w, r, rnd, view, err, logg)
			return
		}

		redirectAdmin(w, r, url.Values{"product": {productID}, "toast": {"Producto actualizado"}})
	}
}

// DeleteProduct removes a product from the catalog.
func DeleteProduct(products backend.ProductsAPI, rnd *web.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID := chi.URLParam(r, "productID")
		if err := products.Delete(authContext(r), productID); err != nil {
			view := web.AdminView{Base: baseView(r, "Administración")}
			view.ProductForm.ID = productID
			renderProductFormError(w, r, rnd, view, err, logg)
			return
		}
		redirectAdmin(w, r, url.Values{"toast": {"Producto eliminado"}})
	}
}

// parseStoreForm decodes and validates the posted store form, re-rendering
// with inline errors when it fails. ok false means a response was written.
func parseStoreForm(w http.ResponseWriter, r *http.Request, rnd *web.Renderer, storeID string) (storeForm, web.AdminView, bool) {
	view := web.AdminView{Base: baseView(r, "Administración")}
	view.StoreForm.ID = storeID

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return storeForm{}, view, false
	}
	form := storeForm{
		Name:    r.PostFormValue("name"),
		Address: r.PostFormValue("address"),
	}
	view.StoreForm.Name = form.Name
	view.StoreForm.Address = form.Address

	if fields := validators.CheckForm(form); fields != nil {
		view.StoreForm.FieldErrors = fields
		rnd.Render(w, r, http.StatusUnprocessableEntity, "admin", view)
		return form, view, false
	}
	return form, view, true
}

func parseProductForm(w http.ResponseWriter, r *http.Request, rnd *web.Renderer, productID string) (productForm, web.AdminView, bool) {
	view := web.AdminView{Base: baseView(r, "Administración")}
	view.ProductForm.ID = productID

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return productForm{}, view, false
	}
	form := productForm{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
	}
	view.ProductForm.Name = form.Name
	view.ProductForm.Description = form.Description

	if fields := validators.CheckForm(form); fields != nil {
		view.ProductForm.FieldErrors = fields
		rnd.Render(w, r, http.StatusUnprocessableEntity, "admin", view)
		return form, view, false
	}
	return form, view, true
}

func renderStoreFormError(w http.ResponseWriter, r *http.Request, rnd *web.Renderer, view web.AdminView, err error, logg *logger.Logger) {
	status, message := publicError(err)
	if logg != nil {
		logg.Error(r.Context(), "admin.store_op_failed", err)
	}
	view.StoreForm.ErrorMessage = message
	rnd.Render(w, r, status, "admin", view)
}

func renderProductFormError(w http.ResponseWriter, r *http.Request, rnd *web.Renderer, view web.AdminView, err error, logg *logger.Logger) {
	status, message := publicError(err)
	if logg != nil {
		logg.Error(r.Context(), "admin.product_op_failed", err)
	}
	view.ProductForm.ErrorMessage = message
	rnd.Render(w, r, status, "admin", view)
}

func redirectAdmin(w http.ResponseWriter, r *http.Request, params url.Values) {
	target := "/admin"
	if encoded := params.Encode(); encoded != "" {
		target += "?" + encoded
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
