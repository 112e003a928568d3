package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/choppi/admin-web/internal/backend"
)

func newAdminRouter(t *testing.T, handler http.HandlerFunc) *chi.Mux {
	t.Helper()
	client := newBackendClient(t, handler)
	stores := backend.NewStoresAPI(client)
	products := backend.NewProductsAPI(client)
	rnd := newTestRenderer(t)

	router := chi.NewRouter()
	router.Get("/admin", AdminPage(stores, products, rnd, nil))
	router.Post("/admin/stores", CreateStore(stores, rnd, nil))
	router.Post("/admin/stores/{storeID}", UpdateStore(stores, rnd, nil))
	router.Post("/admin/stores/{storeID}/delete", DeleteStore(stores, rnd, nil))
	router.Post("/admin/products", CreateProduct(products, rnd, nil))
	router.Post("/admin/products/{productID}", UpdateProduct(products, rnd, nil))
	router.Post("/admin/products/{productID}/delete", DeleteProduct(products, rnd, nil))
	return router
}

func TestAdminPagePrefillsStoreForm(t *testing.T) {
	router := newAdminRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/stores/s1" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(backend.Store{ID: "s1", Name: "Bodega Uno", Address: addr("Calle 1")})
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/admin?store=s1", nil), "tok1", "a@b.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `value="Bodega Uno"`) || !strings.Contains(body, `value="Calle 1"`) {
		t.Fatal("expected store form prefilled")
	}
	if !strings.Contains(body, `action="/admin/stores/s1"`) {
		t.Fatal("expected edit action")
	}
}

func TestAdminPageShowsToast(t *testing.T) {
	router := newAdminRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("plain admin page needs no backend call")
	})

	req := asUser(httptest.NewRequest(http.MethodGet, "/admin?toast=Tienda+creada", nil), "tok1", "a@b.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), "Tienda creada") {
		t.Fatal("expected toast to render")
	}
}

func TestCreateStoreSuccess(t *testing.T) {
	var gotInput backend.CreateStoreInput
	router := newAdminRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/stores" {
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotInput)
		json.NewEncoder(w).Encode(backend.Store{ID: "s9", Name: gotInput.Name})
	})

	form := url.Values{"name": {"Bodega Nueva"}, "address": {"Calle 9"}}
	req := asUser(postForm("/admin/stores", form), "tok1", "a@b.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/admin?store=s9&toast=Tienda+creada" {
		t.Fatalf("unexpected redirect %q", got)
	}
	if gotInput.Name != "Bodega Nueva" || gotInput.Address != "Calle 9" {
		t.Fatalf("unexpected payload %+v", gotInput)
	}
}

func TestCreateStoreValidation(t *testing.T) {
	router := newAdminRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("invalid form must not reach the backend")
	})

	req := asUser(postForm("/admin/stores", url.Values{"name": {"B"}}), "tok1", "a@b.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "must be at least 2 characters") {
		t.Fatal("expected name field error")
	}
	if !strings.Contains(body, `value="B"`) {
		t.Fatal("expected submitted name to round-trip")
	}
}

func TestUpdateStoreSendsPayload(t *testing.T) {
	var gotInput backend.UpdateStoreInput
	router := newAdminRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/stores/s1" {
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotInput)
		json.NewEncoder(w).Encode(backend.Store{ID: "s1"})
	})

	form := url.Values{"name": {"Renombrada"}, "address": {"Calle 2"}}
	req := asUser(postForm("/admin/stores/s1", form), "tok1", "a@b.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotInput.Name == nil || *gotInput.Name != "Renombrada" {
		t.Fatalf("unexpected payload %+v", gotInput)
	}
	if gotInput.Address == nil || *gotInput.Address != "Calle 2" {
		t.Fatalf("unexpected payload %+v", gotInput)
	}
}

func TestDeleteStoreRedirects(t *testing.T) {
	router := newAdminRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/stores/s1" {
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		json.NewEncoder(w).Encode(backend.DeleteStoreResponse{Success: true})
	})

	req := asUser(postForm("/admin/stores/s1/delete", nil), "tok1", "a@b.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Location"); got != "/admin?toast=Tienda+eliminada" {
		t.Fatalf("unexpected redirect %q", got)
	}
}

func TestCreateProductBackendValidationSurfaces(t *testing.T) {
	router := newAdminRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":["name already exists"]}`))
	})

	req := asUser(postForm("/admin/products", url.Values{"name": {"Arroz"}}), "tok1", "a@b.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "name already exists") {
		t.Fatal("expected backend validation message")
	}
}

func TestDeleteProductRedirects(t *testing.T) {
	router := newAdminRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/products/p1" {
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	req := asUser(postForm("/admin/products/p1/delete", nil), "tok1", "a@b.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Location"); got != "/admin?toast=Producto+eliminado" {
		t.Fatalf("unexpected redirect %q", got)
	}
}
