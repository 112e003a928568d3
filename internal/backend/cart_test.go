package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCartQuoteSendsOnlyProvidedItems(t *testing.T) {
	var gotBody cartQuotePayload
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cart/quote" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(CartQuote{
			Items: []CartQuoteLine{{
				StoreProductID: "sp1",
				Quantity:       2,
				UnitPrice:      decimal.RequireFromString("10.50"),
				Subtotal:       decimal.RequireFromString("21.00"),
				Product:        CartQuoteRef{ID: "p1", Name: "Arroz"},
				Store:          CartQuoteRef{ID: "s1", Name: "Bodega Central"},
			}},
			Total: decimal.RequireFromString("21.00"),
		})
	})

	quote, err := NewCartAPI(client).Quote(context.Background(), []CartQuoteItem{{StoreProductID: "sp1", Quantity: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(gotBody.Items) != 1 || gotBody.Items[0].StoreProductID != "sp1" || gotBody.Items[0].Quantity != 2 {
		t.Fatalf("unexpected request payload %+v", gotBody)
	}
	if !quote.Total.Equal(decimal.RequireFromString("21.00")) {
		t.Fatalf("unexpected total %s", quote.Total)
	}
	if !quote.Items[0].Subtotal.Equal(quote.Items[0].UnitPrice.Mul(decimal.NewFromInt(2))) {
		t.Fatalf("subtotal should be unitPrice*quantity, got %s", quote.Items[0].Subtotal)
	}
}

func TestStoreProductPageDecodesDecimals(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"data": [{"id":"sp1","price":12.9,"stock":4,"storeId":"s1","createdAt":"2026-01-10T08:00:00Z",
				"product":{"id":"p1","name":"Arroz","createdAt":"2026-01-01T00:00:00Z"}}],
			"meta": {"page":1,"limit":20,"total":1}
		}`))
	})

	page, err := NewStoreProductsAPI(client).List(context.Background(), "s1", ListOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Data) != 1 {
		t.Fatalf("expected one row, got %d", len(page.Data))
	}
	if !page.Data[0].Price.Equal(decimal.RequireFromString("12.9")) {
		t.Fatalf("unexpected price %s", page.Data[0].Price)
	}
}
