package backend

import (
	"context"
	"net/url"
)

// StoreProductsAPI wraps the per-store inventory endpoints.
type StoreProductsAPI struct {
	c *Client
}

// NewStoreProductsAPI builds the store-products resource client.
func NewStoreProductsAPI(c *Client) StoreProductsAPI {
	return StoreProductsAPI{c: c}
}

func (s StoreProductsAPI) List(ctx context.Context, storeID string, opts ListOptions) (*StoreProductPage, error) {
	var out StoreProductPage
	path := "/stores/" + url.PathEscape(storeID) + "/products"
	if err := s.c.get(ctx, path, opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s StoreProductsAPI) Create(ctx context.Context, storeID string, input CreateStoreProductInput) (*StoreProduct, error) {
	var out StoreProduct
	path := "/stores/" + url.PathEscape(storeID) + "/products"
	if err := s.c.post(ctx, path, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s StoreProductsAPI) Update(ctx context.Context, storeID, storeProductID string, input UpdateStoreProductInput) (*StoreProduct, error) {
	var out StoreProduct
	path := "/stores/" + url.PathEscape(storeID) + "/products/" + url.PathEscape(storeProductID)
	if err := s.c.put(ctx, path, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s StoreProductsAPI) Delete(ctx context.Context, storeID, storeProductID string) error {
	path := "/stores/" + url.PathEscape(storeID) + "/products/" + url.PathEscape(storeProductID)
	return s.c.delete(ctx, path, nil)
}
