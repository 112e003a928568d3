package backend

import (
	"context"
	"net/url"
)

// ProductsAPI wraps the backend's global product catalog endpoints.
type ProductsAPI struct {
	c *Client
}

// NewProductsAPI builds the products resource client.
func NewProductsAPI(c *Client) ProductsAPI {
	return ProductsAPI{c: c}
}

func (p ProductsAPI) Get(ctx context.Context, id string) (*Product, error) {
	var out Product
	if err := p.c.get(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p ProductsAPI) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	var out Product
	if err := p.c.post(ctx, "/products", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p ProductsAPI) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	var out Product
	if err := p.c.put(ctx, "/products/"+url.PathEscape(id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (p ProductsAPI) Delete(ctx context.Context, id string) error {
	return p.c.delete(ctx, "/products/"+url.PathEscape(id), nil)
}
