package backend

import (
	"context"
	"net/url"
	"strconv"
)

// ListOptions carries the query parameters every list endpoint understands.
type ListOptions struct {
	Page    int
	Limit   int
	Query   string
	InStock bool
}

func (o ListOptions) values() url.Values {
	values := url.Values{}
	if o.Page > 0 {
		values.Set("page", strconv.Itoa(o.Page))
	}
	if o.Limit > 0 {
		values.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Query != "" {
		values.Set("q", o.Query)
	}
	if o.InStock {
		values.Set("inStock", "true")
	}
	return values
}

// StoresAPI wraps the backend's store CRUD endpoints.
type StoresAPI struct {
	c *Client
}

// NewStoresAPI builds the stores resource client.
func NewStoresAPI(c *Client) StoresAPI {
	return StoresAPI{c: c}
}

func (s StoresAPI) List(ctx context.Context, opts ListOptions) (*StorePage, error) {
	var out StorePage
	if err := s.c.get(ctx, "/stores", opts.values(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s StoresAPI) Get(ctx context.Context, id string) (*Store, error) {
	var out Store
	if err := s.c.get(ctx, "/stores/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s StoresAPI) Create(ctx context.Context, input CreateStoreInput) (*Store, error) {
	var out Store
	if err := s.c.post(ctx, "/stores", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s StoresAPI) Update(ctx context.Context, id string, input UpdateStoreInput) (*Store, error) {
	var out Store
	if err := s.c.put(ctx, "/stores/"+url.PathEscape(id), input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s StoresAPI) Delete(ctx context.Context, id string) (*DeleteStoreResponse, error) {
	var out DeleteStoreResponse
	if err := s.c.delete(ctx, "/stores/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}
