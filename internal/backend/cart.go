package backend

import "context"

// CartAPI wraps the backend's quote endpoint. Quotes are tentative price
// breakdowns, never persisted orders.
type CartAPI struct {
	c *Client
}

// NewCartAPI builds the cart resource client.
func NewCartAPI(c *Client) CartAPI {
	return CartAPI{c: c}
}

type cartQuotePayload struct {
	Items []CartQuoteItem `json:"items"`
}

func (a CartAPI) Quote(ctx context.Context, items []CartQuoteItem) (*CartQuote, error) {
	var out CartQuote
	if err := a.c.post(ctx, "/cart/quote", cartQuotePayload{Items: items}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
