package backend

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the authenticated account attached to a session.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// AuthResponse is what the backend returns on login/register.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// Profile is the shape of GET /auth/profile.
type Profile struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// Store is a catalog store. A non-nil DeletedAt marks it soft-deleted: still
// fetchable by id but inactive.
type Store struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Address   *string    `json:"address,omitempty"`
	OwnerID   string     `json:"ownerId"`
	CreatedAt time.Time  `json:"createdAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// Active reports whether the store has not been soft-deleted.
func (s Store) Active() bool {
	return s.DeletedAt == nil
}

type CreateStoreInput struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
}

type UpdateStoreInput struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
}

type DeleteStoreResponse struct {
	Success bool `json:"success"`
}

// Product is a global catalog entity, not store-scoped.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateProductInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type UpdateProductInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// StoreProduct binds a product to a store with store-specific price and stock.
type StoreProduct struct {
	ID        string          `json:"id"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Product   Product         `json:"product"`
	StoreID   string          `json:"storeId"`
	CreatedAt time.Time       `json:"createdAt"`
}

type CreateStoreProductInput struct {
	ProductID string          `json:"productId"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
}

type UpdateStoreProductInput struct {
	Price *decimal.Decimal `json:"price,omitempty"`
	Stock *int             `json:"stock,omitempty"`
}

// PageMeta is the pagination envelope every list endpoint returns.
type PageMeta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

type StorePage struct {
	Data []Store  `json:"data"`
	Meta PageMeta `json:"meta"`
}

type StoreProductPage struct {
	Data []StoreProduct `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// CartQuoteItem is one requested quote line.
type CartQuoteItem struct {
	StoreProductID string `json:"storeProductId"`
	Quantity       int    `json:"quantity"`
}

// CartQuoteLine is a requested line enriched with server-computed pricing.
type CartQuoteLine struct {
	StoreProductID string          `json:"storeProductId"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Product        CartQuoteRef    `json:"product"`
	Store          CartQuoteRef    `json:"store"`
}

// CartQuoteRef names the product or store a quote line points at.
type CartQuoteRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CartQuote is the server-computed price breakdown; Total is authoritative
// and only displayed, never recomputed client-side.
type CartQuote struct {
	Items []CartQuoteLine `json:"items"`
	Total decimal.Decimal `json:"total"`
}
