package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories assignable to generated products.
var Categories = []string{
	"Electronics", "Books", "Clothing", "Home Goods", "Grocery",
	"Toys", "Sports", "Outdoors", "Beauty", "Automotive",
}

// OrderStatuses recognised by the store backend.
var OrderStatuses = []string{"pending", "shipped", "delivered", "cancelled", "returned"}

// User is a store customer. The backend assigns ID on insert.
type User struct {
	ID         int64  `json:"id,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	City       string `json:"city"`
	SignupDate string `json:"signup_date"` // YYYY-MM-DD
}

func (u User) Fields() map[string]any {
	return map[string]any{
		"name":        u.Name,
		"email":       u.Email,
		"city":        u.City,
		"signup_date": u.SignupDate,
	}
}

// Product is a catalog entry. The backend assigns ID on insert.
type Product struct {
	ID            int64           `json:"id,omitempty"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	Category      string          `json:"category"`
	StockQuantity int             `json:"stock_quantity"`
}

func (p Product) Fields() map[string]any {
	// Price goes out as float64 so every backend driver can encode it.
	price, _ := p.Price.Float64()
	return map[string]any{
		"name":           p.Name,
		"description":    p.Description,
		"price":          price,
		"category":       p.Category,
		"stock_quantity": p.StockQuantity,
	}
}

// Order references a user and a product by their backend-assigned ids.
type Order struct {
	ID        int64     `json:"id,omitempty"`
	UserID    int64     `json:"user_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"order_status"`
	OrderDate time.Time `json:"order_date"`
}

func (o Order) Fields() map[string]any {
	return map[string]any{
		"user_id":      o.UserID,
		"product_id":   o.ProductID,
		"quantity":     o.Quantity,
		"order_status": o.Status,
		"order_date":   o.OrderDate.UTC().Format(time.RFC3339),
	}
}
