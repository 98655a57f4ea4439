package models

import "time"

// Customer represents a customer in the transactional store
type Customer struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	JoinDate time.Time `json:"join_date"`
}

// Category represents a product category
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Product represents a purchasable product
type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	CategoryID string  `json:"category_id"`
}

// OrderItem represents a single product line inside an order
type OrderItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Order represents a placed order with its items
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	PlacedAt   time.Time   `json:"placed_at"`
	Items      []OrderItem `json:"items"`
}

// Event represents an interaction between a customer and a product.
// Known types are "view", "click" and "add_to_cart"; anything else
// carries no scoring weight but still records incidence.
type Event struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	ProductID  string    `json:"product_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
}
