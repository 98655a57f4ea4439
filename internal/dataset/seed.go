package dataset

import (
	"time"

	"github.com/shopgraph/recommender/internal/models"
)

func mustDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func mustTimestamp(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

// Seed returns the embedded demo dataset so the server can run without
// any external data source. The shop has three customers, four products
// in two categories, three orders and five interaction events.
func Seed() *Dataset {
	ds := New()

	ds.Customers["C1"] = models.Customer{ID: "C1", Name: "Alice", JoinDate: mustDate("2024-01-02")}
	ds.Customers["C2"] = models.Customer{ID: "C2", Name: "Bob", JoinDate: mustDate("2024-02-11")}
	ds.Customers["C3"] = models.Customer{ID: "C3", Name: "Chloé", JoinDate: mustDate("2024-03-05")}

	ds.Categories["CAT1"] = models.Category{ID: "CAT1", Name: "Electronics"}
	ds.Categories["CAT2"] = models.Category{ID: "CAT2", Name: "Books"}

	ds.Products["P1"] = models.Product{ID: "P1", Name: "Wireless Mouse", Price: 29.99, CategoryID: "CAT1"}
	ds.Products["P2"] = models.Product{ID: "P2", Name: "USB-C Hub", Price: 49.00, CategoryID: "CAT1"}
	ds.Products["P3"] = models.Product{ID: "P3", Name: "Graph Databases Book", Price: 39.00, CategoryID: "CAT2"}
	ds.Products["P4"] = models.Product{ID: "P4", Name: "Mechanical Keyboard", Price: 89.00, CategoryID: "CAT1"}

	ds.Orders["O1"] = models.Order{
		ID: "O1", CustomerID: "C1", PlacedAt: mustTimestamp("2024-04-01T10:15:00Z"),
		Items: []models.OrderItem{
			{ProductID: "P1", Quantity: 1},
			{ProductID: "P2", Quantity: 1},
		},
	}
	ds.Orders["O2"] = models.Order{
		ID: "O2", CustomerID: "C2", PlacedAt: mustTimestamp("2024-04-02T12:30:00Z"),
		Items: []models.OrderItem{
			{ProductID: "P3", Quantity: 1},
		},
	}
	ds.Orders["O3"] = models.Order{
		ID: "O3", CustomerID: "C1", PlacedAt: mustTimestamp("2024-04-05T08:05:00Z"),
		Items: []models.OrderItem{
			{ProductID: "P4", Quantity: 1},
			{ProductID: "P2", Quantity: 1},
		},
	}

	ds.Events = []models.Event{
		{ID: "E1", CustomerID: "C1", ProductID: "P3", EventType: "view", OccurredAt: mustTimestamp("2024-04-01T09:00:00Z")},
		{ID: "E2", CustomerID: "C1", ProductID: "P3", EventType: "click", OccurredAt: mustTimestamp("2024-04-01T09:01:00Z")},
		{ID: "E3", CustomerID: "C3", ProductID: "P1", EventType: "view", OccurredAt: mustTimestamp("2024-04-03T16:20:00Z")},
		{ID: "E4", CustomerID: "C2", ProductID: "P2", EventType: "view", OccurredAt: mustTimestamp("2024-04-03T12:00:00Z")},
		{ID: "E5", CustomerID: "C2", ProductID: "P4", EventType: "add_to_cart", OccurredAt: mustTimestamp("2024-04-03T12:10:00Z")},
	}

	return ds
}
