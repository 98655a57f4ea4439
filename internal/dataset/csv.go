package dataset

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/shopgraph/recommender/internal/models"
)

// LoadFromDir loads a dataset from a directory of CSV files, one file
// per entity, imported in dependency order so that order items can be
// attached to orders that already exist.
//
// Expected files: customers.csv, categories.csv, products.csv,
// orders.csv, order_items.csv, events.csv.
func LoadFromDir(dir string) (*Dataset, error) {
	ds := New()

	steps := []struct {
		name string
		fn   func(*Dataset, [][]string) error
	}{
		{"customers", loadCustomers},
		{"categories", loadCategories},
		{"products", loadProducts},
		{"orders", loadOrders},
		{"order_items", loadOrderItems},
		{"events", loadEvents},
	}

	for _, step := range steps {
		rows, err := readCSV(filepath.Join(dir, step.name+".csv"))
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", step.name, err)
		}
		if err := step.fn(ds, rows); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", step.name, err)
		}
		log.Printf("Loaded %s (%d rows)", step.name, len(rows))
	}

	return ds, nil
}

// readCSV returns the data rows of a CSV file, header stripped.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[1:], nil
}

func loadCustomers(ds *Dataset, rows [][]string) error {
	for _, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("expected customer_id,name,join_date, got %d columns", len(row))
		}
		joined, err := time.Parse("2006-01-02", row[2])
		if err != nil {
			return fmt.Errorf("customer %s: %w", row[0], err)
		}
		ds.Customers[row[0]] = models.Customer{ID: row[0], Name: row[1], JoinDate: joined}
	}
	return nil
}

func loadCategories(ds *Dataset, rows [][]string) error {
	for _, row := range rows {
		if len(row) < 2 {
			return fmt.Errorf("expected category_id,name, got %d columns", len(row))
		}
		ds.Categories[row[0]] = models.Category{ID: row[0], Name: row[1]}
	}
	return nil
}

func loadProducts(ds *Dataset, rows [][]string) error {
	for _, row := range rows {
		if len(row) < 4 {
			return fmt.Errorf("expected product_id,name,price,category_id, got %d columns", len(row))
		}
		price, err := strconv.ParseFloat(row[2], 64)
		if err != nil {
			return fmt.Errorf("product %s: %w", row[0], err)
		}
		ds.Products[row[0]] = models.Product{ID: row[0], Name: row[1], Price: price, CategoryID: row[3]}
	}
	return nil
}

func loadOrders(ds *Dataset, rows [][]string) error {
	for _, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("expected order_id,customer_id,placed_at, got %d columns", len(row))
		}
		placedAt, err := time.Parse(time.RFC3339, row[2])
		if err != nil {
			return fmt.Errorf("order %s: %w", row[0], err)
		}
		ds.Orders[row[0]] = models.Order{ID: row[0], CustomerID: row[1], PlacedAt: placedAt}
	}
	return nil
}

func loadOrderItems(ds *Dataset, rows [][]string) error {
	for _, row := range rows {
		if len(row) < 3 {
			return fmt.Errorf("expected order_id,product_id,quantity, got %d columns", len(row))
		}
		order, ok := ds.Orders[row[0]]
		if !ok {
			return fmt.Errorf("order item references unknown order %s", row[0])
		}
		quantity, err := strconv.Atoi(row[2])
		if err != nil {
			return fmt.Errorf("order %s item %s: %w", row[0], row[1], err)
		}
		order.Items = append(order.Items, models.OrderItem{ProductID: row[1], Quantity: quantity})
		ds.Orders[row[0]] = order
	}
	return nil
}

func loadEvents(ds *Dataset, rows [][]string) error {
	for _, row := range rows {
		if len(row) < 5 {
			return fmt.Errorf("expected event_id,customer_id,product_id,event_type,occurred_at, got %d columns", len(row))
		}
		occurredAt, err := time.Parse(time.RFC3339, row[4])
		if err != nil {
			return fmt.Errorf("event %s: %w", row[0], err)
		}
		ds.Events = append(ds.Events, models.Event{
			ID:         row[0],
			CustomerID: row[1],
			ProductID:  row[2],
			EventType:  row[3],
			OccurredAt: occurredAt,
		})
	}
	return nil
}
