package dataset

import (
	"sort"

	"github.com/shopgraph/recommender/internal/models"
)

// Dataset is the fully materialized transactional snapshot the engine
// consumes. It is built once by a loader and never mutated afterwards.
type Dataset struct {
	Customers  map[string]models.Customer
	Categories map[string]models.Category
	Products   map[string]models.Product
	Orders     map[string]models.Order
	Events     []models.Event
}

// New returns an empty dataset with all maps allocated.
func New() *Dataset {
	return &Dataset{
		Customers:  make(map[string]models.Customer),
		Categories: make(map[string]models.Category),
		Products:   make(map[string]models.Product),
		Orders:     make(map[string]models.Order),
	}
}

// HasCustomer reports whether the customer identifier exists in the dataset.
func (d *Dataset) HasCustomer(id string) bool {
	_, ok := d.Customers[id]
	return ok
}

// ProductIDs returns all product identifiers in ascending order.
func (d *Dataset) ProductIDs() []string {
	ids := make([]string, 0, len(d.Products))
	for id := range d.Products {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CustomerIDs returns all customer identifiers in ascending order.
func (d *Dataset) CustomerIDs() []string {
	ids := make([]string, 0, len(d.Customers))
	for id := range d.Customers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
