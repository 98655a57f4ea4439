// Package graph derives an in-memory product graph from the
// transactional dataset: co-occurrence counts, customer-product
// incidence, interaction weights and a row-normalized adjacency used by
// the PageRank solver. All structures are built once and treated as
// read-only afterwards, which allows lock-free concurrent reads.
package graph

import (
	"sort"

	"github.com/shopgraph/recommender/internal/dataset"
)

// EventWeights maps interaction types to their fixed signal weight.
// Unknown types contribute no weight but still record incidence.
var EventWeights = map[string]float64{
	"view":        0.5,
	"click":       1.0,
	"add_to_cart": 2.0,
}

// Interaction identifies a (customer, product) pair with accumulated
// event weight.
type Interaction struct {
	CustomerID string
	ProductID  string
}

// Data holds the derived graph structures. Immutable after Build.
type Data struct {
	// ProductCooccurrence counts how often two products appeared in the
	// same order. Symmetric: the count is recorded on both endpoints.
	ProductCooccurrence map[string]map[string]int

	// ProductCustomers and CustomerProducts record incidence from both
	// order membership and event participation.
	ProductCustomers map[string]map[string]bool
	CustomerProducts map[string]map[string]bool

	// CustomerPurchases records order-derived incidence only; it is the
	// seed source for recommendations.
	CustomerPurchases map[string]map[string]bool

	// InteractionWeights accumulates event weights per (customer, product).
	InteractionWeights map[Interaction]float64

	// ProductAdjacency is the row-normalized co-occurrence graph. Every
	// product is keyed; products without co-occurrence have an empty
	// row and act as sinks during PageRank.
	ProductAdjacency map[string]map[string]float64

	// KnownCustomers holds the customer identifiers of the dataset.
	KnownCustomers map[string]bool

	productIDs []string
}

// Build constructs the derived graph from the dataset. A dataset with
// zero orders and events yields an all-empty graph where every product
// is a sink.
func Build(ds *dataset.Dataset) *Data {
	d := &Data{
		ProductCooccurrence: make(map[string]map[string]int),
		ProductCustomers:    make(map[string]map[string]bool),
		CustomerProducts:    make(map[string]map[string]bool),
		CustomerPurchases:   make(map[string]map[string]bool),
		InteractionWeights:  make(map[Interaction]float64),
		ProductAdjacency:    make(map[string]map[string]float64),
		KnownCustomers:      make(map[string]bool, len(ds.Customers)),
	}

	for id := range ds.Customers {
		d.KnownCustomers[id] = true
	}

	for _, order := range ds.Orders {
		productsInOrder := make([]string, 0, len(order.Items))
		for _, item := range order.Items {
			productsInOrder = append(productsInOrder, item.ProductID)
		}
		for _, productID := range productsInOrder {
			addIncidence(d.ProductCustomers, productID, order.CustomerID)
			addIncidence(d.CustomerProducts, order.CustomerID, productID)
			addIncidence(d.CustomerPurchases, order.CustomerID, productID)
		}
		// Every unordered pair of distinct products in the order counts
		// once, mirrored on both endpoints.
		for i := 0; i < len(productsInOrder); i++ {
			for j := i + 1; j < len(productsInOrder); j++ {
				left, right := productsInOrder[i], productsInOrder[j]
				if left == right {
					continue
				}
				incrementCount(d.ProductCooccurrence, left, right)
				incrementCount(d.ProductCooccurrence, right, left)
			}
		}
	}

	for _, event := range ds.Events {
		addIncidence(d.ProductCustomers, event.ProductID, event.CustomerID)
		addIncidence(d.CustomerProducts, event.CustomerID, event.ProductID)
		d.InteractionWeights[Interaction{event.CustomerID, event.ProductID}] += EventWeights[event.EventType]
	}

	for _, productID := range ds.ProductIDs() {
		d.ProductAdjacency[productID] = map[string]float64{}
	}
	for productID, neighbors := range d.ProductCooccurrence {
		total := 0
		for _, count := range neighbors {
			total += count
		}
		if total == 0 {
			continue
		}
		row := make(map[string]float64, len(neighbors))
		for neighborID, count := range neighbors {
			row[neighborID] = float64(count) / float64(total)
		}
		d.ProductAdjacency[productID] = row
	}

	d.productIDs = make([]string, 0, len(d.ProductAdjacency))
	for productID := range d.ProductAdjacency {
		d.productIDs = append(d.productIDs, productID)
	}
	sort.Strings(d.productIDs)

	return d
}

// Neighbors returns the normalized adjacency row for a product.
func (d *Data) Neighbors(productID string) map[string]float64 {
	return d.ProductAdjacency[productID]
}

// ProductIDs returns all graph node identifiers in ascending order.
func (d *Data) ProductIDs() []string {
	return d.productIDs
}

// InteractedProducts returns the products a customer has a positive
// accumulated event weight for.
func (d *Data) InteractedProducts(customerID string) map[string]bool {
	interacted := make(map[string]bool)
	for pair, weight := range d.InteractionWeights {
		if pair.CustomerID == customerID && weight > 0 {
			interacted[pair.ProductID] = true
		}
	}
	return interacted
}

func addIncidence(m map[string]map[string]bool, key, member string) {
	set := m[key]
	if set == nil {
		set = make(map[string]bool)
		m[key] = set
	}
	set[member] = true
}

func incrementCount(m map[string]map[string]int, key, neighbor string) {
	counts := m[key]
	if counts == nil {
		counts = make(map[string]int)
		m[key] = counts
	}
	counts[neighbor]++
}
