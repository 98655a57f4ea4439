package database

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/shopgraph/recommender/internal/dataset"
	"github.com/shopgraph/recommender/internal/graph"
)

// Projector writes the derived in-memory graph into Neo4j so it can be
// queried and visualized externally. The recommendation core never
// reads it back; projection is a one-way collaborator.
type Projector struct {
	client *Client
}

// NewProjector creates a new graph projector
func NewProjector(client *Client) *Projector {
	return &Projector{client: client}
}

// Project replaces the database contents with the current dataset and
// derived graph, in dependency order.
func (p *Projector) Project(ctx context.Context, ds *dataset.Dataset, g *graph.Data) error {
	log.Println("Starting graph projection...")

	steps := []struct {
		name string
		fn   func(context.Context, *dataset.Dataset, *graph.Data) error
	}{
		{"clear", p.clearDatabase},
		{"customers", p.projectCustomers},
		{"categories", p.projectCategories},
		{"products", p.projectProducts},
		{"purchases", p.projectPurchases},
		{"interactions", p.projectInteractions},
		{"cooccurrence", p.projectCooccurrence},
	}

	for _, step := range steps {
		if err := step.fn(ctx, ds, g); err != nil {
			return fmt.Errorf("failed to project %s: %w", step.name, err)
		}
		log.Printf("Projected %s", step.name)
	}

	if err := p.verifyProjection(ctx); err != nil {
		return fmt.Errorf("failed to verify projection: %w", err)
	}

	log.Println("Graph projection completed successfully")
	return nil
}

// verifyProjection reads back node and edge counts after projecting.
func (p *Projector) verifyProjection(ctx context.Context) error {
	query := `
		MATCH (p:Product)
		OPTIONAL MATCH ()-[r:CO_OCCURS_WITH]->()
		RETURN count(DISTINCT p) AS products, count(r) AS edges
	`
	results, err := p.client.ExecuteRead(ctx, query, nil)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		log.Printf("Projection contains %v products and %v co-occurrence edges",
			results[0]["products"], results[0]["edges"])
	}
	return nil
}

func (p *Projector) clearDatabase(ctx context.Context, _ *dataset.Dataset, _ *graph.Data) error {
	return p.client.ExecuteWrite(ctx, "MATCH (n) DETACH DELETE n", nil)
}

func (p *Projector) projectCustomers(ctx context.Context, ds *dataset.Dataset, _ *graph.Data) error {
	rows := make([]map[string]interface{}, 0, len(ds.Customers))
	for _, id := range ds.CustomerIDs() {
		customer := ds.Customers[id]
		rows = append(rows, map[string]interface{}{
			"id":        customer.ID,
			"name":      customer.Name,
			"join_date": customer.JoinDate.Format("2006-01-02"),
		})
	}

	query := `
		UNWIND $rows AS row
		MERGE (c:Customer {id: row.id})
		SET c.name = row.name, c.join_date = date(row.join_date)
	`
	return p.client.ExecuteWrite(ctx, query, map[string]interface{}{"rows": rows})
}

func (p *Projector) projectCategories(ctx context.Context, ds *dataset.Dataset, _ *graph.Data) error {
	rows := make([]map[string]interface{}, 0, len(ds.Categories))
	for _, category := range ds.Categories {
		rows = append(rows, map[string]interface{}{
			"id":   category.ID,
			"name": category.Name,
		})
	}

	query := `
		UNWIND $rows AS row
		MERGE (cat:Category {id: row.id})
		SET cat.name = row.name
	`
	return p.client.ExecuteWrite(ctx, query, map[string]interface{}{"rows": rows})
}

func (p *Projector) projectProducts(ctx context.Context, ds *dataset.Dataset, _ *graph.Data) error {
	rows := make([]map[string]interface{}, 0, len(ds.Products))
	for _, id := range ds.ProductIDs() {
		product := ds.Products[id]
		rows = append(rows, map[string]interface{}{
			"id":       product.ID,
			"name":     product.Name,
			"price":    product.Price,
			"category": product.CategoryID,
		})
	}

	query := `
		UNWIND $rows AS row
		MERGE (p:Product {id: row.id})
		SET p.name = row.name, p.price = row.price
		WITH p, row
		MATCH (cat:Category {id: row.category})
		MERGE (p)-[:BELONGS_TO]->(cat)
	`
	return p.client.ExecuteWrite(ctx, query, map[string]interface{}{"rows": rows})
}

func (p *Projector) projectPurchases(ctx context.Context, _ *dataset.Dataset, g *graph.Data) error {
	var rows []map[string]interface{}
	for customerID, products := range g.CustomerPurchases {
		for productID := range products {
			rows = append(rows, map[string]interface{}{
				"customer_id": customerID,
				"product_id":  productID,
			})
		}
	}

	query := `
		UNWIND $rows AS row
		MATCH (c:Customer {id: row.customer_id})
		MATCH (p:Product {id: row.product_id})
		MERGE (c)-[:PURCHASED]->(p)
	`
	return p.client.ExecuteWrite(ctx, query, map[string]interface{}{"rows": rows})
}

func (p *Projector) projectInteractions(ctx context.Context, _ *dataset.Dataset, g *graph.Data) error {
	var rows []map[string]interface{}
	for pair, weight := range g.InteractionWeights {
		rows = append(rows, map[string]interface{}{
			"customer_id": pair.CustomerID,
			"product_id":  pair.ProductID,
			"weight":      weight,
		})
	}

	query := `
		UNWIND $rows AS row
		MATCH (c:Customer {id: row.customer_id})
		MATCH (p:Product {id: row.product_id})
		MERGE (c)-[r:INTERACTED]->(p)
		SET r.weight = row.weight
	`
	return p.client.ExecuteWrite(ctx, query, map[string]interface{}{"rows": rows})
}

func (p *Projector) projectCooccurrence(ctx context.Context, _ *dataset.Dataset, g *graph.Data) error {
	// Co-occurrence counts are mirrored on both endpoints; project each
	// undirected pair once.
	var rows []map[string]interface{}
	left := make([]string, 0, len(g.ProductCooccurrence))
	for productID := range g.ProductCooccurrence {
		left = append(left, productID)
	}
	sort.Strings(left)
	for _, productID := range left {
		for neighborID, times := range g.ProductCooccurrence[productID] {
			if productID >= neighborID {
				continue
			}
			rows = append(rows, map[string]interface{}{
				"left":  productID,
				"right": neighborID,
				"times": times,
			})
		}
	}

	query := `
		UNWIND $rows AS row
		MATCH (a:Product {id: row.left})
		MATCH (b:Product {id: row.right})
		MERGE (a)-[r:CO_OCCURS_WITH]->(b)
		SET r.times = row.times
	`
	return p.client.ExecuteWrite(ctx, query, map[string]interface{}{"rows": rows})
}
