package graph

import (
	"math"
	"reflect"
	"testing"

	"github.com/shopgraph/recommender/internal/dataset"
	"github.com/shopgraph/recommender/internal/models"
)

func rankSum(ranks map[string]float64) float64 {
	sum := 0.0
	for _, rank := range ranks {
		sum += rank
	}
	return sum
}

func TestPageRankMassConservation(t *testing.T) {
	d := Build(dataset.Seed())
	opts := DefaultPageRankOptions()

	tests := []struct {
		name            string
		personalization map[string]float64
	}{
		{"uniform", d.UniformPersonalization()},
		{"single seed", map[string]float64{"P1": 1.0}},
		{"two seeds", map[string]float64{"P1": 0.5, "P4": 0.5}},
		{"unnormalized", map[string]float64{"P2": 3.0, "P3": 1.0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranks := d.PageRank(tt.personalization, opts)
			if len(ranks) != len(d.ProductIDs()) {
				t.Fatalf("got %d ranks, want %d", len(ranks), len(d.ProductIDs()))
			}
			if sum := rankSum(ranks); math.Abs(sum-1.0) > 1e-6 {
				t.Errorf("rank sum = %v, want 1", sum)
			}
		})
	}
}

func TestPageRankEmptyGraph(t *testing.T) {
	d := Build(dataset.New())

	ranks := d.PageRank(map[string]float64{}, DefaultPageRankOptions())
	if len(ranks) != 0 {
		t.Errorf("PageRank on empty graph = %v, want empty map", ranks)
	}
}

func TestPageRankZeroPersonalizationFallsBackToUniform(t *testing.T) {
	d := Build(dataset.Seed())
	opts := DefaultPageRankOptions()

	zero := d.PageRank(map[string]float64{}, opts)
	uniform := d.PageRank(d.UniformPersonalization(), opts)

	if !reflect.DeepEqual(zero, uniform) {
		t.Errorf("zero-sum personalization = %v, want uniform result %v", zero, uniform)
	}
}

func TestPageRankPersonalizationBoostsSeed(t *testing.T) {
	d := Build(dataset.Seed())
	opts := DefaultPageRankOptions()

	uniform := d.PageRank(d.UniformPersonalization(), opts)
	seeded := d.PageRank(map[string]float64{"P1": 1.0}, opts)

	if seeded["P1"] <= uniform["P1"] {
		t.Errorf("seeded rank of P1 = %v, want > uniform rank %v", seeded["P1"], uniform["P1"])
	}
}

func TestPageRankDeterministic(t *testing.T) {
	d := Build(dataset.Seed())
	opts := DefaultPageRankOptions()
	personalization := map[string]float64{"P1": 0.5, "P2": 0.5}

	first := d.PageRank(personalization, opts)
	second := d.PageRank(personalization, opts)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated runs differ: %v vs %v", first, second)
	}
}

func TestPageRankAllSinks(t *testing.T) {
	ds := dataset.New()
	ds.Products["P1"] = models.Product{ID: "P1"}
	ds.Products["P2"] = models.Product{ID: "P2"}
	d := Build(ds)

	ranks := d.PageRank(d.UniformPersonalization(), DefaultPageRankOptions())
	if sum := rankSum(ranks); math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("rank sum = %v, want 1", sum)
	}
	// With no edges and uniform personalization both products are equal.
	if math.Abs(ranks["P1"]-ranks["P2"]) > 1e-9 {
		t.Errorf("ranks of identical sinks differ: %v vs %v", ranks["P1"], ranks["P2"])
	}
}
