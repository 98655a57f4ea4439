package graph

import "math"

// PageRankOptions controls the power-iteration solver.
type PageRankOptions struct {
	// Damping is the probability mass retained for graph propagation
	// each iteration; the remainder flows back via personalization.
	Damping float64

	// Tolerance is the L1 convergence threshold between iterations.
	Tolerance float64

	// MaxIterations bounds the solver when convergence is slow.
	MaxIterations int
}

// DefaultPageRankOptions returns the reference solver parameters.
func DefaultPageRankOptions() PageRankOptions {
	return PageRankOptions{
		Damping:       0.85,
		Tolerance:     1e-6,
		MaxIterations: 50,
	}
}

// UniformPersonalization returns a personalization vector spreading
// mass 1/N over all products. Empty when the graph has no products.
func (d *Data) UniformPersonalization() map[string]float64 {
	if len(d.productIDs) == 0 {
		return map[string]float64{}
	}
	weight := 1.0 / float64(len(d.productIDs))
	personalization := make(map[string]float64, len(d.productIDs))
	for _, productID := range d.productIDs {
		personalization[productID] = weight
	}
	return personalization
}

// PageRank computes damped personalized PageRank over the product
// adjacency graph via power iteration. The personalization vector is
// renormalized to sum to 1; a zero-sum vector falls back to uniform.
// Rank mass held by sink products is redistributed uniformly each
// iteration so the output always sums to 1.
func (d *Data) PageRank(personalization map[string]float64, opts PageRankOptions) map[string]float64 {
	n := len(d.productIDs)
	if n == 0 {
		return map[string]float64{}
	}

	personalization = d.normalizePersonalization(personalization)

	ranks := make(map[string]float64, n)
	for _, productID := range d.productIDs {
		ranks[productID] = 1.0 / float64(n)
	}

	for iter := 0; iter < opts.MaxIterations; iter++ {
		newRanks := make(map[string]float64, n)
		for _, productID := range d.productIDs {
			newRanks[productID] = (1.0 - opts.Damping) * personalization[productID]
		}

		sinkRank := 0.0
		for _, productID := range d.productIDs {
			if len(d.Neighbors(productID)) == 0 {
				sinkRank += ranks[productID]
			}
		}
		leak := opts.Damping * sinkRank / float64(n)

		for _, productID := range d.productIDs {
			neighbors := d.Neighbors(productID)
			if len(neighbors) == 0 {
				continue
			}
			for neighborID, weight := range neighbors {
				newRanks[neighborID] += opts.Damping * ranks[productID] * weight
			}
		}
		if leak > 0 {
			for _, productID := range d.productIDs {
				newRanks[productID] += leak
			}
		}

		delta := 0.0
		for _, productID := range d.productIDs {
			delta += math.Abs(newRanks[productID] - ranks[productID])
		}
		ranks = newRanks
		if delta < opts.Tolerance {
			break
		}
	}

	return ranks
}

func (d *Data) normalizePersonalization(values map[string]float64) map[string]float64 {
	total := 0.0
	for _, productID := range d.productIDs {
		total += values[productID]
	}
	if total == 0 {
		return d.UniformPersonalization()
	}
	normalized := make(map[string]float64, len(d.productIDs))
	for _, productID := range d.productIDs {
		normalized[productID] = values[productID] / total
	}
	return normalized
}
