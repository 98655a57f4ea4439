package services

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopgraph/recommender/internal/graph"
	"github.com/shopgraph/recommender/internal/models"
)

// ErrUnknownCustomer is returned when the requested customer identifier
// is not present in the dataset. Handlers translate it to a 404.
var ErrUnknownCustomer = errors.New("unknown customer")

// GlobalPageRankStrategy is the synthetic attribution key used on the
// cold-start path, when a customer has no purchases and no interactions.
const GlobalPageRankStrategy = "global_pagerank"

// Strategy pairs a scoring function with its fixed fusion weight.
// Strategies are kept in an explicit ordered slice so fusion is
// deterministic regardless of map iteration order.
type Strategy struct {
	Name   string
	Weight float64
	Score  func(seeds map[string]bool) map[string]float64
}

// RecommendationService ranks products for a customer by fusing three
// graph signals: co-purchase adjacency, customer-overlap similarity and
// personalized PageRank importance. All state is read-only after
// construction, so concurrent requests need no locking.
type RecommendationService struct {
	graph      *graph.Data
	opts       graph.PageRankOptions
	strategies []Strategy
	globalRank map[string]float64
}

// NewRecommendationService creates the engine and precomputes the
// global PageRank baseline used for cold-start recommendations.
func NewRecommendationService(g *graph.Data, opts graph.PageRankOptions) *RecommendationService {
	s := &RecommendationService{
		graph: g,
		opts:  opts,
	}
	s.strategies = []Strategy{
		{Name: "co_occurrence", Weight: 0.4, Score: s.coOccurrenceScores},
		{Name: "similarity", Weight: 0.3, Score: s.similarityScores},
		{Name: "personalized_pagerank", Weight: 0.3, Score: s.personalizedPageRank},
	}
	s.globalRank = g.PageRank(g.UniformPersonalization(), opts)
	return s
}

// RecommendForCustomer returns the top-N fused recommendations for the
// customer. Seeds are the purchased products, falling back to products
// the customer interacted with; with no seeds at all, the cached global
// PageRank baseline is returned. Seeds and interacted products never
// appear in the output.
func (s *RecommendationService) RecommendForCustomer(customerID string, topN int) ([]models.Recommendation, error) {
	purchased, interacted, seeds, err := s.seedsFor(customerID)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return s.fallbackTopPageRank(topN), nil
	}

	exclude := union(purchased, interacted)
	combined := s.combineStrategies(seeds, exclude)
	if topN >= 0 && len(combined) > topN {
		combined = combined[:topN]
	}
	return combined, nil
}

// StrategyBreakdown returns each strategy's own top-N ranking unfused,
// for diagnostics. Cold start returns only the global baseline under a
// single key.
func (s *RecommendationService) StrategyBreakdown(customerID string, topN int) (map[string][]models.StrategyEntry, error) {
	purchased, interacted, seeds, err := s.seedsFor(customerID)
	if err != nil {
		return nil, err
	}
	if len(seeds) == 0 {
		return map[string][]models.StrategyEntry{
			GlobalPageRankStrategy: s.topItems(s.globalRank, topN, nil),
		}, nil
	}

	exclude := union(purchased, interacted)
	breakdown := make(map[string][]models.StrategyEntry, len(s.strategies))
	for _, strategy := range s.strategies {
		breakdown[strategy.Name] = s.topItems(strategy.Score(seeds), topN, exclude)
	}
	return breakdown, nil
}

// GlobalPageRank exposes the cached global baseline.
func (s *RecommendationService) GlobalPageRank() map[string]float64 {
	return s.globalRank
}

func (s *RecommendationService) seedsFor(customerID string) (purchased, interacted, seeds map[string]bool, err error) {
	if !s.graph.KnownCustomers[customerID] {
		return nil, nil, nil, fmt.Errorf("%w: %s", ErrUnknownCustomer, customerID)
	}
	purchased = s.graph.CustomerPurchases[customerID]
	interacted = s.graph.InteractedProducts(customerID)
	seeds = purchased
	if len(seeds) == 0 {
		seeds = interacted
	}
	return purchased, interacted, seeds, nil
}

// coOccurrenceScores accumulates each seed's co-occurrence counts
// toward its non-seed neighbors.
func (s *RecommendationService) coOccurrenceScores(seeds map[string]bool) map[string]float64 {
	scores := make(map[string]float64)
	for seed := range seeds {
		for candidate, count := range s.graph.ProductCooccurrence[seed] {
			if seeds[candidate] {
				continue
			}
			scores[candidate] += float64(count)
		}
	}
	return scores
}

// similarityScores sums, per candidate, the Jaccard index of the
// customer sets of each seed and the candidate. Candidates sharing no
// customer with any seed are omitted.
func (s *RecommendationService) similarityScores(seeds map[string]bool) map[string]float64 {
	// Seeds are walked in sorted order so the floating-point sum is
	// identical across calls.
	seedIDs := make([]string, 0, len(seeds))
	for seed := range seeds {
		seedIDs = append(seedIDs, seed)
	}
	sort.Strings(seedIDs)

	scores := make(map[string]float64)
	for candidate, candidateCustomers := range s.graph.ProductCustomers {
		if seeds[candidate] {
			continue
		}
		total := 0.0
		for _, seed := range seedIDs {
			seedCustomers := s.graph.ProductCustomers[seed]
			intersection := 0
			for customerID := range seedCustomers {
				if candidateCustomers[customerID] {
					intersection++
				}
			}
			if intersection == 0 {
				continue
			}
			unionSize := len(seedCustomers) + len(candidateCustomers) - intersection
			total += float64(intersection) / float64(unionSize)
		}
		if total > 0 {
			scores[candidate] = total
		}
	}
	return scores
}

// personalizedPageRank runs the solver with mass 1/|seeds| on each seed
// and strips the seeds themselves from the result.
func (s *RecommendationService) personalizedPageRank(seeds map[string]bool) map[string]float64 {
	if len(seeds) == 0 {
		return s.globalRank
	}
	personalization := make(map[string]float64, len(seeds))
	seedWeight := 1.0 / float64(len(seeds))
	for seed := range seeds {
		personalization[seed] = seedWeight
	}
	ranks := s.graph.PageRank(personalization, s.opts)
	for seed := range seeds {
		delete(ranks, seed)
	}
	return ranks
}

// normalizeScores divides a score map by its own maximum. An all-zero
// map stays all-zero and an empty map stays empty.
func normalizeScores(scores map[string]float64) map[string]float64 {
	if len(scores) == 0 {
		return scores
	}
	maxValue := 0.0
	for _, value := range scores {
		if value > maxValue {
			maxValue = value
		}
	}
	normalized := make(map[string]float64, len(scores))
	if maxValue == 0 {
		for productID := range scores {
			normalized[productID] = 0
		}
		return normalized
	}
	for productID, value := range scores {
		normalized[productID] = value / maxValue
	}
	return normalized
}

// combineStrategies normalizes each strategy's scores, applies the
// fixed weights and sums contributions per product. Excluded products
// and non-positive normalized scores contribute nothing; products with
// no contribution at all do not appear.
func (s *RecommendationService) combineStrategies(seeds, exclude map[string]bool) []models.Recommendation {
	contributions := make(map[string]map[string]float64)
	for _, strategy := range s.strategies {
		if strategy.Weight == 0 {
			continue
		}
		scores := normalizeScores(strategy.Score(seeds))
		for productID, value := range scores {
			if exclude[productID] || value <= 0 {
				continue
			}
			productContributions := contributions[productID]
			if productContributions == nil {
				productContributions = make(map[string]float64, len(s.strategies))
				contributions[productID] = productContributions
			}
			productContributions[strategy.Name] = value * strategy.Weight
		}
	}

	recommendations := make([]models.Recommendation, 0, len(contributions))
	for productID, productContributions := range contributions {
		// Sum in fixed strategy order; ranging over the map would make
		// the floating-point total depend on iteration order.
		total := 0.0
		for _, strategy := range s.strategies {
			total += productContributions[strategy.Name]
		}
		recommendations = append(recommendations, models.Recommendation{
			ProductID:     productID,
			Score:         total,
			Contributions: productContributions,
		})
	}
	sortRecommendations(recommendations)
	return recommendations
}

func (s *RecommendationService) fallbackTopPageRank(topN int) []models.Recommendation {
	items := s.topItems(s.globalRank, topN, nil)
	recommendations := make([]models.Recommendation, 0, len(items))
	for _, item := range items {
		recommendations = append(recommendations, models.Recommendation{
			ProductID:     item.ProductID,
			Score:         item.Score,
			Contributions: map[string]float64{GlobalPageRankStrategy: item.Score},
		})
	}
	return recommendations
}

func (s *RecommendationService) topItems(scores map[string]float64, topN int, exclude map[string]bool) []models.StrategyEntry {
	ranked := make([]models.StrategyEntry, 0, len(scores))
	for productID, score := range scores {
		if exclude[productID] {
			continue
		}
		ranked = append(ranked, models.StrategyEntry{ProductID: productID, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})
	if topN >= 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// sortRecommendations orders by descending score, ties broken by
// ascending product identifier for deterministic output.
func sortRecommendations(recommendations []models.Recommendation) {
	sort.Slice(recommendations, func(i, j int) bool {
		if recommendations[i].Score != recommendations[j].Score {
			return recommendations[i].Score > recommendations[j].Score
		}
		return recommendations[i].ProductID < recommendations[j].ProductID
	})
}

func union(a, b map[string]bool) map[string]bool {
	merged := make(map[string]bool, len(a)+len(b))
	for id := range a {
		merged[id] = true
	}
	for id := range b {
		merged[id] = true
	}
	return merged
}
