package models

// Recommendation represents a ranked product with per-strategy attribution
type Recommendation struct {
	ProductID     string             `json:"product_id"`
	Score         float64            `json:"score"`
	Contributions map[string]float64 `json:"contributions"`
}

// StrategyEntry is a single item inside a per-strategy ranking
type StrategyEntry struct {
	ProductID string  `json:"product_id"`
	Score     float64 `json:"score"`
}
