package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopgraph/recommender/internal/database"
	"github.com/shopgraph/recommender/internal/graph"
	"github.com/shopgraph/recommender/internal/services"
)

const (
	defaultTopN = 3
	maxTopN     = 10
)

// APIHandler handles all API requests
type APIHandler struct {
	recommendationService *services.RecommendationService
	graphData             *graph.Data
	db                    *database.Client // nil when Neo4j projection is disabled
}

// NewAPIHandler creates a new API handler
func NewAPIHandler(recommendationService *services.RecommendationService, graphData *graph.Data, db *database.Client) *APIHandler {
	return &APIHandler{
		recommendationService: recommendationService,
		graphData:             graphData,
		db:                    db,
	}
}

// SetupRoutes configures all API routes
func (h *APIHandler) SetupRoutes(router *gin.Engine) {
	router.GET("/health", h.Health)

	api := router.Group("/api")
	{
		api.GET("/customers/:customerId/recommendations", h.GetRecommendations)
		api.GET("/customers/:customerId/strategies", h.GetStrategyBreakdown)
		api.GET("/graph", h.GetGraph)
	}
}

// Health is the liveness probe; it reports Neo4j reachability when the
// projection collaborator is configured.
func (h *APIHandler) Health(c *gin.Context) {
	response := gin.H{"ok": true}
	if h.db != nil {
		response["neo4j"] = h.db.Health(c.Request.Context()) == nil
	}
	c.JSON(http.StatusOK, response)
}

// GetRecommendations handles requests for a customer's fused top-N ranking
func (h *APIHandler) GetRecommendations(c *gin.Context) {
	customerID := c.Param("customerId")
	topN, err := parseTopN(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid top_n"})
		return
	}

	recommendations, err := h.recommendationService.RecommendForCustomer(customerID, topN)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCustomer) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting recommendations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id":     customerID,
		"recommendations": recommendations,
	})
}

// GetStrategyBreakdown handles requests for per-strategy rankings
func (h *APIHandler) GetStrategyBreakdown(c *gin.Context) {
	customerID := c.Param("customerId")
	topN, err := parseTopN(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid top_n"})
		return
	}

	breakdown, err := h.recommendationService.StrategyBreakdown(customerID, topN)
	if err != nil {
		if errors.Is(err, services.ErrUnknownCustomer) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Printf("Error getting strategy breakdown: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get strategy breakdown"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer_id": customerID,
		"strategies":  breakdown,
	})
}

// GetGraph exposes the co-occurrence and adjacency maps so an external
// visualization collaborator can render the product graph.
func (h *APIHandler) GetGraph(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"cooccurrence": h.graphData.ProductCooccurrence,
		"adjacency":    h.graphData.ProductAdjacency,
	})
}

// parseTopN reads the top_n query parameter, clamped to [1, 10].
func parseTopN(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("top_n", strconv.Itoa(defaultTopN))
	topN, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if topN < 1 {
		topN = 1
	}
	if topN > maxTopN {
		topN = maxTopN
	}
	return topN, nil
}
