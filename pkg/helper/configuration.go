package helper

import (
	"os"
	"strconv"

	"github.com/shopgraph/recommender/internal/database"
	"github.com/shopgraph/recommender/internal/graph"
)

// Config holds the full application configuration
type Config struct {
	Port    string
	DataDir string // empty means the embedded seed dataset
	Neo4j   database.Config
	Engine  graph.PageRankOptions
}

// LoadConfigFromEnv loads the application configuration from environment
// variables. An empty NEO4J_URI disables the Neo4j projection.
func LoadConfigFromEnv() Config {
	return Config{
		Port:    getEnvOrDefault("APP_PORT", "8080"),
		DataDir: getEnvOrDefault("DATA_DIR", ""),
		Neo4j: database.Config{
			URI:      getEnvOrDefault("NEO4J_URI", ""),
			Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
			Password: getEnvOrDefault("NEO4J_PASSWORD", ""),
			Database: getEnvOrDefault("NEO4J_DATABASE", "neo4j"),
		},
		Engine: graph.PageRankOptions{
			Damping:       getEnvFloat("PAGERANK_DAMPING", 0.85),
			Tolerance:     getEnvFloat("PAGERANK_TOLERANCE", 1e-6),
			MaxIterations: getEnvInt("PAGERANK_MAX_ITERATIONS", 50),
		},
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
