package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/shopgraph/recommender/internal/database"
	"github.com/shopgraph/recommender/internal/dataset"
	"github.com/shopgraph/recommender/internal/graph"
	"github.com/shopgraph/recommender/internal/handlers"
	"github.com/shopgraph/recommender/internal/services"
	"github.com/shopgraph/recommender/pkg/helper"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v\n", err)
	}

	config := helper.LoadConfigFromEnv()

	// Load the transactional dataset
	var ds *dataset.Dataset
	if config.DataDir != "" {
		loaded, err := dataset.LoadFromDir(config.DataDir)
		if err != nil {
			log.Fatalf("Failed to load dataset from %s: %v", config.DataDir, err)
		}
		ds = loaded
	} else {
		ds = dataset.Seed()
		log.Println("DATA_DIR not set, using embedded seed dataset")
	}
	log.Printf("Dataset loaded: %d customers, %d products, %d orders, %d events",
		len(ds.Customers), len(ds.Products), len(ds.Orders), len(ds.Events))

	// Build the derived graph and the recommendation engine
	graphData := graph.Build(ds)
	recommendationService := services.NewRecommendationService(graphData, config.Engine)

	// Optionally project the graph into Neo4j for external querying
	var neo4jClient *database.Client
	if config.Neo4j.URI != "" {
		client, err := database.NewClient(config.Neo4j)
		if err != nil {
			log.Fatalf("Failed to connect to Neo4j: %v", err)
		}
		neo4jClient = client
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := neo4jClient.Close(ctx); err != nil {
				log.Printf("Error closing Neo4j connection: %v", err)
			}
		}()

		projector := database.NewProjector(neo4jClient)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		if err := projector.Project(ctx, ds, graphData); err != nil {
			cancel()
			log.Printf("Projection failed: %v", err)
			os.Exit(1)
		}
		cancel()
	}

	// Initialize API handlers
	apiHandler := handlers.NewAPIHandler(recommendationService, graphData, neo4jClient)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Setup API routes
	apiHandler.SetupRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", config.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Gracefully shutdown with a timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited properly")
}
