package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/cvergara/balance-rli/client"
	"github.com/cvergara/balance-rli/config"
	"github.com/cvergara/balance-rli/handler"
	"github.com/cvergara/balance-rli/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Initialize Tesseract client (only used when the OCR fallback is on)
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	balanceService := service.NewBalanceService(pdfProcessor, tesseractClient, cfg.OCRFallback)
	taxEngine := service.NewTaxEngine()

	// Initialize handler layer
	balanceHandler := handler.NewBalanceHandler(balanceService)
	taxHandler := handler.NewTaxHandler(taxEngine)

	// Setup Gin router
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxFileSize

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "Balance RLI Calculator",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		balance := api.Group("/balance")
		{
			balance.POST("/extract", balanceHandler.ExtractBalance)
		}
		tax := api.Group("/tax")
		{
			tax.POST("/compute", taxHandler.Compute)
		}
	}

	// Start server
	log.Printf("Starting Balance RLI Calculator on port %s (OCR fallback: %v)", cfg.ServerPort, cfg.OCRFallback)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
