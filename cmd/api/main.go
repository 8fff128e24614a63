package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edsis/inventory-service/pkg/logging"
	"github.com/edsis/inventory-service/pkg/metrics"
	"github.com/edsis/inventory-service/pkg/middleware"
	"github.com/edsis/inventory-service/pkg/mongodb"

	"github.com/edsis/inventory-service/internal/application"
	mongoRepo "github.com/edsis/inventory-service/internal/infrastructure/mongodb"
)

const serviceName = "edsis-inventory"

func main() {
	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(getEnv("LOG_LEVEL", "info"))
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting edsis-inventory API")

	config := loadConfig()
	ctx := context.Background()

	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)
	logger.Info("Metrics initialized")

	mongoClient, err := mongodb.NewClient(ctx, config.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	instrumentedMongo := mongodb.NewInstrumentedClient(mongoClient, m, logger)
	defer instrumentedMongo.Close(ctx)
	logger.Info("Connected to MongoDB", "database", config.MongoDB.Database)

	productRepo := mongoRepo.NewProductRepository(instrumentedMongo)
	itemRepo := mongoRepo.NewItemRepository(instrumentedMongo)
	discountRepo := mongoRepo.NewDiscountRepository(instrumentedMongo)
	settingsRepo := mongoRepo.NewSettingsRepository(instrumentedMongo)

	reconciler := application.NewStockReconciler(productRepo, itemRepo, logger)
	catalogService := application.NewCatalogService(productRepo, itemRepo, reconciler, logger)
	bookingService := application.NewBookingService(itemRepo, reconciler, logger)
	importService := application.NewImportService(productRepo, itemRepo, discountRepo, settingsRepo, logger)
	exportService := application.NewExportService(productRepo, itemRepo, settingsRepo, logger)
	discountService := application.NewDiscountService(discountRepo, productRepo, logger)
	settingsService := application.NewSettingsService(settingsRepo, logger)

	businessMetrics := middleware.NewBusinessMetrics(m)

	router := gin.New()

	middlewareConfig := middleware.DefaultConfig(serviceName, logger.Logger)
	middleware.Setup(router, middlewareConfig)
	router.Use(middleware.MetricsMiddleware(m))

	router.NoRoute(middleware.NoRoute())
	router.NoMethod(middleware.NoMethod())

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadinessCheck(serviceName, func() error {
		return instrumentedMongo.HealthCheck(ctx)
	}))
	router.GET("/metrics", middleware.MetricsEndpoint(m))

	api := router.Group("/api/v1")
	{
		api.GET("/products", listProductsHandler(catalogService, logger))
		api.POST("/products", manageProductHandler(catalogService, logger))
		api.DELETE("/products/:id", deleteProductHandler(catalogService, logger))
		api.GET("/products/:id/inventory", productInventoryHandler(catalogService, logger))
		api.POST("/products/import", importProductsHandler(importService, businessMetrics, logger))

		api.POST("/items/:id/book", bookItemHandler(bookingService, businessMetrics, logger))
		api.POST("/items/:id/release", releaseItemHandler(bookingService, businessMetrics, logger))
		api.POST("/items/:id/sell", sellItemHandler(bookingService, businessMetrics, logger))

		api.POST("/bookings/check-expired", checkExpiredHandler(bookingService, businessMetrics, logger))

		api.GET("/inventory/export", exportHandler(exportService, businessMetrics, logger))

		api.GET("/discounts", listDiscountsHandler(discountService, logger))
		api.POST("/discounts", manageDiscountHandler(discountService, logger))

		api.GET("/settings/rates", getRatesHandler(settingsService, logger))
		api.PUT("/settings/rates", updateRatesHandler(settingsService, logger))
	}

	srv := &http.Server{
		Addr:         config.ServerAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server error", "error", err)
		}
	}()
	logger.Info("Server started", "addr", config.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server stopped")
}

// Config holds application configuration
type Config struct {
	ServerAddr string
	MongoDB    *mongodb.Config
}

func loadConfig() *Config {
	return &Config{
		ServerAddr: getEnv("SERVER_ADDR", ":8080"),
		MongoDB: &mongodb.Config{
			URI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			Database:       getEnv("MONGODB_DATABASE", "edsis"),
			ConnectTimeout: 10 * time.Second,
			MaxPoolSize:    100,
			MinPoolSize:    10,
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func listProductsHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		products, err := service.ListProducts(c.Request.Context())
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func manageProductHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var cmd application.ManageProductCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		result, err := service.ManageProduct(c.Request.Context(), cmd)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		status := http.StatusOK
		if cmd.Mode == application.ModeAdd {
			status = http.StatusCreated
		}
		c.JSON(status, result)
	}
}

func deleteProductHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		cmd := application.DeleteProductCommand{ProductID: c.Param("id")}
		if err := service.DeleteProduct(c.Request.Context(), cmd); err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"deleted": cmd.ProductID})
	}
}

func productInventoryHandler(service *application.CatalogService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		items, err := service.GetProductInventory(c.Request.Context(), c.Param("id"))
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

func importProductsHandler(service *application.ImportService, bm *middleware.BusinessMetrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var cmd application.ImportProductsCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		result, err := service.Import(c.Request.Context(), cmd)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		bm.RecordProductsImported("bulk", result.Count)
		c.JSON(http.StatusOK, result)
	}
}

func bookItemHandler(service *application.BookingService, bm *middleware.BusinessMetrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var cmd application.BookItemCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}
		cmd.ItemID = c.Param("id")

		item, err := service.Book(c.Request.Context(), cmd)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		bm.RecordItemBooked()
		c.JSON(http.StatusOK, item)
	}
}

func releaseItemHandler(service *application.BookingService, bm *middleware.BusinessMetrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		cmd := application.ReleaseItemCommand{ItemID: c.Param("id")}
		item, err := service.Release(c.Request.Context(), cmd)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		bm.RecordItemReleased("manual")
		c.JSON(http.StatusOK, item)
	}
}

func sellItemHandler(service *application.BookingService, bm *middleware.BusinessMetrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var cmd application.SellItemCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}
		cmd.ItemID = c.Param("id")

		item, err := service.Sell(c.Request.Context(), cmd)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		bm.RecordItemSold()
		c.JSON(http.StatusOK, item)
	}
}

func checkExpiredHandler(service *application.BookingService, bm *middleware.BusinessMetrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		result, err := service.CheckExpiredBookings(c.Request.Context())
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		bm.RecordBookingsExpired(result.ReleasedCount)
		c.JSON(http.StatusOK, result)
	}
}

func exportHandler(service *application.ExportService, bm *middleware.BusinessMetrics, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		file, filename, err := service.Export(c.Request.Context())
		if err != nil {
			bm.RecordExportGenerated(false)
			responder.RespondWithError(err)
			return
		}
		defer file.Close()

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

		if _, err := file.WriteTo(c.Writer); err != nil {
			bm.RecordExportGenerated(false)
			logger.Error("Failed to stream export", "error", err)
			return
		}
		bm.RecordExportGenerated(true)
	}
}

func listDiscountsHandler(service *application.DiscountService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		discounts, err := service.ListDiscounts(c.Request.Context())
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"discounts": discounts})
	}
}

func manageDiscountHandler(service *application.DiscountService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var cmd application.ManageDiscountCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		discount, err := service.ManageDiscount(c.Request.Context(), cmd)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		if discount == nil {
			c.JSON(http.StatusOK, gin.H{"deleted": cmd.Discount.ID})
			return
		}
		c.JSON(http.StatusOK, discount)
	}
}

func getRatesHandler(service *application.SettingsService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		rates, err := service.GetRates(c.Request.Context())
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, rates)
	}
}

func updateRatesHandler(service *application.SettingsService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		responder := middleware.NewErrorResponder(c, logger.Logger)

		var cmd application.UpdateRatesCommand
		if appErr := middleware.BindAndValidate(c, &cmd); appErr != nil {
			responder.RespondWithAppError(appErr)
			return
		}

		rates, err := service.UpdateRates(c.Request.Context(), cmd)
		if err != nil {
			responder.RespondWithError(err)
			return
		}

		c.JSON(http.StatusOK, rates)
	}
}
