package main

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/usmancout/ShopSense-AI/internal/activity"
	"github.com/usmancout/ShopSense-AI/internal/aggregator"
	"github.com/usmancout/ShopSense-AI/internal/auth"
	"github.com/usmancout/ShopSense-AI/internal/catalog"
	"github.com/usmancout/ShopSense-AI/internal/config"
	"github.com/usmancout/ShopSense-AI/internal/search"
	"github.com/usmancout/ShopSense-AI/internal/sources"
	"github.com/usmancout/ShopSense-AI/internal/wishlist"
	"github.com/usmancout/ShopSense-AI/pkg/store"
)

var (
	rateLimiters = make(map[string]*rate.Limiter)
	rateMutex    = &sync.RWMutex{}
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer logger.Sync()

	verifier, err := auth.NewVerifier(cfg.Auth.JWTSecret)
	if err != nil {
		logger.Fatal("jwt verifier", zap.Error(err))
	}

	agg := aggregator.New([]sources.Source{
		sources.NewMartello(cfg.Sources.Martello, cfg.Search.SourceTimeout, logger),
		sources.NewProdexa(cfg.Sources.Prodexa, cfg.Search.SourceTimeout, logger),
		sources.NewStorenta(cfg.Sources.Storenta, cfg.Search.SourceTimeout, logger),
	}, cfg.Search.SourceTimeout, logger)

	redisClient := store.NewRedisClient(cfg.Redis.URL, logger)
	var (
		wishlistStore wishlist.Store = wishlist.NewMemoryStore()
		activityStore activity.Store = activity.NewMemoryStore()
	)
	if store.IsAvailable(redisClient) {
		wishlistStore = wishlist.NewRedisStore(redisClient)
		activityStore = activity.NewRedisStore(redisClient)
	} else {
		logger.Warn("redis unavailable, using in-memory stores")
	}
	wishlists := wishlist.NewService(wishlistStore)
	activities := activity.NewService(activityStore)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	// Request ID + access log middleware
	r.Use(func(c *gin.Context) {
		requestID := uuid.NewString()
		c.Header("X-Request-ID", requestID)
		start := time.Now()
		c.Next()
		logger.Info("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("duration", time.Since(start)),
			zap.Int("status", c.Writer.Status()),
		)
	})

	r.Use(rateLimitMiddleware())

	r.GET("/health", func(c *gin.Context) {
		health := gin.H{
			"status":  "healthy",
			"service": "shopsense-api",
			"version": "1.0.0",
		}
		if store.IsAvailable(redisClient) {
			health["store"] = "redis connected"
		} else {
			health["store"] = "in-memory fallback"
		}
		c.JSON(http.StatusOK, health)
	})

	r.GET("/api/info", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "ShopSense API",
			"version":     "1.0.0",
			"description": "Multi-source product search with wishlist and activity tracking",
			"sources":     []string{"Martello", "Prodexa", "Storenta"},
			"endpoints": map[string]string{
				"GET /search":                   "Search products with filtering and sorting",
				"GET /health":                   "Health check",
				"GET /api/info":                 "API information",
				"GET /api/auth/wishlist":        "List wishlist (bearer token)",
				"POST /api/auth/wishlist":       "Add product to wishlist (bearer token)",
				"POST /api/auth/search-history": "Record a search (bearer token)",
				"POST /api/auth/product-view":   "Record a product view (bearer token)",
			},
		})
	})

	r.GET("/search", func(c *gin.Context) {
		query := strings.TrimSpace(c.Query("q"))
		if query == "" {
			c.JSON(http.StatusBadRequest, catalog.ErrorResponse{
				Error:   "invalid_query",
				Code:    http.StatusBadRequest,
				Message: "search query cannot be empty",
			})
			return
		}

		state := parseFilterState(c, cfg.Search.PriceMax)
		page, limit := parsePagination(c)
		start := time.Now()

		result, err := agg.Search(c.Request.Context(), query)
		allFailed := errors.Is(err, aggregator.ErrAllSourcesFailed)
		if err != nil && !allFailed {
			c.JSON(http.StatusInternalServerError, catalog.ErrorResponse{
				Error:   "search_failed",
				Code:    http.StatusInternalServerError,
				Message: err.Error(),
			})
			return
		}

		visible := search.Apply(result.Products, state, query)
		paged, totalPages := paginate(visible, page, limit)

		c.JSON(http.StatusOK, catalog.SearchResponse{
			Query:            query,
			Products:         paged,
			Total:            len(visible),
			Page:             page,
			Limit:            limit,
			TotalPages:       totalPages,
			SourcesSucceeded: result.Succeeded,
			SourcesFailed:    result.Failed,
			AllSourcesFailed: allFailed,
			Filters:          state,
			Duration:         time.Since(start).String(),
		})
	})

	authed := r.Group("/api/auth", auth.Middleware(verifier))

	authed.GET("/wishlist", func(c *gin.Context) {
		userID, _ := auth.UserID(c)
		products, err := wishlists.List(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"wishlist": products, "count": len(products)})
	})

	authed.POST("/wishlist", func(c *gin.Context) {
		userID, _ := auth.UserID(c)
		var product catalog.Product
		if err := c.ShouldBindJSON(&product); err != nil || product.ID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "product with id required"})
			return
		}

		err := wishlists.Add(c.Request.Context(), userID, product)
		if errors.Is(err, wishlist.ErrDuplicate) {
			c.JSON(http.StatusConflict, gin.H{"error": "product already in wishlist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update wishlist"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "product added to wishlist", "productId": product.ID})
	})

	authed.DELETE("/wishlist/:id", func(c *gin.Context) {
		userID, _ := auth.UserID(c)
		err := wishlists.Remove(c.Request.Context(), userID, c.Param("id"))
		if errors.Is(err, wishlist.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not in wishlist"})
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update wishlist"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "product removed from wishlist"})
	})

	authed.POST("/search-history", func(c *gin.Context) {
		userID, _ := auth.UserID(c)
		var event struct {
			Query    string `json:"query"`
			Category string `json:"category"`
		}
		if err := c.ShouldBindJSON(&event); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		if err := activities.RecordSearch(c.Request.Context(), userID, event.Query, event.Category); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record search"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "recorded"})
	})

	authed.GET("/search-history", func(c *gin.Context) {
		userID, _ := auth.UserID(c)
		records, err := activities.RecentSearches(c.Request.Context(), userID, intQuery(c, "limit"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"searches": records, "count": len(records)})
	})

	authed.POST("/product-view", func(c *gin.Context) {
		userID, _ := auth.UserID(c)
		var rec activity.ViewRecord
		if err := c.ShouldBindJSON(&rec); err != nil || rec.ProductID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		if err := activities.RecordView(c.Request.Context(), userID, rec); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record view"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "recorded"})
	})

	authed.GET("/product-views", func(c *gin.Context) {
		userID, _ := auth.UserID(c)
		records, err := activities.RecentViews(c.Request.Context(), userID, intQuery(c, "limit"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load views"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"views": records, "count": len(records)})
	})

	logger.Info("starting server", zap.String("port", cfg.Server.Port))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func parseFilterState(c *gin.Context, priceMax float64) catalog.FilterState {
	state := catalog.DefaultFilterState(priceMax)

	if category := c.Query("category"); category != "" {
		state.Category = category
	}
	if storeLabel := c.Query("store"); storeLabel != "" {
		state.Store = storeLabel
	}
	if minPrice := c.Query("min_price"); minPrice != "" {
		if price, err := strconv.ParseFloat(minPrice, 64); err == nil && price >= 0 {
			state.PriceMin = price
		}
	}
	if maxPrice := c.Query("max_price"); maxPrice != "" {
		if price, err := strconv.ParseFloat(maxPrice, 64); err == nil && price >= 0 && price <= priceMax {
			state.PriceMax = price
		}
	}
	if state.PriceMin > state.PriceMax {
		state.PriceMin, state.PriceMax = state.PriceMax, state.PriceMin
	}
	if minRating := c.Query("min_rating"); minRating != "" {
		if rating, err := strconv.ParseFloat(minRating, 64); err == nil && rating >= 0 && rating <= 5 {
			state.MinRating = rating
		}
	}
	state.SortBy = catalog.ParseSortMode(c.Query("sort"))

	return state
}

func parsePagination(c *gin.Context) (int, int) {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}

	limit := 10
	if l := c.Query("limit"); l != "" {
		if limitNum, err := strconv.Atoi(l); err == nil && limitNum > 0 {
			limit = limitNum
		}
	}
	if limit > 100 {
		limit = 100
	}

	return page, limit
}

func paginate(products []catalog.Product, page, limit int) ([]catalog.Product, int) {
	total := len(products)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	start := (page - 1) * limit
	if start >= total {
		return []catalog.Product{}, totalPages
	}

	end := start + limit
	if end > total {
		end = total
	}

	return products[start:end], totalPages
}

func intQuery(c *gin.Context, key string) int {
	if v := c.Query(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

func getRateLimiter(ip string) *rate.Limiter {
	rateMutex.RLock()
	limiter, exists := rateLimiters[ip]
	rateMutex.RUnlock()

	if !exists {
		rateMutex.Lock()
		limiter = rate.NewLimiter(rate.Limit(10), 20)
		rateLimiters[ip] = limiter
		rateMutex.Unlock()
	}

	return limiter
}

func rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		limiter := getRateLimiter(ip)

		if !limiter.Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate_limit_exceeded",
				"message":     "Too many requests from your IP",
				"retry_after": "1 second",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
