package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"library-backend/internal/domains/account"
	"library-backend/internal/shared/middleware"
	"library-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	// Health check
	router.GET("/health", healthCheckHandler(c))

	setupCatalogRoutes(router, c)
	setupAuthRoutes(router, c)
	setupProfileRoutes(router, c)
	setupLoanRoutes(router, c)
	setupStaffRoutes(router, c)

	return router
}

// ========================================
// CATALOG ROUTES (public)
// ========================================
func setupCatalogRoutes(router *gin.Engine, c *container.Container) {
	// Home hoạt động cả khi anonymous; auth chỉ để biết user là ai
	router.GET("/",
		middleware.OptionalAuth(c.JWTManager, c.Cache),
		c.BookHandler.Home,
	)

	router.GET("/categories", c.CategoryHandler.List)
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(router *gin.Engine, c *container.Container) {
	accounts := router.Group("/accounts")
	{
		accounts.POST("/register", c.AccountHandler.Register)
		accounts.POST("/login", c.AccountHandler.Login)
		accounts.POST("/logout",
			middleware.AuthMiddleware(c.JWTManager, c.Cache),
			c.AccountHandler.Logout,
		)
	}
}

// ========================================
// PROFILE ROUTES (authenticated)
// ========================================
func setupProfileRoutes(router *gin.Engine, c *container.Container) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(c.JWTManager, c.Cache))
	{
		profile.GET("", c.AccountHandler.GetProfile)
		profile.PUT("", c.AccountHandler.UpdateProfile)
		profile.PUT("/password", c.AccountHandler.ChangePassword)
	}
}

// ========================================
// LOAN ROUTES (authenticated)
// ========================================
func setupLoanRoutes(router *gin.Engine, c *container.Container) {
	loans := router.Group("/")
	loans.Use(middleware.AuthMiddleware(c.JWTManager, c.Cache))
	{
		loans.POST("/book/borrow/:book_id", c.LoanHandler.Borrow)
		loans.POST("/book/return/:record_id", c.LoanHandler.Return)
		loans.GET("/loans/mine", c.LoanHandler.MyLoans)
	}
}

// ========================================
// STAFF ROUTES (role >= staff)
// ========================================
func setupStaffRoutes(router *gin.Engine, c *container.Container) {
	staff := router.Group("/")
	staff.Use(
		middleware.AuthMiddleware(c.JWTManager, c.Cache),
		middleware.RequireRole(account.RoleStaff),
	)
	{
		// Catalog mutations
		staff.POST("/book/add", c.BookHandler.Create)
		staff.PUT("/book/edit/:id", c.BookHandler.Update)
		staff.POST("/book/delete/:id", c.BookHandler.Delete)

		staff.POST("/category/add", c.CategoryHandler.Create)
		staff.POST("/category/delete/:id", c.CategoryHandler.Delete)

		// Reports + dashboard
		staff.GET("/accounts/staff", c.ReportHandler.StaffDashboard)
		staff.GET("/inventory", c.ReportHandler.Inventory)
		staff.GET("/overdue", c.ReportHandler.Overdue)
		staff.GET("/overdue/export", c.ReportHandler.OverdueExport)
		staff.GET("/statistics", c.ReportHandler.Statistics)
	}
}

// ========================================
// HEALTH CHECK
// ========================================
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		// Check database
		dbStatus := "ok"
		{
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.DB.HealthCheck(ctx); err != nil {
				dbStatus = fmt.Sprintf("error: %v", err)
				health["status"] = "degraded"
			}
		}

		// Check redis - lỗi không làm degraded (cache là optional)
		redisStatus := "ok"
		{
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()

			if err := appCtx.Cache.Ping(ctx); err != nil {
				redisStatus = fmt.Sprintf("error: %v", err)
			}
		}

		health["services"] = gin.H{
			"database": dbStatus,
			"redis":    redisStatus,
		}

		status := http.StatusOK
		if health["status"] != "ok" {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, health)
	}
}
