package routes

import (
	"techcity-backend/config"
	"techcity-backend/controllers"
	"techcity-backend/services"
	"techcity-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:3000",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	transactions := &controllers.TransactionController{
		Sales:    services.NewSalesService(config.DB),
		Ordering: services.NewOrderingService(config.DB),
	}
	payments := &controllers.PaymentController{
		Ledger: services.NewLedgerService(config.DB),
	}
	receivables := &controllers.ReceivableController{
		Receivables: services.NewReceivablesService(config.DB),
	}
	reports := &controllers.ReportController{
		Reconciliation: services.NewReconciliationService(config.DB),
	}

	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)

		auth.Use(utils.AuthMiddleware())
		auth.GET("/me", controllers.Me)
	}

	api := r.Group("/api")
	api.Use(utils.AuthMiddleware())
	{
		// Pricing preview for the entry form
		api.POST("/pricing/preview", transactions.PreviewPricing)

		// Sale routes
		sales := api.Group("/sales")
		{
			sales.POST("", transactions.CreateSale)
			sales.GET("", transactions.ListSales)
			sales.PUT("/reorder", transactions.Reorder)
			sales.GET("/:id", transactions.GetSale)
			sales.DELETE("/:id", transactions.DeleteSale)

			// Installment payment tracking
			sales.POST("/:id/payments", payments.RecordPayment)
			sales.GET("/:id/payments", payments.PaymentHistory)
		}

		// Receivables routes
		recv := api.Group("/receivables")
		{
			recv.GET("", receivables.ListReceivables)
			recv.POST("/selection/validate", receivables.ValidateSelection)
			recv.POST("/mark-paid", receivables.MarkPaid)
		}

		// Service-ledger routes
		svc := api.Group("/services")
		{
			svc.POST("", controllers.CreateServiceEntry)
			svc.GET("", controllers.ListServiceEntries)
		}

		// Daily report routes
		daily := api.Group("/reports/daily")
		{
			daily.GET("/:date", reports.PreviewReport)
			daily.PUT("/:date", reports.SaveReport)
			daily.GET("/:date/saved", reports.SavedReport)
		}
	}

	return r
}
