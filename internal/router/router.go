// Package router assembles the HTTP routes of the finmentor API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "finmentor/internal/docs" // registers the swagger document
	"finmentor/internal/config"
	"finmentor/internal/events"
	"finmentor/internal/handlers"
	"finmentor/internal/mentor"
	"finmentor/internal/middleware"
	"finmentor/internal/services"
)

// Options configures the router.
type Options struct {
	DB             *gorm.DB
	Publisher      events.Publisher
	DefaultProfile config.DefaultProfile
	PipelineAPIKey string
	Mentor         handlers.Replier
}

// New wires services and handlers onto a gin engine.
func New(opts Options) *gin.Engine {
	db := opts.DB
	replier := opts.Mentor
	if replier == nil {
		replier = mentor.New()
	}

	// Services
	userService := services.NewUserService(db)
	budgetService := services.NewBudgetService(db)
	goalService := services.NewGoalService(db)
	transactionService := services.NewTransactionService(db)
	profileService := services.NewProfileService(db, opts.DefaultProfile)
	plannerService := services.NewPlannerService(budgetService, transactionService, goalService, profileService)
	auditService := services.NewAuditService(db, opts.Publisher)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	budgetHandler := handlers.NewBudgetHandler(budgetService, auditService)
	goalHandler := handlers.NewGoalHandler(goalService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	profileHandler := handlers.NewProfileHandler(profileService, auditService)
	plannerHandler := handlers.NewPlannerHandler(plannerService)
	mentorHandler := handlers.NewMentorHandler(replier)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public auth routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Pipeline routes
	pipeline := v1.Group("/pipeline")
	pipeline.Use(middleware.PipelineAuthMiddleware(opts.PipelineAPIKey))
	pipeline.PUT("/profiles/:userId", profileHandler.IngestProfile)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/profile/financial", profileHandler.GetFinancialProfile)
	protected.PUT("/profile/financial", profileHandler.UpdateFinancialProfile)

	budgets := protected.Group("/budgets")
	budgets.GET("", budgetHandler.ListBudgets)
	budgets.POST("", budgetHandler.UpsertBudget)
	budgets.GET("/:year/:month", budgetHandler.GetBudget)
	budgets.DELETE("/:year/:month", budgetHandler.DeleteBudget)
	budgets.PUT("/:year/:month/category/:categoryName", budgetHandler.UpsertCategoryAmount)

	goals := protected.Group("/goals")
	goals.GET("", goalHandler.ListGoals)
	goals.POST("", goalHandler.CreateGoal)
	goals.GET("/stats/summary", goalHandler.GoalStats)
	goals.GET("/:id", goalHandler.GetGoal)
	goals.PUT("/:id", goalHandler.UpdateGoal)
	goals.DELETE("/:id", goalHandler.DeleteGoal)
	goals.PUT("/:id/amount", goalHandler.UpdateGoalAmount)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/summary", transactionHandler.TransactionSummary)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	planner := protected.Group("/planner")
	planner.GET("/breakdown", plannerHandler.Breakdown)
	planner.GET("/insights", plannerHandler.Insights)

	protected.POST("/mentor/chat", mentorHandler.Chat)
	protected.GET("/tax/estimate", handlers.TaxEstimate)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-API-Key")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
