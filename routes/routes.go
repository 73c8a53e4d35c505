package routes

import (
	"github.com/rkant062/fitback/controllers"
	"github.com/rkant062/fitback/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/validate", controllers.ValidateToken)
		auth.POST("/renew", controllers.RenewToken)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
	}

	api := r.Group("/api")
	api.Use(middlewares.AuthMiddleware())
	{
		activity := api.Group("/activity")
		{
			activity.GET("/today", controllers.GetToday)
			activity.PATCH("/today", controllers.ReconcileToday)
			activity.GET("/history", controllers.GetHistory)
			activity.GET("/chart/:granularity", controllers.GetActivityChart)
			activity.POST("/bulk", controllers.AddBulkRecords)
			activity.POST("/import", controllers.ImportWorkbook)
		}

		checklist := api.Group("/checklist")
		{
			checklist.GET("", controllers.GetChecklist)
			checklist.POST("", controllers.AddTask)
			checklist.DELETE("/:task", controllers.DeleteTask)
			checklist.PUT("/default", controllers.SetDefaultChecklist)
		}

		expenses := api.Group("/expenses")
		{
			expenses.POST("", controllers.AddExpenses)
			expenses.GET("", controllers.ListExpenses)
			expenses.DELETE("/:id", controllers.DeleteExpense)
			expenses.GET("/chart/:granularity", controllers.GetExpenseChart)
			expenses.GET("/budget/weekly", controllers.GetWeeklyBudgetProgress)

			expenses.GET("/categories", controllers.ListCategories)
			expenses.POST("/categories", controllers.UpsertCategory)
			expenses.DELETE("/categories/:name", controllers.DeleteCategory)

			expenses.POST("/super-categories", controllers.ApplySuperCategory)
			expenses.GET("/super-categories", controllers.ListSuperCategories)
			expenses.DELETE("/super-categories/:name", controllers.RemoveSuperCategory)
		}

		ledgers := api.Group("/ledgers")
		{
			ledgers.POST("", controllers.CreateLedger)
			ledgers.GET("", controllers.ListLedgers)
			ledgers.POST("/join", controllers.JoinLedger)
			ledgers.GET("/:id/token", controllers.GetLedgerToken)
			ledgers.DELETE("/:id", controllers.DeactivateLedger)
		}

		api.GET("/ws", controllers.ActivityWS)
	}

	return r
}
