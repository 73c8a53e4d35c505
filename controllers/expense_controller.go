package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/services"

	"github.com/gin-gonic/gin"
)

type AddExpensesInput struct {
	LedgerID *uint                   `json:"ledger_id"`
	Expenses []services.ExpenseInput `json:"expenses" binding:"required"`
}

func AddExpenses(c *gin.Context) {
	var input AddExpensesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewExpenseService(config.DB)
	rows, err := svc.Add(currentUserID(c), input.LedgerID, input.Expenses)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expenses added successfully", "data": rows})
}

func ListExpenses(c *gin.Context) {
	svc := services.NewExpenseService(config.DB)
	rows, err := svc.List(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func DeleteExpense(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid expense id"})
		return
	}

	svc := services.NewExpenseService(config.DB)
	if err := svc.Delete(currentUserID(c), uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "expense deleted"})
}

// GetExpenseChart aggregates visible expenses into ordered buckets with a
// per-category breakdown.
func GetExpenseChart(c *gin.Context) {
	svc := services.NewAggregateService(config.DB)
	buckets, err := svc.ExpenseSeries(currentUserID(c), c.Param("granularity"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// GetWeeklyBudgetProgress compares this week's spend per category against
// its budget.
func GetWeeklyBudgetProgress(c *gin.Context) {
	svc := services.NewAggregateService(config.DB)
	progress, err := svc.WeeklyBudgetProgress(currentUserID(c), time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
