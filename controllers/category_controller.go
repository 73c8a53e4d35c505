package controllers

import (
	"net/http"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func ListCategories(c *gin.Context) {
	svc := services.NewExpenseService(config.DB)
	cats, err := svc.Categories(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cats)
}

type UpsertCategoryInput struct {
	Category string          `json:"category" binding:"required"`
	Budget   decimal.Decimal `json:"budget"`
}

func UpsertCategory(c *gin.Context) {
	var input UpsertCategoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewExpenseService(config.DB)
	cats, err := svc.UpsertCategory(currentUserID(c), input.Category, input.Budget)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category saved", "categories": cats})
}

func DeleteCategory(c *gin.Context) {
	svc := services.NewExpenseService(config.DB)
	cats, err := svc.DeleteCategory(currentUserID(c), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted", "categories": cats})
}
