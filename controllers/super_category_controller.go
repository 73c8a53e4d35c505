package controllers

import (
	"net/http"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/services"

	"github.com/gin-gonic/gin"
)

type ApplyLabelInput struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// ApplySuperCategory stamps every expense in the date range with the label
// and returns the recomputed total.
func ApplySuperCategory(c *gin.Context) {
	var input ApplyLabelInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := services.ParseCivilDate(input.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := services.ParseCivilDate(input.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}

	svc := services.NewExpenseService(config.DB)
	summary, err := svc.ApplyLabel(currentUserID(c), input.Name, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func ListSuperCategories(c *gin.Context) {
	svc := services.NewExpenseService(config.DB)
	labels, err := svc.ListLabels(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, labels)
}

func RemoveSuperCategory(c *gin.Context) {
	svc := services.NewExpenseService(config.DB)
	if err := svc.RemoveLabel(currentUserID(c), c.Param("name")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "super category removed"})
}
