package controllers

import (
	"net/http"
	"time"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/services"

	"github.com/gin-gonic/gin"
)

// GetToday returns the canonical record for the current day, creating it
// from the user's default checklist on first access.
func GetToday(c *gin.Context) {
	svc := services.NewChecklistService(config.DB)
	record, err := svc.Today(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

type ReconcileInput struct {
	CaloriesBurned int                   `json:"caloriesBurned"`
	Checklist      []services.TaskUpdate `json:"checklist"`
}

// ReconcileToday merges a partial update into today's record. The calorie
// value is a delta added to the running total.
func ReconcileToday(c *gin.Context) {
	var input ReconcileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	svc := services.NewChecklistService(config.DB)
	record, err := svc.Reconcile(userID, input.CaloriesBurned, input.Checklist)
	if err != nil {
		respondError(c, err)
		return
	}

	pushActivity(userID, record)
	c.JSON(http.StatusOK, gin.H{"message": "data updated successfully", "data": record})
}

func GetHistory(c *gin.Context) {
	svc := services.NewChecklistService(config.DB)
	records, err := svc.History(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GetActivityChart aggregates the user's history into ordered
// daily/weekly/monthly buckets.
func GetActivityChart(c *gin.Context) {
	svc := services.NewAggregateService(config.DB)
	buckets, err := svc.ActivitySeries(currentUserID(c), c.Param("granularity"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, buckets)
}

// AddBulkRecords inserts historical records from a JSON array.
func AddBulkRecords(c *gin.Context) {
	var input []services.BulkRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewChecklistService(config.DB)
	records, err := svc.BulkAdd(currentUserID(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "bulk data added successfully", "data": records})
}

// ImportWorkbook accepts an .xlsx upload of historical records.
func ImportWorkbook(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file uploaded"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()

	svc := services.NewImportService(services.NewChecklistService(config.DB))
	records, err := svc.ImportWorkbook(currentUserID(c), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "data uploaded and saved successfully", "data": records, "imported_at": time.Now()})
}
