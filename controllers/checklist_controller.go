package controllers

import (
	"net/http"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/services"

	"github.com/gin-gonic/gin"
)

func GetChecklist(c *gin.Context) {
	svc := services.NewChecklistService(config.DB)
	record, err := svc.Today(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"checklist": record.Checklist})
}

type AddTaskInput struct {
	Task     string `json:"task" binding:"required"`
	Priority int    `json:"priority"`
}

func AddTask(c *gin.Context) {
	var input AddTaskInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := currentUserID(c)
	svc := services.NewChecklistService(config.DB)
	tasks, err := svc.AddTask(userID, input.Task, input.Priority)
	if err != nil {
		respondError(c, err)
		return
	}

	if record, terr := svc.Today(userID); terr == nil {
		pushActivity(userID, record)
	}
	c.JSON(http.StatusOK, gin.H{"message": "task added to today's checklist", "checklist": tasks})
}

func DeleteTask(c *gin.Context) {
	userID := currentUserID(c)
	svc := services.NewChecklistService(config.DB)
	tasks, err := svc.DeleteTask(userID, c.Param("task"))
	if err != nil {
		respondError(c, err)
		return
	}

	if record, terr := svc.Today(userID); terr == nil {
		pushActivity(userID, record)
	}
	c.JSON(http.StatusOK, gin.H{"message": "task removed from today's checklist", "checklist": tasks})
}

type DefaultChecklistInput struct {
	Checklist []services.TaskSeed `json:"checklist" binding:"required"`
}

// SetDefaultChecklist replaces the user's standing checklist; today's
// record is left alone.
func SetDefaultChecklist(c *gin.Context) {
	var input DefaultChecklistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewChecklistService(config.DB)
	tasks, err := svc.SetDefaultChecklist(currentUserID(c), input.Checklist)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "checklist updated successfully", "checklist": tasks})
}
