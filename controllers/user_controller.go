package controllers

import (
	"net/http"

	"github.com/rkant062/fitback/services"

	"github.com/gin-gonic/gin"
)

func GetProfile(c *gin.Context) {
	user, err := services.GetProfile(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

type UpdateProfileInput struct {
	Username string `json:"username" binding:"required"`
}

func UpdateProfile(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := services.UpdateProfile(currentUserID(c), input.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
