package controllers

import (
	"net/http"
	"strconv"

	"github.com/rkant062/fitback/config"
	"github.com/rkant062/fitback/services"

	"github.com/gin-gonic/gin"
)

type CreateLedgerInput struct {
	Name string `json:"name" binding:"required"`
}

func CreateLedger(c *gin.Context) {
	var input CreateLedgerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewLedgerService(config.DB)
	ledger, err := svc.Create(currentUserID(c), input.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	// the join token is returned once at creation; afterwards it is
	// owner-only via the token endpoint
	c.JSON(http.StatusCreated, gin.H{"ledger": ledger, "join_token": ledger.JoinToken})
}

type JoinLedgerInput struct {
	Token string `json:"token" binding:"required"`
}

func JoinLedger(c *gin.Context) {
	var input JoinLedgerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := services.NewLedgerService(config.DB)
	ledger, err := svc.Join(input.Token, currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "joined ledger", "ledger": ledger})
}

func ListLedgers(c *gin.Context) {
	svc := services.NewLedgerService(config.DB)
	ledgers, err := svc.ListForUser(currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ledgers)
}

func GetLedgerToken(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ledger id"})
		return
	}

	svc := services.NewLedgerService(config.DB)
	token, err := svc.Token(uint(id), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"join_token": token})
}

// DeactivateLedger soft-deletes a ledger; collaborators lose access while
// historical expense rows stay put.
func DeactivateLedger(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ledger id"})
		return
	}

	svc := services.NewLedgerService(config.DB)
	if err := svc.Deactivate(uint(id), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "ledger deactivated"})
}
