package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/studzent/rytmox-backend-sub001/models"
	"github.com/studzent/rytmox-backend-sub001/services"

	"github.com/gin-gonic/gin"
)

func targetsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrStorage):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// GetTargets returns the user's current targets after the opportunistic
// staleness check (may recompute on the way out).
func GetTargets(c *gin.Context) {
	uid := c.GetUint("userID")

	targets, err := services.EnsureFreshTargets(uid)
	if err != nil {
		targetsError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

// RecalculateTargets forces a recomputation from the stored profile.
func RecalculateTargets(c *gin.Context) {
	uid := c.GetUint("userID")

	targets, err := services.RecalculateForUser(uid, models.TargetEventProfileChange, "explicit recalculation requested")
	if err != nil {
		targetsError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

type TargetSettingsInput struct {
	AutoUpdateEnabled *bool `json:"auto_update_enabled" binding:"required"`
}

func UpdateTargetSettings(c *gin.Context) {
	uid := c.GetUint("userID")

	var input TargetSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targets, err := services.SetAutoUpdate(uid, *input.AutoUpdateEnabled)
	if err != nil {
		targetsError(c, err)
		return
	}
	c.JSON(http.StatusOK, targets)
}

func GetTargetHistory(c *gin.Context) {
	uid := c.GetUint("userID")
	limit, _ := strconv.Atoi(c.Query("limit"))

	events, err := services.ListTargetEvents(uid, limit)
	if err != nil {
		targetsError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
