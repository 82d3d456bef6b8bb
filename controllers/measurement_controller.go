package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/studzent/rytmox-backend-sub001/services"

	"github.com/gin-gonic/gin"
)

func AddMeasurement(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.MeasurementInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := services.UpsertMeasurement(uid, input)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

func GetMeasurementHistory(c *gin.Context) {
	uid := c.GetUint("userID")
	limit, _ := strconv.Atoi(c.Query("limit"))

	history, err := services.ListMeasurements(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}
