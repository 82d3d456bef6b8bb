package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/studzent/rytmox-backend-sub001/services"

	"github.com/gin-gonic/gin"
)

func envID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid environment id"})
		return 0, false
	}
	return uint(id), true
}

func CreateEnvironment(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.EnvironmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	env, err := services.CreateEnvironment(uid, input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, env)
}

func ListEnvironments(c *gin.Context) {
	uid := c.GetUint("userID")

	envs, err := services.ListEnvironments(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, envs)
}

func UpdateEnvironment(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := envID(c)
	if !ok {
		return
	}

	var input services.EnvironmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	env, err := services.UpdateEnvironment(uid, id, input)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, env)
}

func DeleteEnvironment(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := envID(c)
	if !ok {
		return
	}

	if err := services.DeleteEnvironment(uid, id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// ActivateEnvironment makes this profile the single active one for the
// user; any other active profile is deactivated in the same transaction.
func ActivateEnvironment(c *gin.Context) {
	uid := c.GetUint("userID")
	id, ok := envID(c)
	if !ok {
		return
	}

	env, err := services.ActivateEnvironment(uid, id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, env)
}
