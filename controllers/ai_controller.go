package controllers

import (
	"net/http"
	"strconv"

	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/models"
	"github.com/studzent/rytmox-backend-sub001/services"

	"github.com/gin-gonic/gin"
)

type AIController struct {
	OpenAI *services.OpenAIService
}

func NewAIController(openai *services.OpenAIService) *AIController {
	return &AIController{OpenAI: openai}
}

// GenerateWorkout builds the effective profile (request overrides stored
// profile), pulls the active training environment's equipment and asks the
// model for a plan. The plan is persisted before returning.
func (ac *AIController) GenerateWorkout(c *gin.Context) {
	uid := c.GetUint("userID")

	var req services.WorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	profile := services.EffectiveProfileFor(&user, req.Overrides)

	env, err := services.GetActiveEnvironment(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	plan, err := ac.OpenAI.GenerateWorkoutPlan(profile, env, req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	saved, err := services.SaveWorkoutPlan(uid, req, plan)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, saved)
}

func (ac *AIController) GetWorkoutHistory(c *gin.Context) {
	uid := c.GetUint("userID")
	limit, _ := strconv.Atoi(c.Query("limit"))

	plans, err := services.ListWorkoutPlans(uid, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, plans)
}

type NutritionAnalysisInput struct {
	Description string `json:"description" binding:"required"`
	Image       string `json:"image"` // optional data URL
}

func (ac *AIController) AnalyzeNutrition(c *gin.Context) {
	var input NutritionAnalysisInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	analysis, err := ac.OpenAI.AnalyzeNutrition(input.Description, input.Image)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// TranscribeVoice accepts a multipart "audio" file and returns its text.
func (ac *AIController) TranscribeVoice(c *gin.Context) {
	fileHeader, err := c.FormFile("audio")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing 'audio' file"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read audio file"})
		return
	}
	defer f.Close()

	text, err := ac.OpenAI.TranscribeAudio(fileHeader.Filename, f)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"text": text})
}
