package routes

import (
	"github.com/studzent/rytmox-backend-sub001/controllers"
	"github.com/studzent/rytmox-backend-sub001/middlewares"
	"github.com/studzent/rytmox-backend-sub001/services"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	OpenAI *services.OpenAIService
	RT     *services.RealtimeHub
	Push   *services.PushService
}

func SetupRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	aiCtl := controllers.NewAIController(deps.OpenAI)
	rtCtl := controllers.NewRealtimeController(deps.RT)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	authorized := r.Group("/")
	authorized.Use(middlewares.AuthMiddleware())
	{
		user := authorized.Group("/user")
		{
			user.GET("/profile", controllers.GetProfile)
			user.PUT("/profile", controllers.UpdateProfile)
			user.DELETE("/account", controllers.DeleteAccount)
		}

		measurements := authorized.Group("/measurements")
		{
			measurements.POST("", controllers.AddMeasurement)
			measurements.GET("", controllers.GetMeasurementHistory)
		}

		targets := authorized.Group("/targets")
		{
			targets.GET("", controllers.GetTargets)
			targets.POST("/recalculate", controllers.RecalculateTargets)
			targets.PUT("/settings", controllers.UpdateTargetSettings)
			targets.GET("/history", controllers.GetTargetHistory)
		}

		environments := authorized.Group("/environments")
		{
			environments.POST("", controllers.CreateEnvironment)
			environments.GET("", controllers.ListEnvironments)
			environments.PUT("/:id", controllers.UpdateEnvironment)
			environments.DELETE("/:id", controllers.DeleteEnvironment)
			environments.POST("/:id/activate", controllers.ActivateEnvironment)
		}

		ai := authorized.Group("/ai")
		{
			ai.POST("/workout", aiCtl.GenerateWorkout)
			ai.GET("/workout/history", aiCtl.GetWorkoutHistory)
			ai.POST("/nutrition", aiCtl.AnalyzeNutrition)
			ai.POST("/transcribe", aiCtl.TranscribeVoice)
		}

		if deps.Push != nil {
			devCtl := controllers.NewDeviceController(deps.Push)
			authorized.POST("/devices", devCtl.Register)
		}

		authorized.GET("/ws", rtCtl.TargetsWS)
	}

	return r
}
