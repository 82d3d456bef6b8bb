package main

import (
	"github.com/studzent/rytmox-backend-sub001/config"
	"github.com/studzent/rytmox-backend-sub001/routes"
	"github.com/studzent/rytmox-backend-sub001/services"
	"github.com/studzent/rytmox-backend-sub001/utils"
)

func main() {
	utils.InitLogger()
	config.InitDB()
	utils.InitS3()

	rt := services.NewRealtimeHub()
	push, err := services.NewPushService(config.DB)
	if err != nil {
		utils.Log.Warnw("push service unavailable, continuing without it", "err", err)
		push = nil
	}
	services.InitNotifier(rt, push)

	r := routes.SetupRouter(routes.Deps{
		OpenAI: services.NewOpenAIService(),
		RT:     rt,
		Push:   push,
	})

	utils.Log.Infow("listening", "addr", ":8080")
	if err := r.Run(":8080"); err != nil {
		utils.Log.Fatalw("server exited", "err", err)
	}
}
