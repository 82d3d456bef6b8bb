package services

import "github.com/studzent/rytmox-backend-sub001/models"

type notifierDeps struct {
	rt *RealtimeHub
	ps *PushService
}

var _notify notifierDeps

// InitNotifier wires the realtime hub and push service into the target
// pipeline. Safe to skip in tests; notifications then no-op.
func InitNotifier(rt *RealtimeHub, ps *PushService) {
	_notify = notifierDeps{rt: rt, ps: ps}
}

func notifyTargetsUpdated(userID uint, t *models.NutritionTargets) {
	if _notify.rt != nil {
		_notify.rt.BroadcastTargetsUpdated(userID, t)
	}
	if _notify.ps != nil {
		_notify.ps.PushTargetsUpdated(userID, t)
	}
}
