package services

import (
	"testing"
	"time"

	"github.com/studzent/rytmox-backend-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecalculateCreatesRowAndEvent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	got, err := RecalculateTargets(user.ID, referenceInputs(), models.TargetEventInit, "initial computation")
	require.NoError(t, err)
	assert.Equal(t, 2759.0, got.Calories)
	assert.Equal(t, 172.0, got.ProteinG)
	assert.True(t, got.AutoUpdateEnabled)
	assert.NotEmpty(t, got.LastProfileHash)

	var events []models.TargetChangeEvent
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, models.TargetEventInit, events[0].EventType)
	assert.Equal(t, "initial computation", events[0].Reason)
	assert.JSONEq(t, "null", string(events[0].OldValues))
	assert.Contains(t, string(events[0].NewValues), `"calories":2759`)
}

func TestRecalculateIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)
	in := referenceInputs()

	first, err := RecalculateTargets(user.ID, in, models.TargetEventInit, "initial computation")
	require.NoError(t, err)

	second, err := RecalculateTargets(user.ID, in, models.TargetEventScheduledRecalc, "scheduled check")
	require.NoError(t, err)

	// Values converge, no second event, but bookkeeping is refreshed so
	// the staleness check stops firing.
	assert.Equal(t, first.Calories, second.Calories)
	assert.Equal(t, int64(1), countEvents(t, db, user.ID))
	assert.Equal(t, first.LastProfileHash, second.LastProfileHash)
	assert.False(t, second.LastAutoRecalcAt.Before(first.LastAutoRecalcAt))
}

func TestRecalculateWeightChangeAppendsEvent(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := RecalculateTargets(user.ID, referenceInputs(), models.TargetEventInit, "initial computation")
	require.NoError(t, err)

	heavier := referenceInputs()
	heavier.WeightKg = 82
	got, err := RecalculateTargets(user.ID, heavier, models.TargetEventWeightChangeRecalc, "weight updated")
	require.NoError(t, err)
	assert.Equal(t, 82.0, got.DerivedWeightKg)
	assert.Equal(t, 2870.0, got.WaterMl)

	var events []models.TargetChangeEvent
	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id asc").Find(&events).Error)
	require.Len(t, events, 2)
	assert.Equal(t, models.TargetEventWeightChangeRecalc, events[1].EventType)
	assert.Contains(t, string(events[1].OldValues), `"weight_kg":80`)
	assert.Contains(t, string(events[1].NewValues), `"weight_kg":82`)

	// Still exactly one current row
	var rows int64
	require.NoError(t, db.Model(&models.NutritionTargets{}).Where("user_id = ?", user.ID).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)
}

func TestRecalculatePreservesAutoUpdateFlag(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := RecalculateTargets(user.ID, referenceInputs(), models.TargetEventInit, "initial computation")
	require.NoError(t, err)
	_, err = SetAutoUpdate(user.ID, false)
	require.NoError(t, err)

	heavier := referenceInputs()
	heavier.WeightKg = 85
	got, err := RecalculateTargets(user.ID, heavier, models.TargetEventWeightChangeRecalc, "weight updated")
	require.NoError(t, err)
	assert.False(t, got.AutoUpdateEnabled)
}

func TestRecalculateRejectsInvalidInput(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	bad := referenceInputs()
	bad.WeightKg = 0
	_, err := RecalculateTargets(user.ID, bad, models.TargetEventInit, "initial computation")
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(0), countEvents(t, db, user.ID))
}

func TestEnsureFreshTargets(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	// First read bootstraps the row with an init event.
	first, err := EnsureFreshTargets(user.ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, int64(1), countEvents(t, db, user.ID))

	var events []models.TargetChangeEvent
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&events).Error)
	assert.Equal(t, models.TargetEventInit, events[0].EventType)

	// Immediate second read: hash unchanged, floor not elapsed, no work.
	second, err := EnsureFreshTargets(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first.LastAutoRecalcAt.Unix(), second.LastAutoRecalcAt.Unix())
	assert.Equal(t, int64(1), countEvents(t, db, user.ID))

	// Age the bookkeeping past the floor: recompute runs, values are
	// unchanged, so only the timestamp moves and no event is appended.
	stale := time.Now().Add(-25 * time.Hour)
	require.NoError(t, db.Model(&models.NutritionTargets{}).
		Where("user_id = ?", user.ID).
		Update("last_auto_recalc_at", stale).Error)

	third, err := EnsureFreshTargets(user.ID)
	require.NoError(t, err)
	assert.True(t, third.LastAutoRecalcAt.After(stale))
	assert.Equal(t, int64(1), countEvents(t, db, user.ID))

	// Profile change: next read recomputes with a profile_change event.
	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("goal_type", "gain_muscle").Error)

	fourth, err := EnsureFreshTargets(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "gain_muscle", fourth.GoalType)
	assert.Greater(t, fourth.Calories, first.Calories)
	assert.Equal(t, int64(2), countEvents(t, db, user.ID))

	require.NoError(t, db.Where("user_id = ?", user.ID).Order("id asc").Find(&events).Error)
	assert.Equal(t, models.TargetEventProfileChange, events[1].EventType)
}

func TestSetAutoUpdateWithoutRow(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := SetAutoUpdate(user.ID, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListTargetEventsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	_, err := RecalculateTargets(user.ID, referenceInputs(), models.TargetEventInit, "initial computation")
	require.NoError(t, err)

	heavier := referenceInputs()
	heavier.WeightKg = 83
	_, err = RecalculateTargets(user.ID, heavier, models.TargetEventWeightChangeRecalc, "weight updated")
	require.NoError(t, err)

	events, err := ListTargetEvents(user.ID, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.TargetEventWeightChangeRecalc, events[0].EventType)
	assert.Equal(t, models.TargetEventInit, events[1].EventType)
}
