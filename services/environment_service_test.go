package services

import (
	"testing"

	"github.com/studzent/rytmox-backend-sub001/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func activeCount(t *testing.T, db *gorm.DB, userID uint) (int64, uint) {
	t.Helper()
	var envs []models.TrainingEnvironment
	require.NoError(t, db.Where("user_id = ?", userID).Find(&envs).Error)
	var n int64
	var activeID uint
	for _, e := range envs {
		if e.IsActive {
			n++
			activeID = e.ID
		}
	}
	return n, activeID
}

func TestActivateEnvironmentInvariant(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	a, err := CreateEnvironment(user.ID, EnvironmentInput{Name: "home", Equipment: []EquipmentItem{
		{EquipmentID: "dumbbells", Label: "Dumbbells"},
		{EquipmentID: "bands", Label: "Resistance bands"},
	}})
	require.NoError(t, err)
	b, err := CreateEnvironment(user.ID, EnvironmentInput{Name: "gym"})
	require.NoError(t, err)
	c, err := CreateEnvironment(user.ID, EnvironmentInput{Name: "office"})
	require.NoError(t, err)

	// Nothing active to start
	n, _ := activeCount(t, db, user.ID)
	assert.Equal(t, int64(0), n)

	_, err = ActivateEnvironment(user.ID, a.ID)
	require.NoError(t, err)
	n, id := activeCount(t, db, user.ID)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, a.ID, id)

	// Activating B while A is active leaves exactly B active.
	_, err = ActivateEnvironment(user.ID, b.ID)
	require.NoError(t, err)
	n, id = activeCount(t, db, user.ID)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, b.ID, id)

	// Even from a corrupted starting set (two rows flagged active),
	// activation converges to exactly one.
	require.NoError(t, db.Model(&models.TrainingEnvironment{}).
		Where("user_id = ?", user.ID).
		Update("is_active", true).Error)
	_, err = ActivateEnvironment(user.ID, c.ID)
	require.NoError(t, err)
	n, id = activeCount(t, db, user.ID)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, c.ID, id)
}

func TestActivateEnvironmentWrongOwner(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	other := &models.User{UserID: "other12345", Email: "other@example.com", Password: "hashed", HeightCm: 170, WeightKg: 60,
		ActivityLevel: "light", GoalType: "maintain"}
	require.NoError(t, db.Create(other).Error)

	env, err := CreateEnvironment(other.ID, EnvironmentInput{Name: "their gym"})
	require.NoError(t, err)

	_, err = ActivateEnvironment(user.ID, env.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateEnvironmentReplacesEquipment(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	env, err := CreateEnvironment(user.ID, EnvironmentInput{Name: "home", Equipment: []EquipmentItem{
		{EquipmentID: "dumbbells"},
	}})
	require.NoError(t, err)

	updated, err := UpdateEnvironment(user.ID, env.ID, EnvironmentInput{Name: "home office", Equipment: []EquipmentItem{
		{EquipmentID: "kettlebell", Label: "16kg kettlebell"},
		{EquipmentID: "pullup_bar"},
	}})
	require.NoError(t, err)
	assert.Equal(t, "home office", updated.Name)

	var items []models.EnvironmentEquipment
	require.NoError(t, db.Where("training_environment_id = ?", env.ID).Find(&items).Error)
	require.Len(t, items, 2)
	ids := []string{items[0].EquipmentID, items[1].EquipmentID}
	assert.ElementsMatch(t, []string{"kettlebell", "pullup_bar"}, ids)
}
