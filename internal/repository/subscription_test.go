package repository

import (
	"context"
	"testing"

	"commune/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func membersCount(t *testing.T, db *gorm.DB, communityID uint) int64 {
	t.Helper()
	var community models.Community
	require.NoError(t, db.First(&community, communityID).Error)
	return community.MembersCount
}

func TestSubscriptionRepository_CreateBumpsMemberCounter(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	community := models.Community{Name: "Club", Status: models.StatusActive, Privacy: models.PrivacyPublic, CreatorID: 1}
	require.NoError(t, db.Create(&community).Error)

	sub := &models.Subscription{UserID: 1, CommunityID: community.ID, PlanID: 1}
	require.NoError(t, repo.Create(ctx, sub))
	assert.True(t, sub.IsActive)
	assert.EqualValues(t, 1, membersCount(t, db, community.ID))

	other := &models.Subscription{UserID: 2, CommunityID: community.ID, PlanID: 1}
	require.NoError(t, repo.Create(ctx, other))
	assert.EqualValues(t, 2, membersCount(t, db, community.ID))
}

func TestSubscriptionRepository_OneActivePerCommunity(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	community := models.Community{Name: "Club", Status: models.StatusActive, Privacy: models.PrivacyPublic, CreatorID: 1}
	require.NoError(t, db.Create(&community).Error)

	require.NoError(t, repo.Create(ctx, &models.Subscription{UserID: 1, CommunityID: community.ID, PlanID: 1}))

	err := repo.Create(ctx, &models.Subscription{UserID: 1, CommunityID: community.ID, PlanID: 2})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "CONFLICT"))
	assert.EqualValues(t, 1, membersCount(t, db, community.ID))
}

func TestSubscriptionRepository_DeactivateDecrementsOnce(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)
	ctx := context.Background()

	community := models.Community{Name: "Club", Status: models.StatusActive, Privacy: models.PrivacyPublic, CreatorID: 1}
	require.NoError(t, db.Create(&community).Error)

	sub := &models.Subscription{UserID: 1, CommunityID: community.ID, PlanID: 1}
	require.NoError(t, repo.Create(ctx, sub))

	require.NoError(t, repo.Deactivate(ctx, sub.ID))
	assert.EqualValues(t, 0, membersCount(t, db, community.ID))

	// Cancelling an already-cancelled subscription must not decrement again.
	require.NoError(t, repo.Deactivate(ctx, sub.ID))
	assert.EqualValues(t, 0, membersCount(t, db, community.ID))

	var reloaded models.Subscription
	require.NoError(t, db.First(&reloaded, sub.ID).Error)
	assert.False(t, reloaded.IsActive)

	// Re-subscribing after a cancel is allowed.
	require.NoError(t, repo.Create(ctx, &models.Subscription{UserID: 1, CommunityID: community.ID, PlanID: 1}))
	assert.EqualValues(t, 1, membersCount(t, db, community.ID))
}

func TestSubscriptionRepository_DeactivateUnknown(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewSubscriptionRepository(db)

	err := repo.Deactivate(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}
