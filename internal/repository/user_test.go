package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"commune/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		FullName:     "Ada Lovelace",
		Email:        "ada@example.com",
		ProfileImage: "https://img.example.com/ada.png",
		ClerkID:      "user_ada",
	}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotZero(t, user.ID)

	got, err := repo.GetByClerkID(ctx, "user_ada")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ada Lovelace", got.FullName)
	assert.Equal(t, "ada@example.com", got.Email)

	byEmail, err := repo.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_GetByClerkID_AbsenceIsNotAnError(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.GetByClerkID(context.Background(), "user_nobody")
	require.NoError(t, err)
	assert.Nil(t, got)

	byEmail, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, byEmail)
}

func TestUserRepository_Create_RejectsDuplicates(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		FullName: "First", Email: "dup@example.com", ClerkID: "user_first",
	}))

	err := repo.Create(ctx, &models.User{
		FullName: "Second", Email: "other@example.com", ClerkID: "user_first",
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "CONFLICT"), "duplicate clerk id should conflict, got %v", err)

	err = repo.Create(ctx, &models.User{
		FullName: "Third", Email: "dup@example.com", ClerkID: "user_third",
	})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "CONFLICT"), "duplicate email should conflict, got %v", err)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestUserRepository_UpdateProfile_PatchesOnlyProfileFields(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		FullName: "Old Name",
		Email:    "old@example.com",
		ClerkID:  "user_patch",
		StripeID: "cus_123",
	}
	require.NoError(t, repo.Create(ctx, user))

	updated, err := repo.UpdateProfile(ctx, "user_patch", "New Name", "new@example.com", "https://img.example.com/new.png")
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)

	var reloaded models.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, "New Name", reloaded.FullName)
	assert.Equal(t, "new@example.com", reloaded.Email)
	assert.Equal(t, "https://img.example.com/new.png", reloaded.ProfileImage)
	assert.Equal(t, "user_patch", reloaded.ClerkID)
	assert.Equal(t, "cus_123", reloaded.StripeID)
}

func TestUserRepository_UpdateProfile_UnknownUser(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.UpdateProfile(context.Background(), "user_missing", "Name", "x@example.com", "")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "NOT_FOUND"))
}

func TestUserRepository_UpdateProfile_EmailCollision(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{
		FullName: "A", Email: "a@example.com", ClerkID: "user_a",
	}))
	require.NoError(t, repo.Create(ctx, &models.User{
		FullName: "B", Email: "b@example.com", ClerkID: "user_b",
	}))

	_, err := repo.UpdateProfile(ctx, "user_b", "B", "a@example.com", "")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "CONFLICT"))
}

func TestUserRepository_Delete_CascadesOwnedRows(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	owner := &models.User{FullName: "Owner", Email: "owner@example.com", ClerkID: "user_owner"}
	other := &models.User{FullName: "Other", Email: "other@example.com", ClerkID: "user_other"}
	require.NoError(t, repo.Create(ctx, owner))
	require.NoError(t, repo.Create(ctx, other))

	community := &models.Community{Name: "Go Devs", Status: models.StatusActive, Privacy: models.PrivacyPublic, CreatorID: owner.ID}
	require.NoError(t, db.Create(community).Error)

	thread := &models.Thread{Text: "hello", UserID: owner.ID, CommunityID: community.ID}
	require.NoError(t, db.Create(thread).Error)
	// Another user's like on the owner's thread must go with the thread.
	require.NoError(t, db.Create(&models.ThreadLike{ThreadID: thread.ID, UserID: other.ID}).Error)

	event := &models.Event{Title: "Meetup", UserID: owner.ID, CommunityID: community.ID}
	require.NoError(t, db.Create(event).Error)
	require.NoError(t, db.Create(&models.EventInterest{EventID: event.ID, UserID: other.ID}).Error)

	require.NoError(t, db.Create(&models.Message{Message: "hi", Type: models.MessageTypeText, CommunityID: community.ID, ChannelID: 1, UserID: owner.ID}).Error)
	subRepo := NewSubscriptionRepository(db)
	require.NoError(t, subRepo.Create(ctx, &models.Subscription{UserID: owner.ID, CommunityID: community.ID, PlanID: 1}))
	require.EqualValues(t, 1, membersCount(t, db, community.ID))

	found, err := repo.Delete(ctx, "user_owner")
	require.NoError(t, err)
	assert.True(t, found)

	counts := map[string]interface{}{
		"users":           &models.User{},
		"threads":         &models.Thread{},
		"thread_likes":    &models.ThreadLike{},
		"events":          &models.Event{},
		"event_interests": &models.EventInterest{},
		"messages":        &models.Message{},
		"subscriptions":   &models.Subscription{},
	}
	expected := map[string]int64{
		"users":           1, // the other user survives
		"threads":         0,
		"thread_likes":    0,
		"events":          0,
		"event_interests": 0,
		"messages":        0,
		"subscriptions":   0,
	}
	for name, model := range counts {
		var n int64
		require.NoError(t, db.Model(model).Count(&n).Error)
		assert.Equal(t, expected[name], n, "table %s", name)
	}

	// Communities created by the user are kept, with the member counter
	// back to its pre-subscription value.
	var communityCount int64
	require.NoError(t, db.Model(&models.Community{}).Count(&communityCount).Error)
	assert.EqualValues(t, 1, communityCount)
	assert.EqualValues(t, 0, membersCount(t, db, community.ID))
}

func TestUserRepository_Delete_ReleasesCommunityMemberships(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	subRepo := NewSubscriptionRepository(db)
	ctx := context.Background()

	leaver := &models.User{FullName: "Leaver", Email: "leaver@example.com", ClerkID: "user_leaver"}
	stayer := &models.User{FullName: "Stayer", Email: "stayer@example.com", ClerkID: "user_stayer"}
	require.NoError(t, repo.Create(ctx, leaver))
	require.NoError(t, repo.Create(ctx, stayer))

	first := models.Community{Name: "First", Status: models.StatusActive, Privacy: models.PrivacyPublic, CreatorID: stayer.ID}
	second := models.Community{Name: "Second", Status: models.StatusActive, Privacy: models.PrivacyPublic, CreatorID: stayer.ID}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	require.NoError(t, subRepo.Create(ctx, &models.Subscription{UserID: leaver.ID, CommunityID: first.ID, PlanID: 1}))
	require.NoError(t, subRepo.Create(ctx, &models.Subscription{UserID: stayer.ID, CommunityID: first.ID, PlanID: 1}))

	// A cancelled subscription no longer counts, so its community must not
	// be decremented a second time on user deletion.
	cancelled := &models.Subscription{UserID: leaver.ID, CommunityID: second.ID, PlanID: 2}
	require.NoError(t, subRepo.Create(ctx, cancelled))
	require.NoError(t, subRepo.Deactivate(ctx, cancelled.ID))

	require.EqualValues(t, 2, membersCount(t, db, first.ID))
	require.EqualValues(t, 0, membersCount(t, db, second.ID))

	found, err := repo.Delete(ctx, "user_leaver")
	require.NoError(t, err)
	assert.True(t, found)

	// Only the active membership is released; the other member remains.
	assert.EqualValues(t, 1, membersCount(t, db, first.ID))
	assert.EqualValues(t, 0, membersCount(t, db, second.ID))

	var subs int64
	require.NoError(t, db.Model(&models.Subscription{}).Where("user_id = ?", leaver.ID).Count(&subs).Error)
	assert.Zero(t, subs)
}

func TestUserRepository_Delete_AbsentUserIsNoError(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)

	found, err := repo.Delete(context.Background(), "user_ghost")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestUserRepository_List_OrdersNewestFirst(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	for _, u := range []*models.User{
		{FullName: "One", Email: "one@example.com", ClerkID: "user_one"},
		{FullName: "Two", Email: "two@example.com", ClerkID: "user_two"},
	} {
		require.NoError(t, repo.Create(ctx, u))
	}

	users, err := repo.List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	page, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}

func TestUserRepository_GetByEmail_DatabaseError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	repo := NewUserRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("x@example.com", 1).
		WillReturnError(errors.New("connection timeout"))

	user, err := repo.GetByEmail(context.Background(), "x@example.com")
	assert.Nil(t, user)
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "INTERNAL_ERROR"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
