package service

import (
	"context"
	"testing"

	"commune/internal/database"
	"commune/internal/models"
	"commune/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupService(t *testing.T) (*UserService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.PersistentModels()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return NewUserService(repository.NewUserRepository(db), nil), db
}

func TestSyncUser_CreatesNewUser(t *testing.T) {
	t.Parallel()

	svc, db := setupService(t)

	user, err := svc.SyncUser(context.Background(), SyncUserInput{
		ClerkID:      "user_new",
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@example.com",
		ProfileImage: "https://img.example.com/grace.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Grace Hopper", user.FullName)

	var stored models.User
	require.NoError(t, db.Where("clerk_id = ?", "user_new").First(&stored).Error)
	assert.Equal(t, "grace@example.com", stored.Email)
}

func TestSyncUser_UpdatePatchesExistingUser(t *testing.T) {
	t.Parallel()

	svc, db := setupService(t)
	ctx := context.Background()

	created, err := svc.SyncUser(ctx, SyncUserInput{
		ClerkID: "user_x", FirstName: "Old", LastName: "Name", Email: "old@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", created.ID).
		Update("stripe_id", "cus_keepme").Error)

	updated, err := svc.SyncUser(ctx, SyncUserInput{
		ClerkID: "user_x", FirstName: "New", LastName: "Name", Email: "new@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "New Name", updated.FullName)

	var stored models.User
	require.NoError(t, db.First(&stored, created.ID).Error)
	assert.Equal(t, "new@example.com", stored.Email)
	assert.Equal(t, "cus_keepme", stored.StripeID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSyncUser_CreatedAndUpdatedConverge(t *testing.T) {
	t.Parallel()

	svc, db := setupService(t)
	ctx := context.Background()

	in := SyncUserInput{ClerkID: "user_dup", FirstName: "Same", LastName: "Person", Email: "same@example.com"}

	// Duplicate and reordered deliveries of created/updated must land on
	// one identical row.
	for i := 0; i < 3; i++ {
		_, err := svc.SyncUser(ctx, in)
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestSyncUser_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.SyncUser(ctx, SyncUserInput{Email: "x@example.com"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))

	_, err = svc.SyncUser(ctx, SyncUserInput{ClerkID: "user_x"})
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
}

func TestDeleteUser_RemovesUserAndOwnedRows(t *testing.T) {
	t.Parallel()

	svc, db := setupService(t)
	ctx := context.Background()

	user, err := svc.SyncUser(ctx, SyncUserInput{
		ClerkID: "user_gone", FirstName: "To", LastName: "Delete", Email: "gone@example.com",
	})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Thread{Text: "post", UserID: user.ID, CommunityID: 1}).Error)

	require.NoError(t, svc.DeleteUser(ctx, "user_gone"))

	var users, threads int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Thread{}).Count(&threads).Error)
	assert.Zero(t, users)
	assert.Zero(t, threads)
}

func TestDeleteUser_AbsentUserIsANoOp(t *testing.T) {
	t.Parallel()

	svc, _ := setupService(t)

	// The provider may redeliver user.deleted; a second delete succeeds
	// without touching anything.
	require.NoError(t, svc.DeleteUser(context.Background(), "user_never_existed"))
}

func TestDeleteUser_RequiresClerkID(t *testing.T) {
	t.Parallel()

	svc, _ := setupService(t)

	err := svc.DeleteUser(context.Background(), "")
	require.Error(t, err)
	assert.True(t, models.IsCode(err, "VALIDATION_ERROR"))
}

func TestCurrentUser_ResolvesByEmail(t *testing.T) {
	t.Parallel()

	svc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.SyncUser(ctx, SyncUserInput{
		ClerkID: "user_me", FirstName: "Me", LastName: "Myself", Email: "me@example.com",
	})
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, models.Identity{Subject: "user_me", Email: "me@example.com"})
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user_me", user.ClerkID)
}

func TestCurrentUser_AbsenceIsNotAnError(t *testing.T) {
	t.Parallel()

	svc, _ := setupService(t)
	ctx := context.Background()

	user, err := svc.CurrentUser(ctx, models.Identity{})
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.CurrentUser(ctx, models.Identity{Subject: "user_unknown", Email: "stranger@example.com"})
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestSyncUserInput_FullName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ada Lovelace", SyncUserInput{FirstName: "Ada", LastName: "Lovelace"}.FullName())
	assert.Equal(t, "Ada", SyncUserInput{FirstName: "Ada"}.FullName())
	assert.Equal(t, "Lovelace", SyncUserInput{LastName: "Lovelace"}.FullName())
	assert.Equal(t, "", SyncUserInput{}.FullName())
}
