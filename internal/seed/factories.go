// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"commune/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, r: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// CreateUser persists a fake user, as if it had arrived through the webhook.
func (f *Factory) CreateUser() (*models.User, error) {
	user := &models.User{
		FullName:     gofakeit.Name(),
		Email:        gofakeit.Email(),
		ProfileImage: fmt.Sprintf("https://picsum.photos/seed/%s/256/256", uuid.NewString()),
		ClerkID:      "user_" + uuid.NewString(),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateCommunity persists a fake community owned by creator.
func (f *Factory) CreateCommunity(creator *models.User) (*models.Community, error) {
	privacy := models.PrivacyPublic
	if f.r.Intn(4) == 0 {
		privacy = models.PrivacyPrivate
	}
	community := &models.Community{
		Name:        gofakeit.Company(),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		ImageURL:    fmt.Sprintf("https://picsum.photos/seed/%s/800/400", uuid.NewString()),
		Status:      models.StatusActive,
		Privacy:     privacy,
		Domain:      gofakeit.DomainName(),
		Theme: models.Theme{
			PrimaryColorBg:     gofakeit.HexColor(),
			SecondaryColorBg:   gofakeit.HexColor(),
			ActionColor:        gofakeit.HexColor(),
			PrimaryColorText:   gofakeit.HexColor(),
			SecondaryColorText: gofakeit.HexColor(),
		},
		Features: []models.Feature{
			{Title: gofakeit.BuzzWord(), Description: gofakeit.Sentence(6), Icon: "star", Order: 0},
			{Title: gofakeit.BuzzWord(), Description: gofakeit.Sentence(6), Icon: "bolt", Order: 1},
		},
		CreatorID: creator.ID,
	}
	if err := f.db.Create(community).Error; err != nil {
		return nil, err
	}
	return community, nil
}

// CreateThread persists a fake thread.
func (f *Factory) CreateThread(user *models.User, community *models.Community) (*models.Thread, error) {
	thread := &models.Thread{
		Text:        gofakeit.Paragraph(1, 3, 10, " "),
		UserID:      user.ID,
		CommunityID: community.ID,
	}
	if f.r.Intn(3) == 0 {
		thread.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", uuid.NewString())
	}
	if err := f.db.Create(thread).Error; err != nil {
		return nil, err
	}
	return thread, nil
}

// CreateChannel persists a fake channel.
func (f *Factory) CreateChannel(community *models.Community) (*models.Channel, error) {
	channel := &models.Channel{
		Name:          gofakeit.HackerNoun(),
		Icon:          "hash",
		Status:        models.StatusActive,
		AllowsWriting: true,
		CommunityID:   community.ID,
	}
	if err := f.db.Create(channel).Error; err != nil {
		return nil, err
	}
	return channel, nil
}

// CreateEvent persists a fake upcoming event.
func (f *Factory) CreateEvent(user *models.User, community *models.Community) (*models.Event, error) {
	start := time.Now().Add(time.Duration(1+f.r.Intn(60)) * 24 * time.Hour)
	end := start.Add(2 * time.Hour)
	event := &models.Event{
		Title:       gofakeit.Sentence(4),
		Description: gofakeit.Paragraph(1, 2, 8, " "),
		URL:         gofakeit.URL(),
		DateInterval: models.DateInterval{
			StartDate: start,
			EndDate:   &end,
		},
		UserID:      user.ID,
		CommunityID: community.ID,
	}
	if err := f.db.Create(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// CreateMessage persists a fake text message in the channel.
func (f *Factory) CreateMessage(user *models.User, channel *models.Channel) (*models.Message, error) {
	message := &models.Message{
		Message:     gofakeit.HackerPhrase(),
		Type:        models.MessageTypeText,
		CommunityID: channel.CommunityID,
		ChannelID:   channel.ID,
		UserID:      user.ID,
	}
	if err := f.db.Create(message).Error; err != nil {
		return nil, err
	}
	return message, nil
}

// CreatePlan persists a fake plan for the community.
func (f *Factory) CreatePlan(community *models.Community) (*models.Plan, error) {
	intervals := []models.PlanInterval{
		models.PlanIntervalWeek,
		models.PlanIntervalMonth,
		models.PlanIntervalYear,
	}
	plan := &models.Plan{
		Name:         gofakeit.BuzzWord(),
		Description:  gofakeit.Sentence(8),
		Price:        float64(5+f.r.Intn(95)) - 0.01,
		Interval:     intervals[f.r.Intn(len(intervals))],
		StripePlanID: "price_" + uuid.NewString(),
		CommunityID:  community.ID,
	}
	if err := f.db.Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}
