package seed

import (
	"log"

	"commune/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers       int
	NumCommunities int
	ShouldClean    bool
}

// Seeder populates the database with demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Children first, so foreign keys hold.
func (s *Seeder) ClearAll() error {
	log.Println("🧹 Clearing existing data...")
	tables := []any{
		&models.ThreadLike{},
		&models.EventInterest{},
		&models.Message{},
		&models.Subscription{},
		&models.Plan{},
		&models.Channel{},
		&models.Event{},
		&models.Thread{},
		&models.Community{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// Run seeds the database according to opts, clearing existing data first
// when opts.ShouldClean is set.
func (s *Seeder) Run(opts Options) error {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("👤 Created %d users", len(users))

	for i := 0; i < opts.NumCommunities; i++ {
		creator := users[s.factory.r.Intn(len(users))]
		community, err := s.factory.CreateCommunity(creator)
		if err != nil {
			return err
		}
		if err := s.populateCommunity(community, users); err != nil {
			return err
		}
	}
	log.Printf("🏘️  Created %d communities", opts.NumCommunities)
	return nil
}

// populateCommunity fills one community with threads, events, channels,
// messages, a plan and a handful of subscribed members.
func (s *Seeder) populateCommunity(community *models.Community, users []*models.User) error {
	for i := 0; i < 3+s.factory.r.Intn(5); i++ {
		author := users[s.factory.r.Intn(len(users))]
		thread, err := s.factory.CreateThread(author, community)
		if err != nil {
			return err
		}
		if err := s.likeThread(thread, users); err != nil {
			return err
		}
	}

	for i := 0; i < 1+s.factory.r.Intn(3); i++ {
		host := users[s.factory.r.Intn(len(users))]
		if _, err := s.factory.CreateEvent(host, community); err != nil {
			return err
		}
	}

	channel, err := s.factory.CreateChannel(community)
	if err != nil {
		return err
	}
	for i := 0; i < 5+s.factory.r.Intn(10); i++ {
		author := users[s.factory.r.Intn(len(users))]
		if _, err := s.factory.CreateMessage(author, channel); err != nil {
			return err
		}
	}

	plan, err := s.factory.CreatePlan(community)
	if err != nil {
		return err
	}
	return s.subscribeMembers(community, plan, users)
}

// likeThread has a random subset of users like the thread, keeping the
// denormalized counter in step with the like rows.
func (s *Seeder) likeThread(thread *models.Thread, users []*models.User) error {
	liked := 0
	for _, user := range users {
		if s.factory.r.Intn(4) != 0 {
			continue
		}
		like := &models.ThreadLike{ThreadID: thread.ID, UserID: user.ID}
		if err := s.db.Create(like).Error; err != nil {
			return err
		}
		liked++
	}
	if liked == 0 {
		return nil
	}
	return s.db.Model(thread).Update("likes_count", gorm.Expr("likes_count + ?", liked)).Error
}

// subscribeMembers subscribes a random subset of users to the plan and
// bumps the community member counter to match.
func (s *Seeder) subscribeMembers(community *models.Community, plan *models.Plan, users []*models.User) error {
	joined := 0
	for _, user := range users {
		if s.factory.r.Intn(3) != 0 {
			continue
		}
		sub := &models.Subscription{
			UserID:               user.ID,
			CommunityID:          community.ID,
			PlanID:               plan.ID,
			StripeSubscriptionID: "sub_" + uuid.NewString(),
			IsActive:             true,
		}
		if err := s.db.Create(sub).Error; err != nil {
			return err
		}
		joined++
	}
	if joined == 0 {
		return nil
	}
	return s.db.Model(community).Update("members_count", gorm.Expr("members_count + ?", joined)).Error
}
