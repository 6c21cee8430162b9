// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Options tunes the generated data set.
type Options struct {
	// MaxDays spreads created_at timestamps over the last N days.
	MaxDays int
	// PublishedRatio is the fraction of posts seeded as already approved.
	PublishedRatio float64
}

// Seeder populates the database with fake users, posts and engagement.
type Seeder struct {
	db   *gorm.DB
	opts Options
	rng  *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.PublishedRatio <= 0 || opts.PublishedRatio > 1 {
		opts.PublishedRatio = 0.7
	}
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:   db,
		opts: opts,
		rng:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Order matters because of foreign keys.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "comments", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// EnsureAdmin creates the bootstrap administrator account if it does not
// already exist, and returns it.
func (s *Seeder) EnsureAdmin(username string) (*models.User, error) {
	var admin models.User
	err := s.db.Where("username = ?", username).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	admin = models.User{
		Username: username,
		Email:    username + "@inkwell.local",
		Password: "managed-externally",
		IsAdmin:  true,
	}
	if err := s.db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}
	log.Printf("Created admin account %q (id=%d)", username, admin.ID)
	return &admin, nil
}

// SeedUsers creates n regular accounts with fake identities.
func (s *Seeder) SeedUsers(n int) ([]*models.User, error) {
	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		u := &models.User{
			Username: fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:    gofakeit.Email(),
			Password: "managed-externally",
		}
		if err := s.db.Create(u).Error; err != nil {
			return nil, fmt.Errorf("creating user %d: %w", i, err)
		}
		users = append(users, u)
	}
	log.Printf("Seeded %d users", n)
	return users, nil
}

// SeedPosts creates n posts spread across authors and lifecycle states.
// Roughly PublishedRatio of them are published; the rest stay pending or
// rejected, and a few published ones are hidden.
func (s *Seeder) SeedPosts(authors []*models.User, n int) ([]*models.Post, error) {
	if len(authors) == 0 {
		return nil, fmt.Errorf("no authors to attribute posts to")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := authors[s.rng.Intn(len(authors))]
		title := gofakeit.Sentence(s.rng.Intn(6) + 3)
		p := &models.Post{
			Title:     title,
			Slug:      service.Slugify(title) + "-" + fmt.Sprintf("%04d", s.rng.Intn(10000)),
			Content:   gofakeit.Paragraph(2, 4, 12, "\n\n"),
			AuthorID:  author.ID,
			Status:    models.StatusPending,
			CreatedAt: s.backdated(),
		}

		roll := s.rng.Float64()
		switch {
		case roll < s.opts.PublishedRatio:
			p.Status = models.StatusPublished
			p.Views = s.rng.Intn(5000)
			// a small slice of published posts is hidden by moderation
			p.IsHidden = s.rng.Float64() < 0.05
		case roll < s.opts.PublishedRatio+0.2:
			p.Status = models.StatusPending
		default:
			p.Status = models.StatusRejected
		}

		if err := s.db.Create(p).Error; err != nil {
			return nil, fmt.Errorf("creating post %d: %w", i, err)
		}
		posts = append(posts, p)
	}
	log.Printf("Seeded %d posts", n)
	return posts, nil
}

// SeedEngagement adds likes and comments to published posts. Likes go
// through an upsert so rerunning the seeder never violates the unique index.
func (s *Seeder) SeedEngagement(users []*models.User, posts []*models.Post) error {
	likeCount := 0
	commentCount := 0

	for _, p := range posts {
		if p.Status != models.StatusPublished {
			continue
		}

		for _, u := range users {
			if s.rng.Float64() < 0.3 {
				like := models.Like{
					UserID:    u.ID,
					PostID:    p.ID,
					CreatedAt: s.backdated(),
				}
				err := s.db.Clauses(clause.OnConflict{DoNothing: true}).
					Create(&like).Error
				if err != nil {
					return fmt.Errorf("creating like: %w", err)
				}
				likeCount++
			}

			if s.rng.Float64() < 0.15 {
				comment := models.Comment{
					PostID:    p.ID,
					AuthorID:  u.ID,
					Content:   gofakeit.Sentence(s.rng.Intn(15) + 3),
					CreatedAt: s.backdated(),
				}
				if err := s.db.Create(&comment).Error; err != nil {
					return fmt.Errorf("creating comment: %w", err)
				}
				commentCount++
			}
		}
	}

	log.Printf("Seeded %d likes and %d comments", likeCount, commentCount)
	return nil
}

// backdated returns a timestamp within the last MaxDays days.
func (s *Seeder) backdated() time.Time {
	daysBack := s.rng.Intn(s.opts.MaxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().
		Add(-time.Duration(daysBack) * 24 * time.Hour).
		Add(-time.Duration(hoursBack) * time.Hour).
		Add(-time.Duration(minsBack) * time.Minute)
}
