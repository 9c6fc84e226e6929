// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"murmur/internal/auth"
	"murmur/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// SeedPassword is the plaintext password assigned to every seeded user.
const SeedPassword = "password123"

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder populates the database with generated data.
type Seeder struct {
	db     *gorm.DB
	hasher *auth.PasswordHasher
	rng    *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:     db,
		hasher: auth.NewPasswordHasher(0),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed populates the database with test data
func (s *Seeder) Seed(opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := s.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	posts, err := s.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := s.CreateEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create engagement: %w", err)
	}
	log.Println("Database seeding completed successfully")
	return nil
}

// ClearAll wipes all seeded tables.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, likes, posts, users RESTART IDENTITY CASCADE;`
	return s.db.Exec(sql).Error
}

// CreateUsers inserts n users with unique emails and a shared known password.
func (s *Seeder) CreateUsers(n int) ([]*models.User, error) {
	hashed, err := s.hasher.Hash(SeedPassword)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		users = append(users, &models.User{
			// Suffix keeps emails unique even when gofakeit repeats.
			Email:    fmt.Sprintf("%d.%s", i, gofakeit.Email()),
			Password: hashed,
		})
	}
	if err := s.db.Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CreatePosts inserts n posts spread across the given users with a realistic
// created_at spread over the past 90 days.
func (s *Seeder) CreatePosts(users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to attach posts to")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		user := users[s.rng.Intn(len(users))]
		post := &models.Post{
			Body:      gofakeit.Sentence(8 + s.rng.Intn(12)),
			UserID:    user.ID,
			CreatedAt: time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if s.rng.Intn(3) == 0 {
			post.ImageURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		}
		posts = append(posts, post)
	}
	if err := s.db.Create(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// CreateEngagement attaches comments and likes to posts. Likes are a
// multiset, so a user occasionally likes the same post more than once.
func (s *Seeder) CreateEngagement(users []*models.User, posts []*models.Post) error {
	var comments []*models.Comment
	var likes []*models.Like

	for _, post := range posts {
		for i := 0; i < s.rng.Intn(4); i++ {
			comments = append(comments, &models.Comment{
				Body:   gofakeit.Sentence(4 + s.rng.Intn(10)),
				PostID: post.ID,
				UserID: users[s.rng.Intn(len(users))].ID,
			})
		}
		for i := 0; i < s.rng.Intn(6); i++ {
			likes = append(likes, &models.Like{
				PostID: post.ID,
				UserID: users[s.rng.Intn(len(users))].ID,
			})
		}
	}

	if len(comments) > 0 {
		if err := s.db.Create(&comments).Error; err != nil {
			return err
		}
	}
	if len(likes) > 0 {
		if err := s.db.Create(&likes).Error; err != nil {
			return err
		}
	}
	log.Printf("%d comments and %d likes created", len(comments), len(likes))
	return nil
}
