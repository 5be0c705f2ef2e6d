// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"zhi/internal/models"
	"zhi/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// Seeder builds domain entities and persists them through the repository
// layer, so seeded data goes through the same write paths as the API.
type Seeder struct {
	db       *gorm.DB
	users    repository.UserRepository
	posts    repository.PostRepository
	likes    repository.EdgeRepository
	retweets repository.RetweetRepository
	follows  repository.FollowRepository
	rand     *rand.Rand
}

// NewSeeder creates a new Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db:       db,
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		likes:    repository.NewEdgeRepository(db, repository.LikeEdges),
		retweets: repository.NewRetweetRepository(db),
		follows:  repository.NewFollowRepository(db),
		rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// ClearAll removes all seeded rows. Edge tables first to respect references.
func (s *Seeder) ClearAll() error {
	for _, table := range []string{"likes", "retweets", "follows", "posts", "users"} {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Cleared existing data")
	return nil
}

// SeedUsers creates n users with the password "password123".
func (s *Seeder) SeedUsers(ctx context.Context, n int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, n)
	for i := 0; i < n; i++ {
		user := &models.User{
			Username: strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), gofakeit.Number(100, 999))),
			Email:    gofakeit.Email(),
			Password: string(hashed),
			Bio:      gofakeit.Sentence(10),
			Avatar:   fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedTimeline creates n original posts plus a spread of replies.
func (s *Seeder) SeedTimeline(ctx context.Context, users []*models.User, n int) ([]*models.Post, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to post as")
	}

	posts := make([]*models.Post, 0, n)
	for i := 0; i < n; i++ {
		author := users[s.rand.Intn(len(users))]
		content := gofakeit.Sentence(s.rand.Intn(20) + 3)
		var image *string
		if s.rand.Intn(4) == 0 {
			url := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID())
			image = &url
		}

		post := models.NewOriginalPost(author.ID, content, image)
		if err := s.posts.Create(ctx, post); err != nil {
			return nil, err
		}
		posts = append(posts, post)

		// roughly a third of posts pick up a couple of replies
		if s.rand.Intn(3) == 0 {
			for r := 0; r < s.rand.Intn(3)+1; r++ {
				replier := users[s.rand.Intn(len(users))]
				reply := models.NewReplyPost(replier.ID, post.ID, gofakeit.Sentence(s.rand.Intn(12)+2), nil)
				if err := s.posts.Create(ctx, reply); err != nil {
					return nil, err
				}
			}
		}
	}
	log.Printf("Seeded %d posts", len(posts))
	return posts, nil
}

// SeedEngagement wires follows between users and likes/retweets against posts.
// Duplicate edges are silently skipped by the idempotent edge writes.
func (s *Seeder) SeedEngagement(ctx context.Context, users []*models.User, posts []*models.Post) error {
	for _, user := range users {
		// follow a handful of other users
		for i := 0; i < s.rand.Intn(8); i++ {
			target := users[s.rand.Intn(len(users))]
			if target.ID == user.ID {
				continue
			}
			if _, err := s.follows.Follow(ctx, user.ID, target.ID); err != nil {
				return err
			}
		}

		// like a sample of posts
		for i := 0; i < s.rand.Intn(12); i++ {
			post := posts[s.rand.Intn(len(posts))]
			if _, err := s.likes.Create(ctx, user.ID, post.ID); err != nil {
				return err
			}
		}

		// retweet a couple of posts, occasionally with a quote
		for i := 0; i < s.rand.Intn(3); i++ {
			post := posts[s.rand.Intn(len(posts))]
			if post.UserID == user.ID {
				continue
			}
			var quote *string
			if s.rand.Intn(4) == 0 {
				q := gofakeit.Sentence(s.rand.Intn(8) + 2)
				quote = &q
			}
			if _, _, err := s.retweets.Retweet(ctx, user.ID, post.ID, quote); err != nil {
				return err
			}
		}
	}
	log.Println("Seeded engagement edges")
	return nil
}

// Seed runs the full seeding pipeline.
func Seed(db *gorm.DB, opts Options) error {
	ctx := context.Background()
	s := NewSeeder(db)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return err
		}
	}

	users, err := s.SeedUsers(ctx, opts.NumUsers)
	if err != nil {
		return err
	}
	posts, err := s.SeedTimeline(ctx, users, opts.NumPosts)
	if err != nil {
		return err
	}
	return s.SeedEngagement(ctx, users, posts)
}
