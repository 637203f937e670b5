// Package seed populates the database with demo accounts, profiles, and
// posts for development. Not used in production builds.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devconnect/internal/gravatar"
	"devconnect/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// demoPassword is shared by every seeded account.
const demoPassword = "password123"

var statuses = []string{
	"Developer", "Senior Developer", "Junior Developer", "Student",
	"Instructor", "Engineering Manager", "DevOps Engineer", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "Rust", "SQL", "HTML", "CSS",
	"React", "Vue", "Docker", "Kubernetes", "PostgreSQL", "Redis", "AWS", "GCP",
}

// Seeder builds and persists demo data.
type Seeder struct {
	db *gorm.DB
	r  *rand.Rand
}

// NewSeeder creates a Seeder bound to the given DB.
func NewSeeder(db *gorm.DB) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{
		db: db,
		r:  rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Run seeds the database per the options.
func (s *Seeder) Run(opts Options) error {
	log.Printf("Seeding %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			log.Printf("Warning: could not clear existing data: %v", err)
		}
	}

	users, err := s.CreateUsers(opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	for i := range users {
		if err := s.CreateProfile(&users[i]); err != nil {
			return fmt.Errorf("failed to create profile for user %d: %w", users[i].ID, err)
		}
	}
	log.Printf("created %d profiles", len(users))

	posts, err := s.CreatePosts(users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	if err := s.CreateEngagement(users, posts); err != nil {
		return fmt.Errorf("failed to create likes and comments: %w", err)
	}

	log.Println("Seeding complete.")
	return nil
}

// ClearAll deletes all seeded rows, children first.
func (s *Seeder) ClearAll() error {
	tables := []any{
		&models.Comment{}, &models.Like{}, &models.Post{},
		&models.Experience{}, &models.Education{}, &models.Profile{},
		&models.User{},
	}
	for _, table := range tables {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(table).Error; err != nil {
			return err
		}
	}
	return nil
}

// CreateUsers persists count accounts sharing the demo password. The first
// account is always the predictable demo login.
func (s *Seeder) CreateUsers(count int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)

	demo := models.User{
		Name:     "Demo User",
		Email:    "demo@example.com",
		Password: string(hashed),
		Avatar:   gravatar.URL("demo@example.com"),
	}
	if err := s.db.Create(&demo).Error; err == nil {
		users = append(users, demo)
	}

	for i := len(users); i < count; i++ {
		name := gofakeit.Name()
		email := fmt.Sprintf("%s%d@example.com",
			strings.ToLower(strings.ReplaceAll(name, " ", ".")), i)

		user := models.User{
			Name:     name,
			Email:    email,
			Password: string(hashed),
			Avatar:   gravatar.URL(email),
		}
		if err := s.db.Create(&user).Error; err != nil {
			log.Printf("failed to create user %s: %v", email, err)
			continue
		}
		users = append(users, user)
	}

	return users, nil
}

// CreateProfile persists a profile with a couple of experience and education
// entries for the given account.
func (s *Seeder) CreateProfile(user *models.User) error {
	skills := make([]string, 0, 4)
	for _, idx := range s.r.Perm(len(skillPool))[:2+s.r.Intn(3)] {
		skills = append(skills, skillPool[idx])
	}

	profile := models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:         statuses[s.r.Intn(len(statuses))],
		Bio:            gofakeit.Sentence(12),
		GithubUsername: gofakeit.Username(),
		Skills:         skills,
		Social: models.SocialLinks{
			Twitter:  fmt.Sprintf("https://twitter.com/%s", gofakeit.Username()),
			Linkedin: fmt.Sprintf("https://linkedin.com/in/%s", gofakeit.Username()),
		},
	}
	if err := s.db.Create(&profile).Error; err != nil {
		return err
	}

	for i := 0; i < 1+s.r.Intn(2); i++ {
		from := gofakeit.DateRange(
			time.Now().AddDate(-8, 0, 0), time.Now().AddDate(-1, 0, 0))
		exp := models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     i == 0,
			Description: gofakeit.Sentence(10),
		}
		if !exp.Current {
			to := gofakeit.DateRange(from, time.Now())
			exp.To = &to
		}
		if err := s.db.Create(&exp).Error; err != nil {
			return err
		}
	}

	from := gofakeit.DateRange(
		time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-5, 0, 0))
	to := from.AddDate(4, 0, 0)
	edu := models.Education{
		ProfileID:    profile.ID,
		School:       fmt.Sprintf("%s University", gofakeit.LastName()),
		Degree:       "BSc",
		FieldOfStudy: "Computer Science",
		From:         from,
		To:           &to,
		Description:  gofakeit.Sentence(8),
	}
	return s.db.Create(&edu).Error
}

// CreatePosts persists count posts spread across the given users, with
// author snapshots and a realistic created_at spread.
func (s *Seeder) CreatePosts(users []models.User, count int) ([]models.Post, error) {
	posts := make([]models.Post, 0, count)

	for i := 0; i < count; i++ {
		user := users[s.r.Intn(len(users))]

		post := models.Post{
			UserID: user.ID,
			Text:   gofakeit.Paragraph(1, 2+s.r.Intn(3), 8, " "),
			Name:   user.Name,
			Avatar: user.Avatar,
		}
		post.CreatedAt = time.Now().Add(-time.Duration(s.r.Intn(90*24)) * time.Hour)

		if err := s.db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	return posts, nil
}

// CreateEngagement adds likes and comments across the posts. Each account
// likes a post at most once.
func (s *Seeder) CreateEngagement(users []models.User, posts []models.Post) error {
	for i := range posts {
		post := &posts[i]

		for _, idx := range s.r.Perm(len(users))[:s.r.Intn(len(users)/2+1)] {
			like := models.Like{PostID: post.ID, UserID: users[idx].ID}
			if err := s.db.Create(&like).Error; err != nil {
				return err
			}
		}

		for j := 0; j < s.r.Intn(4); j++ {
			commenter := users[s.r.Intn(len(users))]
			comment := models.Comment{
				PostID: post.ID,
				UserID: commenter.ID,
				Text:   gofakeit.Sentence(6 + s.r.Intn(10)),
				Name:   commenter.Name,
				Avatar: commenter.Avatar,
			}
			if err := s.db.Create(&comment).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
