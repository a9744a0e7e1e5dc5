// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"ripple/internal/models"
	"ripple/internal/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password every seeded account gets, hashed once
// and reused since bcrypt is deliberately slow.
const DefaultPassword = "Password123!"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db           *gorm.DB
	passwordHash string
	usedNames    map[string]bool
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) (*Factory, error) {
	gofakeit.Seed(time.Now().UnixNano())

	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	return &Factory{
		db:           db,
		passwordHash: string(hash),
		usedNames:    map[string]bool{},
	}, nil
}

// BuildUser constructs a user with generated content but does not persist it.
func (f *Factory) BuildUser() *models.User {
	bio := gofakeit.Sentence(8)
	image := fmt.Sprintf("https://picsum.photos/seed/%s/400/400", gofakeit.UUID())
	return &models.User{
		Username:     f.uniqueUsername(),
		PasswordHash: f.passwordHash,
		Bio:          &bio,
		Image:        &image,
	}
}

// CreateUser builds and persists a user.
func (f *Factory) CreateUser() (*models.User, error) {
	user := f.BuildUser()
	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create seed user %q: %w", user.Username, err)
	}
	return user, nil
}

// CreateFollow persists a follow edge, skipping duplicates silently.
func (f *Factory) CreateFollow(follower, followed *models.User) error {
	if follower.ID == followed.ID {
		return nil
	}
	edge := models.Follow{FollowerID: follower.ID, FollowedID: followed.ID}
	err := f.db.Where(models.Follow{
		FollowerID: follower.ID,
		FollowedID: followed.ID,
	}).FirstOrCreate(&edge).Error
	if err != nil {
		return fmt.Errorf("create follow edge: %w", err)
	}
	return nil
}

func (f *Factory) uniqueUsername() string {
	for {
		name := strings.ToLower(gofakeit.Username())
		if len(name) > 24 {
			name = name[:24]
		}
		// Generated names occasionally violate the username rules
		// (too short, trailing punctuation); just roll again.
		if validation.ValidateUsername(name) != nil {
			continue
		}
		if !f.usedNames[name] {
			f.usedNames[name] = true
			return name
		}
		// Collision; salt with a short suffix and try again.
		salted := fmt.Sprintf("%s%d", name, rand.Intn(1000))
		if validation.ValidateUsername(salted) == nil && !f.usedNames[salted] {
			f.usedNames[salted] = true
			return salted
		}
	}
}
