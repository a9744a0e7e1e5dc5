package seed

import (
	"fmt"
	"log"
	"math/rand"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	// FollowsPerUser is the average out-degree of the generated graph.
	FollowsPerUser int
	ShouldClean    bool
}

// Seed populates the database with test data: a set of users and a random
// follow mesh between them.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("🌱 Starting database seeding with %d users...", opts.NumUsers)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("⚠️  Warning: Could not clear all existing data, but continuing anyway...")
		}
	}

	factory, err := NewFactory(db)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create users: %w", err)
		}
		users = append(users, user)
	}
	log.Printf("✓ %d test users created", len(users))

	edges, err := createFollowMesh(factory, users, opts.FollowsPerUser)
	if err != nil {
		return fmt.Errorf("failed to create follow mesh: %w", err)
	}
	log.Printf("✓ %d follow edges created", edges)

	log.Println("🎉 Database seeding completed successfully!")
	log.Printf("   All seeded accounts log in with password %q", DefaultPassword)
	return nil
}

// createFollowMesh wires a random directed graph over the users. Per-user
// out-degree is roughly followsPerUser; self-edges are skipped.
func createFollowMesh(factory *Factory, users []*models.User, followsPerUser int) (int, error) {
	if followsPerUser <= 0 || len(users) < 2 {
		return 0, nil
	}

	created := 0
	for _, follower := range users {
		degree := 1 + rand.Intn(followsPerUser*2)
		for i := 0; i < degree; i++ {
			target := users[rand.Intn(len(users))]
			if target.ID == follower.ID {
				continue
			}
			if err := factory.CreateFollow(follower, target); err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

func clearData(db *gorm.DB) error {
	// Children first.
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.Follow{}).Error; err != nil {
		return err
	}
	return db.Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&models.User{}).Error
}
