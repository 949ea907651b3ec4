// Command seed fills a local database with fake users and relations so the
// API has something to serve during development.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"socialite/backend/internal/config"
	"socialite/backend/internal/database"
	"socialite/backend/internal/models"
	"socialite/backend/internal/relationship"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	count := flag.Int("users", 50, "number of users to create")
	password := flag.String("password", "password123", "password shared by all seeded users")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseDialect, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// MinCost keeps seeding fast; these are throwaway accounts.
	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.MinCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	users := make([]models.User, 0, *count)
	for i := 0; i < *count; i++ {
		user := models.User{
			FirstName:    gofakeit.FirstName(),
			LastName:     gofakeit.LastName(),
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:        fmt.Sprintf("user%d.%s", i, gofakeit.Email()),
			PasswordHash: string(hash),
			AboutMe:      gofakeit.Sentence(10),
			ProfilePic:   models.DefaultProfilePic,
			LastSeen:     time.Now().UTC(),
			IsVerified:   true,
		}
		if err := db.Create(&user).Error; err != nil {
			log.Fatalf("Failed to create user %s: %v", user.Username, err)
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	relations := relationship.NewService(db)

	requests, friendships := 0, 0
	for i := 0; i < *count*2; i++ {
		a := users[gofakeit.Number(0, len(users)-1)]
		b := users[gofakeit.Number(0, len(users)-1)]
		if a.ID == b.ID {
			continue
		}

		if err := relations.SendRequest(a.ID, b.ID); err != nil {
			log.Fatalf("Failed to send request: %v", err)
		}
		requests++

		if gofakeit.Bool() {
			if err := relations.AcceptRequest(b.ID, a.ID); err != nil {
				log.Fatalf("Failed to accept request: %v", err)
			}
			friendships++
		}
	}
	log.Printf("Created %d requests, accepted %d", requests, friendships)
}
