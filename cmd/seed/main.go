package main

import (
	"context"
	"log"
	"os"
	"time"

	"excel-analytics-be/internal/config"
	"excel-analytics-be/internal/entity"
	"excel-analytics-be/internal/model"
	"excel-analytics-be/internal/pkg/serverutils"
	"excel-analytics-be/internal/repository/specification"
	"excel-analytics-be/internal/repository/unitofwork"
	"excel-analytics-be/pkg/database"

	"golang.org/x/crypto/bcrypt"
)

// Demo accounts for local development. Accounts are normally owned by the
// identity service; this only fills the read-side projection.
var demoUsers = []struct {
	name  string
	email string
	role  entity.UserRole
}{
	{"Demo Admin", "admin@demo.com", entity.UserRoleAdmin},
	{"Demo User", "user@demo.com", entity.UserRoleUser},
}

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewQuietGormDB(cfg.Database.Driver, cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	if err := db.AutoMigrate(model.All()...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "demo12345"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Error: hashing password: %v", err)
	}
	hashed := string(hash)

	ctx := context.Background()
	users := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(ctx).UserRepository()

	for _, demo := range demoUsers {
		user, err := users.FindOne(ctx, specification.ByEmail{Email: demo.email})
		if err != nil {
			log.Fatalf("Error: looking up %s: %v", demo.email, err)
		}
		if user == nil {
			user = &entity.User{
				Name:         demo.name,
				Email:        demo.email,
				PasswordHash: &hashed,
				Role:         demo.role,
				CreatedAt:    time.Now(),
			}
			if err := users.Create(ctx, user); err != nil {
				log.Fatalf("Error: creating %s: %v", demo.email, err)
			}
			log.Printf("Created %s (%s)", demo.email, demo.role)
		} else {
			log.Printf("%s already exists, skipping...", demo.email)
		}

		if cfg.Auth.JwtSecret == "" {
			continue
		}
		token, err := serverutils.IssueToken(cfg.Auth.JwtSecret, user.Id, user.Role, 24*time.Hour)
		if err != nil {
			log.Fatalf("Error: signing token for %s: %v", demo.email, err)
		}
		log.Printf("Dev token for %s: %s", demo.email, token)
	}
}
