//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/hugh/scoutzos/internal/apperr"
	"github.com/hugh/scoutzos/internal/audit"
	"github.com/hugh/scoutzos/internal/auth"
	"github.com/hugh/scoutzos/internal/database"
	"github.com/hugh/scoutzos/internal/database/models"
	"github.com/hugh/scoutzos/internal/orgs"
	"github.com/hugh/scoutzos/internal/repository"
	"github.com/hugh/scoutzos/internal/schema"
	"github.com/hugh/scoutzos/pkg/config"
	"github.com/hugh/scoutzos/pkg/util"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := util.NewLogger(cfg.Server.Env)

	db, err := database.Connect(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	ctx := context.Background()
	recorder := audit.NewRecorder(logger)
	svc := orgs.NewService(db, recorder, logger)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Admin"
	}

	user, err := svc.CreateUser(ctx, email, &name)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			fmt.Printf("Admin user already exists: %s\n", email)
			return
		}
		log.Fatalf("failed to create admin user: %v", err)
	}

	org, err := svc.Create(ctx, &user.ID, "Demo Realty")
	if err != nil {
		log.Fatalf("failed to create organization: %v", err)
	}

	if _, err := svc.AddMember(ctx, &user.ID, org.ID, user.ID, models.RoleOwner); err != nil {
		log.Fatalf("failed to add membership: %v", err)
	}

	owners := repository.New[models.Owner](db, schema.Owner, recorder, logger)
	owner, err := owners.Create(ctx, org.ID, &user.ID, schema.Input{
		"legal_name":    json.RawMessage(`"Demo Holdings LLC"`),
		"contact_email": json.RawMessage(`"owners@example.com"`),
	})
	if err != nil {
		log.Fatalf("failed to create owner: %v", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry())
	token, err := jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		log.Fatalf("failed to generate token: %v", err)
	}

	fmt.Printf("Seed data created successfully!\n")
	fmt.Printf("User: %s (%s)\n", user.Email, user.ID)
	fmt.Printf("Organization: %s (slug %s, id %s)\n", org.Name, org.Slug, org.ID)
	fmt.Printf("Owner: %s\n", owner.ID)
	fmt.Printf("Token: %s\n", token)
}
