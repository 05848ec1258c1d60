// Command seed provisions demo tenants and users. There is no
// self-registration: users only ever come from here or from operator
// tooling built on the same storage layer.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/notes-saas/notes-server/internal/config"
	"github.com/notes-saas/notes-server/internal/models"
	"github.com/notes-saas/notes-server/internal/storage"
	"github.com/notes-saas/notes-server/pkg/crypto"
)

type seedUser struct {
	email string
	role  models.Role
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/notes-server.yml", "Configuration file path")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	_ = godotenv.Load()

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	store, err := storage.NewPostgresStore(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.Close()

	if err := store.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	ctx := context.Background()

	tenants := []*models.Tenant{
		{Name: "Acme Corporation", Slug: "acme", Plan: models.PlanFree, NoteLimit: models.FreePlanNoteLimit},
		{Name: "Globex Corporation", Slug: "globex", Plan: models.PlanFree, NoteLimit: models.FreePlanNoteLimit},
	}

	users := map[string][]seedUser{
		"acme": {
			{email: "admin@acme.test", role: models.RoleAdmin},
			{email: "user@acme.test", role: models.RoleMember},
		},
		"globex": {
			{email: "admin@globex.test", role: models.RoleAdmin},
			{email: "user@globex.test", role: models.RoleMember},
		},
	}

	hash, err := crypto.HashPassword("password")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}

	for _, tenant := range tenants {
		if err := store.CreateTenant(ctx, tenant); err != nil {
			if err != storage.ErrDuplicateKey {
				log.Fatal().Err(err).Str("slug", tenant.Slug).Msg("Failed to create tenant")
			}
			existing, err := store.GetTenantBySlug(ctx, tenant.Slug)
			if err != nil {
				log.Fatal().Err(err).Str("slug", tenant.Slug).Msg("Failed to load existing tenant")
			}
			*tenant = *existing
			log.Info().Str("slug", tenant.Slug).Msg("Tenant already exists, skipping")
		} else {
			log.Info().Str("slug", tenant.Slug).Msg("Created tenant")
		}

		for _, su := range users[tenant.Slug] {
			user := &models.User{
				Email:        su.email,
				PasswordHash: hash,
				Role:         su.role,
				TenantID:     tenant.ID,
			}
			if err := store.CreateUser(ctx, user); err != nil {
				if err == storage.ErrDuplicateKey {
					log.Info().Str("email", su.email).Msg("User already exists, skipping")
					continue
				}
				log.Fatal().Err(err).Str("email", su.email).Msg("Failed to create user")
			}
			log.Info().Str("email", su.email).Str("role", string(su.role)).Msg("Created user")
		}
	}

	log.Info().Msg("Seed data created, all accounts use password \"password\"")
}
