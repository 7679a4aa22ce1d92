// Seed provisions the demo accounts and sample submissions, mirroring the
// original database setup script. Safe to re-run: existing accounts are kept.
package main

import (
	"context"
	"errors"
	"time"

	"github.com/joho/godotenv"

	"github.com/via/votehub/internal/core/domain"
	"github.com/via/votehub/internal/core/ports"
	"github.com/via/votehub/internal/core/service"
	"github.com/via/votehub/internal/infrastructure/config"
	mongodb "github.com/via/votehub/internal/infrastructure/db/mongo"
	"github.com/via/votehub/pkg/logger"
)

type seedUser struct {
	email string
	name  string
	role  domain.Role
}

var seedUsers = []seedUser{
	{"admin@example.com", "Super Admin", domain.RoleSuperadmin},
	{"judge1@example.com", "Judge 1", domain.RoleJudge},
	{"judge2@example.com", "Judge 2", domain.RoleJudge},
}

const seedPassword = "password123"

var seedSubmissions = []ports.SubmissionInput{
	{
		TeamMemberName:     "Team Alpha",
		SubmissionLink:     "https://example.com/project1",
		ProblemDescription: "AI-powered recommendation system",
		HoursSpent:         120,
	},
	{
		TeamMemberName:     "Team Beta",
		SubmissionLink:     "https://example.com/project2",
		ProblemDescription: "Blockchain-based voting platform",
		HoursSpent:         95,
	},
}

func main() {
	_ = godotenv.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("index creation failed")
	}

	auth := service.NewAuthService(mongodb.NewUserRepository(db), log)
	for _, u := range seedUsers {
		created, err := auth.CreateUser(ctx, u.email, u.name, seedPassword, u.role)
		if errors.Is(err, domain.ErrUserExists) {
			log.Info().Str("email", u.email).Msg("user already exists, skipping")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("email", u.email).Msg("user creation failed")
		}
		log.Info().Str("email", created.Email).Str("role", string(created.Role)).Msg("user created")
	}

	submissions := service.NewSubmissionService(mongodb.NewSubmissionRepository(db), nil, log)
	existing, err := submissions.List(ctx, ports.ListSubmissionsQuery{})
	if err != nil {
		log.Fatal().Err(err).Msg("submission listing failed")
	}
	if len(existing) > 0 {
		log.Info().Int("count", len(existing)).Msg("submissions already present, skipping samples")
		return
	}

	for _, in := range seedSubmissions {
		created, err := submissions.Create(ctx, in)
		if err != nil {
			log.Fatal().Err(err).Str("team", in.TeamMemberName).Msg("submission creation failed")
		}
		log.Info().Str("submission_id", created.ID).Str("team", created.TeamMemberName).Msg("submission created")
	}
}
