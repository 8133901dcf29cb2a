// cmd/seed/main.go
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/courtbook/courtbook/internal/api/auth"
	"github.com/courtbook/courtbook/internal/booking"
	"github.com/courtbook/courtbook/internal/config"
	"github.com/courtbook/courtbook/internal/db"
	"github.com/courtbook/courtbook/internal/store"
)

// Demo data in the style of the club's real inventory. IDs are fixed so
// re-running the seed updates in place instead of duplicating.
var seedCourts = []store.Court{
	{
		ID:          "court-1",
		Name:        "Court 1",
		Description: sql.NullString{String: "Indoor court with professional surface", Valid: true},
		Price:       1500,
		Surface:     "HARD",
	},
	{
		ID:          "court-2",
		Name:        "Court 2",
		Description: sql.NullString{String: "Outdoor court with artificial turf", Valid: true},
		Price:       1200,
		Surface:     "CLAY",
	},
	{
		ID:          "court-3",
		Name:        "Court 3",
		Description: sql.NullString{String: "Indoor court with synthetic surface", Valid: true},
		Price:       1300,
		Surface:     "HARD",
	},
}

var seedTrainers = []store.Trainer{
	{
		ID:             "trainer-1",
		Name:           "Alexei Morozov",
		Description:    sql.NullString{String: "Former tour player, works with all levels", Valid: true},
		Price:          2500,
		ChildrenPrice:  1800,
		Specialization: `["technique","singles"]`,
		Experience:     12,
		Achievements:   sql.NullString{String: "National junior champion coach", Valid: true},
	},
	{
		ID:             "trainer-2",
		Name:           "Marina Petrova",
		Description:    sql.NullString{String: "Specializes in junior development", Valid: true},
		Price:          2200,
		ChildrenPrice:  1500,
		Specialization: `["juniors","doubles"]`,
		Experience:     8,
	},
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	days := flag.Int("days", 7, "days of slot inventory to generate")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	database, err := db.NewFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seedUsers(ctx, database.Queries); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed users")
	}

	for _, court := range seedCourts {
		if err := database.Queries.UpsertCourt(ctx, court); err != nil {
			log.Fatal().Err(err).Str("court_id", court.ID).Msg("Failed to seed court")
		}
	}
	log.Info().Int("courts", len(seedCourts)).Msg("Courts seeded")

	for _, trainer := range seedTrainers {
		if err := database.Queries.UpsertTrainer(ctx, trainer); err != nil {
			log.Fatal().Err(err).Str("trainer_id", trainer.ID).Msg("Failed to seed trainer")
		}
	}
	log.Info().Int("trainers", len(seedTrainers)).Msg("Trainers seeded")

	svc := booking.NewService(database)
	if err := svc.GenerateSlotsAhead(ctx, *days); err != nil {
		log.Fatal().Err(err).Msg("Failed to generate slots")
	}
	log.Info().Int("days", *days).Msg("Slot inventory generated")
}

func seedUsers(ctx context.Context, queries *store.Queries) error {
	users := []struct {
		id       string
		username string
		password string
		name     string
		email    string
		admin    bool
	}{
		{"user-test", "testuser", "password123", "Test User", "test@example.com", false},
		{"user-admin", "admin", "admin123", "Administrator", "", true},
	}

	for _, u := range users {
		if _, err := queries.GetUserByUsername(ctx, u.username); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}

		hash, err := auth.HashPassword(u.password)
		if err != nil {
			return err
		}
		user := store.User{
			ID:           u.id,
			Username:     u.username,
			PasswordHash: hash,
			IsAdmin:      u.admin,
			CreatedAt:    time.Now().UTC(),
		}
		if u.name != "" {
			user.Name = sql.NullString{String: u.name, Valid: true}
		}
		if u.email != "" {
			user.Email = sql.NullString{String: u.email, Valid: true}
		}
		if err := queries.CreateUser(ctx, user); err != nil {
			return err
		}
		log.Info().Str("username", u.username).Msg("User seeded")
	}
	return nil
}
