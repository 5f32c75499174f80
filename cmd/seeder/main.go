package main

import (
	"log/slog"
	"os"
	"time"

	"gamehub/internal/config"
	"gamehub/internal/models"
	"gamehub/internal/storage/mysql"

	"golang.org/x/crypto/bcrypt"
)

// Seeds the database with a demo admin, two users and a small catalog.
// Wipes all existing rows first.
func main() {
	cfg := config.MustLoad()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	storage, err := mysql.New(cfg.Database)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer storage.Close()

	if err := storage.Migrate(); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	for _, m := range []interface{}{
		&models.Comment{}, &models.GameReport{}, &models.GameVote{},
		&models.Game{}, &models.User{},
	} {
		if err := storage.DB.Where("1 = 1").Delete(m).Error; err != nil {
			log.Error("failed to wipe table", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	users := []struct {
		username string
		email    string
		role     models.UserRole
	}{
		{"admin", "admin@gamehub.local", models.RoleAdmin},
		{"alice", "alice@gamehub.local", models.RoleUser},
		{"bob", "bob@gamehub.local", models.RoleUser},
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		os.Exit(1)
	}

	created := make(map[string]*models.User)
	for _, u := range users {
		user := &models.User{
			Username:     u.username,
			Email:        u.email,
			PasswordHash: string(hash),
			Role:         u.role,
			CreatedAt:    time.Now(),
		}
		if err := storage.DB.Create(user).Error; err != nil {
			log.Error("failed to create user", slog.String("username", u.username), slog.String("error", err.Error()))
			os.Exit(1)
		}
		created[u.username] = user
		log.Info("user created", slog.String("username", u.username), slog.String("role", string(u.role)))
	}

	games := []models.Game{
		{
			Title:       "Elden Ring",
			Description: "An action RPG set in a dark fantasy world with challenging combat.",
			Price:       59.99,
			Categories:  models.StringList{"RPG", "Action"},
			Platforms:   models.StringList{"PS5", "PC", "Xbox"},
			OwnerID:     created["alice"].ID,
		},
		{
			Title:       "Hollow Knight",
			Description: "A hand-drawn metroidvania adventure through a ruined insect kingdom.",
			Price:       14.99,
			Categories:  models.StringList{"Metroidvania", "Indie"},
			Platforms:   models.StringList{"PC", "Switch"},
			OwnerID:     created["alice"].ID,
		},
		{
			Title:       "Celeste",
			Description: "A tight platformer about climbing a mountain and facing yourself.",
			Price:       19.99,
			Categories:  models.StringList{"Platformer", "Indie"},
			Platforms:   models.StringList{"PC", "Switch", "PS4"},
			OwnerID:     created["bob"].ID,
		},
		{
			Title:       "Stardew Valley",
			Description: "A farming sim where you build a life in a small country town.",
			Price:       13.99,
			Categories:  models.StringList{"Simulation", "Indie"},
			Platforms:   models.StringList{"PC", "Switch", "Mobile"},
			OwnerID:     created["bob"].ID,
		},
	}

	timeNow := time.Now()
	for i := range games {
		games[i].ImageURL = models.DefaultGameImage
		games[i].CreatedAt = timeNow
		games[i].UpdatedAt = timeNow
		if err := storage.DB.Create(&games[i]).Error; err != nil {
			log.Error("failed to create game", slog.String("title", games[i].Title), slog.String("error", err.Error()))
			os.Exit(1)
		}
		log.Info("game created", slog.String("title", games[i].Title))
	}

	log.Info("seeding complete",
		slog.Int("users", len(users)),
		slog.Int("games", len(games)))
}
