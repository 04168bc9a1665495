package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/climate-action-backend/config"
	"github.com/oksasatya/climate-action-backend/internal/application"
	"github.com/oksasatya/climate-action-backend/internal/domain/entity"
	esinfra "github.com/oksasatya/climate-action-backend/internal/infrastructure/elasticsearch"
	pginfra "github.com/oksasatya/climate-action-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

const (
	demoName     = "Demo User"
	demoEmail    = "demo@climate.local"
	demoPassword = "Passw0rd!"
)

var demoGoals = []application.GoalInput{
	{Goal: "Cycle to work twice a week", Category: entity.GoalPersonal},
	{Goal: "Switch to LED bulbs", Category: entity.GoalHome, Completed: true},
	{Goal: "Join the neighbourhood tree planting", Category: entity.GoalCommunity},
}

var demoPosts = []application.PostInput{
	{
		Title:    "Our street started composting",
		Text:     "Twelve households now share three compost bins and the food waste collection dropped by half.",
		Category: entity.PostCommunityAction,
	},
	{
		Title:    "Teaching kids about the carbon cycle",
		Text:     "A one-hour classroom exercise that tracks a carbon atom from a tree to the atmosphere and back.",
		Category: entity.PostEducation,
	},
	{
		Title:    "What a local carbon budget means",
		Text:     "Cities are adopting yearly emission caps. Here is how the budget is set and who keeps track of it.",
		Category: entity.PostClimatePolicy,
	},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	jwt := helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL, cfg.AppName)
	auth := application.NewAuthService(pginfra.NewUserRepository(pool), jwt, nil, logger)
	goals := application.NewGoalService(pginfra.NewGoalRepository(pool), logger)
	posts := application.NewPostService(pginfra.NewPostRepository(pool), logger)

	// keep the search index in step when one is configured
	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch: %v", err)
	}
	if es != nil {
		idx := esinfra.NewPostIndex(es, cfg.ESPostsIndex)
		if err := idx.EnsureIndex(ctx); err != nil {
			log.Fatalf("failed to ensure post index: %v", err)
		}
		posts.Index = idx
	}

	sess, err := auth.Register(ctx, application.RegisterInput{FullName: demoName, Email: demoEmail, Password: demoPassword})
	if errors.Is(err, application.ErrEmailTaken) {
		fmt.Printf("demo user %s already exists; nothing to seed\n", demoEmail)
		return
	}
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	u := sess.User
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", u.ID, u.Email, demoPassword)

	for _, in := range demoGoals {
		if _, err := goals.Create(ctx, u.ID, in); err != nil {
			log.Fatalf("failed to seed goal: %v", err)
		}
	}
	fmt.Printf("seeded %d goals\n", len(demoGoals))

	author := entity.Author{UserID: u.ID, Username: u.Email}
	for _, in := range demoPosts {
		if _, err := posts.Create(ctx, author, in); err != nil {
			log.Fatalf("failed to seed post: %v", err)
		}
	}
	fmt.Printf("seeded %d posts\n", len(demoPosts))
}
