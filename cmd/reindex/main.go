package main

import (
	"context"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/oksasatya/climate-action-backend/config"
	"github.com/oksasatya/climate-action-backend/internal/application"
	esinfra "github.com/oksasatya/climate-action-backend/internal/infrastructure/elasticsearch"
	pginfra "github.com/oksasatya/climate-action-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

// reindex copies every post from Postgres into the Elasticsearch post index.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-reindex", cfg.Env)
	ctx := context.Background()

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("failed to init elasticsearch: %v", err)
	}
	if es == nil {
		log.Fatal("ELASTICSEARCH_ADDRS is empty; nothing to reindex")
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	idx := esinfra.NewPostIndex(es, cfg.ESPostsIndex)
	if err := idx.EnsureIndex(ctx); err != nil {
		log.Fatalf("failed to ensure post index: %v", err)
	}
	posts := application.NewPostService(pginfra.NewPostRepository(pool), logger)
	posts.Index = idx

	n, err := posts.Reindex(ctx)
	if err != nil {
		log.Fatalf("reindex stopped after %d posts: %v", n, err)
	}
	fmt.Printf("indexed %d posts into %s\n", n, cfg.ESPostsIndex)
}
