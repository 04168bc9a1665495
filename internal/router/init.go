package router

import (
	"context"

	"github.com/oksasatya/climate-action-backend/internal/application"
	"github.com/oksasatya/climate-action-backend/internal/container"
	repo "github.com/oksasatya/climate-action-backend/internal/domain/repository"
	esinfra "github.com/oksasatya/climate-action-backend/internal/infrastructure/elasticsearch"
	"github.com/oksasatya/climate-action-backend/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/climate-action-backend/internal/infrastructure/postgres"
	"github.com/oksasatya/climate-action-backend/internal/infrastructure/rediscache"
	handlers "github.com/oksasatya/climate-action-backend/internal/interface/http"
	"github.com/oksasatya/climate-action-backend/internal/router/modules"
	"github.com/oksasatya/climate-action-backend/pkg/helpers"
)

type Repositories struct {
	Users repo.UserRepository
	Goals repo.GoalRepository
	Posts repo.PostRepository
}

// buildRepositories picks the store named by STORE_DRIVER.
func buildRepositories(c *container.Container) Repositories {
	if c.Config.StoreDriver == "memory" || c.PGPool == nil {
		store := memory.NewStore()
		return Repositories{
			Users: memory.NewUserRepository(store),
			Goals: memory.NewGoalRepository(store),
			Posts: memory.NewPostRepository(store),
		}
	}
	return Repositories{
		Users: pginfra.NewUserRepository(c.PGPool),
		Goals: pginfra.NewGoalRepository(c.PGPool),
		Posts: pginfra.NewPostRepository(c.PGPool),
	}
}

func buildNotifier(c *container.Container) *application.Notifier {
	if c.RabbitPub == nil || !c.Config.MailSendEnabled {
		return nil
	}
	return application.NewNotifier(c.RabbitPub, c.Config, c.Logger)
}

func buildPostService(c *container.Container, posts repo.PostRepository, notifier *application.Notifier) *application.PostService {
	svc := application.NewPostService(posts, c.Logger)
	svc.Notifier = notifier
	if c.Redis != nil {
		svc.Cache = rediscache.NewPostCache(c.Redis, c.Config.PostCacheTTL)
	}
	if c.ES != nil {
		idx := esinfra.NewPostIndex(c.ES, c.Config.ESPostsIndex)
		if err := idx.EnsureIndex(context.Background()); err != nil {
			c.Logger.WithError(err).Warn("elasticsearch index unavailable, searching the primary store")
		} else {
			svc.Index = idx
			svc.MarkIndexStale()
			go reindexPosts(c, svc)
		}
	}
	if c.GCS != nil && c.Config.GCSBucket != "" {
		svc.Covers = &helpers.GCSUploader{Client: c.GCS, Bucket: c.Config.GCSBucket}
	}
	return svc
}

// reindexPosts backfills the index with posts written while it was missing or unreachable.
// Searches use the primary store until it finishes.
func reindexPosts(c *container.Container, svc *application.PostService) {
	n, err := svc.Reindex(context.Background())
	if err != nil {
		c.Logger.WithError(err).Warn("post reindex failed, searching the primary store")
		return
	}
	c.Logger.WithField("posts", n).Info("post index in step with the store")
}

func healthChecks(c *container.Container) map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{}
	if c.PGPool != nil {
		checks["postgres"] = c.PGPool
	}
	if c.Redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error { return c.Redis.Ping(ctx).Err() })
	}
	return checks
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	repos := buildRepositories(c)
	notifier := buildNotifier(c)

	authSvc := application.NewAuthService(repos.Users, c.JWT, notifier, c.Logger)
	goalSvc := application.NewGoalService(repos.Goals, c.Logger)
	postSvc := buildPostService(c, repos.Posts, notifier)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.Config.AppName, healthChecks(c))))
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, c.Logger), c.JWT))
	r.Add(modules.NewGoalModule(handlers.NewGoalHandler(goalSvc, c.Logger), c.JWT))
	r.Add(modules.NewPostModule(handlers.NewPostHandler(postSvc, c.Logger, c.Config.CoverMaxBytes), c.JWT))
	r.Add(modules.NewFootprintModule(handlers.NewFootprintHandler(c.Logger)))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
