package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	v1 "github.com/LorisBarbisan/gig-event-connect-sub002/cmd/api/router/v1"
	cacheAdapter "github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/cache/adapter"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/database"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/logging"
	queueAdapter "github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/queue/adapter"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/infrastructure/realtime"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/push"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/task"
	"github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/application/usecase"
	msgAdapter "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/persistence/repository/adapter"
	msgHTTP "github.com/LorisBarbisan/gig-event-connect-sub002/internal/pkg/messaging/presentation/http"
	userAdapter "github.com/LorisBarbisan/gig-event-connect-sub002/internal/repository/adapter"
	userport "github.com/LorisBarbisan/gig-event-connect-sub002/internal/repository/port"
)

func main() {
	log := logging.New("realtime-api")
	defer func() { _ = log.Sync() }()

	if err := godotenv.Load(); err != nil {
		log.Info(".env file not loaded", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	pool, err := database.NewPoolFromEnv(ctx)
	cancel()
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	// User identity lookups ride through redis when available; the pg
	// repository alone is fine for development.
	var users userport.UserRepository = userAdapter.NewPgUserRepository(pool)
	if cache, err := cacheAdapter.NewRedisAdapter(); err != nil {
		log.Warn("redis unavailable, user lookups uncached", zap.Error(err))
	} else {
		defer func() { _ = cache.Close() }()
		users = userAdapter.NewCachedUserRepository(users, cache, 5*time.Minute)
	}

	registry := realtime.NewRegistry()
	defer registry.Close()

	broadcaster := push.NewBroadcaster(registry, log)
	badges := push.NewBadgeAggregator(
		msgAdapter.NewPgMessageRepository(pool),
		msgAdapter.NewPgNotificationRepository(pool),
		registry,
		broadcaster,
		log,
	)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Background workers pick up notification tasks enqueued by the rest of
	// the marketplace after their own commits.
	if qsrv, err := queueAdapter.NewAsynqServer(log); err != nil {
		log.Warn("asynq unavailable, notification tasks disabled", zap.Error(err))
	} else {
		createNotif := usecase.NewCreateNotificationUseCase(msgAdapter.NewPgNotificationRepository(pool))
		task.RegisterDeliverNotificationTask(qsrv, createNotif, broadcaster, badges)
		go func() {
			if err := qsrv.Run(runCtx); err != nil {
				log.Error("asynq server stopped", zap.Error(err))
			}
		}()
	}

	r := gin.Default()
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	v1.RegisterRoutes(r, msgHTTP.Deps{
		Pool:        pool,
		Users:       users,
		Registry:    registry,
		Broadcaster: broadcaster,
		Badges:      badges,
		Log:         log,
	})

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-runCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("listening", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("server error", zap.Error(err))
	}
}
