package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-event-hub/config"
	"go-event-hub/internal/auth"
	"go-event-hub/internal/cache"
	"go-event-hub/internal/database"
	"go-event-hub/internal/handler"
	"go-event-hub/internal/queue"
	"go-event-hub/internal/repository"
	"go-event-hub/internal/service"
	"go-event-hub/internal/session"
	"go-event-hub/internal/worker"
	"go-event-hub/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()
	logger.SetLevel(cfg.LogLevel)
	log := logger.WithComponent("main")
	defer logger.L.Sync()

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal("server exited with error", zap.Error(err))
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	log := logger.WithComponent("main")

	var (
		pool *pgxpool.Pool
		rdb  *redis.Client
		err  error
	)

	if cfg.Backends.Catalog == config.BackendPostgres {
		pool, err = database.InitDatabase(&cfg.Database)
		if err != nil {
			return fmt.Errorf("initialize database: %w", err)
		}
		defer pool.Close()
		if err := database.Migrate(ctx, pool); err != nil {
			return err
		}
	}

	if cfg.Backends.Session == config.BackendRedis || cfg.Backends.Queue == config.BackendRedis {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("initialize redis: %w", err)
		}
		defer rdb.Close()
	}

	// catalog
	var eventRepo repository.EventRepository
	if pool != nil {
		eventRepo = repository.NewEventRepository(pool)
	} else {
		memRepo := repository.NewMemoryEventRepository()
		if cfg.Server.SeedMockEvents {
			memRepo.Seed(mockEvents()...)
		}
		eventRepo = memRepo
	}

	// session slot
	var kv cache.KeyValueStore = cache.NewMemoryKeyValueStore()
	if cfg.Backends.Session == config.BackendRedis {
		kv = cache.NewRedisKeyValueStore(rdb, "session")
	}
	sessionStore := session.NewStore(kv, session.Options{
		StorageKey:    cfg.Session.StorageKey,
		Delay:         cfg.Session.Delay,
		DefaultAvatar: cfg.Session.DefaultAvatar,
	})
	if err := sessionStore.Restore(ctx); err != nil {
		return err
	}

	// confirmation queue
	var registrationQueue queue.RegistrationQueue
	if cfg.Backends.Queue == config.BackendRedis {
		registrationQueue, err = queue.NewRedisStreamRegistrationQueue(ctx, rdb, "", queue.StreamConfig{})
		if err != nil {
			return err
		}
	} else {
		registrationQueue = queue.NewRegistrationQueue(100)
	}

	confirmationWorker := worker.NewConfirmationWorker(worker.NewLogNotifier(), registrationQueue)
	if err := confirmationWorker.Start(ctx); err != nil {
		return err
	}

	eventService := service.NewEventService(eventRepo)
	registrationService := service.NewRegistrationService(eventRepo, registrationQueue)
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret)

	router := handler.NewRouter(handler.RouterDeps{
		Session:        handler.NewSessionHandler(sessionStore, issuer),
		Events:         handler.NewEventHandler(eventService),
		Registrations:  handler.NewRegistrationHandler(eventService, registrationService),
		Auth:           handler.NewAuthMiddleware(sessionStore, issuer),
		AllowedOrigins: cfg.Server.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening",
			zap.String("addr", srv.Addr),
			zap.String("catalog", cfg.Backends.Catalog),
			zap.String("session", cfg.Backends.Session),
			zap.String("queue", cfg.Backends.Queue),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
