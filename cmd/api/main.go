package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/kanban-service/internal/api/http"
	"github.com/spec-kit/kanban-service/internal/api/http/handlers"
	"github.com/spec-kit/kanban-service/internal/auth"
	"github.com/spec-kit/kanban-service/internal/config"
	"github.com/spec-kit/kanban-service/internal/events"
	"github.com/spec-kit/kanban-service/internal/mail"
	"github.com/spec-kit/kanban-service/internal/observability"
	"github.com/spec-kit/kanban-service/internal/persistence"
	"github.com/spec-kit/kanban-service/internal/repository"
	"github.com/spec-kit/kanban-service/internal/service"
	"github.com/spec-kit/kanban-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	roleRepo := repository.NewRoleRepository(pool)
	grantRepo := repository.NewGrantRepository(pool)
	linkRepo := repository.NewLinkRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	boardRepo := repository.NewBoardRepository(pool)
	cardRepo := repository.NewCardRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	mailer := mail.NewSMTPMailer(cfg.Mail)
	notifications := service.NewNotificationService(dispatcher, mailer, logger, cfg.Mail)
	notifications.RegisterHandlers()

	sessionService := service.NewSessionService(cfg, service.SessionDependencies{
		UserRepo:   userRepo,
		RoleRepo:   roleRepo,
		Dispatcher: dispatcher,
	})
	privilegeService := service.NewPrivilegeService(grantRepo)
	accessService := service.NewAccessService(linkRepo)
	activityService := service.NewActivityService(redis, activityRepo, logger)
	userAdminService := service.NewUserAdminService(userRepo, roleRepo, privilegeService, cfg.Auth.BcryptCost)
	roleService := service.NewRoleService(roleRepo, privilegeService)
	grantService := service.NewGrantService(grantRepo, roleRepo, privilegeService)
	linkService := service.NewLinkService(linkRepo, userRepo, privilegeService, activityService)
	boardService := service.NewBoardService(boardRepo, privilegeService, accessService)
	cardService := service.NewCardService(cardRepo, privilegeService, accessService, activityService)

	gate := auth.NewGate(cfg.App, sessionService.SessionCodec(), auth.NewClassifier(), logger)

	activityWorker := worker.NewActivityWorker(redis, activityRepo, logger)
	go activityWorker.Run(ctx)

	metrics := observability.NewMetrics()

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		App:        handlers.NewAppHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Users:      handlers.NewUsersHandler(sessionService, userAdminService),
		Roles:      handlers.NewRolesHandler(roleService),
		Grants:     handlers.NewGrantsHandler(grantService),
		Links:      handlers.NewLinksHandler(linkService),
		Activities: handlers.NewActivitiesHandler(activityService),
		Boards:     handlers.NewBoardsHandler(boardService),
		Cards:      handlers.NewCardsHandler(cardService),
		Gate:       gate,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
