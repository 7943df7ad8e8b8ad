// main.go - clubhouse API server
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubhouse/auth"
	"clubhouse/config"
	"clubhouse/database"
	"clubhouse/handlers"
	"clubhouse/logging"
	"clubhouse/middleware"
	"clubhouse/repository"
	"clubhouse/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	shutdownTimeout  = 10 * time.Second
	limiterSweep     = time.Minute
	limiterMaxIdle   = 10 * time.Minute
	rateLimitMessage = "Too many requests. Please slow down."
	authLimitMessage = "Too many authentication attempts. Please try again later."
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := logging.Setup(cfg.App.Env, cfg.App.LogLevel)

	db, err := database.Open(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error().Err(err).Msg("close database")
		}
	}()

	if err := database.RunMigrations(db, logger); err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL(), clock)
	live := handlers.NewLiveHub()

	players := repository.NewPlayerRepository(db)
	teams := repository.NewTeamRepository(db)
	deps := handlers.Deps{
		DB:      db,
		Clock:   clock,
		Tokens:  tokens,
		Players: services.NewPlayerService(players, teams),
		Coaches: services.NewCoachService(repository.NewCoachRepository(db), teams),
		Teams:   services.NewTeamService(teams),
		Matches: services.NewMatchService(repository.NewMatchRepository(db), live, clock),
		Stats:   services.NewStatsService(repository.NewStatsRepository(db), players),
		Users:   services.NewUserService(repository.NewUserRepository(db), tokens, clock),
		Live:    live,
	}

	app := fiber.New(fiber.Config{
		AppName:               "clubhouse",
		ErrorHandler:          handlers.ErrorHandler(cfg.IsProduction()),
		BodyLimit:             cfg.Server.BodyLimit,
		ReadTimeout:           cfg.Server.ReadTimeoutDuration(),
		WriteTimeout:          cfg.Server.WriteTimeoutDuration(),
		DisableStartupMessage: cfg.IsProduction(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger(logger))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderRequestID,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	if cfg.RateLimit.Enabled {
		general := middleware.NewRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.WindowSeconds, clock)
		strict := middleware.NewRateLimiter(cfg.RateLimit.AuthMaxRequests, cfg.RateLimit.AuthWindowSeconds, clock)
		app.Use(middleware.RateLimit(general, rateLimitMessage))
		deps.AuthLimit = middleware.RateLimit(strict, authLimitMessage)

		for _, rl := range []*middleware.RateLimiter{general, strict} {
			rl := rl
			g.Go(func() error { return rl.RunCleanup(gctx, limiterSweep, limiterMaxIdle) })
		}
	}

	handlers.Register(app, deps)
	if cfg.Server.StaticDir != "" {
		app.Static("/", cfg.Server.StaticDir)
	}

	g.Go(func() error {
		logger.Info().
			Str("port", cfg.Server.Port).
			Str("env", cfg.App.Env).
			Str("driver", cfg.Database.Driver).
			Msg("server starting")
		return app.Listen(":" + cfg.Server.Port)
	})

	g.Go(func() error {
		<-gctx.Done()
		return shutdown(app, live, logger)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func shutdown(app *fiber.App, live *handlers.LiveHub, logger zerolog.Logger) error {
	logger.Info().Msg("shutting down")
	live.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return app.ShutdownWithContext(ctx)
}
