package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KirkDiggler/clapometer/internal/common/clock"
	"github.com/KirkDiggler/clapometer/internal/common/idgen"
	"github.com/KirkDiggler/clapometer/internal/config"
	"github.com/KirkDiggler/clapometer/internal/handlers/api"
	"github.com/KirkDiggler/clapometer/internal/handlers/discord"
	"github.com/KirkDiggler/clapometer/internal/repositories/archive"
	"github.com/KirkDiggler/clapometer/internal/repositories/ballot"
	sessionRepo "github.com/KirkDiggler/clapometer/internal/repositories/session"
	"github.com/KirkDiggler/clapometer/internal/services/messaging"
	sessionService "github.com/KirkDiggler/clapometer/internal/services/session"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	zerolog.SetGlobalLevel(cfg.LogLevel)

	// Initialize Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("Failed to connect to Redis")
	}

	// Initialize repositories
	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{
		RedisClient:     redisClient,
		QuickSessionTTL: cfg.QuickSessionTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session repository")
	}

	ballots, err := ballot.NewRedis(&ballot.Config{
		RedisClient: redisClient,
		BallotTTL:   cfg.QuickSessionTTL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create ballot repository")
	}

	svcCfg := &sessionService.Config{
		SessionRepo: sessions,
		BallotRepo:  ballots,
		Clock:       clock.New(),
		IDGenerator: idgen.New(),
	}

	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
		}
		defer func() {
			if err := mongoClient.Disconnect(context.Background()); err != nil {
				log.Warn().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		}()

		archiveRepo, err := archive.NewMongo(&archive.Config{
			Collection: mongoClient.Database(cfg.MongoDatabase).Collection(archive.CollectionName),
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create session archive")
		}
		if err := archiveRepo.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to create archive indexes")
		}
		svcCfg.ArchiveRepo = archiveRepo
	} else {
		log.Warn().Msg("MONGO_URI not set, ended sessions will not be archived")
	}

	// Initialize services
	sessionSvc, err := sessionService.New(svcCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session service")
	}

	messagingSvc, err := messaging.NewService(&messaging.ServiceConfig{})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create messaging service")
	}

	// Initialize Discord bot
	bot, err := discord.New(&discord.Config{
		Token:            cfg.DiscordToken,
		ApplicationID:    cfg.ApplicationID,
		GuildID:          cfg.GuildID,
		SessionService:   sessionSvc,
		MessagingService: messagingSvc,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Discord bot")
	}

	if err := bot.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start Discord bot")
	}

	// Dashboard API
	var server *http.Server
	if cfg.HTTPAddr != "" {
		handler, err := api.New(&api.Config{SessionService: sessionSvc})
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create HTTP handler")
		}

		gin.SetMode(gin.ReleaseMode)
		server = &http.Server{
			Addr:              cfg.HTTPAddr,
			Handler:           api.NewRouter(handler),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			log.Info().Str("addr", cfg.HTTPAddr).Msg("Dashboard API listening")
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("Dashboard API stopped")
			}
		}()
	}

	// Wait for interrupt signal to gracefully shutdown
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	if server != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Error stopping dashboard API")
		}
		shutdownCancel()
	}

	if err := bot.Stop(); err != nil {
		log.Error().Err(err).Msg("Error stopping bot")
	}

	log.Info().Msg("Bot has been shut down")
}
