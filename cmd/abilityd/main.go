package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/KirkDiggler/ability-engine/internal/combat"
	"github.com/KirkDiggler/ability-engine/internal/config"
	"github.com/KirkDiggler/ability-engine/internal/domain/world"
	"github.com/KirkDiggler/ability-engine/internal/engine"
	"github.com/KirkDiggler/ability-engine/internal/events"
	"github.com/KirkDiggler/ability-engine/internal/messaging"
	"github.com/KirkDiggler/ability-engine/internal/repositories/abilities"
	overtimerepo "github.com/KirkDiggler/ability-engine/internal/repositories/overtime"
	"github.com/KirkDiggler/ability-engine/internal/telemetry"
	"github.com/KirkDiggler/ability-engine/internal/uuid"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			logger.Fatal("failed to set up telemetry", zap.Error(err))
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(flushCtx); err != nil {
				logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		}()
	}

	catalog, _, err := abilities.Load(ctx, &abilities.Config{
		Paths:  splitPaths(cfg.AbilityData),
		Logger: logger,
	})
	if err != nil {
		logger.Fatal("failed to load abilities", zap.Error(err))
	}

	store, redisClient := overtimeStore(ctx, cfg.Redis, logger)
	if redisClient != nil {
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("failed to close redis", zap.Error(err))
			}
		}()
	}

	ids := uuid.NewGoogleUUIDGenerator()
	w, err := seedWorld(ids)
	if err != nil {
		logger.Fatal("failed to build world", zap.Error(err))
	}

	sinks := []messaging.Sink{messaging.NewLogSink(logger.Named("messages"))}

	var (
		dg          *discordgo.Session
		discordSink *messaging.DiscordSink
	)
	if cfg.Discord.Token != "" {
		dg, err = discordgo.New("Bot " + cfg.Discord.Token)
		if err != nil {
			logger.Fatal("failed to create discord session", zap.Error(err))
		}
		dg.Identify.Intents = discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentMessageContent
		discordSink = messaging.NewDiscordSink(dg, cfg.Discord.Channel)
		sinks = append(sinks, discordSink)
	}

	bus := events.NewBus(logger)
	combatService := combat.NewService(&combat.ServiceConfig{Bus: bus, Logger: logger})
	messenger := messaging.New(&messaging.Config{Sinks: sinks, Logger: logger})

	eng := engine.New(&engine.Config{
		World:     w,
		Catalog:   catalog,
		Combat:    combatService,
		Messenger: messenger,
		Store:     store,
		Bus:       bus,
		Logger:    logger,
		IDs:       ids,
		Tunables:  cfg.Engine,
	})

	drv := newDriver(&driverConfig{
		Engine:    eng,
		World:     w,
		Catalog:   catalog,
		Combat:    combatService,
		Messenger: messenger,
		Logger:    logger,
		OnJoin: func(ch *world.Character, channelID string) {
			if discordSink != nil && channelID != "" {
				discordSink.Register(ch.ID, channelID)
			}
		},
	})

	if dg != nil {
		dg.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
			if m.Author == nil || m.Author.Bot {
				return
			}
			cmd := command{UserID: m.Author.ID, Name: m.Author.Username, Text: m.Content}
			// Private lines go back to direct messages only
			if m.GuildID == "" {
				cmd.ChannelID = m.ChannelID
			}
			drv.submit(cmd)
		})
		if err := dg.Open(); err != nil {
			logger.Fatal("failed to open discord connection", zap.Error(err))
		}
		defer func() {
			if err := dg.Close(); err != nil {
				logger.Warn("failed to close discord connection", zap.Error(err))
			}
		}()
	}

	logger.Info("ability engine running",
		zap.Int("abilities", len(catalog.List())),
		zap.Duration("tick", cfg.TickInterval),
		zap.Bool("discord", dg != nil),
		zap.Bool("redis", redisClient != nil))

	drv.run(ctx, cfg.TickInterval)

	logger.Info("shutting down")
}

func newLogger(level string) (*zap.Logger, error) {
	if strings.EqualFold(level, "debug") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func splitPaths(value string) []string {
	var paths []string
	for _, p := range strings.Split(value, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// overtimeStore connects to Redis when configured and falls back to memory
func overtimeStore(ctx context.Context, cfg config.RedisConfig, logger *zap.Logger) (overtimerepo.Repository, *redis.Client) {
	if !cfg.Enabled() {
		logger.Info("no redis configured, using in-memory over-time store")
		return overtimerepo.NewInMemoryRepository(nil), nil
	}

	opts := &redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			logger.Warn("failed to parse redis url, using in-memory store", zap.Error(err))
			return overtimerepo.NewInMemoryRepository(nil), nil
		}
		opts = parsed
	}

	client := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("failed to connect to redis, using in-memory store", zap.Error(err))
		_ = client.Close()
		return overtimerepo.NewInMemoryRepository(nil), nil
	}

	logger.Info("using redis over-time store", zap.String("addr", opts.Addr))
	return overtimerepo.NewRedis(client, nil), client
}
