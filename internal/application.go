package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-service/internal/config"
	"github.com/rocketscienceinc/tictactoe-service/internal/gaming"
	"github.com/rocketscienceinc/tictactoe-service/internal/repository"
	"github.com/rocketscienceinc/tictactoe-service/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-service/internal/transport/mqtt"
	"github.com/rocketscienceinc/tictactoe-service/transport/rest"
)

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	managerConf := gaming.ManagerConfig{
		EventDomain:        conf.EventPlane.Domain,
		BrokerAddress:      conf.EventPlane.BrokerHost,
		BrokerPort:         conf.EventPlane.BrokerPort,
		GameTTL:            conf.Gaming.GameTTL,
		CleanupInterval:    conf.Gaming.CleanupInterval,
		BotDeliberationMin: conf.Gaming.BotDeliberationMin,
		BotDeliberationMax: conf.Gaming.BotDeliberationMax,
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano())) //nolint: gosec // game randomness, not security

	var manager *gaming.GamingSessionsManager

	switch conf.SessionStore {
	case "redis":
		client, err := storage.New(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return fmt.Errorf("could not connect to redis storage: %w", err)
		}
		defer func() {
			if err = client.Close(); err != nil {
				log.Error("could not close redis storage", "error", err)
			}
		}()

		manager = gaming.NewGamingSessionsManager(logger, repository.NewRedisSessionStore(client), managerConf, rng)
	default:
		manager = gaming.NewGamingSessionsManager(logger, repository.NewMemorySessionStore(), managerConf, rng)
	}

	if conf.EventPlane.Enabled {
		sink, err := mqtt.New(logger, conf.EventPlane.BrokerHost, conf.EventPlane.BrokerPort, conf.EventPlane.ClientID)
		if err != nil {
			return fmt.Errorf("could not connect to MQTT broker: %w", err)
		}
		defer sink.Close()

		manager.AddObserver(gaming.NewGameUpdatesPublisher(logger, sink))
	}

	manager.StartCleanupSweep(ctx)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if err := rest.New(logger, manager).Start(groupCtx, conf.HTTPPort); err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	if err := group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, shutting down")

	return nil
}
