package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/app"
	"github.com/avoronov/chessmentor/internal/config"
	"github.com/avoronov/chessmentor/internal/event"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx := context.Background()

	core, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to start state core", zap.Error(err))
	}
	defer core.Close()

	unsubscribe := core.Bus.Subscribe(event.RoomChangedEvent, func(payload any) {
		if changed, ok := payload.(event.RoomChanged); ok {
			logger.Debug("room updated", zap.String("room_id", changed.RoomID))
		}
	})
	defer unsubscribe()

	// warms the directory so a cold start is seeded before any UI attaches
	teachers, err := core.Directory.List(ctx)
	if err != nil {
		logger.Fatal("failed to load teacher directory", zap.Error(err))
	}

	logger.Sugar().Infow("State core ready",
		"environment", cfg.Environment,
		"db_path", cfg.DBPath,
		"teachers", len(teachers))
}
