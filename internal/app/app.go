package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/avoronov/chessmentor/internal/config"
	"github.com/avoronov/chessmentor/internal/event"
	"github.com/avoronov/chessmentor/internal/service"
	"github.com/avoronov/chessmentor/internal/storage"
)

// App is the composition root of the state core: one store, one bus and
// the services wired to them. Host processes embed it and talk to the
// exported fields.
type App struct {
	Store         *storage.Store
	Bus           *event.Bus
	Directory     *service.TeacherDirectory
	Rooms         *service.RoomStateManager
	Messages      *service.MessageLog
	Requests      *service.RequestWorkflow
	Notifications *service.NotificationService
	Onboarding    *service.OnboardingService

	logger *zap.Logger
}

// New opens the store and wires every service to it.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	store, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	bus := event.NewBus(logger)

	directory := service.NewTeacherDirectory(store, logger)
	rooms := service.NewRoomStateManager(store, bus, logger)
	messages := service.NewMessageLog(store, bus, logger)
	requests := service.NewRequestWorkflow(store, messages, logger)
	notifications := service.NewNotificationService(store, logger)
	onboarding := service.NewOnboardingService(directory, requests, notifications, logger)

	return &App{
		Store:         store,
		Bus:           bus,
		Directory:     directory,
		Rooms:         rooms,
		Messages:      messages,
		Requests:      requests,
		Notifications: notifications,
		Onboarding:    onboarding,
		logger:        logger,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
