package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/events"
)

// NotificationService relays domain events to external subscribers. Every
// event published on the dispatcher is re-broadcast on a channel named
// after the event type.
type NotificationService struct {
	dispatcher  events.Dispatcher
	broadcaster events.Broadcaster
	logger      *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, broadcaster events.Broadcaster, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// RegisterHandlers subscribes the relay to every event type.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventTicketAssigned,
		events.EventTicketStatusChanged,
		events.EventTicketResolved,
		events.EventTicketDeleted,
		events.EventTaskCreated,
		events.EventTaskAssigned,
		events.EventTaskStatusChanged,
	} {
		n.dispatcher.Subscribe(eventType, n.relay)
	}
}

func (n *NotificationService) relay(ctx context.Context, event events.Event) error {
	n.logger.Info("event", zap.String("type", string(event.Type)), zap.String("event_id", event.ID))
	if n.broadcaster != nil {
		n.broadcaster.Broadcast(ctx, string(event.Type), event)
	}
	return nil
}
