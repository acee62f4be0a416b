package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/notify"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type EventService struct {
	eventRepo models.EventRepo
	userRepo  models.UserRepo
	notifier  notify.Notifier
}

func NewEventService(eventRepo models.EventRepo, userRepo models.UserRepo, notifier notify.Notifier) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Create stores a new event owned by the caller and broadcasts it.
func (es *EventService) Create(ctx context.Context, creatorID primitive.ObjectID, event *models.Event) (*models.EventView, error) {
	event.Title = strings.TrimSpace(event.Title)
	event.Location = strings.TrimSpace(event.Location)
	event.Creator = creatorID
	if err := models.Validate.Struct(event); err != nil {
		return nil, fmt.Errorf("invalid event data: %w", err)
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	created, err := es.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}

	view, err := resolveEventView(ctx, es.userRepo, created)
	if err != nil {
		return nil, err
	}
	es.notifier.Publish(notify.EventCreated, view)
	return view, nil
}

// Update applies a partial replacement of the mutable fields. Only the
// creator may update; anyone else sees the event as missing.
func (es *EventService) Update(ctx context.Context, callerID, eventID primitive.ObjectID, update *models.EventUpdate) (*models.EventView, error) {
	updated, err := es.eventRepo.UpdateEvent(ctx, eventID, callerID, update)
	if err != nil {
		return nil, err
	}

	view, err := resolveEventView(ctx, es.userRepo, updated)
	if err != nil {
		return nil, err
	}
	es.notifier.Publish(notify.EventUpdated, view)
	return view, nil
}

// Delete removes the event entirely. Participant references are weak, so no
// cleanup of other records is needed.
func (es *EventService) Delete(ctx context.Context, callerID, eventID primitive.ObjectID) error {
	if err := es.eventRepo.DeleteEvent(ctx, eventID, callerID); err != nil {
		return err
	}
	es.notifier.Publish(notify.EventDeleted, map[string]string{"id": eventID.Hex()})
	return nil
}

// DeleteImage clears the event image without touching other fields.
func (es *EventService) DeleteImage(ctx context.Context, callerID, eventID primitive.ObjectID) (*models.EventView, error) {
	updated, err := es.eventRepo.DeleteEventImage(ctx, eventID, callerID)
	if err != nil {
		return nil, err
	}

	view, err := resolveEventView(ctx, es.userRepo, updated)
	if err != nil {
		return nil, err
	}
	es.notifier.Publish(notify.EventUpdated, view)
	return view, nil
}

func (es *EventService) List(ctx context.Context) ([]*models.EventView, error) {
	events, err := es.eventRepo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	return resolveEventViews(ctx, es.userRepo, events...)
}

func (es *EventService) ListMine(ctx context.Context, callerID primitive.ObjectID) ([]*models.EventView, error) {
	events, err := es.eventRepo.ListEventsByCreator(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return resolveEventViews(ctx, es.userRepo, events...)
}

// ListByCreatorUsername lists the events owned by the named account.
func (es *EventService) ListByCreatorUsername(ctx context.Context, username string) ([]*models.EventView, error) {
	creator, err := es.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	events, err := es.eventRepo.ListEventsByCreator(ctx, creator.ID)
	if err != nil {
		return nil, err
	}
	return resolveEventViews(ctx, es.userRepo, events...)
}

func (es *EventService) Get(ctx context.Context, eventID primitive.ObjectID) (*models.EventView, error) {
	event, err := es.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return resolveEventView(ctx, es.userRepo, event)
}

func (es *EventService) GetImage(ctx context.Context, eventID primitive.ObjectID) (*models.Image, error) {
	return es.eventRepo.GetEventImage(ctx, eventID)
}
