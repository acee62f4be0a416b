package services

import (
	"context"
	"time"

	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/notify"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationService enforces who may join or leave an event. All mutations
// go through the repository's conditional updates, so concurrent calls for
// the same (user, event) pair cannot produce a duplicate membership.
type RegistrationService struct {
	eventRepo models.EventRepo
	userRepo  models.UserRepo
	notifier  notify.Notifier
	now       func() time.Time
}

func NewRegistrationService(eventRepo models.EventRepo, userRepo models.UserRepo, notifier notify.Notifier) *RegistrationService {
	return &RegistrationService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		now:       time.Now,
	}
}

// Register adds the caller to the participant set. Fails for the creator,
// for an existing participant and for events that have already started.
func (rs *RegistrationService) Register(ctx context.Context, userID, eventID primitive.ObjectID) (*models.EventView, error) {
	updated, err := rs.eventRepo.AddParticipant(ctx, eventID, userID, rs.now())
	if err != nil {
		return nil, err
	}

	view, err := resolveEventView(ctx, rs.userRepo, updated)
	if err != nil {
		return nil, err
	}
	rs.notifier.Publish(notify.RegistrationChanged, view)
	return view, nil
}

// Unregister removes the caller from the participant set.
func (rs *RegistrationService) Unregister(ctx context.Context, userID, eventID primitive.ObjectID) (*models.EventView, error) {
	updated, err := rs.eventRepo.RemoveParticipant(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}

	view, err := resolveEventView(ctx, rs.userRepo, updated)
	if err != nil {
		return nil, err
	}
	rs.notifier.Publish(notify.RegistrationChanged, view)
	return view, nil
}

// Status is a pure read of the caller's relationship to the event.
func (rs *RegistrationService) Status(ctx context.Context, userID, eventID primitive.ObjectID) (*models.RegistrationStatus, error) {
	event, err := rs.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	status := &models.RegistrationStatus{
		IsCreator:    event.Creator == userID,
		IsRegistered: event.HasParticipant(userID),
	}
	switch {
	case status.IsCreator:
		status.Status = models.StatusCreator
	case status.IsRegistered:
		status.Status = models.StatusRegistered
	default:
		status.Status = models.StatusNotRegistered
	}
	return status, nil
}
