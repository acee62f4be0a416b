package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/notify"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the Mongo repositories. Participant
// mutations take the lock for the whole check-and-set, mirroring the atomic
// conditional updates of the real store.
type memStore struct {
	mu     sync.Mutex
	users  map[primitive.ObjectID]*models.User
	events map[primitive.ObjectID]*models.Event
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[primitive.ObjectID]*models.User),
		events: make(map[primitive.ObjectID]*models.Event),
	}
}

func (m *memStore) addUser(username string) *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Username: username,
		Email:    username + "@example.com",
	}
	m.users[user.ID] = user
	return user
}

func copyEvent(e *models.Event) *models.Event {
	clone := *e
	clone.Participants = append([]primitive.ObjectID{}, e.Participants...)
	return &clone
}

/* ---- UserRepo ---- */

func (m *memStore) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return nil, models.ErrDuplicateEmail
		}
		if existing.Username == user.Username {
			return nil, models.ErrDuplicateUsername
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memStore) GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (m *memStore) GetUserByIdentifier(ctx context.Context, emailOrUsername string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	folded := strings.ToLower(strings.TrimSpace(emailOrUsername))
	for _, user := range m.users {
		if user.Email == folded || user.Username == folded {
			return user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Username == strings.ToLower(strings.TrimSpace(username)) {
			return user, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memStore) GetUserRefs(ctx context.Context, ids []primitive.ObjectID) ([]models.UserRef, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	refs := make([]models.UserRef, 0, len(ids))
	for _, id := range ids {
		if user, ok := m.users[id]; ok {
			refs = append(refs, models.UserRef{ID: id, Username: user.Username})
		}
	}
	return refs, nil
}

func (m *memStore) UpdateProfilePicture(ctx context.Context, id primitive.ObjectID, image *models.Image) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.ErrNotFound
	}
	user.ProfilePicture = image
	return nil
}

func (m *memStore) DeleteProfilePicture(ctx context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return models.ErrNotFound
	}
	if user.ProfilePicture == nil {
		return models.ErrNoImage
	}
	user.ProfilePicture = nil
	return nil
}

func (m *memStore) GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if user.ProfilePicture == nil || len(user.ProfilePicture.Data) == 0 {
		return nil, models.ErrNoImage
	}
	return user.ProfilePicture, nil
}

/* ---- EventRepo ---- */

func (m *memStore) CreateEvent(ctx context.Context, event *models.Event) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Participants == nil {
		event.Participants = []primitive.ObjectID{}
	}
	m.events[event.ID] = copyEvent(event)
	return copyEvent(event), nil
}

func (m *memStore) ListEvents(ctx context.Context) ([]*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := []*models.Event{}
	for _, event := range m.events {
		events = append(events, copyEvent(event))
	}
	return events, nil
}

func (m *memStore) ListEventsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	events := []*models.Event{}
	for _, event := range m.events {
		if event.Creator == creatorID {
			events = append(events, copyEvent(event))
		}
	}
	return events, nil
}

func (m *memStore) GetEventByID(ctx context.Context, id primitive.ObjectID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return copyEvent(event), nil
}

func (m *memStore) GetEventImage(ctx context.Context, id primitive.ObjectID) (*models.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	if event.Image == nil || len(event.Image.Data) == 0 {
		return nil, models.ErrNoImage
	}
	return event.Image, nil
}

func (m *memStore) UpdateEvent(ctx context.Context, id, creatorID primitive.ObjectID, update *models.EventUpdate) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok || event.Creator != creatorID {
		return nil, models.ErrNotFoundOrUnauthorized
	}
	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Date != nil {
		event.Date = *update.Date
	}
	if update.Location != nil {
		event.Location = *update.Location
	}
	if update.DeleteImage {
		event.Image = nil
	} else if update.NewImage != nil {
		event.Image = update.NewImage
	}
	event.UpdatedAt = time.Now()
	return copyEvent(event), nil
}

func (m *memStore) DeleteEvent(ctx context.Context, id, creatorID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok || event.Creator != creatorID {
		return models.ErrNotFoundOrUnauthorized
	}
	delete(m.events, id)
	return nil
}

func (m *memStore) DeleteEventImage(ctx context.Context, id, creatorID primitive.ObjectID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[id]
	if !ok || event.Creator != creatorID {
		return nil, models.ErrNotFoundOrUnauthorized
	}
	if event.Image == nil {
		return nil, models.ErrNoImage
	}
	event.Image = nil
	return copyEvent(event), nil
}

func (m *memStore) AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID, now time.Time) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if event.Creator == userID {
		return nil, models.ErrSelfRegistration
	}
	if event.HasParticipant(userID) {
		return nil, models.ErrAlreadyRegistered
	}
	if event.IsPast(now) {
		return nil, models.ErrEventStarted
	}
	event.Participants = append(event.Participants, userID)
	return copyEvent(event), nil
}

func (m *memStore) RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*models.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	event, ok := m.events[eventID]
	if !ok {
		return nil, models.ErrNotFound
	}
	if !event.HasParticipant(userID) {
		return nil, models.ErrNotRegistered
	}
	kept := event.Participants[:0]
	for _, p := range event.Participants {
		if p != userID {
			kept = append(kept, p)
		}
	}
	event.Participants = kept
	return copyEvent(event), nil
}

/* ---- Notifier ---- */

type recordingNotifier struct {
	mu       sync.Mutex
	messages []notify.Message
}

func (r *recordingNotifier) Publish(kind notify.Kind, payload interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, notify.Message{Kind: kind, Payload: payload})
}

func (r *recordingNotifier) kinds() []notify.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	kinds := make([]notify.Kind, 0, len(r.messages))
	for _, msg := range r.messages {
		kinds = append(kinds, msg.Kind)
	}
	return kinds
}
