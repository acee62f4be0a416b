package services

import (
	"context"
	"testing"
	"time"

	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/models"
	"github.com/prathamesh-patil-5090/Event-Manager-Web-App/internal/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newEventFixture(t *testing.T) (*EventService, *memStore, *recordingNotifier, *models.User) {
	t.Helper()
	store := newMemStore()
	notifier := &recordingNotifier{}
	return NewEventService(store, store, notifier), store, notifier, store.addUser("alice")
}

func TestCreateEventPublishesAndResolvesCreator(t *testing.T) {
	svc, _, notifier, alice := newEventFixture(t)

	view, err := svc.Create(context.Background(), alice.ID, &models.Event{
		Title:    "Go Meetup",
		Date:     time.Now().Add(24 * time.Hour),
		Location: "Pune",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", view.Creator.Username)
	assert.Empty(t, view.Participants)
	assert.Equal(t, []notify.Kind{notify.EventCreated}, notifier.kinds())
}

func TestCreateEventValidation(t *testing.T) {
	svc, _, notifier, alice := newEventFixture(t)

	cases := []struct {
		name  string
		event *models.Event
	}{
		{"missing title", &models.Event{Date: time.Now().Add(time.Hour), Location: "Pune"}},
		{"missing date", &models.Event{Title: "Go Meetup", Location: "Pune"}},
		{"missing location", &models.Event{Title: "Go Meetup", Date: time.Now().Add(time.Hour)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), alice.ID, tc.event)
			assert.Error(t, err)
		})
	}
	assert.Empty(t, notifier.kinds())
}

func TestUpdateEventCreatorOnly(t *testing.T) {
	svc, store, notifier, alice := newEventFixture(t)
	bob := store.addUser("bob")

	view, err := svc.Create(context.Background(), alice.ID, &models.Event{
		Title:    "Go Meetup",
		Date:     time.Now().Add(24 * time.Hour),
		Location: "Pune",
	})
	require.NoError(t, err)

	newTitle := "GopherCon India"
	_, err = svc.Update(context.Background(), bob.ID, view.ID, &models.EventUpdate{Title: &newTitle})
	assert.ErrorIs(t, err, models.ErrNotFoundOrUnauthorized)

	updated, err := svc.Update(context.Background(), alice.ID, view.ID, &models.EventUpdate{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "GopherCon India", updated.Title)
	assert.Equal(t, "Pune", updated.Location)

	assert.Equal(t, []notify.Kind{notify.EventCreated, notify.EventUpdated}, notifier.kinds())
}

func TestUpdateDeleteImageFlagWinsOverNewImage(t *testing.T) {
	svc, _, _, alice := newEventFixture(t)

	view, err := svc.Create(context.Background(), alice.ID, &models.Event{
		Title:    "Go Meetup",
		Date:     time.Now().Add(24 * time.Hour),
		Location: "Pune",
		Image:    &models.Image{Data: []byte{1, 2, 3}, ContentType: "image/png"},
	})
	require.NoError(t, err)

	img, err := svc.GetImage(context.Background(), view.ID)
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)

	_, err = svc.Update(context.Background(), alice.ID, view.ID, &models.EventUpdate{
		DeleteImage: true,
		NewImage:    &models.Image{Data: []byte{9}, ContentType: "image/jpeg"},
	})
	require.NoError(t, err)

	_, err = svc.GetImage(context.Background(), view.ID)
	assert.ErrorIs(t, err, models.ErrNoImage)
}

func TestDeleteEventCreatorOnly(t *testing.T) {
	svc, _, notifier, alice := newEventFixture(t)

	view, err := svc.Create(context.Background(), alice.ID, &models.Event{
		Title:    "Go Meetup",
		Date:     time.Now().Add(24 * time.Hour),
		Location: "Pune",
	})
	require.NoError(t, err)

	stranger := primitive.NewObjectID()
	err = svc.Delete(context.Background(), stranger, view.ID)
	assert.ErrorIs(t, err, models.ErrNotFoundOrUnauthorized)

	// Still retrievable after the failed delete.
	_, err = svc.Get(context.Background(), view.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), alice.ID, view.ID))
	_, err = svc.Get(context.Background(), view.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	assert.Equal(t, []notify.Kind{notify.EventCreated, notify.EventDeleted}, notifier.kinds())
}

func TestDeleteImageWithoutImage(t *testing.T) {
	svc, _, _, alice := newEventFixture(t)

	view, err := svc.Create(context.Background(), alice.ID, &models.Event{
		Title:    "Go Meetup",
		Date:     time.Now().Add(24 * time.Hour),
		Location: "Pune",
	})
	require.NoError(t, err)

	_, err = svc.DeleteImage(context.Background(), alice.ID, view.ID)
	assert.ErrorIs(t, err, models.ErrNoImage)
}

func TestListByCreatorUsername(t *testing.T) {
	svc, store, _, alice := newEventFixture(t)
	bob := store.addUser("bob")

	_, err := svc.Create(context.Background(), alice.ID, &models.Event{
		Title: "Alice's Event", Date: time.Now().Add(time.Hour), Location: "Pune",
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), bob.ID, &models.Event{
		Title: "Bob's Event", Date: time.Now().Add(time.Hour), Location: "Mumbai",
	})
	require.NoError(t, err)

	views, err := svc.ListByCreatorUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Alice's Event", views[0].Title)

	_, err = svc.ListByCreatorUsername(context.Background(), "nobody")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
