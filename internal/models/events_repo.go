package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepo interface {
	CreateEvent(ctx context.Context, event *Event) (*Event, error)
	ListEvents(ctx context.Context) ([]*Event, error)
	ListEventsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]*Event, error)
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error)
	GetEventImage(ctx context.Context, id primitive.ObjectID) (*Image, error)
	UpdateEvent(ctx context.Context, id, creatorID primitive.ObjectID, update *EventUpdate) (*Event, error)
	DeleteEvent(ctx context.Context, id, creatorID primitive.ObjectID) error
	DeleteEventImage(ctx context.Context, id, creatorID primitive.ObjectID) (*Event, error)
	AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID, now time.Time) (*Event, error)
	RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*Event, error)
}

// excludeImageData keeps multi-megabyte blobs out of list/detail reads.
var excludeImageData = bson.M{"image.data": 0}

func (mdb *MongodbRepo) CreateEvent(ctx context.Context, event *Event) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Participants == nil {
		event.Participants = []primitive.ObjectID{}
	}

	if _, err := col.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("error inserting event: %w", err)
	}
	return event, nil
}

func (mdb *MongodbRepo) ListEvents(ctx context.Context) ([]*Event, error) {
	return mdb.findEvents(ctx, bson.M{}, options.Find().SetProjection(excludeImageData))
}

func (mdb *MongodbRepo) ListEventsByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]*Event, error) {
	opts := options.Find().
		SetProjection(excludeImageData).
		SetSort(bson.D{{Key: "date", Value: 1}})
	return mdb.findEvents(ctx, bson.M{"creator": creatorID}, opts)
}

func (mdb *MongodbRepo) findEvents(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []*Event{}
	for cursor.Next(ctx) {
		var event Event
		if err := cursor.Decode(&event); err != nil {
			return nil, fmt.Errorf("error decoding event: %w", err)
		}
		events = append(events, &event)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return events, nil
}

func (mdb *MongodbRepo) GetEventByID(ctx context.Context, id primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.FindOne().SetProjection(excludeImageData)
	var event Event
	if err := col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding event: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) GetEventImage(ctx context.Context, id primitive.ObjectID) (*Image, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.FindOne().SetProjection(bson.M{"image": 1})
	var event Event
	if err := col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&event); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding event: %w", err)
	}
	if event.Image == nil || len(event.Image.Data) == 0 {
		return nil, ErrNoImage
	}
	return event.Image, nil
}

// BuildEventUpdateDocument turns a partial update into Mongo update operators.
// An explicit DeleteImage wins over a newly supplied image.
func BuildEventUpdateDocument(update *EventUpdate, now time.Time) bson.M {
	set := bson.M{"updated_at": now}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Date != nil {
		set["date"] = *update.Date
	}
	if update.Location != nil {
		set["location"] = *update.Location
	}

	doc := bson.M{"$set": set}
	if update.DeleteImage {
		doc["$unset"] = bson.M{"image": ""}
	} else if update.NewImage != nil {
		set["image"] = update.NewImage
	}
	return doc
}

// UpdateEvent applies a partial update scoped by event id and creator. A
// non-creator caller is indistinguishable from a missing event.
func (mdb *MongodbRepo) UpdateEvent(ctx context.Context, id, creatorID primitive.ObjectID, update *EventUpdate) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{"_id": id, "creator": creatorID}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(excludeImageData)

	var event Event
	err = col.FindOneAndUpdate(ctx, filter, BuildEventUpdateDocument(update, time.Now()), opts).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("error updating event: %w", err)
	}
	return &event, nil
}

func (mdb *MongodbRepo) DeleteEvent(ctx context.Context, id, creatorID primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	res, err := col.DeleteOne(ctx, bson.M{"_id": id, "creator": creatorID})
	if err != nil {
		return fmt.Errorf("error deleting event: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFoundOrUnauthorized
	}
	return nil
}

func (mdb *MongodbRepo) DeleteEventImage(ctx context.Context, id, creatorID primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{"_id": id, "creator": creatorID, "image": bson.M{"$exists": true}}
	update := bson.M{
		"$unset": bson.M{"image": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(excludeImageData)

	var event Event
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&event)
	if err == nil {
		return &event, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("error deleting event image: %w", err)
	}

	// Distinguish "no image" from "not yours / not there".
	count, err := col.CountDocuments(ctx, bson.M{"_id": id, "creator": creatorID})
	if err != nil {
		return nil, fmt.Errorf("error checking event: %w", err)
	}
	if count == 0 {
		return nil, ErrNotFoundOrUnauthorized
	}
	return nil, ErrNoImage
}

// AddParticipant registers a user in one conditional update: the guard filter
// rejects the creator, an existing participant and a started event, so two
// concurrent registrations for the same (user, event) cannot both succeed.
func (mdb *MongodbRepo) AddParticipant(ctx context.Context, eventID, userID primitive.ObjectID, now time.Time) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{
		"_id":          eventID,
		"creator":      bson.M{"$ne": userID},
		"participants": bson.M{"$ne": userID},
		"date":         bson.M{"$gt": now},
	}
	update := bson.M{
		"$addToSet": bson.M{"participants": userID},
		"$set":      bson.M{"updated_at": now},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(excludeImageData)

	var event Event
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&event)
	if err == nil {
		return &event, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("error registering participant: %w", err)
	}

	return nil, mdb.classifyRegisterFailure(ctx, eventID, userID, now)
}

func (mdb *MongodbRepo) classifyRegisterFailure(ctx context.Context, eventID, userID primitive.ObjectID, now time.Time) error {
	event, err := mdb.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}
	switch {
	case event.Creator == userID:
		return ErrSelfRegistration
	case event.HasParticipant(userID):
		return ErrAlreadyRegistered
	case event.IsPast(now):
		return ErrEventStarted
	default:
		// The guard matched nothing but the snapshot looks fine: a concurrent
		// writer changed the document between the two reads. Treat as conflict.
		return ErrAlreadyRegistered
	}
}

func (mdb *MongodbRepo) RemoveParticipant(ctx context.Context, eventID, userID primitive.ObjectID) (*Event, error) {
	col, err := mdb.GetCollection(ctx, EventsColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{"_id": eventID, "participants": userID}
	update := bson.M{
		"$pull": bson.M{"participants": userID},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(excludeImageData)

	var event Event
	err = col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&event)
	if err == nil {
		return &event, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("error unregistering participant: %w", err)
	}

	if _, err := mdb.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}
	return nil, ErrNotRegistered
}
