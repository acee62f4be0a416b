package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetUserByIdentifier(ctx context.Context, emailOrUsername string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserRefs(ctx context.Context, ids []primitive.ObjectID) ([]UserRef, error)
	UpdateProfilePicture(ctx context.Context, id primitive.ObjectID, image *Image) error
	DeleteProfilePicture(ctx context.Context, id primitive.ObjectID) error
	GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*Image, error)
}

// EnsureIndexes creates the unique indexes backing the username/email
// constraints. Safe to call on every startup.
func (mdb *MongodbRepo) EnsureIndexes(ctx context.Context) error {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return err
	}

	_, err = col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("error creating user indexes: %w", err)
	}
	return nil
}

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}

	if _, err := col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			if strings.Contains(err.Error(), "email") {
				return nil, ErrDuplicateEmail
			}
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("error inserting user: %w", err)
	}

	return user, nil
}

func (mdb *MongodbRepo) GetUserByID(ctx context.Context, id primitive.ObjectID) (*User, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var user User
	if err := col.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return &user, nil
}

// GetUserByIdentifier looks a user up by email or username, case-folded.
func (mdb *MongodbRepo) GetUserByIdentifier(ctx context.Context, emailOrUsername string) (*User, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	folded := strings.ToLower(strings.TrimSpace(emailOrUsername))
	filter := bson.M{"$or": bson.A{
		bson.M{"email": folded},
		bson.M{"username": folded},
	}}

	var user User
	if err := col.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	var user User
	filter := bson.M{"username": strings.ToLower(strings.TrimSpace(username))}
	if err := col.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	return &user, nil
}

// GetUserRefs resolves account references to display identities. Unknown ids
// are skipped rather than failing the whole resolution.
func (mdb *MongodbRepo) GetUserRefs(ctx context.Context, ids []primitive.ObjectID) ([]UserRef, error) {
	if len(ids) == 0 {
		return []UserRef{}, nil
	}

	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.Find().SetProjection(bson.M{"username": 1})
	cursor, err := col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("error finding users: %w", err)
	}
	defer cursor.Close(ctx)

	byID := make(map[primitive.ObjectID]string, len(ids))
	for cursor.Next(ctx) {
		var doc struct {
			ID       primitive.ObjectID `bson:"_id"`
			Username string             `bson:"username"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("error decoding user: %w", err)
		}
		byID[doc.ID] = doc.Username
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	refs := make([]UserRef, 0, len(ids))
	for _, id := range ids {
		if username, ok := byID[id]; ok {
			refs = append(refs, UserRef{ID: id, Username: username})
		}
	}
	return refs, nil
}

func (mdb *MongodbRepo) UpdateProfilePicture(ctx context.Context, id primitive.ObjectID, image *Image) error {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	update := bson.M{"$set": bson.M{
		"profilePicture": image,
		"updated_at":     time.Now(),
	}}
	res, err := col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("error updating profile picture: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (mdb *MongodbRepo) DeleteProfilePicture(ctx context.Context, id primitive.ObjectID) error {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return fmt.Errorf("error getting collection: %w", err)
	}

	filter := bson.M{"_id": id, "profilePicture": bson.M{"$exists": true}}
	update := bson.M{
		"$unset": bson.M{"profilePicture": ""},
		"$set":   bson.M{"updated_at": time.Now()},
	}
	res, err := col.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("error deleting profile picture: %w", err)
	}
	if res.MatchedCount == 0 {
		if _, err := mdb.GetUserByID(ctx, id); err != nil {
			return err
		}
		return ErrNoImage
	}
	return nil
}

func (mdb *MongodbRepo) GetProfilePicture(ctx context.Context, id primitive.ObjectID) (*Image, error) {
	col, err := mdb.GetCollection(ctx, UsersColName)
	if err != nil {
		return nil, fmt.Errorf("error getting collection: %w", err)
	}

	opts := options.FindOne().SetProjection(bson.M{"profilePicture": 1})
	var user User
	if err := col.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error finding user: %w", err)
	}
	if user.ProfilePicture == nil || len(user.ProfilePicture.Data) == 0 {
		return nil, ErrNoImage
	}
	return user.ProfilePicture, nil
}
