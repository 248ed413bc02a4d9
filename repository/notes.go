package repository

import (
	"context"
	"errors"
	"fmt"

	"inotebook/model"
	"inotebook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNoteNotFound = errors.New("note not found")

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client, database, collection string) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(database).Collection(collection),
	}
}

func (r *NotesRepo) track(operation string) func() {
	timer := utils.TrackDBOperation(operation, r.MongoCollection.Name())
	return func() { timer.ObserveDuration() }
}

// parseNoteID rejects ids that are not 24-char hex ObjectIDs.
func parseNoteID(noteID string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("invalid note id %q: %w", noteID, err)
	}
	return oid, nil
}

// FindByUser returns the user's notes in insertion order.
func (r *NotesRepo) FindByUser(ctx context.Context, userID string) ([]*model.Note, error) {
	defer r.track("find_by_user")()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	notes := make([]*model.Note, 0)
	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Insert assigns a fresh ObjectID to the note and stores it.
func (r *NotesRepo) Insert(ctx context.Context, note *model.Note) error {
	defer r.track("insert")()

	if note.User == "" {
		return errors.New("user ID is required")
	}

	note.ID = primitive.NewObjectID()
	if _, err := r.MongoCollection.InsertOne(ctx, note); err != nil {
		note.ID = primitive.NilObjectID
		return err
	}
	return nil
}

// FindByID returns ErrNoteNotFound when no document has the id.
func (r *NotesRepo) FindByID(ctx context.Context, noteID string) (*model.Note, error) {
	defer r.track("find_by_id")()

	oid, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}

	var note model.Note
	err = r.MongoCollection.FindOne(ctx, bson.M{"_id": oid}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// Update applies the non-nil fields with $set and returns the document after
// the update.
func (r *NotesRepo) Update(ctx context.Context, noteID string, update model.NoteUpdate) (*model.Note, error) {
	defer r.track("update")()

	oid, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}

	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Tag != nil {
		set["tag"] = *update.Tag
	}

	// mongo rejects an empty $set
	if len(set) == 0 {
		return r.FindByID(ctx, noteID)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var note model.Note
	err = r.MongoCollection.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}

// Delete removes the note and returns the removed document.
func (r *NotesRepo) Delete(ctx context.Context, noteID string) (*model.Note, error) {
	defer r.track("delete")()

	oid, err := parseNoteID(noteID)
	if err != nil {
		return nil, err
	}

	var note model.Note
	err = r.MongoCollection.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoteNotFound
		}
		return nil, err
	}
	return &note, nil
}
