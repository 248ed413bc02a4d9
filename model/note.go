package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultTag is stored when a note is created without a tag.
const DefaultTag = "General"

type Note struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User        string             `bson:"user" json:"user"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Tag         string             `bson:"tag" json:"tag"`
	Date        time.Time          `bson:"date" json:"date"`
}

// NoteUpdate carries the fields of a partial update. A nil field is left
// untouched in storage.
type NoteUpdate struct {
	Title       *string
	Description *string
	Tag         *string
}

// IsEmpty reports whether the update would change nothing.
func (u NoteUpdate) IsEmpty() bool {
	return u.Title == nil && u.Description == nil && u.Tag == nil
}
