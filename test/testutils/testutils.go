package testutils

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"inotebook/model"
	"inotebook/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FixedTime pins a clock for tests
type FixedTime struct {
	Fixed time.Time
}

func (ft FixedTime) Now() time.Time {
	return ft.Fixed
}

// MemoryNotesStore is an in-process NotesStore with the same observable
// behaviour as repository.NotesRepo.
type MemoryNotesStore struct {
	mu    sync.Mutex
	notes []*model.Note
	// Err, when set, is returned by every call.
	Err   error
	Calls int
}

func NewMemoryNotesStore() *MemoryNotesStore {
	return &MemoryNotesStore{}
}

func clone(n *model.Note) *model.Note {
	c := *n
	return &c
}

func (s *MemoryNotesStore) begin() error {
	s.Calls++
	return s.Err
}

func (s *MemoryNotesStore) indexOf(noteID string) (int, error) {
	oid, err := primitive.ObjectIDFromHex(noteID)
	if err != nil {
		return -1, fmt.Errorf("invalid note id %q: %w", noteID, err)
	}
	for i, n := range s.notes {
		if n.ID == oid {
			return i, nil
		}
	}
	return -1, repository.ErrNoteNotFound
}

func (s *MemoryNotesStore) FindByUser(_ context.Context, userID string) ([]*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}

	out := make([]*model.Note, 0)
	for _, n := range s.notes {
		if n.User == userID {
			out = append(out, clone(n))
		}
	}
	return out, nil
}

func (s *MemoryNotesStore) Insert(_ context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return err
	}

	note.ID = primitive.NewObjectID()
	s.notes = append(s.notes, clone(note))
	return nil
}

func (s *MemoryNotesStore) FindByID(_ context.Context, noteID string) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}

	i, err := s.indexOf(noteID)
	if err != nil {
		return nil, err
	}
	return clone(s.notes[i]), nil
}

func (s *MemoryNotesStore) Update(_ context.Context, noteID string, update model.NoteUpdate) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}

	i, err := s.indexOf(noteID)
	if err != nil {
		return nil, err
	}
	n := s.notes[i]
	if update.Title != nil {
		n.Title = *update.Title
	}
	if update.Description != nil {
		n.Description = *update.Description
	}
	if update.Tag != nil {
		n.Tag = *update.Tag
	}
	return clone(n), nil
}

func (s *MemoryNotesStore) Delete(_ context.Context, noteID string) (*model.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.begin(); err != nil {
		return nil, err
	}

	i, err := s.indexOf(noteID)
	if err != nil {
		return nil, err
	}
	n := s.notes[i]
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return n, nil
}

// Snapshot returns copies of every stored note in insertion order.
func (s *MemoryNotesStore) Snapshot() []*model.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = clone(n)
	}
	return out
}

// SetupTestDB connects to TEST_MONGO_URI (default localhost) and returns a
// collection unique to the test. The test is skipped when mongo is not
// reachable.
func SetupTestDB(t *testing.T) (*mongo.Collection, func()) {
	t.Helper()

	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerSelectionTimeout(2*time.Second))
	if err != nil {
		t.Skipf("mongodb not available: %v", err)
	}
	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		t.Skipf("mongodb not available: %v", err)
	}

	coll := client.Database("inotebook_test").Collection("notes_" + primitive.NewObjectID().Hex())

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := coll.Drop(ctx); err != nil {
			t.Logf("Warning: Failed to drop test collection: %v", err)
		}
		if err := client.Disconnect(ctx); err != nil {
			t.Logf("Warning: Failed to disconnect: %v", err)
		}
	}

	return coll, cleanup
}
