package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"inotebook/model"
	"inotebook/repository"

	"go.uber.org/zap"
)

var (
	// ErrNoteNotFound means no note has the requested id.
	ErrNoteNotFound = repository.ErrNoteNotFound
	// ErrNotAllowed means the note exists but belongs to another user.
	ErrNotAllowed = errors.New("not allowed")
)

// NotesStore is the storage the service needs. repository.NotesRepo is the
// MongoDB implementation.
type NotesStore interface {
	FindByUser(ctx context.Context, userID string) ([]*model.Note, error)
	Insert(ctx context.Context, note *model.Note) error
	FindByID(ctx context.Context, noteID string) (*model.Note, error)
	Update(ctx context.Context, noteID string, update model.NoteUpdate) (*model.Note, error)
	Delete(ctx context.Context, noteID string) (*model.Note, error)
}

// OperationTracker counts successful note operations.
type OperationTracker func(operation string)

type NotesService struct {
	NotesRepo NotesStore
	Logger    *zap.Logger
	Now       func() time.Time
	Track     OperationTracker
}

func NewNotesService(repo NotesStore, logger *zap.Logger, track OperationTracker) *NotesService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if track == nil {
		track = func(string) {}
	}
	return &NotesService{
		NotesRepo: repo,
		Logger:    logger,
		Now:       time.Now,
		Track:     track,
	}
}

type CreateNoteInput struct {
	Title       string
	Description string
	Tag         string
}

// UpdateNoteInput fields left empty are not applied.
type UpdateNoteInput struct {
	Title       string
	Description string
	Tag         string
}

// IsOwner reports whether callerID owns the note.
func IsOwner(note *model.Note, callerID string) bool {
	return note != nil && callerID != "" && note.User == callerID
}

func (svc *NotesService) ListNotes(ctx context.Context, userID string) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []*model.Note{}
	}
	svc.Track("list")
	return notes, nil
}

// CreateNote expects input that already passed field validation.
func (svc *NotesService) CreateNote(ctx context.Context, userID string, input CreateNoteInput) (*model.Note, error) {
	tag := input.Tag
	if tag == "" {
		tag = model.DefaultTag
	}

	note := &model.Note{
		User:        userID,
		Title:       input.Title,
		Description: input.Description,
		Tag:         tag,
		Date:        svc.Now().UTC(),
	}

	if err := svc.NotesRepo.Insert(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	svc.Logger.Debug("note created",
		zap.String("note_id", note.ID.Hex()),
		zap.String("user_id", userID),
	)
	svc.Track("create")
	return note, nil
}

// ownedNote fetches the note and checks ownership, in that order.
func (svc *NotesService) ownedNote(ctx context.Context, userID, noteID string) (*model.Note, error) {
	note, err := svc.NotesRepo.FindByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if !IsOwner(note, userID) {
		svc.Logger.Info("note access denied",
			zap.String("note_id", noteID),
			zap.String("user_id", userID),
		)
		return nil, ErrNotAllowed
	}
	return note, nil
}

func (svc *NotesService) UpdateNote(ctx context.Context, userID, noteID string, input UpdateNoteInput) (*model.Note, error) {
	existing, err := svc.ownedNote(ctx, userID, noteID)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	update := buildNoteUpdate(input)
	if update.IsEmpty() {
		return existing, nil
	}

	note, err := svc.NotesRepo.Update(ctx, noteID, update)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	svc.Track("update")
	return note, nil
}

// buildNoteUpdate keeps only non-empty fields; an empty string never clears
// a stored value.
func buildNoteUpdate(input UpdateNoteInput) model.NoteUpdate {
	var update model.NoteUpdate
	if input.Title != "" {
		update.Title = &input.Title
	}
	if input.Description != "" {
		update.Description = &input.Description
	}
	if input.Tag != "" {
		update.Tag = &input.Tag
	}
	return update
}

// DeleteNote returns the removed note.
func (svc *NotesService) DeleteNote(ctx context.Context, userID, noteID string) (*model.Note, error) {
	if _, err := svc.ownedNote(ctx, userID, noteID); err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}

	note, err := svc.NotesRepo.Delete(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("delete note: %w", err)
	}

	svc.Track("delete")
	return note, nil
}
