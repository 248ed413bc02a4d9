package repository_test

import (
	"context"
	"testing"
	"time"

	"inotebook/model"
	"inotebook/repository"
	"inotebook/test/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newNote(user, title string) *model.Note {
	return &model.Note{
		User:        user,
		Title:       title,
		Description: "the quick brown fox jumps over the lazy dog.",
		Tag:         model.DefaultTag,
		Date:        time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestNotesRepoOperations(t *testing.T) {
	coll, cleanup := testutils.SetupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	notesRepo := &repository.NotesRepo{MongoCollection: coll}

	_, err := notesRepo.SetupIndexes(ctx)
	require.NoError(t, err)

	first := newNote("user-1", "TESTING NOTES")
	second := newNote("user-1", "TESTING NOTES DEUX")
	other := newNote("user-2", "SOMEONE ELSE")

	t.Run("Insert", func(t *testing.T) {
		for _, n := range []*model.Note{first, other, second} {
			require.NoError(t, notesRepo.Insert(ctx, n))
			assert.False(t, n.ID.IsZero())
		}
	})

	t.Run("InsertWithoutUser", func(t *testing.T) {
		assert.Error(t, notesRepo.Insert(ctx, newNote("", "orphan")))
	})

	t.Run("FindByUser", func(t *testing.T) {
		notes, err := notesRepo.FindByUser(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, notes, 2)
		assert.Equal(t, first.ID, notes[0].ID)
		assert.Equal(t, second.ID, notes[1].ID)

		none, err := notesRepo.FindByUser(ctx, "user-3")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})

	t.Run("FindByID", func(t *testing.T) {
		note, err := notesRepo.FindByID(ctx, first.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, first.Title, note.Title)
		assert.True(t, first.Date.Equal(note.Date))

		_, err = notesRepo.FindByID(ctx, primitive.NewObjectID().Hex())
		assert.ErrorIs(t, err, repository.ErrNoteNotFound)

		_, err = notesRepo.FindByID(ctx, "zzz")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrNoteNotFound)
	})

	t.Run("Update", func(t *testing.T) {
		title := "TEST SUCCESS."
		note, err := notesRepo.Update(ctx, first.ID.Hex(), model.NoteUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, note.Title)
		assert.Equal(t, first.Description, note.Description)
		assert.Equal(t, "user-1", note.User)

		unchanged, err := notesRepo.Update(ctx, first.ID.Hex(), model.NoteUpdate{})
		require.NoError(t, err)
		assert.Equal(t, title, unchanged.Title)

		_, err = notesRepo.Update(ctx, primitive.NewObjectID().Hex(), model.NoteUpdate{Title: &title})
		assert.ErrorIs(t, err, repository.ErrNoteNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		deleted, err := notesRepo.Delete(ctx, second.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, "TESTING NOTES DEUX", deleted.Title)

		_, err = notesRepo.Delete(ctx, second.ID.Hex())
		assert.ErrorIs(t, err, repository.ErrNoteNotFound)

		notes, err := notesRepo.FindByUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Len(t, notes, 1)
	})
}
