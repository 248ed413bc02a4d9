package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"inotebook/dto"
	"inotebook/middleware"
	"inotebook/model"
	"inotebook/usecase"
	"inotebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"
)

type NotesUsecase interface {
	ListNotes(ctx context.Context, userID string) ([]*model.Note, error)
	CreateNote(ctx context.Context, userID string, input usecase.CreateNoteInput) (*model.Note, error)
	UpdateNote(ctx context.Context, userID, noteID string, input usecase.UpdateNoteInput) (*model.Note, error)
	DeleteNote(ctx context.Context, userID, noteID string) (*model.Note, error)
}

type NotesHandler struct {
	notesService NotesUsecase
	validator    *utils.Validator
	logger       *zap.Logger
}

func NewNotesHandler(notesService NotesUsecase, validator *utils.Validator, logger *zap.Logger) *NotesHandler {
	return &NotesHandler{
		notesService: notesService,
		validator:    validator,
		logger:       logger,
	}
}

// FetchAllNotes handles GET /fetchallnotes.
func (h *NotesHandler) FetchAllNotes(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	notes, err := h.notesService.ListNotes(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, notes)
}

// AddNote handles POST /addnote.
func (h *NotesHandler) AddNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondBindError(c, err)
		return
	}

	note, err := h.notesService.CreateNote(c.Request.Context(), middleware.CurrentUserID(c), usecase.CreateNoteInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, note)
}

// UpdateNote handles PUT /updatenote/:id.
func (h *NotesHandler) UpdateNote(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := bindJSON(c, &req); err != nil {
		h.respondBindError(c, err)
		return
	}

	note, err := h.notesService.UpdateNote(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"), usecase.UpdateNoteInput{
		Title:       req.Title,
		Description: req.Description,
		Tag:         req.Tag,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, dto.UpdateNoteResponse{Note: note})
}

// DeleteNote handles DELETE /deletenote/:id.
func (h *NotesHandler) DeleteNote(c *gin.Context) {
	note, err := h.notesService.DeleteNote(c.Request.Context(), middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.Success(c, dto.NewDeleteNoteResponse(note))
}

// bindJSON decodes the request body into obj. A missing body leaves obj at
// its zero value, which is still validated.
func bindJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(obj)
	}
	return err
}

func (h *NotesHandler) respondBindError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		utils.RequestTooLarge(c)
		return
	}

	if fieldErrs, ok := h.validator.FieldErrors(err); ok {
		middleware.TrackError("validation")
		utils.ValidationFailed(c, dto.ValidationErrorResponse{Errors: fieldErrs})
		return
	}

	_ = c.Error(err)
	utils.BadRequest(c, utils.MsgInvalidBody)
}

// respondError maps service errors to status codes. Anything unexpected is
// logged and reported as a generic 500.
func (h *NotesHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrNoteNotFound):
		utils.NotFound(c, utils.MsgNotFound)
	case errors.Is(err, usecase.ErrNotAllowed):
		utils.Unauthorized(c, utils.MsgNotAllowed)
	default:
		h.logger.Error("notes request failed",
			zap.Error(err),
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.String("user_id", middleware.CurrentUserID(c)),
		)
		middleware.TrackError("db")
		utils.InternalError(c, utils.MsgInternalError)
	}
}
