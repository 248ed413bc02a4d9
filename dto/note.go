package dto

import (
	"inotebook/model"
)

// CreateNoteRequest is the body of POST /addnote.
type CreateNoteRequest struct {
	Title       string `json:"title" binding:"min=3"`
	Description string `json:"description" binding:"min=5"`
	Tag         string `json:"tag"`
}

// UpdateNoteRequest is the body of PUT /updatenote/:id. Empty strings count
// as "not supplied".
type UpdateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

type UpdateNoteResponse struct {
	Note *model.Note `json:"note"`
}

type DeleteNoteResponse struct {
	Success string `json:"Success"`
}

// FieldError is one failed validation constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

func NewDeleteNoteResponse(note *model.Note) DeleteNoteResponse {
	return DeleteNoteResponse{Success: note.Title + " has been deleted"}
}
