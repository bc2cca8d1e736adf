package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/response"
	"github.com/notehive/notehive-backend/internal/services"
)

type NoteHandler struct {
	noteService services.NoteService
}

func NewNoteHandler(noteService services.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (nh *NoteHandler) GetBySubject(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("subjectId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid subject id"))
		return
	}
	notes, err := nh.noteService.GetBySubjectID(c.Request.Context(), nil, subjectID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, notes)
}

func (nh *NoteHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid note id"))
		return
	}
	note, err := nh.noteService.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, note)
}

func (nh *NoteHandler) Create(c *gin.Context) {
	subjectID, err := uuid.Parse(c.Param("subjectId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid subject id"))
		return
	}
	title := c.PostForm("title")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("missing file"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("unreadable file"))
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	note, err := nh.noteService.Create(c.Request.Context(), subjectID, title, fileHeader.Filename, contentType, file)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, note)
}

func (nh *NoteHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("noteId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid note id"))
		return
	}
	if err := nh.noteService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "deleted successfully"})
}
