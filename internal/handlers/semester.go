package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/response"
	"github.com/notehive/notehive-backend/internal/services"
)

type SemesterHandler struct {
	semesterService services.SemesterService
}

func NewSemesterHandler(semesterService services.SemesterService) *SemesterHandler {
	return &SemesterHandler{semesterService: semesterService}
}

func (sh *SemesterHandler) GetByStream(c *gin.Context) {
	streamID, err := uuid.Parse(c.Param("streamId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid stream id"))
		return
	}
	semesters, err := sh.semesterService.GetByStreamID(c.Request.Context(), nil, streamID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, semesters)
}

func (sh *SemesterHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("semesterId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid semester id"))
		return
	}
	semester, err := sh.semesterService.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, semester)
}

func (sh *SemesterHandler) Create(c *gin.Context) {
	streamID, err := uuid.Parse(c.Param("streamId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid stream id"))
		return
	}
	var req struct {
		Number int `json:"number"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	semester, err := sh.semesterService.Create(c.Request.Context(), nil, streamID, req.Number)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, semester)
}

func (sh *SemesterHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("semesterId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid semester id"))
		return
	}
	if err := sh.semesterService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "deleted successfully"})
}
