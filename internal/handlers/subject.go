package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/response"
	"github.com/notehive/notehive-backend/internal/services"
)

type SubjectHandler struct {
	subjectService services.SubjectService
}

func NewSubjectHandler(subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectService: subjectService}
}

func (sh *SubjectHandler) GetBySemester(c *gin.Context) {
	semesterID, err := uuid.Parse(c.Param("semesterId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid semester id"))
		return
	}
	subjects, err := sh.subjectService.GetBySemesterID(c.Request.Context(), nil, semesterID)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, subjects)
}

func (sh *SubjectHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("subjectId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid subject id"))
		return
	}
	subject, err := sh.subjectService.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, subject)
}

func (sh *SubjectHandler) Create(c *gin.Context) {
	semesterID, err := uuid.Parse(c.Param("semesterId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid semester id"))
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	subject, err := sh.subjectService.Create(c.Request.Context(), nil, semesterID, req.Name)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, subject)
}

func (sh *SubjectHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("subjectId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid subject id"))
		return
	}
	if err := sh.subjectService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "deleted successfully"})
}
