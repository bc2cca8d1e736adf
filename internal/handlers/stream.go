package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/response"
	"github.com/notehive/notehive-backend/internal/services"
)

type StreamHandler struct {
	streamService services.StreamService
}

func NewStreamHandler(streamService services.StreamService) *StreamHandler {
	return &StreamHandler{streamService: streamService}
}

func (sh *StreamHandler) GetAll(c *gin.Context) {
	streams, err := sh.streamService.GetAll(c.Request.Context(), nil)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, streams)
}

func (sh *StreamHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("streamId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid stream id"))
		return
	}
	stream, err := sh.streamService.GetByID(c.Request.Context(), nil, id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, stream)
}

func (sh *StreamHandler) Create(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid request body"))
		return
	}
	stream, err := sh.streamService.Create(c.Request.Context(), nil, req.Name)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, stream)
}

func (sh *StreamHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("streamId"))
	if err != nil {
		response.RespondAPIError(c, apierr.InvalidInput("invalid stream id"))
		return
	}
	if err := sh.streamService.Delete(c.Request.Context(), id); err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"message": "deleted successfully"})
}
