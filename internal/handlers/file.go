package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/notehive/notehive-backend/internal/apierr"
	"github.com/notehive/notehive-backend/internal/response"
	"github.com/notehive/notehive-backend/internal/services"
)

type FileHandler struct {
	fileService services.FileService
}

func NewFileHandler(fileService services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

func (fh *FileHandler) Upload(c *gin.Context) {
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
	publicURL, err := fh.fileService.UploadStandalone(c.Request.Context(), fileHeader.Filename, contentType, file)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"url": publicURL})
}

func (fh *FileHandler) SignedURL(c *gin.Context) {
	fileName := c.Param("fileName")
	if fileName == "" {
		response.RespondAPIError(c, apierr.InvalidInput("missing file name"))
		return
	}
	url, err := fh.fileService.SignedURL(c.Request.Context(), fileName)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"url": url})
}
