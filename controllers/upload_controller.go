package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"resort-backend/services"
	"resort-backend/utils"
)

type UploadController struct {
	Storage *services.StorageService
}

func NewUploadController(storage *services.StorageService) *UploadController {
	return &UploadController{Storage: storage}
}

// allowedUploadFolders keeps clients from writing outside the known prefixes.
var allowedUploadFolders = map[string]bool{
	"nid-images":    true,
	"media-library": true,
}

// Upload proxies a multipart file to object storage and returns the stable
// retrieval URL. Files over 1MB are rejected before any upstream call.
func (ctrl *UploadController) Upload(c *gin.Context) {
	folder := strings.TrimSpace(c.PostForm("folder"))
	if folder == "" {
		folder = "media-library"
	}
	if !allowedUploadFolders[folder] {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "unknown upload folder")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "file is required")
		return
	}
	defer file.Close()

	if header.Size > services.MaxUploadBytes {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.fileTooLarge", "file must be under 1MB")
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, services.MaxUploadBytes+1))
	if err != nil {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.invalidPayload", "could not read file")
		return
	}
	if int64(len(data)) > services.MaxUploadBytes {
		utils.JSONErrorCode(c, http.StatusBadRequest, "error.fileTooLarge", "file must be under 1MB")
		return
	}

	url, err := ctrl.Storage.Upload(folder, header.Filename, data)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, gin.H{"url": url})
}
