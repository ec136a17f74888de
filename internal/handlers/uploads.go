package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/avencia/company-cms-api/internal/constants"
	apierrors "github.com/avencia/company-cms-api/internal/errors"
)

// allowedUploadExtensions lists the file types accepted for images and resumes.
var allowedUploadExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".pdf":  true,
}

// UploadHandler stores uploaded files on the local filesystem and hands back
// their public URL.
type UploadHandler struct {
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir}
}

// Upload accepts a multipart "file" field, renames it to a UUID, and returns
// the URL it will be served under.
func (h *UploadHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "", "Missing file field")
		return
	}

	if file.Size > constants.MaxUploadSize {
		apierrors.BadRequest(c, "", "File exceeds the 10 MB limit")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedUploadExtensions[ext] {
		apierrors.BadRequest(c, "", fmt.Sprintf("File type %q is not allowed", ext))
		return
	}

	name := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.uploadDir, name)); err != nil {
		apierrors.InternalError(c, err.Error())
		return
	}

	apierrors.OK(c, http.StatusCreated, "File uploaded", gin.H{
		"url":      "/uploads/" + name,
		"filename": name,
		"size":     file.Size,
	})
}
