package util

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apierrors "github.com/CreativeZee/local-hub-replicator/internal/errors"
)

const maxUploadBytes = 10 << 20

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// SaveUploadedImage stores an uploaded image under the upload
// directory and returns the public path to reference it by.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, uploadDir string) (string, error) {
	if file.Size > maxUploadBytes {
		return "", apierrors.ValidationError("image", "image exceeds the 10MB limit")
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExtensions[ext] {
		return "", apierrors.ValidationError("image", "unsupported image format")
	}

	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", apierrors.InternalError("failed to store image")
	}

	name := fmt.Sprintf("%s%s", uuid.NewString(), ext)
	dst := filepath.Join(uploadDir, name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", apierrors.InternalError("failed to store image")
	}
	return "/uploads/" + name, nil
}
