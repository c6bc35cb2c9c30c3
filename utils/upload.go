package utils

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseUploadDir is where all media lands; it is served under /media.
func BaseUploadDir() string {
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		return dir
	}
	return "./media"
}

// SaveUploadedImage persists an uploaded file under subdir with a
// collision-free filename and returns the public /media path.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, subdir string) (string, error) {
	dir := filepath.Join(BaseUploadDir(), subdir)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload folder: %w", err)
	}

	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")
	filename := fmt.Sprintf("%s_%s%s", uuid.NewString()[:8], base, ext)

	if err := c.SaveUploadedFile(file, filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return fmt.Sprintf("/media/%s/%s", subdir, filename), nil
}
