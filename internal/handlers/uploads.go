package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"table_order/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var imageExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true}

// Uploader stores images under Dir, served at /uploads.
type Uploader struct {
	Dir string
}

// Save stores the image posted in field and returns its public path.
// An empty path means nothing was uploaded.
func (u Uploader) Save(c *gin.Context, field string) (string, error) {
	file, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		return "", services.ValidationError{Field: field, Message: "Only image files can be uploaded"}
	}

	if err := os.MkdirAll(u.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	name := uuid.NewString() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(u.Dir, name)); err != nil {
		return "", fmt.Errorf("failed to save upload: %w", err)
	}
	return "/uploads/" + name, nil
}
