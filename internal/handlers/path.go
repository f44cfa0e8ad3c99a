package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// uploadsBaseDir devuelve la raíz local de archivos subidos. Configurable
// con UPLOADS_DIR; por defecto ./static/uploads.
func uploadsBaseDir() string {
	if v := os.Getenv("UPLOADS_DIR"); v != "" {
		return v
	}
	return filepath.Join("static", "uploads")
}

// saveUploadedFile guarda el archivo del formulario bajo la subcarpeta dada
// con un nombre UUID (el nombre original del cliente no es confiable).
// Devuelve la ruta pública, o "" si el campo no venía en la forma.
func saveUploadedFile(c *gin.Context, formKey, subDir string) (string, error) {
	file, err := c.FormFile(formKey)
	if err != nil {
		if err == http.ErrMissingFile {
			return "", nil
		}
		return "", fmt.Errorf("leer archivo '%s': %w", formKey, err)
	}

	uploadDir := filepath.Join(uploadsBaseDir(), subDir)
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de subida: %w", err)
	}

	fileName := uuid.NewString() + filepath.Ext(file.Filename)
	filePath := filepath.Join(uploadDir, fileName)
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		return "", fmt.Errorf("guardar archivo: %w", err)
	}

	return "/" + filepath.ToSlash(filePath), nil
}
