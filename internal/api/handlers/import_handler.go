// internal/api/handlers/import_handler.go
package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/VictorRSilva05/proactive-inventory/internal/service"
)

type ImportHandler struct {
	service   *service.ImportService
	uploadDir string
}

func NewImportHandler(service *service.ImportService, uploadDir string) *ImportHandler {
	if uploadDir == "" {
		uploadDir = "data/uploads"
	}
	return &ImportHandler{service: service, uploadDir: uploadDir}
}

// UploadSales accepts a CSV export, stages it in the upload directory and
// imports it synchronously so the response carries the row counts.
func (h *ImportHandler) UploadSales(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file provided"})
		return
	}

	if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only .csv files are supported"})
		return
	}

	filePath := filepath.Join(h.uploadDir, filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filePath); err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to save uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save uploaded file"})
		return
	}

	result, err := h.service.ImportFile(c.Request.Context(), filePath)
	if err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to import sales file")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "failed to import file", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "import completed",
		"rows":        result.Rows,
		"products":    result.Products,
		"archive_key": result.ArchiveKey,
	})
}
