package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Upload carga una planilla de vencimientos y reemplaza la sesión
// POST /api/upload
func (h *Handler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se encontró el archivo en la solicitud"})
		return
	}

	if fileHeader.Size > h.cfg.MaxUploadBytes() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "El archivo supera el tamaño máximo permitido",
		})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo abrir el archivo"})
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo leer el archivo"})
		return
	}

	result := h.importer.ProcessFile(fileHeader.Filename, data, h.now())
	if !result.Success {
		c.JSON(http.StatusBadRequest, result)
		return
	}

	// La carga reemplaza el dataset completo de la sesión
	h.store.ReplaceRecords(result.Data)
	h.logger.Info().
		Str("filename", fileHeader.Filename).
		Int("valid", result.ValidRecords).
		Int("total", result.TotalRecords).
		Msg("planilla cargada")

	c.JSON(http.StatusOK, result)
}
