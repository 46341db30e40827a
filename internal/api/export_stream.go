package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/patriasa-sist/cartas-vencimiento/internal/exporter"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

type exportProgressEvent struct {
	Type      string      `json:"type"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// ExportStreamRequest subconjunto opcional de cartas a generar
type ExportStreamRequest struct {
	LetterIDs []string `json:"letterIds"`
}

// ExportStream genera el lote de cartas (SSE de progreso + URL de descarga)
// POST /api/letters/export/stream
func (h *Handler) ExportStream(c *gin.Context) {
	var req ExportStreamRequest
	_ = c.ShouldBindJSON(&req)

	toExport := h.selectLetters(req.LetterIDs)
	if len(toExport) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No hay cartas preparadas para generar"})
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Respuesta en flujo no soportada"})
		return
	}

	send := func(event exportProgressEvent) {
		b, err := json.Marshal(event)
		if err != nil {
			return
		}
		fmt.Fprintf(c.Writer, "data: %s\n\n", b)
		flusher.Flush()
	}

	send(exportProgressEvent{
		Type:      "start",
		Message:   "Iniciando generación de cartas",
		Data:      map[string]any{"total": len(toExport)},
		Timestamp: time.Now(),
	})

	lastPercent := -1
	progressFn := func(p exporter.ProgressEvent) {
		if p.Percent == lastPercent {
			return
		}
		lastPercent = p.Percent
		send(exportProgressEvent{
			Type:      "progress",
			Message:   p.Stage,
			Data:      map[string]any{"percent": p.Percent},
			Timestamp: time.Now(),
		})
	}

	output, err := h.exporter.Export(exporter.ExportOptions{
		Letters:  toExport,
		Today:    h.now(),
		Progress: progressFn,
	})
	if err != nil {
		send(exportProgressEvent{
			Type:      "error",
			Message:   "Generación fallida: " + err.Error(),
			Data:      map[string]any{},
			Timestamp: time.Now(),
		})
		return
	}

	token := h.downloads.put(output.ZipBytes, output.ZipName, 10*time.Minute)
	downloadURL := "/api/export/download/" + token

	send(exportProgressEvent{
		Type:    "done",
		Message: "Generación completa",
		Data: map[string]any{
			"percent":     100,
			"downloadUrl": downloadURL,
			"result":      output.Result,
		},
		Timestamp: time.Now(),
	})
}

// DownloadExport descarga el ZIP generado (enlace de un solo uso)
// GET /api/export/download/:token
func (h *Handler) DownloadExport(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Falta el token"})
		return
	}

	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "El enlace de descarga expiró"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", item.zipName))
	c.Data(http.StatusOK, "application/zip", item.zipBytes)

	h.downloads.delete(token)
}

func (h *Handler) selectLetters(ids []string) []model.LetterData {
	all := h.store.Letters()
	if len(ids) == 0 {
		return all
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []model.LetterData
	for _, letter := range all {
		if want[letter.ID] {
			out = append(out, letter)
		}
	}
	return out
}
