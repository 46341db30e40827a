package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patriasa-sist/cartas-vencimiento/internal/letters"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
	"github.com/patriasa-sist/cartas-vencimiento/internal/store"
)

// PrepareLettersResponse resultado de la preparación de cartas
type PrepareLettersResponse struct {
	Letters  []model.LetterData `json:"letters"`
	Skipped  []string           `json:"skipped,omitempty"` // registros descartados con motivo
	Prepared int                `json:"prepared"`
}

// PrepareLetters agrupa los registros seleccionados en cartas editables
// POST /api/letters/prepare
func (h *Handler) PrepareLetters(c *gin.Context) {
	selected := h.store.SelectedRecords()
	if len(selected) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No hay registros seleccionados"})
		return
	}

	var valid []model.ProcessedInsuranceRecord
	var skipped []string
	for _, record := range selected {
		ok, problems := letters.ValidateRecordForLetter(record)
		if !ok {
			for _, p := range problems {
				skipped = append(skipped, fmt.Sprintf("%s (%s): %s",
					record.Asegurado, record.NoPoliza, p))
			}
			continue
		}
		valid = append(valid, record)
	}

	if len(valid) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Ningún registro seleccionado es apto para generar cartas",
			"skipped": skipped,
		})
		return
	}

	prepared := letters.GroupForLetters(valid, h.now())
	h.store.SetLetters(prepared)
	h.logger.Info().
		Int("records", len(valid)).
		Int("letters", len(prepared)).
		Msg("cartas preparadas")

	c.JSON(http.StatusOK, PrepareLettersResponse{
		Letters:  prepared,
		Skipped:  skipped,
		Prepared: len(prepared),
	})
}

// ListLetters lista las cartas preparadas en la sesión
// GET /api/letters
func (h *Handler) ListLetters(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"letters": h.store.Letters()})
}

// GetLetter obtiene una carta por id
// GET /api/letters/:id
func (h *Handler) GetLetter(c *gin.Context) {
	letter, err := h.store.Letter(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Carta no encontrada"})
		return
	}
	c.JSON(http.StatusOK, letter)
}

// PolicyUpdate campos manuales de una póliza dentro de la carta
type PolicyUpdate struct {
	Index        int                `json:"index"`
	ManualFields model.ManualFields `json:"manualFields"`
}

// UpdateLetterRequest edición parcial de una carta antes de renderizar
type UpdateLetterRequest struct {
	ReferenceNumber      *string        `json:"referenceNumber"`
	AdditionalConditions *string        `json:"additionalConditions"`
	Policies             []PolicyUpdate `json:"policies"`
}

// UpdateLetter aplica ediciones manuales y recalcula el estado de revisión
// PATCH /api/letters/:id
func (h *Handler) UpdateLetter(c *gin.Context) {
	var req UpdateLetterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de solicitud inválido"})
		return
	}

	updated, err := h.store.UpdateLetter(c.Param("id"), func(letter *model.LetterData) {
		if req.ReferenceNumber != nil {
			letter.ReferenceNumber = *req.ReferenceNumber
		}
		if req.AdditionalConditions != nil {
			letter.AdditionalConditions = *req.AdditionalConditions
		}
		for _, p := range req.Policies {
			if p.Index < 0 || p.Index >= len(letter.Policies) {
				continue
			}
			letter.Policies[p.Index].ManualFields = p.ManualFields
		}
	})
	if err != nil {
		if errors.Is(err, store.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Carta no encontrada"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo actualizar la carta"})
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DownloadLetterPDF renderiza y descarga el PDF de una sola carta
// GET /api/letters/:id/pdf
func (h *Handler) DownloadLetterPDF(c *gin.Context) {
	letter, err := h.store.Letter(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Carta no encontrada"})
		return
	}

	pdfBytes, fileName, err := h.exporter.RenderOne(letter, h.now())
	if err != nil {
		h.logger.Error().Err(err).Str("letterId", letter.ID).Msg("error al renderizar PDF")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo generar el PDF"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
