package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
	"github.com/patriasa-sist/cartas-vencimiento/internal/view"
)

// RecordsResponse página de registros más estadísticas del conjunto filtrado
type RecordsResponse struct {
	Records    []model.ProcessedInsuranceRecord `json:"records"`
	Stats      model.DashboardStats             `json:"stats"`
	Page       int                              `json:"page"`
	PerPage    int                              `json:"perPage"`
	TotalItems int                              `json:"totalItems"`
}

// ListRecords lista registros con filtros, orden y paginación
// GET /api/records
func (h *Handler) ListRecords(c *gin.Context) {
	var filter model.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetros de filtro inválidos"})
		return
	}

	var sortOpt model.Sort
	if err := c.ShouldBindQuery(&sortOpt); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parámetros de orden inválidos"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("perPage", "50"))

	filtered := view.Apply(h.store.Records(), filter, sortOpt, h.cfg.Business)

	c.JSON(http.StatusOK, RecordsResponse{
		Records:    view.Paginate(filtered, page, perPage),
		Stats:      view.Stats(filtered),
		Page:       page,
		PerPage:    perPage,
		TotalItems: len(filtered),
	})
}

// SelectionRequest cambio de selección sobre un conjunto de registros
type SelectionRequest struct {
	IDs      []string `json:"ids"`
	Selected bool     `json:"selected"`
	All      bool     `json:"all"` // deseleccionar todo sin enumerar ids
}

// UpdateSelection marca o desmarca registros para generar cartas
// PATCH /api/records/selection
func (h *Handler) UpdateSelection(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de solicitud inválido"})
		return
	}

	if req.All && !req.Selected {
		h.store.ClearSelection()
		c.JSON(http.StatusOK, gin.H{"message": "Selección limpiada"})
		return
	}

	if len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se indicaron registros"})
		return
	}

	changed := h.store.SetSelection(req.IDs, req.Selected)
	c.JSON(http.StatusOK, gin.H{"updated": changed})
}

// MarkSentRequest registros a marcar como enviados
type MarkSentRequest struct {
	IDs []string `json:"ids"`
}

// MarkSent marca registros como enviados (estado terminal)
// PATCH /api/records/status
func (h *Handler) MarkSent(c *gin.Context) {
	var req MarkSentRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No se indicaron registros"})
		return
	}

	changed := h.store.MarkSent(req.IDs)
	h.logger.Info().Int("marked", changed).Msg("registros marcados como enviados")
	c.JSON(http.StatusOK, gin.H{"updated": changed})
}
