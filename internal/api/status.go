package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patriasa-sist/cartas-vencimiento/internal/view"
)

// StatusResponse estado del sistema
type StatusResponse struct {
	Initialized  bool   `json:"initialized"`  // hay datos cargados
	TotalRecords int    `json:"totalRecords"` // registros en sesión
	TotalLetters int    `json:"totalLetters"` // cartas preparadas
	Version      string `json:"version"`
}

// Version se fija en build con -ldflags
var Version = "dev"

// GetStatus estado del sistema
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	count := h.store.RecordCount()
	c.JSON(http.StatusOK, StatusResponse{
		Initialized:  count > 0,
		TotalRecords: count,
		TotalLetters: len(h.store.Letters()),
		Version:      Version,
	})
}

// GetFilterValues valores distintos para los selectores de filtro
// GET /api/records/filters
func (h *Handler) GetFilterValues(c *gin.Context) {
	c.JSON(http.StatusOK, view.UniqueValues(h.store.Records()))
}
