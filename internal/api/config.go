package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
)

// ConfigResponse configuración visible desde la UI
type ConfigResponse struct {
	CriticalDays           int   `json:"criticalDays"`
	DueSoonDays            int   `json:"dueSoonDays"`
	DaysBeforeExpiryToSend int   `json:"daysBeforeExpiryToSend"`
	MaxUploadMB            int64 `json:"maxUploadMB"`
}

// UpdateConfigRequest actualización parcial de umbrales
type UpdateConfigRequest struct {
	CriticalDays           *int `json:"criticalDays"`
	DueSoonDays            *int `json:"dueSoonDays"`
	DaysBeforeExpiryToSend *int `json:"daysBeforeExpiryToSend"`
}

// GetConfig obtiene la configuración de negocio
// GET /api/config
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, ConfigResponse{
		CriticalDays:           h.cfg.Business.CriticalDays,
		DueSoonDays:            h.cfg.Business.DueSoonDays,
		DaysBeforeExpiryToSend: h.cfg.Business.DaysBeforeExpiryToSend,
		MaxUploadMB:            h.cfg.Upload.MaxSizeMB,
	})
}

// UpdateConfig actualiza los umbrales de negocio y persiste config.toml
// PATCH /api/config
func (h *Handler) UpdateConfig(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Formato de solicitud inválido"})
		return
	}

	if req.CriticalDays != nil {
		if *req.CriticalDays < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "criticalDays no puede ser negativo"})
			return
		}
		h.cfg.Business.CriticalDays = *req.CriticalDays
	}
	if req.DueSoonDays != nil {
		if *req.DueSoonDays < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dueSoonDays no puede ser negativo"})
			return
		}
		h.cfg.Business.DueSoonDays = *req.DueSoonDays
	}
	if req.DaysBeforeExpiryToSend != nil {
		if *req.DaysBeforeExpiryToSend < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "daysBeforeExpiryToSend no puede ser negativo"})
			return
		}
		h.cfg.Business.DaysBeforeExpiryToSend = *req.DaysBeforeExpiryToSend
	}

	if err := config.SaveConfig(h.cfg); err != nil {
		h.logger.Warn().Err(err).Msg("no se pudo guardar config.toml")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Configuración actualizada"})
}
