package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
	"github.com/patriasa-sist/cartas-vencimiento/internal/exporter"
	"github.com/patriasa-sist/cartas-vencimiento/internal/importer"
	"github.com/patriasa-sist/cartas-vencimiento/internal/store"
)

// Handler procesador de la API HTTP
type Handler struct {
	cfg       *config.AppConfig
	store     *store.MemoryStore
	importer  *importer.Importer
	exporter  *exporter.Exporter
	downloads *exportDownloadStore
	logger    zerolog.Logger
	now       func() time.Time
}

// NewHandler crea el procesador de la API
func NewHandler(cfg *config.AppConfig, st *store.MemoryStore, logger zerolog.Logger) *Handler {
	return &Handler{
		cfg:       cfg,
		store:     st,
		importer:  importer.NewImporter(cfg, logger),
		exporter:  exporter.NewExporter(logger),
		downloads: newExportDownloadStore(),
		logger:    logger.With().Str("component", "api").Logger(),
		now:       time.Now,
	}
}

// RegisterRoutes registra las rutas de la API
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// Estado del sistema
	router.GET("/status", h.GetStatus)

	// Configuración
	router.GET("/config", h.GetConfig)
	router.PATCH("/config", h.UpdateConfig)

	// Carga de datos
	router.POST("/upload", h.Upload)

	// Consulta de registros
	router.GET("/records", h.ListRecords)
	router.GET("/records/filters", h.GetFilterValues)
	router.PATCH("/records/selection", h.UpdateSelection)
	router.PATCH("/records/status", h.MarkSent)

	// Cartas
	router.POST("/letters/prepare", h.PrepareLetters)
	router.GET("/letters", h.ListLetters)
	router.GET("/letters/:id", h.GetLetter)
	router.PATCH("/letters/:id", h.UpdateLetter)
	router.GET("/letters/:id/pdf", h.DownloadLetterPDF)

	// Generación por lote
	router.POST("/letters/export/stream", h.ExportStream)
	router.GET("/export/download/:token", h.DownloadExport)
}
