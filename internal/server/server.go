package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/patriasa-sist/cartas-vencimiento/internal/api"
	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
	"github.com/patriasa-sist/cartas-vencimiento/internal/store"
)

// Server servidor HTTP
type Server struct {
	router  *gin.Engine
	store   *store.MemoryStore
	handler *api.Handler
}

// NewServer crea el servidor
func NewServer(cfg *config.AppConfig, logger zerolog.Logger) *Server {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	memStore := store.NewMemoryStore()
	handler := api.NewHandler(cfg, memStore, logger)

	s := &Server{
		router:  gin.Default(),
		store:   memStore,
		handler: handler,
	}

	s.setupRoutes(devMode)

	return s
}

func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	apiGroup := s.router.Group("/api")
	{
		s.handler.RegisterRoutes(apiGroup)
	}

	if devMode {
		// Modo desarrollo: redirigir al servidor del frontend
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Run inicia el servidor
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// GetStore acceso al almacén de sesión (para pruebas)
func (s *Server) GetStore() *store.MemoryStore {
	return s.store
}
