package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
	"github.com/patriasa-sist/cartas-vencimiento/internal/server"
	"github.com/patriasa-sist/cartas-vencimiento/internal/util"
)

var (
	port    = flag.Int("port", 0, "puerto del servidor (config.toml tiene prioridad)")
	devMode = flag.Bool("dev", false, "modo desarrollo")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  Patria S.A. - Cartas de Vencimiento")
	fmt.Println("==========================================")

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error al cargar la configuración, se usan valores por defecto: %v\n", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	logger := newLogger(cfg)

	cfg.Server.Port = util.FindAvailablePort(cfg.Server.Port)

	srv := server.NewServer(cfg, logger)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("Servicio iniciando en el puerto %d ...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			logger.Fatal().Err(err).Msg("el servidor no pudo iniciar")
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("Abriendo navegador: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("No se pudo abrir el navegador, visite manualmente: %s\n", url)
		}
	} else {
		fmt.Printf("Modo desarrollo: visite %s\n", url)
	}

	fmt.Println("\nPresione Ctrl+C para detener el servicio...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nCerrando servicio...")
}

func newLogger(cfg *config.AppConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}
