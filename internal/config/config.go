package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig configuración de la aplicación
type AppConfig struct {
	Server   ServerConfig   `toml:"server"`
	Upload   UploadConfig   `toml:"upload"`
	Business BusinessConfig `toml:"business"`
	Logging  LoggingConfig  `toml:"logging"`
}

// ServerConfig configuración del servidor
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// UploadConfig límites de carga de archivos
type UploadConfig struct {
	MaxSizeMB         int64    `toml:"max_size_mb"`
	AllowedExtensions []string `toml:"allowed_extensions"`
}

// BusinessConfig umbrales de negocio para la clasificación de vencimientos
type BusinessConfig struct {
	CriticalDays           int `toml:"critical_days"`             // días <= umbral => crítico
	DueSoonDays            int `toml:"due_soon_days"`             // días <= umbral => próximo
	DaysBeforeExpiryToSend int `toml:"days_before_expiry_to_send"` // ventana de envío de cartas
}

// LoggingConfig configuración de logging
type LoggingConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig configuración por defecto
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20840,
			DevMode: false,
		},
		Upload: UploadConfig{
			MaxSizeMB:         10,
			AllowedExtensions: []string{".xlsx", ".xls"},
		},
		Business: BusinessConfig{
			CriticalDays:           5,
			DueSoonDays:            30,
			DaysBeforeExpiryToSend: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// MaxUploadBytes límite de tamaño en bytes
func (c *AppConfig) MaxUploadBytes() int64 {
	return c.Upload.MaxSizeMB * 1024 * 1024
}

// ExtensionAllowed verifica la extensión contra la lista permitida
func (c *AppConfig) ExtensionAllowed(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range c.Upload.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}

// GetExeDir directorio del ejecutable
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig carga config.toml desde el directorio del ejecutable.
// Si el archivo no existe se usan los valores por defecto.
func LoadConfig() (*AppConfig, error) {
	config := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(config)
			return config, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, err
	}

	applyEnvOverrides(config)
	return config, nil
}

// SaveConfig guarda config.toml junto al ejecutable
func SaveConfig(config *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}

// applyEnvOverrides variables de entorno para ejecución local / E2E
func applyEnvOverrides(config *AppConfig) {
	if v := os.Getenv("CARTAS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("CARTAS_MAX_UPLOAD_MB"); v != "" {
		if mb, err := strconv.ParseInt(v, 10, 64); err == nil && mb > 0 {
			config.Upload.MaxSizeMB = mb
		}
	}
	if v := os.Getenv("CARTAS_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
}
