package model

import "time"

// InsuranceStatus estado de vigencia de una póliza
type InsuranceStatus string

const (
	StatusCritical InsuranceStatus = "critical" // 0 < días <= umbral crítico
	StatusDueSoon  InsuranceStatus = "due_soon" // umbral crítico < días <= umbral próximo
	StatusPending  InsuranceStatus = "pending"  // días > umbral próximo
	StatusExpired  InsuranceStatus = "expired"  // días < 0
	StatusSent     InsuranceStatus = "sent"     // carta enviada (terminal, lo asigna el usuario)
)

// InsuranceRecord una línea de cobertura tal como viene del Excel.
// FinDeVigencia se conserva sin normalizar (serial, fecha o texto);
// la normalización ocurre al procesar el registro.
type InsuranceRecord struct {
	Nro               float64 `json:"nro"`
	FinDeVigencia     string  `json:"finDeVigencia"`
	Compania          string  `json:"compania"`
	Ramo              string  `json:"ramo"`
	NoPoliza          string  `json:"noPoliza"`
	Telefono          string  `json:"telefono"`
	CorreoODireccion  string  `json:"correoODireccion"`
	Asegurado         string  `json:"asegurado"`
	Cartera           string  `json:"cartera"`
	MateriaAsegurada  string  `json:"materiaAsegurada"`
	ValorAsegurado    float64 `json:"valorAsegurado"`
	Prima             float64 `json:"prima"`
	Ejecutivo         string  `json:"ejecutivo"`
	Responsable       string  `json:"responsable"`
	CartaAvisoVto     string  `json:"cartaAvisoVto"`
	Seguimiento       string  `json:"seguimiento"`
	CartaDeNoRenov    string  `json:"cartaDeNoRenov"`
	Renueva           string  `json:"renueva"`
	Pendiente         string  `json:"pendiente"`
	NoRenueva         string  `json:"noRenueva"`
	Avance            float64 `json:"avance"`
	Cantidad          float64 `json:"cantidad"`
	Observaciones     string  `json:"observaciones"`
}

// ProcessedInsuranceRecord registro con campos derivados.
// Inmutable salvo Selected y el estado "sent" que asigna el usuario.
type ProcessedInsuranceRecord struct {
	InsuranceRecord

	ID              string          `json:"id"`
	ExpiryDate      time.Time       `json:"expiryDate"` // fecha normalizada, hora en cero
	DaysUntilExpiry int             `json:"daysUntilExpiry"`
	Status          InsuranceStatus `json:"status"`
	Selected        bool            `json:"selected"`
}

// UploadResult resultado agregado de la ingesta de un archivo
type UploadResult struct {
	Success      bool                       `json:"success"`
	Data         []ProcessedInsuranceRecord `json:"data,omitempty"`
	Errors       []string                   `json:"errors,omitempty"`
	Warnings     []string                   `json:"warnings,omitempty"`
	TotalRecords int                        `json:"totalRecords"`
	ValidRecords int                        `json:"validRecords"`
}

// DashboardStats estadísticas del conjunto filtrado
type DashboardStats struct {
	Total          int     `json:"total"`
	Critical       int     `json:"critical"`
	DueSoon        int     `json:"dueSoon"`
	Pending        int     `json:"pending"`
	Expired        int     `json:"expired"`
	Sent           int     `json:"sent"`
	TotalValue     float64 `json:"totalValue"`
	AveragePremium float64 `json:"averagePremium"`
}
