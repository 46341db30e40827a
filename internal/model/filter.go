package model

import "time"

// BlankFilterValue valor centinela para filtrar registros cuyo campo
// venía vacío en el archivo fuente.
const BlankFilterValue = "(vacío)"

// Filter filtros conjuntivos sobre el conjunto de registros.
// Cada filtro es opcional; los vacíos no restringen.
type Filter struct {
	Search    string            `json:"search" form:"search"`
	Ejecutivo string            `json:"ejecutivo" form:"ejecutivo"`
	Compania  string            `json:"compania" form:"compania"`
	Ramo      string            `json:"ramo" form:"ramo"`
	Statuses  []InsuranceStatus `json:"statuses" form:"status"`
	DateFrom  time.Time         `json:"dateFrom" form:"dateFrom" time_format:"2006-01-02"`
	DateTo    time.Time         `json:"dateTo" form:"dateTo" time_format:"2006-01-02"`

	// NeedingNotice limita a registros dentro de la ventana de envío
	// (0 < días <= umbral de envío)
	NeedingNotice bool `json:"needingNotice" form:"needingNotice"`
}

// SortField campos ordenables
type SortField string

const (
	SortByAsegurado SortField = "asegurado"
	SortByCompania  SortField = "compania"
	SortByExpiry    SortField = "finDeVigencia"
	SortByDays      SortField = "daysUntilExpiry"
	SortByValor     SortField = "valorAsegurado"
	SortByPrima     SortField = "prima"
)

// Sort orden por un solo campo a la vez
type Sort struct {
	Field     SortField `json:"field" form:"sortField"`
	Ascending bool      `json:"ascending" form:"ascending"`
}

// UniqueFilterValues valores distintos para los selectores de filtro
type UniqueFilterValues struct {
	Ejecutivos []string `json:"ejecutivos"`
	Companias  []string `json:"companias"`
	Ramos      []string `json:"ramos"`
}
