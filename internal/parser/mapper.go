package parser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

// Valores centinela para los cuatro campos de identidad
const (
	SinEspecificar = "Sin especificar"
	SinNumero      = "Sin número"
	SinNombre      = "Sin nombre"
	SinAsignar     = "Sin asignar"
)

var nonNumericRe = regexp.MustCompile(`[^\d.-]`)

// CleanString normaliza un valor de celda a texto recortado
func CleanString(value string) string {
	return strings.TrimSpace(value)
}

// ParseNumber coerción numérica tolerante: quita todo salvo dígitos,
// punto y signo. Valores no parseables devuelven 0, nunca NaN.
func ParseNumber(value string) float64 {
	cleaned := nonNumericRe.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return f
}

// RowMapper resuelve las columnas del Excel una sola vez por archivo.
// Las cabeceras se buscan por contención sin distinguir mayúsculas:
// las planillas reales traen anotaciones y espacios extra alrededor.
type RowMapper struct {
	headers []string
	cols    map[string]int
}

// NewRowMapper crea el mapeador a partir de la fila de cabeceras
func NewRowMapper(headers []string) *RowMapper {
	m := &RowMapper{
		headers: headers,
		cols:    make(map[string]int),
	}

	fields := []string{
		"NRO.",
		"FIN DE VIGENCIA",
		"COMPAÑÍA",
		"RAMO",
		"NO. PÓLIZA",
		"TELEFONO",
		"CORREO/DIRECCION",
		"ASEGURADO",
		"CARTERA",
		"MATERIA ASEGURADA",
		"VALOR ASEGURADO",
		"PRIMA",
		"EJECUTIVO",
		"RESPONSABLE",
		"CARTA AVISO VTO.",
		"SEGUIMIENTO",
		"CARTA DE NO RENOV.",
		"RENUEVA",
		"NO RENUEVA",
		"PENDIENTE",
		"AVANCE",
		"CANTIDAD",
		"OBSERVACIONES2",
		"OBSERVACIONES",
	}
	for _, f := range fields {
		m.cols[f] = findContainsCol(headers, f)
	}

	// "RENUEVA" por contención también matchea "NO RENUEVA" y
	// "CARTA DE NO RENOV."; resolverlo por igualdad exacta primero.
	if idx := findExactCol(headers, "RENUEVA"); idx >= 0 {
		m.cols["RENUEVA"] = idx
	}
	if idx := findExactCol(headers, "PENDIENTE"); idx >= 0 {
		m.cols["PENDIENTE"] = idx
	}

	return m
}

// MapRow mapea una fila cruda al registro tipado. Función total: los
// campos ausentes quedan en cadena vacía, 0 o su centinela.
func (m *RowMapper) MapRow(row []string) model.InsuranceRecord {
	get := func(field string) string {
		idx, ok := m.cols[field]
		if !ok || idx < 0 || idx >= len(row) {
			return ""
		}
		return CleanString(row[idx])
	}

	getNum := func(field string) float64 {
		return ParseNumber(get(field))
	}

	withDefault := func(value, fallback string) string {
		if value == "" {
			return fallback
		}
		return value
	}

	observaciones := get("OBSERVACIONES2")
	if observaciones == "" {
		observaciones = get("OBSERVACIONES")
	}

	return model.InsuranceRecord{
		Nro:              getNum("NRO."),
		FinDeVigencia:    get("FIN DE VIGENCIA"),
		Compania:         withDefault(get("COMPAÑÍA"), SinEspecificar),
		Ramo:             withDefault(get("RAMO"), SinEspecificar),
		NoPoliza:         withDefault(get("NO. PÓLIZA"), SinNumero),
		Telefono:         get("TELEFONO"),
		CorreoODireccion: get("CORREO/DIRECCION"),
		Asegurado:        withDefault(get("ASEGURADO"), SinNombre),
		Cartera:          get("CARTERA"),
		MateriaAsegurada: get("MATERIA ASEGURADA"),
		ValorAsegurado:   getNum("VALOR ASEGURADO"),
		Prima:            getNum("PRIMA"),
		Ejecutivo:        withDefault(get("EJECUTIVO"), SinAsignar),
		Responsable:      get("RESPONSABLE"),
		CartaAvisoVto:    get("CARTA AVISO VTO."),
		Seguimiento:      get("SEGUIMIENTO"),
		CartaDeNoRenov:   get("CARTA DE NO RENOV."),
		Renueva:          get("RENUEVA"),
		Pendiente:        get("PENDIENTE"),
		NoRenueva:        get("NO RENUEVA"),
		Avance:           getNum("AVANCE"),
		Cantidad:         getNum("CANTIDAD"),
		Observaciones:    observaciones,
	}
}

// IsEmptyRow verdadero si todas las celdas están vacías tras recortar
func IsEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func findExactCol(headers []string, want string) int {
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), want) {
			return i
		}
	}
	return -1
}

func findContainsCol(headers []string, sub string) int {
	upperSub := strings.ToUpper(sub)
	for i, h := range headers {
		if strings.Contains(strings.ToUpper(strings.TrimSpace(h)), upperSub) {
			return i
		}
	}
	return -1
}
