package parser

import (
	"strconv"
	"strings"
	"time"
)

// serialEpoch día 0 del formato serial de Excel (30-dic-1899).
// Se usa para re-derivar el serial cuando la librería de lectura ya
// decodificó la celda como fecha. En UTC: la resta de duraciones solo
// da múltiplos exactos de 24h si ambos extremos comparten offset, y los
// offsets locales cambiaron desde 1899 (LMT, horario de verano).
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// excelEpoch día 0 de la conversión serial -> fecha (serial 1 = 1-ene-1900)
var excelEpoch = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.Local)

// ExcelSerialToDate convierte un serial de Excel a fecha calendario.
// Excel cuenta incorrectamente el 29-feb-1900 (1900 no fue bisiesto):
// para seriales > 59 se resta un día antes de sumar a la época.
// La suma es por días calendario (AddDate), no por milisegundos, para
// no acumular deriva en zonas con horario de verano.
func ExcelSerialToDate(serial float64) time.Time {
	corrected := serial
	if serial > 59 {
		corrected = serial - 1
	}
	return excelEpoch.AddDate(0, 0, int(corrected))
}

// NormalizeExpiryDate normaliza el valor de FIN DE VIGENCIA a una fecha
// con hora en cero. Acepta seriales numéricos, fechas ya decodificadas
// y cadenas en varios formatos. Si nada aplica devuelve el time.Time
// cero; el llamador debe verificar IsZero.
func NormalizeExpiryDate(value any) time.Time {
	switch v := value.(type) {
	case time.Time:
		// Doble codificación: la celda ya vino como fecha pero proviene
		// de un serial. Re-derivar el serial y reentrar por la vía numérica.
		// La fecha se reconstruye a medianoche UTC para que la división
		// por 24h no trunque un día en zonas con offset variable.
		day := time.Date(v.Year(), v.Month(), v.Day(), 0, 0, 0, 0, time.UTC)
		serial := float64(day.Sub(serialEpoch) / (24 * time.Hour))
		return ExcelSerialToDate(serial)
	case float64:
		return ExcelSerialToDate(v)
	case int:
		return ExcelSerialToDate(float64(v))
	case string:
		return parseDateString(v)
	default:
		return time.Time{}
	}
}

// parseDateString intenta serial numérico y luego formatos de texto
func parseDateString(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}

	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		return ExcelSerialToDate(serial)
	}

	layouts := []string{
		"02/01/2006",
		"2/1/2006",
		"2006-01-02",
		"02-01-2006",
		"2006-01-02T15:04:05Z07:00",
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return truncateToDay(t)
		}
	}

	// Último recurso: partir DD/MM/YYYY a mano (tolera espacios)
	parts := strings.Split(s, "/")
	if len(parts) == 3 {
		day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errD == nil && errM == nil && errY == nil && month >= 1 && month <= 12 {
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
		}
	}

	return time.Time{}
}

// DaysUntil días calendario hasta el vencimiento. Ambas fechas se
// llevan a medianoche; una póliza que vence hoy da 0. El conteo se hace
// sobre fechas reconstruidas en UTC para que los cambios de horario no
// produzcan días de 23/25 horas.
func DaysUntil(expiry, today time.Time) int {
	e := time.Date(expiry.Year(), expiry.Month(), expiry.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return int(e.Sub(t) / (24 * time.Hour))
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
