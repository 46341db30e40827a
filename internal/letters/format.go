package letters

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var monthNames = []string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatLetterDate fecha larga en español para el cuerpo de la carta
func FormatLetterDate(t time.Time) string {
	if t.IsZero() {
		return "Sin fecha"
	}
	return fmt.Sprintf("%d de %s de %d", t.Day(), monthNames[t.Month()-1], t.Year())
}

// FormatShortDate fecha corta DD/MM/YYYY
func FormatShortDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// FormatCurrencyBs moneda boliviana con separadores es-BO
func FormatCurrencyBs(amount float64) string {
	return "Bs. " + formatAmount(amount)
}

// FormatUSD dólares con separadores es-BO
func FormatUSD(amount float64) string {
	return "$us. " + formatAmount(amount)
}

// formatAmount miles con punto y decimales con coma (es-BO)
func formatAmount(amount float64) string {
	s := fmt.Sprintf("%.2f", amount)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(digit)
	}

	out := b.String() + "," + decPart
	if neg {
		return "-" + out
	}
	return out
}

// GenerateReferenceNumber número de referencia con espacio para el
// correlativo manual. El usuario completa el tramo "____" antes de
// enviar; la detección de datos faltantes depende de ese marcador.
func GenerateReferenceNumber(today time.Time) string {
	return fmt.Sprintf("SCPSA-____/%d", today.Year())
}

// HasReferencePlaceholder verdadero si la referencia aún no fue completada
func HasReferencePlaceholder(reference string) bool {
	return strings.Contains(reference, "____")
}

// LetterFileName nombre de archivo para una carta:
// {DDMMYYYY}-AVISO_{SALUD|VCMTO}_{NOMBRE_EN_MAYUSCULAS}.pdf
func LetterFileName(clientName string, template string, today time.Time) string {
	prefix := "VCMTO"
	if template == "salud" {
		prefix = "SALUD"
	}
	return fmt.Sprintf("%s-AVISO_%s_%s.pdf",
		today.Format("02012006"), prefix, sanitizeClientName(clientName))
}

// ZipFileName nombre del archivo ZIP del lote
func ZipFileName(today time.Time) string {
	return fmt.Sprintf("Cartas_Vencimiento_%s.zip", today.Format("2006-01-02"))
}

// sanitizeClientName mayúsculas sin diacríticos, espacios a guiones bajos
func sanitizeClientName(name string) string {
	folded := removeDiacritics(name)

	var b strings.Builder
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) && r < 128:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	cleaned := strings.Join(strings.Fields(b.String()), "_")
	if cleaned == "" {
		return "SIN_NOMBRE"
	}
	return cleaned
}

// removeDiacritics descompone y elimina marcas combinantes (á -> a)
func removeDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
