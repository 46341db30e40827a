package parser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type fieldKind int

const (
	kindString fieldKind = iota
	kindDate
	kindEmail
)

// validationRule regla fija por campo
type validationRule struct {
	field     string
	label     string
	required  bool
	kind      fieldKind
	minLength int
	maxLength int
	value     func(model.InsuranceRecord) string
}

// validationRules tabla de reglas. Se aplican todas: la validación no
// corta en el primer error.
var validationRules = []validationRule{
	{
		field: "finDeVigencia", label: "FIN DE VIGENCIA",
		required: true, kind: kindDate,
		value: func(r model.InsuranceRecord) string { return r.FinDeVigencia },
	},
	{
		field: "compania", label: "COMPAÑÍA",
		required: true, kind: kindString, minLength: 2, maxLength: 100,
		value: func(r model.InsuranceRecord) string { return r.Compania },
	},
	{
		field: "noPoliza", label: "NO. PÓLIZA",
		required: true, kind: kindString, minLength: 2, maxLength: 50,
		value: func(r model.InsuranceRecord) string { return r.NoPoliza },
	},
	{
		field: "asegurado", label: "ASEGURADO",
		required: true, kind: kindString, minLength: 2, maxLength: 150,
		value: func(r model.InsuranceRecord) string { return r.Asegurado },
	},
	{
		field: "ejecutivo", label: "EJECUTIVO",
		required: true, kind: kindString, minLength: 2, maxLength: 100,
		value: func(r model.InsuranceRecord) string { return r.Ejecutivo },
	},
	{
		field: "correoODireccion", label: "CORREO/DIRECCION",
		required: false, kind: kindEmail,
		value: func(r model.InsuranceRecord) string { return r.CorreoODireccion },
	},
}

// Validate aplica la tabla de reglas sobre un registro ya mapeado.
// Puramente diagnóstica: nunca muta y acumula todos los errores.
func Validate(record model.InsuranceRecord, rowIndex int) (bool, []string) {
	var errs []string

	for _, rule := range validationRules {
		value := CleanString(rule.value(record))

		if rule.required && value == "" {
			errs = append(errs, fmt.Sprintf("Fila %d: Campo %q es requerido", rowIndex, rule.label))
			continue
		}
		if value == "" {
			continue
		}

		switch rule.kind {
		case kindString:
			if rule.minLength > 0 && len([]rune(value)) < rule.minLength {
				errs = append(errs, fmt.Sprintf(
					"Fila %d: %q debe tener al menos %d caracteres", rowIndex, rule.label, rule.minLength))
			}
			if rule.maxLength > 0 && len([]rune(value)) > rule.maxLength {
				errs = append(errs, fmt.Sprintf(
					"Fila %d: %q no puede tener más de %d caracteres", rowIndex, rule.label, rule.maxLength))
			}

		case kindDate:
			if NormalizeExpiryDate(value).IsZero() {
				errs = append(errs, fmt.Sprintf(
					"Fila %d: %q debe ser una fecha válida", rowIndex, rule.label))
			}

		case kindEmail:
			// La columna mezcla correos y direcciones postales: la forma
			// de email solo se exige cuando el valor pretende serlo.
			if strings.Contains(value, "@") && !emailRe.MatchString(value) {
				errs = append(errs, fmt.Sprintf(
					"Fila %d: %q debe ser un email válido", rowIndex, rule.label))
			}
		}
	}

	return len(errs) == 0, errs
}
