package letters

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

// healthKeywords ramos que llevan la plantilla de salud
var healthKeywords = []string{"salud", "vida", "medic"}

// titularSentinel marcador literal que algunas planillas usan en la
// materia asegurada para la fila del titular; nunca entra a la lista
// de asegurados.
const titularSentinel = "TITULAR"

// DetermineTemplateType clasifica la plantilla según el ramo.
// Sin coincidencia se usa la plantilla general.
func DetermineTemplateType(ramo string) model.TemplateType {
	lower := strings.ToLower(ramo)
	for _, kw := range healthKeywords {
		if strings.Contains(lower, kw) {
			return model.TemplateSalud
		}
	}
	return model.TemplateGeneral
}

// ValidateRecordForLetter datos mínimos para que un registro entre a
// una carta. Los que no pasan se omiten con su motivo, sin abortar la
// preparación del resto.
func ValidateRecordForLetter(record model.ProcessedInsuranceRecord) (bool, []string) {
	var errs []string

	checkText := func(value, label string) {
		if len(strings.TrimSpace(value)) < 2 {
			errs = append(errs, label+" requerido")
		}
	}

	checkText(record.Asegurado, "Nombre del asegurado")
	checkText(record.NoPoliza, "Número de póliza")
	checkText(record.Compania, "Compañía aseguradora")
	checkText(record.Ramo, "Ramo del seguro")
	checkText(record.Ejecutivo, "Ejecutivo responsable")
	if record.ExpiryDate.IsZero() {
		errs = append(errs, "Fecha de vencimiento requerida")
	}

	return len(errs) == 0, errs
}

// bucket grupo de registros de un cliente para una plantilla
type bucket struct {
	template model.TemplateType
	records  []model.ProcessedInsuranceRecord
}

// GroupForLetters agrupa registros validados en cartas: una por cliente
// y tipo de plantilla. Los grupos se acumulan con una lista explícita
// de claves en orden de inserción; el orden de salida sigue el orden de
// los registros de entrada, no el de iteración del map.
func GroupForLetters(records []model.ProcessedInsuranceRecord, today time.Time) []model.LetterData {
	order := make([]string, 0)
	buckets := make(map[string]*bucket)

	for _, record := range records {
		template := DetermineTemplateType(record.Ramo)
		key := strings.TrimSpace(record.Asegurado) + "_" + string(template)
		if _, ok := buckets[key]; !ok {
			order = append(order, key)
			buckets[key] = &bucket{template: template}
		}
		buckets[key].records = append(buckets[key].records, record)
	}

	result := make([]model.LetterData, 0, len(order))
	for _, key := range order {
		result = append(result, buildLetter(buckets[key], today))
	}
	return result
}

// buildLetter arma la carta de un grupo y calcula su estado de revisión
func buildLetter(b *bucket, today time.Time) model.LetterData {
	first := b.records[0]

	var policies []model.PolicyForLetter
	if b.template == model.TemplateSalud {
		policies = buildHealthPolicies(b.records)
	} else {
		policies = buildGeneralPolicies(b.records)
	}

	sourceIDs := make([]string, 0, len(b.records))
	for _, r := range b.records {
		sourceIDs = append(sourceIDs, r.ID)
	}

	letter := model.LetterData{
		ID:              uuid.New().String(),
		SourceRecordIDs: sourceIDs,
		TemplateType:    b.template,
		ReferenceNumber: GenerateReferenceNumber(today),
		Date:            FormatLetterDate(today),
		Client: model.ClientInfo{
			Name:  first.Asegurado,
			Phone: first.Telefono,
			Email: first.CorreoODireccion,
		},
		Policies:  policies,
		Executive: first.Ejecutivo,
	}

	letter.NeedsReview, letter.MissingData = DeriveReviewState(letter)
	return letter
}

// buildHealthPolicies sub-agrupa por número de póliza: varias filas de
// una misma póliza de salud representan a los distintos asegurados.
func buildHealthPolicies(records []model.ProcessedInsuranceRecord) []model.PolicyForLetter {
	policyOrder := make([]string, 0)
	policyGroups := make(map[string][]model.ProcessedInsuranceRecord)

	for _, record := range records {
		if _, ok := policyGroups[record.NoPoliza]; !ok {
			policyOrder = append(policyOrder, record.NoPoliza)
		}
		policyGroups[record.NoPoliza] = append(policyGroups[record.NoPoliza], record)
	}

	policies := make([]model.PolicyForLetter, 0, len(policyOrder))
	for _, policyNumber := range policyOrder {
		group := policyGroups[policyNumber]
		main := pickMainRecord(group)
		members := collectMembers(group, main)

		policies = append(policies, model.PolicyForLetter{
			ExpiryDate:     FormatLetterDate(main.ExpiryDate),
			PolicyNumber:   main.NoPoliza,
			Company:        main.Compania,
			Branch:         main.Ramo,
			InsuredValue:   main.ValorAsegurado,
			Premium:        main.Prima,
			InsuredMembers: members,
			ManualFields: model.ManualFields{
				Premium:                main.Prima,
				OriginalPremium:        main.Prima,
				InsuredValue:           main.ValorAsegurado,
				OriginalInsuredValue:   main.ValorAsegurado,
				InsuredMatter:          main.MateriaAsegurada,
				OriginalInsuredMatter:  main.MateriaAsegurada,
				InsuredMembers:         append([]string(nil), members...),
				OriginalInsuredMembers: append([]string(nil), members...),
				DeductiblesCurrency:    "Bs.",
				TerritorialityCurrency: "Bs.",
			},
		})
	}

	return policies
}

// pickMainRecord la fila del titular: materia asegurada vacía o igual
// al nombre del cliente. Sin candidata se toma la primera del grupo.
func pickMainRecord(group []model.ProcessedInsuranceRecord) model.ProcessedInsuranceRecord {
	for _, r := range group {
		materia := strings.TrimSpace(r.MateriaAsegurada)
		if materia == "" || strings.EqualFold(materia, strings.TrimSpace(r.Asegurado)) {
			return r
		}
	}
	return group[0]
}

// collectMembers lista de asegurados de la póliza: valores distintos de
// materia asegurada, sin el centinela "TITULAR", con el titular forzado
// al frente sin importar el orden original.
func collectMembers(group []model.ProcessedInsuranceRecord, main model.ProcessedInsuranceRecord) []string {
	seen := make(map[string]bool)
	members := make([]string, 0, len(group))

	for _, r := range group {
		name := strings.TrimSpace(r.MateriaAsegurada)
		if name == "" || strings.EqualFold(name, titularSentinel) {
			continue
		}
		upper := strings.ToUpper(name)
		if seen[upper] {
			continue
		}
		seen[upper] = true
		members = append(members, name)
	}

	titular := strings.TrimSpace(main.Asegurado)
	for i, m := range members {
		if strings.EqualFold(m, titular) {
			members = append(members[:i], members[i+1:]...)
			break
		}
	}

	return append([]string{titular}, members...)
}

// buildGeneralPolicies una póliza por registro. Varias filas con el
// mismo número de póliza (p.ej. flota de vehículos) se consolidan en
// una sola póliza con la lista de bienes, cada uno con su valor
// asegurado sembrado y un valor declarado a completar.
func buildGeneralPolicies(records []model.ProcessedInsuranceRecord) []model.PolicyForLetter {
	policyOrder := make([]string, 0)
	policyGroups := make(map[string][]model.ProcessedInsuranceRecord)

	for _, record := range records {
		if _, ok := policyGroups[record.NoPoliza]; !ok {
			policyOrder = append(policyOrder, record.NoPoliza)
		}
		policyGroups[record.NoPoliza] = append(policyGroups[record.NoPoliza], record)
	}

	policies := make([]model.PolicyForLetter, 0, len(policyOrder))
	for _, policyNumber := range policyOrder {
		group := policyGroups[policyNumber]
		main := group[0]

		policy := model.PolicyForLetter{
			ExpiryDate:   FormatLetterDate(main.ExpiryDate),
			PolicyNumber: main.NoPoliza,
			Company:      main.Compania,
			Branch:       main.Ramo,
			InsuredValue: main.ValorAsegurado,
			Premium:      main.Prima,
			ManualFields: model.ManualFields{
				Premium:                main.Prima,
				OriginalPremium:        main.Prima,
				InsuredValue:           main.ValorAsegurado,
				OriginalInsuredValue:   main.ValorAsegurado,
				InsuredMatter:          main.MateriaAsegurada,
				OriginalInsuredMatter:  main.MateriaAsegurada,
				DeductiblesCurrency:    "Bs.",
				TerritorialityCurrency: "Bs.",
			},
		}

		if len(group) > 1 {
			vehicles := make([]model.VehicleItem, 0, len(group))
			for _, r := range group {
				vehicles = append(vehicles, model.VehicleItem{
					Description:  strings.TrimSpace(r.MateriaAsegurada),
					InsuredValue: r.ValorAsegurado,
				})
			}
			policy.ManualFields.Vehicles = vehicles
		}

		policies = append(policies, policy)
	}

	return policies
}

// DeriveReviewState recalcula (needsReview, missingData) como función
// pura de la carta completa. Se invoca al armar la carta y tras cada
// edición manual; nunca se parcha incrementalmente.
func DeriveReviewState(letter model.LetterData) (bool, []string) {
	missing := []string{}

	if HasReferencePlaceholder(letter.ReferenceNumber) {
		missing = append(missing, "Número de Referencia manual")
	}

	for i, policy := range letter.Policies {
		label := fmt.Sprintf("Póliza %d (%s)", i+1, policy.PolicyNumber)
		mf := policy.ManualFields

		if letter.TemplateType == model.TemplateSalud {
			if mf.RenewalPremium <= 0 {
				missing = append(missing, label+": Prima de renovación anual")
			}
			continue
		}

		if mf.InsuredValue <= 0 {
			missing = append(missing, label+": Valor Asegurado")
		}
		if mf.Premium <= 0 {
			missing = append(missing, label+": Prima")
		}
		if strings.TrimSpace(mf.InsuredMatter) == "" {
			missing = append(missing, label+": Materia Asegurada")
		}
		// Cero significa "sin llenar": los valores sembrados arrancan en 0
		// y deben marcarse como pendientes hasta que alguien los complete.
		if mf.Deductibles <= 0 {
			missing = append(missing, label+": Información de deducibles")
		}
		if mf.Territoriality <= 0 {
			missing = append(missing, label+": Información de extraterritorialidad")
		}
		if strings.TrimSpace(mf.SpecificConditions) == "" {
			missing = append(missing, label+": Condiciones específicas")
		}

		for j, vehicle := range mf.Vehicles {
			itemLabel := fmt.Sprintf("%s, Vehículo %d", label, j+1)
			if strings.TrimSpace(vehicle.Description) == "" {
				missing = append(missing, itemLabel+": Descripción")
			}
			if vehicle.DeclaredValue <= 0 {
				missing = append(missing, itemLabel+": Valor declarado")
			}
		}
	}

	needsReview := len(missing) > 0 || letter.TemplateType == model.TemplateGeneral
	return needsReview, missing
}
