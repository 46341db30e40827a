package view

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

// collator comparación de cadenas con reglas del español (ñ, tildes).
// collate.Collator no es seguro para uso concurrente, pero la vista se
// recalcula dentro de un solo request a la vez.
func newCollator() *collate.Collator {
	return collate.New(language.Spanish, collate.IgnoreCase)
}

// Apply aplica filtros conjuntivos y orden sobre el conjunto completo.
// Pura: siempre parte del conjunto completo, nunca mantiene índices
// incrementales. El llamador reinicia la paginación tras cada llamada.
func Apply(records []model.ProcessedInsuranceRecord, filter model.Filter, sortOpt model.Sort, business config.BusinessConfig) []model.ProcessedInsuranceRecord {
	filtered := make([]model.ProcessedInsuranceRecord, 0, len(records))

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	statusSet := make(map[model.InsuranceStatus]bool, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statusSet[s] = true
	}

	for _, r := range records {
		if search != "" &&
			!strings.Contains(strings.ToLower(r.Asegurado), search) &&
			!strings.Contains(strings.ToLower(r.NoPoliza), search) &&
			!strings.Contains(strings.ToLower(r.Compania), search) {
			continue
		}
		if !matchCategory(filter.Ejecutivo, r.Ejecutivo) {
			continue
		}
		if !matchCategory(filter.Compania, r.Compania) {
			continue
		}
		if !matchCategory(filter.Ramo, r.Ramo) {
			continue
		}
		if len(statusSet) > 0 && !statusSet[r.Status] {
			continue
		}
		if !filter.DateFrom.IsZero() && r.ExpiryDate.Before(filter.DateFrom) {
			continue
		}
		if !filter.DateTo.IsZero() && r.ExpiryDate.After(filter.DateTo) {
			continue
		}
		if filter.NeedingNotice &&
			(r.DaysUntilExpiry <= 0 || r.DaysUntilExpiry > business.DaysBeforeExpiryToSend) {
			continue
		}
		filtered = append(filtered, r)
	}

	sortRecords(filtered, sortOpt)
	return filtered
}

// matchCategory filtro categórico: vacío = mostrar todo; el centinela
// BlankFilterValue selecciona registros cuyo campo venía en blanco.
func matchCategory(selected, value string) bool {
	if selected == "" {
		return true
	}
	trimmed := strings.TrimSpace(value)
	if selected == model.BlankFilterValue {
		return trimmed == ""
	}
	return trimmed == selected
}

// sortRecords orden estable por un solo campo. Pares de tipos no
// comparables quedan como iguales.
func sortRecords(records []model.ProcessedInsuranceRecord, sortOpt model.Sort) {
	if sortOpt.Field == "" {
		return
	}

	coll := newCollator()

	less := func(a, b model.ProcessedInsuranceRecord) bool {
		switch sortOpt.Field {
		case model.SortByAsegurado:
			return coll.CompareString(a.Asegurado, b.Asegurado) < 0
		case model.SortByCompania:
			return coll.CompareString(a.Compania, b.Compania) < 0
		case model.SortByExpiry:
			return a.ExpiryDate.Before(b.ExpiryDate)
		case model.SortByDays:
			return a.DaysUntilExpiry < b.DaysUntilExpiry
		case model.SortByValor:
			return a.ValorAsegurado < b.ValorAsegurado
		case model.SortByPrima:
			return a.Prima < b.Prima
		default:
			return false
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if sortOpt.Ascending {
			return less(records[i], records[j])
		}
		return less(records[j], records[i])
	})
}

// Paginate corta una página 1-based del conjunto ya filtrado
func Paginate(records []model.ProcessedInsuranceRecord, page, perPage int) []model.ProcessedInsuranceRecord {
	if perPage <= 0 {
		perPage = 50
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * perPage
	if start >= len(records) {
		return []model.ProcessedInsuranceRecord{}
	}
	end := start + perPage
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// Stats estadísticas del conjunto filtrado para el tablero
func Stats(records []model.ProcessedInsuranceRecord) model.DashboardStats {
	stats := model.DashboardStats{Total: len(records)}

	var premiumSum float64
	for _, r := range records {
		switch r.Status {
		case model.StatusCritical:
			stats.Critical++
		case model.StatusDueSoon:
			stats.DueSoon++
		case model.StatusPending:
			stats.Pending++
		case model.StatusExpired:
			stats.Expired++
		case model.StatusSent:
			stats.Sent++
		}
		stats.TotalValue += r.ValorAsegurado
		premiumSum += r.Prima
	}

	if stats.Total > 0 {
		stats.AveragePremium = premiumSum / float64(stats.Total)
	}
	return stats
}

// UniqueValues valores distintos no vacíos, ordenados con colación
// española, para poblar los selectores de filtro
func UniqueValues(records []model.ProcessedInsuranceRecord) model.UniqueFilterValues {
	return model.UniqueFilterValues{
		Ejecutivos: uniqueOf(records, func(r model.ProcessedInsuranceRecord) string { return r.Ejecutivo }),
		Companias:  uniqueOf(records, func(r model.ProcessedInsuranceRecord) string { return r.Compania }),
		Ramos:      uniqueOf(records, func(r model.ProcessedInsuranceRecord) string { return r.Ramo }),
	}
}

func uniqueOf(records []model.ProcessedInsuranceRecord, get func(model.ProcessedInsuranceRecord) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, r := range records {
		v := strings.TrimSpace(get(r))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
	}
	newCollator().SortStrings(values)
	return values
}
