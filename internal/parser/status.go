package parser

import (
	"time"

	"github.com/google/uuid"

	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

// Classify mapea días-hasta-vencimiento a un estado. El signo se
// evalúa primero: un valor negativo es "expired" aunque también sea
// menor que el umbral crítico.
func Classify(days int, business config.BusinessConfig) model.InsuranceStatus {
	switch {
	case days < 0:
		return model.StatusExpired
	case days <= business.CriticalDays:
		return model.StatusCritical
	case days <= business.DueSoonDays:
		return model.StatusDueSoon
	default:
		return model.StatusPending
	}
}

// ProcessRecord agrega los campos derivados a un registro validado.
// "today" se inyecta para que los resultados sean deterministas.
func ProcessRecord(record model.InsuranceRecord, today time.Time, business config.BusinessConfig) model.ProcessedInsuranceRecord {
	expiry := NormalizeExpiryDate(record.FinDeVigencia)
	days := DaysUntil(expiry, today)

	return model.ProcessedInsuranceRecord{
		InsuranceRecord: record,
		ID:              uuid.New().String(),
		ExpiryDate:      expiry,
		DaysUntilExpiry: days,
		Status:          Classify(days, business),
		Selected:        false,
	}
}
