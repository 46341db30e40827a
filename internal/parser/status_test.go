package parser

import (
	"testing"
	"time"

	"github.com/patriasa-sist/cartas-vencimiento/internal/config"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

func TestClassify_Boundaries(t *testing.T) {
	business := config.DefaultConfig().Business

	cases := []struct {
		days int
		want model.InsuranceStatus
	}{
		{-30, model.StatusExpired},
		{-1, model.StatusExpired},
		{0, model.StatusCritical},
		{5, model.StatusCritical},
		{6, model.StatusDueSoon},
		{30, model.StatusDueSoon},
		{31, model.StatusPending},
		{365, model.StatusPending},
	}

	for _, tc := range cases {
		if got := Classify(tc.days, business); got != tc.want {
			t.Fatalf("Classify(%d): expected %s, got %s", tc.days, tc.want, got)
		}
	}
}

func TestProcessRecord(t *testing.T) {
	business := config.DefaultConfig().Business
	today := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.Local)

	record := model.InsuranceRecord{
		FinDeVigencia: "15/06/2025",
		Compania:      "Alianza",
		NoPoliza:      "P-1001",
		Asegurado:     "JUAN PEREZ",
		Ejecutivo:     "MARIA LOPEZ",
	}

	processed := ProcessRecord(record, today, business)

	if processed.ID == "" {
		t.Fatal("expected generated id")
	}
	if processed.DaysUntilExpiry != 14 {
		t.Fatalf("expected 14 days, got %d", processed.DaysUntilExpiry)
	}
	if processed.Status != model.StatusDueSoon {
		t.Fatalf("expected due_soon, got %s", processed.Status)
	}
	if processed.Selected {
		t.Fatal("new records must start unselected")
	}
	if processed.ExpiryDate.Day() != 15 || processed.ExpiryDate.Month() != time.June {
		t.Fatalf("unexpected normalized date: %v", processed.ExpiryDate)
	}
}

func TestProcessRecord_DistinctIDs(t *testing.T) {
	business := config.DefaultConfig().Business
	today := time.Now()

	record := model.InsuranceRecord{FinDeVigencia: "01/07/2025"}
	a := ProcessRecord(record, today, business)
	b := ProcessRecord(record, today, business)

	if a.ID == b.ID {
		t.Fatalf("ids must be unique per processing, both %q", a.ID)
	}
}
