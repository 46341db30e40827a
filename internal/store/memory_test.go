package store

import (
	"errors"
	"testing"
	"time"

	"github.com/patriasa-sist/cartas-vencimiento/internal/letters"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

func demoRecords() []model.ProcessedInsuranceRecord {
	build := func(id string) model.ProcessedInsuranceRecord {
		return model.ProcessedInsuranceRecord{
			InsuranceRecord: model.InsuranceRecord{
				Asegurado: "JUAN PEREZ",
				NoPoliza:  "AUT-" + id,
				Compania:  "Alianza Seguros",
				Ramo:      "AUTOMOTORES",
				Ejecutivo: "MARIA LOPEZ",
			},
			ID:         id,
			ExpiryDate: time.Date(2025, time.July, 10, 0, 0, 0, 0, time.Local),
			Status:     model.StatusDueSoon,
		}
	}
	return []model.ProcessedInsuranceRecord{build("r1"), build("r2"), build("r3")}
}

func TestReplaceRecords_DiscardsLetters(t *testing.T) {
	s := NewMemoryStore()
	s.ReplaceRecords(demoRecords())
	s.SetLetters([]model.LetterData{{ID: "l1"}})

	s.ReplaceRecords(demoRecords())
	if len(s.Letters()) != 0 {
		t.Fatal("replacing the dataset must discard prepared letters")
	}
	if s.RecordCount() != 3 {
		t.Fatalf("expected 3 records, got %d", s.RecordCount())
	}
}

func TestSelection(t *testing.T) {
	s := NewMemoryStore()
	s.ReplaceRecords(demoRecords())

	changed := s.SetSelection([]string{"r1", "r3", "desconocido"}, true)
	if changed != 2 {
		t.Fatalf("unknown ids are ignored, expected 2 changed, got %d", changed)
	}

	selected := s.SelectedRecords()
	if len(selected) != 2 || selected[0].ID != "r1" || selected[1].ID != "r3" {
		t.Fatalf("selection must keep ingest order, got %v", selected)
	}

	s.ClearSelection()
	if len(s.SelectedRecords()) != 0 {
		t.Fatal("clear selection must unselect everything")
	}
}

func TestMarkSent(t *testing.T) {
	s := NewMemoryStore()
	s.ReplaceRecords(demoRecords())

	if changed := s.MarkSent([]string{"r2"}); changed != 1 {
		t.Fatalf("expected 1 marked, got %d", changed)
	}
	for _, r := range s.Records() {
		if r.ID == "r2" && r.Status != model.StatusSent {
			t.Fatalf("r2 must be sent, got %s", r.Status)
		}
		if r.ID != "r2" && r.Status == model.StatusSent {
			t.Fatalf("%s must keep its status", r.ID)
		}
	}
}

func TestUpdateLetter_RecomputesReviewState(t *testing.T) {
	s := NewMemoryStore()
	s.ReplaceRecords(demoRecords())

	prepared := letters.GroupForLetters(demoRecords(), time.Date(2025, time.June, 1, 0, 0, 0, 0, time.Local))
	s.SetLetters(prepared)

	letterID := prepared[0].ID
	before, err := s.Letter(letterID)
	if err != nil {
		t.Fatalf("letter: %v", err)
	}
	if !before.NeedsReview {
		t.Fatal("fresh general letter must need review")
	}

	updated, err := s.UpdateLetter(letterID, func(l *model.LetterData) {
		l.ReferenceNumber = "SCPSA-0042/2025"
		for i := range l.Policies {
			l.Policies[i].ManualFields.InsuredValue = 35000
			l.Policies[i].ManualFields.Premium = 1200
			l.Policies[i].ManualFields.InsuredMatter = "TOYOTA HILUX"
			l.Policies[i].ManualFields.SpecificConditions = "Cobertura estándar"
			l.Policies[i].ManualFields.Deductibles = 500
			l.Policies[i].ManualFields.Territoriality = 1000
		}
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(updated.MissingData) != 0 {
		t.Fatalf("completed letter must have no missing data, got %v", updated.MissingData)
	}

	// La edición quedó persistida en el almacén
	stored, _ := s.Letter(letterID)
	if stored.ReferenceNumber != "SCPSA-0042/2025" {
		t.Fatalf("edit not persisted: %q", stored.ReferenceNumber)
	}
}

func TestLetter_NotFound(t *testing.T) {
	s := NewMemoryStore()

	if _, err := s.Letter("nada"); !errors.Is(err, ErrLetterNotFound) {
		t.Fatalf("expected ErrLetterNotFound, got %v", err)
	}
	if _, err := s.UpdateLetter("nada", func(*model.LetterData) {}); !errors.Is(err, ErrLetterNotFound) {
		t.Fatalf("expected ErrLetterNotFound, got %v", err)
	}
}
