package store

import (
	"errors"
	"sync"

	"github.com/patriasa-sist/cartas-vencimiento/internal/letters"
	"github.com/patriasa-sist/cartas-vencimiento/internal/model"
)

var (
	// ErrRecordNotFound registro inexistente
	ErrRecordNotFound = errors.New("registro no encontrado")
	// ErrLetterNotFound carta inexistente
	ErrLetterNotFound = errors.New("carta no encontrada")
)

// MemoryStore datos de la sesión en memoria. El conjunto de registros
// pertenece a la sesión actual y se reemplaza completo (nunca se
// fusiona) al ingerir un archivo nuevo.
type MemoryStore struct {
	mu      sync.RWMutex
	records []model.ProcessedInsuranceRecord
	byID    map[string]int
	letters []model.LetterData
}

// NewMemoryStore crea el almacén de sesión
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]int),
	}
}

// ReplaceRecords reemplaza el conjunto completo. Las cartas preparadas
// sobre el conjunto anterior se descartan.
func (s *MemoryStore) ReplaceRecords(records []model.ProcessedInsuranceRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = make([]model.ProcessedInsuranceRecord, len(records))
	copy(s.records, records)

	s.byID = make(map[string]int, len(records))
	for i, r := range s.records {
		s.byID[r.ID] = i
	}

	s.letters = nil
}

// Records copia del conjunto completo en orden de ingesta
func (s *MemoryStore) Records() []model.ProcessedInsuranceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ProcessedInsuranceRecord, len(s.records))
	copy(out, s.records)
	return out
}

// RecordCount cantidad de registros de la sesión
func (s *MemoryStore) RecordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// SetSelection marca o desmarca registros por id. Ids desconocidos se
// ignoran en silencio (la UI puede tener una página desactualizada).
func (s *MemoryStore) SetSelection(ids []string, selected bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, id := range ids {
		if idx, ok := s.byID[id]; ok {
			s.records[idx].Selected = selected
			changed++
		}
	}
	return changed
}

// ClearSelection desmarca todo
func (s *MemoryStore) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		s.records[i].Selected = false
	}
}

// SelectedRecords registros marcados, en orden de ingesta
func (s *MemoryStore) SelectedRecords() []model.ProcessedInsuranceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.ProcessedInsuranceRecord, 0)
	for _, r := range s.records {
		if r.Selected {
			out = append(out, r)
		}
	}
	return out
}

// MarkSent estado terminal: la carta del registro ya fue despachada
func (s *MemoryStore) MarkSent(ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := 0
	for _, id := range ids {
		if idx, ok := s.byID[id]; ok {
			s.records[idx].Status = model.StatusSent
			changed++
		}
	}
	return changed
}

// SetLetters reemplaza las cartas preparadas
func (s *MemoryStore) SetLetters(prepared []model.LetterData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.letters = make([]model.LetterData, len(prepared))
	copy(s.letters, prepared)
}

// Letters copia de las cartas preparadas
func (s *MemoryStore) Letters() []model.LetterData {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.LetterData, len(s.letters))
	copy(out, s.letters)
	return out
}

// Letter una carta por id
func (s *MemoryStore) Letter(id string) (model.LetterData, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, l := range s.letters {
		if l.ID == id {
			return l, nil
		}
	}
	return model.LetterData{}, ErrLetterNotFound
}

// UpdateLetter aplica una edición manual y recalcula el estado de
// revisión desde la carta editada completa. La recomputación es total,
// nunca un parche incremental, para que el orden de las ediciones no
// importe.
func (s *MemoryStore) UpdateLetter(id string, edit func(*model.LetterData)) (model.LetterData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.letters {
		if s.letters[i].ID != id {
			continue
		}
		edit(&s.letters[i])
		s.letters[i].NeedsReview, s.letters[i].MissingData = letters.DeriveReviewState(s.letters[i])
		return s.letters[i], nil
	}
	return model.LetterData{}, ErrLetterNotFound
}
