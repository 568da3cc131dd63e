package memory

import (
	"slices"
	"strings"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const customerNoteEntity = "Customer note"

func (s *Store) CreateCustomerNote(in models.CreateCustomerNoteInput) (models.CustomerNote, error) {
	category := in.Category
	if category == "" {
		category = models.NoteGeneral
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	note := models.CustomerNote{
		ID:         s.newID(),
		CustomerID: in.CustomerID,
		Content:    strings.TrimSpace(in.Content),
		Category:   category,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.customerNotes[note.ID] = note
	return note, nil
}

func (s *Store) GetCustomerNote(id string) (models.CustomerNote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.customerNotes[id]
	return note, ok
}

// ListCustomerNotes returns every note, newest first.
func (s *Store) ListCustomerNotes() []models.CustomerNote {
	return s.listCustomerNotes(nil)
}

func (s *Store) ListCustomerNotesByCustomer(customerID string) []models.CustomerNote {
	return s.listCustomerNotes(func(n models.CustomerNote) bool { return n.CustomerID == customerID })
}

func (s *Store) listCustomerNotes(keep func(models.CustomerNote) bool) []models.CustomerNote {
	s.mu.RLock()
	notes := collect(s.customerNotes, keep, func(n models.CustomerNote) models.CustomerNote { return n })
	s.mu.RUnlock()

	slices.SortFunc(notes, func(a, b models.CustomerNote) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return notes
}

func (s *Store) UpdateCustomerNote(id string, patch models.UpdateCustomerNoteInput) (models.CustomerNote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	note, ok := s.customerNotes[id]
	if !ok {
		return models.CustomerNote{}, notFound(customerNoteEntity, id)
	}
	note.Apply(patch)
	note.UpdatedAt = s.timestamp()
	s.customerNotes[id] = note
	return note, nil
}

func (s *Store) DeleteCustomerNote(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customerNotes, id)
}
