package memory

import (
	"slices"
	"strings"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const fermentationBatchEntity = "Fermentation batch"

func (s *Store) CreateFermentationBatch(in models.CreateFermentationBatchInput) (models.FermentationBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	batch := models.FermentationBatch{
		ID:                  s.newID(),
		FermentationID:      strings.TrimSpace(in.FermentationID),
		Date:                in.Date,
		Volume:              in.Volume,
		IncomingJuiceID:     models.OptionalString(in.IncomingJuiceID),
		IncomingJuiceVolume: in.IncomingJuiceVolume,
		JuiceSource:         models.OptionalString(in.JuiceSource),
		Brix:                in.Brix,
		ABV:                 in.ABV,
		SulfiteAdded:        in.SulfiteAdded,
		YeastStrain:         models.OptionalString(in.YeastStrain),
		YeastWeight:         in.YeastWeight,
		PH:                  in.PH,
		TitratableAcidity:   in.TitratableAcidity,
		CopperSulfateAdded:  in.CopperSulfateAdded,
		RackingDates:        orEmpty(in.RackingDates),
		Notes:               models.OptionalString(in.Notes),
		CreatedAt:           now,
		UpdatedAt:           now,
	}.Clone()
	s.fermentationBatches[batch.ID] = batch
	return batch.Clone(), nil
}

func (s *Store) GetFermentationBatch(id string) (models.FermentationBatch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.fermentationBatches[id]
	if !ok {
		return models.FermentationBatch{}, false
	}
	return batch.Clone(), true
}

// ListFermentationBatches returns every batch by date, newest first.
func (s *Store) ListFermentationBatches() []models.FermentationBatch {
	s.mu.RLock()
	batches := collect(s.fermentationBatches, nil, models.FermentationBatch.Clone)
	s.mu.RUnlock()

	slices.SortFunc(batches, func(a, b models.FermentationBatch) int {
		return newestFirst(a.Date, b.Date, a.ID, b.ID)
	})
	return batches
}

func (s *Store) UpdateFermentationBatch(id string, patch models.UpdateFermentationBatchInput) (models.FermentationBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.fermentationBatches[id]
	if !ok {
		return models.FermentationBatch{}, notFound(fermentationBatchEntity, id)
	}
	batch.Apply(patch)
	batch.UpdatedAt = s.timestamp()
	s.fermentationBatches[id] = batch
	return batch.Clone(), nil
}

func (s *Store) DeleteFermentationBatch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fermentationBatches, id)
}
