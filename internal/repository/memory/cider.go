package memory

import (
	"slices"
	"strings"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const (
	ciderTypeEntity       = "Cider type"
	ciderBatchEntity      = "Cider batch"
	ciderIngredientEntity = "Cider ingredient"
)

// CreateCiderType stores a recipe. Names are unique regardless of case.
func (s *Store) CreateCiderType(in models.CreateCiderTypeInput) (models.CiderType, error) {
	name := strings.TrimSpace(in.Name)
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkCiderTypeNameLocked(name, ""); err != nil {
		return models.CiderType{}, err
	}

	now := s.timestamp()
	ciderType := models.CiderType{
		ID:          s.newID(),
		Name:        name,
		Description: models.OptionalString(in.Description),
		Style:       models.OptionalString(in.Style),
		ABV:         in.ABV,
		IBU:         in.IBU,
		SRM:         in.SRM,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}.Clone()
	s.ciderTypes[ciderType.ID] = ciderType
	return ciderType.Clone(), nil
}

func (s *Store) checkCiderTypeNameLocked(name, selfID string) error {
	for id, existing := range s.ciderTypes {
		if id != selfID && strings.EqualFold(existing.Name, name) {
			return &models.ConflictError{Entity: ciderTypeEntity, Field: "name", Value: name}
		}
	}
	return nil
}

func (s *Store) GetCiderType(id string) (models.CiderType, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ciderType, ok := s.ciderTypes[id]
	if !ok {
		return models.CiderType{}, false
	}
	return ciderType.Clone(), true
}

// ListCiderTypes returns every cider type sorted by name.
func (s *Store) ListCiderTypes() []models.CiderType {
	s.mu.RLock()
	types := collect(s.ciderTypes, nil, models.CiderType.Clone)
	s.mu.RUnlock()

	slices.SortFunc(types, func(a, b models.CiderType) int {
		return byName(a.Name, b.Name, a.ID, b.ID)
	})
	return types
}

func (s *Store) UpdateCiderType(id string, patch models.UpdateCiderTypeInput) (models.CiderType, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ciderType, ok := s.ciderTypes[id]
	if !ok {
		return models.CiderType{}, notFound(ciderTypeEntity, id)
	}
	if patch.Name != nil {
		if err := s.checkCiderTypeNameLocked(strings.TrimSpace(*patch.Name), id); err != nil {
			return models.CiderType{}, err
		}
	}
	ciderType.Apply(patch)
	ciderType.UpdatedAt = s.timestamp()
	s.ciderTypes[id] = ciderType
	return ciderType.Clone(), nil
}

func (s *Store) DeleteCiderType(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ciderTypes, id)
}

func (s *Store) CreateCiderBatch(in models.CreateCiderBatchInput) (models.CiderBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.timestamp()
	batch := models.CiderBatch{
		ID:                         s.newID(),
		CiderTypeID:                in.CiderTypeID,
		BatchNumber:                strings.TrimSpace(in.BatchNumber),
		Date:                       in.Date,
		Brix:                       in.Brix,
		LiquidIngredients:          orEmpty(in.LiquidIngredients),
		Juices:                     orEmpty(in.Juices),
		PoundsSugar:                in.PoundsSugar,
		AdditionalIngredientNotes:  models.OptionalString(in.AdditionalIngredientNotes),
		BatchNotes:                 models.OptionalString(in.BatchNotes),
		HalfBarrelsPackaged:        in.HalfBarrelsPackaged,
		SixthBarrelsPackaged:       in.SixthBarrelsPackaged,
		CansFilled:                 orEmpty(in.CansFilled),
		ProductLostDuringPackaging: in.ProductLostDuringPackaging,
		CreatedAt:                  now,
		UpdatedAt:                  now,
	}.Clone()
	s.ciderBatches[batch.ID] = batch
	return batch.Clone(), nil
}

func (s *Store) GetCiderBatch(id string) (models.CiderBatch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	batch, ok := s.ciderBatches[id]
	if !ok {
		return models.CiderBatch{}, false
	}
	return batch.Clone(), true
}

// ListCiderBatches returns every batch by production date, newest first.
// Batches without a date come last.
func (s *Store) ListCiderBatches() []models.CiderBatch {
	return s.listCiderBatches(nil)
}

func (s *Store) ListCiderBatchesByType(ciderTypeID string) []models.CiderBatch {
	return s.listCiderBatches(func(b models.CiderBatch) bool { return b.CiderTypeID == ciderTypeID })
}

func (s *Store) listCiderBatches(keep func(models.CiderBatch) bool) []models.CiderBatch {
	s.mu.RLock()
	batches := collect(s.ciderBatches, keep, models.CiderBatch.Clone)
	s.mu.RUnlock()

	slices.SortFunc(batches, func(a, b models.CiderBatch) int {
		switch {
		case a.Date == nil && b.Date == nil:
			return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
		case a.Date == nil:
			return 1
		case b.Date == nil:
			return -1
		}
		return newestFirst(*a.Date, *b.Date, a.ID, b.ID)
	})
	return batches
}

func (s *Store) UpdateCiderBatch(id string, patch models.UpdateCiderBatchInput) (models.CiderBatch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch, ok := s.ciderBatches[id]
	if !ok {
		return models.CiderBatch{}, notFound(ciderBatchEntity, id)
	}
	batch.Apply(patch)
	batch.UpdatedAt = s.timestamp()
	s.ciderBatches[id] = batch
	return batch.Clone(), nil
}

func (s *Store) DeleteCiderBatch(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ciderBatches, id)
}

func (s *Store) CreateCiderIngredient(in models.CreateCiderIngredientInput) (models.CiderIngredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ingredient := models.CiderIngredient{
		ID:             s.newID(),
		BatchID:        in.BatchID,
		IngredientName: strings.TrimSpace(in.IngredientName),
		IngredientType: in.IngredientType,
		Quantity:       in.Quantity,
		Unit:           models.OptionalString(in.Unit),
		Supplier:       models.OptionalString(in.Supplier),
		Notes:          models.OptionalString(in.Notes),
		CreatedAt:      s.timestamp(),
	}.Clone()
	s.ciderIngredients[ingredient.ID] = ingredient
	return ingredient.Clone(), nil
}

func (s *Store) GetCiderIngredient(id string) (models.CiderIngredient, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ingredient, ok := s.ciderIngredients[id]
	if !ok {
		return models.CiderIngredient{}, false
	}
	return ingredient.Clone(), true
}

// ListCiderIngredients returns every ingredient, newest first.
func (s *Store) ListCiderIngredients() []models.CiderIngredient {
	return s.listCiderIngredients(nil)
}

func (s *Store) ListCiderIngredientsByBatch(batchID string) []models.CiderIngredient {
	return s.listCiderIngredients(func(i models.CiderIngredient) bool { return i.BatchID == batchID })
}

func (s *Store) listCiderIngredients(keep func(models.CiderIngredient) bool) []models.CiderIngredient {
	s.mu.RLock()
	ingredients := collect(s.ciderIngredients, keep, models.CiderIngredient.Clone)
	s.mu.RUnlock()

	slices.SortFunc(ingredients, func(a, b models.CiderIngredient) int {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return ingredients
}

func (s *Store) UpdateCiderIngredient(id string, patch models.UpdateCiderIngredientInput) (models.CiderIngredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ingredient, ok := s.ciderIngredients[id]
	if !ok {
		return models.CiderIngredient{}, notFound(ciderIngredientEntity, id)
	}
	ingredient.Apply(patch)
	s.ciderIngredients[id] = ingredient
	return ingredient.Clone(), nil
}

func (s *Store) DeleteCiderIngredient(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ciderIngredients, id)
}

func orEmpty[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
