package memory

import (
	"errors"
	"fmt"

	"github.com/mamadbah2/stoickegs/internal/domain/lifecycle"
	"github.com/mamadbah2/stoickegs/internal/domain/models"
	"github.com/mamadbah2/stoickegs/pkg/kegid"
)

const kegEntity = "Keg"

// CreateKeg registers a keg and logs its "created" activity. in.ID is
// generated when empty; a taken id is a ConflictError.
func (s *Store) CreateKeg(in models.CreateKegInput) (models.Keg, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createKegLocked(in)
}

// CreateKegs creates count kegs from template, one at a time. Kegs created
// before a failure stay registered.
func (s *Store) CreateKegs(count int, template models.CreateKegInput) ([]models.Keg, error) {
	if count < 1 {
		return nil, models.NewFieldValidationError("count", "Count must be at least 1")
	}
	template.ID = ""
	created := make([]models.Keg, 0, count)
	for i := 0; i < count; i++ {
		keg, err := s.CreateKeg(template)
		if err != nil {
			return created, fmt.Errorf("create keg %d of %d: %w", i+1, count, err)
		}
		created = append(created, keg)
	}
	return created, nil
}

func (s *Store) createKegLocked(in models.CreateKegInput) (models.Keg, error) {
	id := in.ID
	if id == "" {
		generated, err := kegid.GenerateUniqueKegID(func(candidate string) bool {
			_, taken := s.kegs[candidate]
			return taken
		}, s.kegIDRetries)
		if err != nil {
			return models.Keg{}, fmt.Errorf("generate keg id: %w", err)
		}
		id = generated
	} else if _, taken := s.kegs[id]; taken {
		return models.Keg{}, &models.ConflictError{Entity: kegEntity, Field: "id", Value: id}
	}

	qrCode := kegid.GenerateQRCode(id)
	if _, taken := s.qrIndex[qrCode]; taken {
		return models.Keg{}, &models.ConflictError{Entity: kegEntity, Field: "qrCode", Value: qrCode}
	}

	keg, activity, err := lifecycle.NewKeg(id, qrCode, in, s.timestamp())
	if err != nil {
		return models.Keg{}, err
	}

	s.kegs[id] = keg
	s.qrIndex[qrCode] = id
	s.appendActivityLocked(activity)
	return keg.Clone(), nil
}

// GetKeg returns the keg with id.
func (s *Store) GetKeg(id string) (models.Keg, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keg, ok := s.kegs[id]
	if !ok {
		return models.Keg{}, false
	}
	return keg.Clone(), true
}

// GetKegByQRCode returns the keg labelled with qrCode.
func (s *Store) GetKegByQRCode(qrCode string) (models.Keg, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.qrIndex[qrCode]
	if !ok {
		return models.Keg{}, false
	}
	return s.kegs[id].Clone(), true
}

// ListKegs returns every keg, most recently updated first.
func (s *Store) ListKegs() []models.Keg {
	return s.listKegs(nil)
}

func (s *Store) ListKegsByStatus(status models.KegStatus) []models.Keg {
	return s.listKegs(func(k models.Keg) bool { return k.Status == status })
}

func (s *Store) ListKegsByCustomer(customerID string) []models.Keg {
	return s.listKegs(func(k models.Keg) bool {
		return k.CustomerID != nil && *k.CustomerID == customerID
	})
}

func (s *Store) listKegs(keep func(models.Keg) bool) []models.Keg {
	s.mu.RLock()
	kegs := collect(s.kegs, keep, models.Keg.Clone)
	s.mu.RUnlock()
	sortKegs(kegs)
	return kegs
}

// UpdateKegStatus transitions the keg and appends the matching activity in
// one step.
func (s *Store) UpdateKegStatus(id string, in models.UpdateKegStatusInput) (models.Keg, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.kegs[id]
	if !ok {
		return models.Keg{}, notFound(kegEntity, id)
	}

	next, activity, err := lifecycle.Transition(current, in, s.timestamp())
	if err != nil {
		return models.Keg{}, err
	}

	s.kegs[id] = next
	s.appendActivityLocked(activity)
	return next.Clone(), nil
}

// BatchUpdateKegStatus applies each item as an independent transition and
// reports the outcome per item. Items address kegs by id, or by QR code when
// no id is given.
func (s *Store) BatchUpdateKegStatus(items []models.BatchStatusItem) []models.BatchStatusResult {
	results := make([]models.BatchStatusResult, 0, len(items))
	for _, item := range items {
		result := models.BatchStatusResult{KegID: item.KegID, QRCode: item.QRCode}

		id := item.KegID
		if id == "" {
			if keg, ok := s.GetKegByQRCode(item.QRCode); ok {
				id = keg.ID
			} else {
				id = kegid.ExtractKegIDFromQR(item.QRCode)
			}
			result.KegID = id
		}

		keg, err := s.UpdateKegStatus(id, item.StatusInput())
		if err != nil {
			result.Error = batchErrorMessage(err)
		} else {
			result.OK = true
			result.Keg = &keg
		}
		results = append(results, result)
	}
	return results
}

func batchErrorMessage(err error) string {
	var verr *models.ValidationError
	if errors.As(err, &verr) && len(verr.Errors) > 0 {
		return verr.Errors[0].Message
	}
	return err.Error()
}
