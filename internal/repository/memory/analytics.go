package memory

import (
	"cmp"
	"errors"
	"slices"
	"time"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

// ErrInvalidOverdueDays is returned when the overdue threshold is not positive.
var ErrInvalidOverdueDays = errors.New("overdue threshold must be at least one day")

// KegStats counts the fleet per status.
func (s *Store) KegStats() models.KegStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats models.KegStats
	for _, keg := range s.kegs {
		stats.Add(keg.Status)
	}
	return stats
}

// OverdueKegs returns deployed kegs sent out more than days ago, the longest
// outstanding first.
func (s *Store) OverdueKegs(days int) ([]models.Keg, error) {
	if days <= 0 {
		return nil, ErrInvalidOverdueDays
	}
	cutoff := s.timestamp().Add(-time.Duration(days) * 24 * time.Hour)

	s.mu.RLock()
	kegs := collect(s.kegs, func(k models.Keg) bool {
		return k.Status == models.KegStatusDeployed && k.DeployedAt != nil && k.DeployedAt.Before(cutoff)
	}, models.Keg.Clone)
	s.mu.RUnlock()

	slices.SortFunc(kegs, func(a, b models.Keg) int {
		if c := a.DeployedAt.Compare(*b.DeployedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return kegs, nil
}
