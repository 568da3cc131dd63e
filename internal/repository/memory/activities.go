package memory

import (
	"slices"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

// DefaultRecentActivities is the page size of ListRecentActivities when the
// caller gives none.
const DefaultRecentActivities = 10

func (s *Store) appendActivityLocked(activity models.Activity) {
	activity.ID = s.newID()
	s.activities = append(s.activities, activity)
}

// ListActivitiesByKeg returns the history of one keg, newest first.
func (s *Store) ListActivitiesByKeg(kegID string) []models.Activity {
	return s.listActivities(func(a models.Activity) bool { return a.KegID == kegID }, 0)
}

// ListRecentActivities returns at most limit activities across all kegs,
// newest first.
func (s *Store) ListRecentActivities(limit int) []models.Activity {
	if limit <= 0 {
		limit = DefaultRecentActivities
	}
	return s.listActivities(nil, limit)
}

func (s *Store) listActivities(keep func(models.Activity) bool, limit int) []models.Activity {
	s.mu.RLock()
	out := make([]models.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		if keep == nil || keep(a) {
			out = append(out, a.Clone())
		}
	}
	s.mu.RUnlock()

	// Append order breaks timestamp ties: later appends come first.
	slices.Reverse(out)
	slices.SortStableFunc(out, func(a, b models.Activity) int {
		return b.Timestamp.Compare(a.Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
