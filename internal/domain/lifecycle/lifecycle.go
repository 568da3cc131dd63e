// Package lifecycle applies keg status transitions and keeps the cider type
// consistent with the status.
package lifecycle

import (
	"time"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const (
	ciderTypePath = "ciderType"

	MsgCleanWithCiderType   = "Clean kegs cannot have a beer type"
	MsgFullWithoutCiderType = "Beer type is required for full kegs"
)

// ActionFor returns the activity label implied by entering status.
func ActionFor(status models.KegStatus) models.ActivityAction {
	switch status {
	case models.KegStatusFull:
		return models.ActionFilled
	case models.KegStatusDeployed:
		return models.ActionDeployed
	case models.KegStatusDirty:
		return models.ActionReturned
	case models.KegStatusClean:
		return models.ActionCleaned
	}
	return ""
}

// resolveCiderType returns the cider type a keg ends up with when entering
// status. supplied is nil when the caller left the field out. Filling always
// names the cider; the previous fill's type is never carried over.
func resolveCiderType(status models.KegStatus, supplied, current *string) (*string, error) {
	switch status {
	case models.KegStatusClean:
		if models.OptionalString(supplied) != nil {
			return nil, models.NewFieldValidationError(ciderTypePath, MsgCleanWithCiderType)
		}
		return nil, nil
	case models.KegStatusFull:
		filled := models.OptionalString(supplied)
		if filled == nil {
			return nil, models.NewFieldValidationError(ciderTypePath, MsgFullWithoutCiderType)
		}
		v := *filled
		return &v, nil
	}

	effective := current
	if supplied != nil {
		effective = models.OptionalString(supplied)
	}
	if effective == nil {
		return nil, nil
	}
	v := *effective
	return &v, nil
}

// NewKeg builds a keg entering the fleet with the given id, along with its
// "created" activity. The activity id is left for the caller to assign.
func NewKeg(id, qrCode string, in models.CreateKegInput, now time.Time) (models.Keg, models.Activity, error) {
	status := in.Status
	if status == "" {
		status = models.KegStatusClean
	}

	ciderType, err := resolveCiderType(status, in.CiderType, nil)
	if err != nil {
		return models.Keg{}, models.Activity{}, err
	}

	keg := models.Keg{
		ID:          id,
		QRCode:      qrCode,
		Size:        in.Size,
		Status:      status,
		CiderType:   ciderType,
		Location:    models.OptionalString(in.Location),
		CustomerID:  models.OptionalString(in.CustomerID),
		LastUpdated: now,
		CreatedAt:   now,
	}
	stamp(&keg, now)

	activity := models.Activity{
		KegID:      keg.ID,
		Action:     models.ActionCreated,
		NewStatus:  keg.Status,
		Location:   copyString(keg.Location),
		CustomerID: copyString(keg.CustomerID),
		Timestamp:  now,
	}
	return keg, activity, nil
}

// Transition moves keg to in.Status. It returns the updated keg and the
// activity describing the change; keg itself is not modified.
func Transition(keg models.Keg, in models.UpdateKegStatusInput, now time.Time) (models.Keg, models.Activity, error) {
	ciderType, err := resolveCiderType(in.Status, in.CiderType, keg.CiderType)
	if err != nil {
		return models.Keg{}, models.Activity{}, err
	}

	next := keg.Clone()
	previous := keg.Status

	next.Status = in.Status
	next.CiderType = ciderType
	if in.Location != nil {
		next.Location = models.OptionalString(in.Location)
	}
	if in.CustomerID != nil {
		next.CustomerID = models.OptionalString(in.CustomerID)
	}
	stamp(&next, now)
	next.LastUpdated = now

	action := in.Action
	if action == "" {
		action = ActionFor(in.Status)
	}

	activity := models.Activity{
		KegID:          next.ID,
		Action:         action,
		PreviousStatus: &previous,
		NewStatus:      next.Status,
		Location:       copyString(next.Location),
		CustomerID:     copyString(next.CustomerID),
		Notes:          models.OptionalString(in.Notes),
		Timestamp:      now,
	}
	return next, activity, nil
}

// CheckInvariant reports whether the keg's cider type agrees with its status.
func CheckInvariant(keg models.Keg) error {
	switch keg.Status {
	case models.KegStatusClean:
		if keg.CiderType != nil {
			return models.NewFieldValidationError(ciderTypePath, MsgCleanWithCiderType)
		}
	case models.KegStatusFull:
		if keg.CiderType == nil || *keg.CiderType == "" {
			return models.NewFieldValidationError(ciderTypePath, MsgFullWithoutCiderType)
		}
	}
	return nil
}

// stamp records when the keg entered full or deployed. Earlier stamps are
// kept when leaving those states.
func stamp(keg *models.Keg, now time.Time) {
	switch keg.Status {
	case models.KegStatusFull:
		t := now
		keg.FilledAt = &t
	case models.KegStatusDeployed:
		t := now
		keg.DeployedAt = &t
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
