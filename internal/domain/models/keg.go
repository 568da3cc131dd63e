package models

import "time"

// KegSize is fixed when a keg enters the fleet.
type KegSize string

const (
	KegSizeHalfBarrel  KegSize = "half_bbl"
	KegSizeSixthBarrel KegSize = "sixth_bbl"
)

// KegStatus is the lifecycle state of a keg.
type KegStatus string

const (
	KegStatusFull     KegStatus = "full"
	KegStatusDirty    KegStatus = "dirty"
	KegStatusClean    KegStatus = "clean"
	KegStatusDeployed KegStatus = "deployed"
)

// KegStatuses lists every lifecycle state in display order.
var KegStatuses = []KegStatus{KegStatusFull, KegStatusDirty, KegStatusClean, KegStatusDeployed}

// Valid reports whether s is a known lifecycle state.
func (s KegStatus) Valid() bool {
	switch s {
	case KegStatusFull, KegStatusDirty, KegStatusClean, KegStatusDeployed:
		return true
	}
	return false
}

// Keg is a reusable container tracked through the clean/full/deployed/dirty cycle.
type Keg struct {
	ID          string     `json:"id"`
	QRCode      string     `json:"qrCode"`
	Size        KegSize    `json:"size"`
	Status      KegStatus  `json:"status"`
	CiderType   *string    `json:"ciderType"`
	Location    *string    `json:"location"`
	CustomerID  *string    `json:"customerId"`
	FilledAt    *time.Time `json:"filledAt"`
	DeployedAt  *time.Time `json:"deployedAt"`
	LastUpdated time.Time  `json:"lastUpdated"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with k.
func (k Keg) Clone() Keg {
	k.CiderType = clonePtr(k.CiderType)
	k.Location = clonePtr(k.Location)
	k.CustomerID = clonePtr(k.CustomerID)
	k.FilledAt = clonePtr(k.FilledAt)
	k.DeployedAt = clonePtr(k.DeployedAt)
	return k
}

// CreateKegInput registers a new keg. ID is generated when empty; the QR code
// is always derived from the ID.
type CreateKegInput struct {
	ID         string    `json:"id" validate:"omitempty,kegid"`
	Size       KegSize   `json:"size" validate:"required,oneof=half_bbl sixth_bbl"`
	Status     KegStatus `json:"status" validate:"omitempty,oneof=full dirty clean deployed"`
	CiderType  *string   `json:"ciderType" validate:"omitempty,max=100"`
	Location   *string   `json:"location" validate:"omitempty,max=200"`
	CustomerID *string   `json:"customerId" validate:"omitempty,max=64"`
}

// CreateKegBatchInput registers Count identical kegs with generated ids.
type CreateKegBatchInput struct {
	Count     int       `json:"count" validate:"required,min=1,max=100"`
	Size      KegSize   `json:"size" validate:"required,oneof=half_bbl sixth_bbl"`
	Status    KegStatus `json:"status" validate:"omitempty,oneof=full dirty clean deployed"`
	CiderType *string   `json:"ciderType" validate:"omitempty,max=100"`
	Location  *string   `json:"location" validate:"omitempty,max=200"`
}

// Template returns the per-keg input used for every keg of the batch.
func (in CreateKegBatchInput) Template() CreateKegInput {
	return CreateKegInput{
		Size:      in.Size,
		Status:    in.Status,
		CiderType: in.CiderType,
		Location:  in.Location,
	}
}

// UpdateKegStatusInput moves a keg to a new lifecycle state. Omitted fields
// keep their current value; an empty string clears the field.
type UpdateKegStatusInput struct {
	Status     KegStatus      `json:"status" validate:"required,oneof=full dirty clean deployed"`
	Location   *string        `json:"location" validate:"omitempty,max=200"`
	CustomerID *string        `json:"customerId" validate:"omitempty,max=64"`
	CiderType  *string        `json:"ciderType" validate:"omitempty,max=100"`
	Notes      *string        `json:"notes" validate:"omitempty,max=2000"`
	Action     ActivityAction `json:"action" validate:"omitempty,oneof=filled deployed returned cleaned"`
}

// BatchStatusInput carries the kegs scanned in one batch session.
type BatchStatusInput struct {
	Updates []BatchStatusItem `json:"updates" validate:"required,min=1,max=200,dive"`
}

// BatchStatusItem addresses a keg by id or QR code.
type BatchStatusItem struct {
	KegID      string         `json:"kegId" validate:"required_without=QRCode"`
	QRCode     string         `json:"qrCode"`
	Status     KegStatus      `json:"status" validate:"required,oneof=full dirty clean deployed"`
	Location   *string        `json:"location" validate:"omitempty,max=200"`
	CustomerID *string        `json:"customerId" validate:"omitempty,max=64"`
	CiderType  *string        `json:"ciderType" validate:"omitempty,max=100"`
	Notes      *string        `json:"notes" validate:"omitempty,max=2000"`
	Action     ActivityAction `json:"action" validate:"omitempty,oneof=filled deployed returned cleaned"`
}

// StatusInput extracts the transition part of the item.
func (i BatchStatusItem) StatusInput() UpdateKegStatusInput {
	return UpdateKegStatusInput{
		Status:     i.Status,
		Location:   i.Location,
		CustomerID: i.CustomerID,
		CiderType:  i.CiderType,
		Notes:      i.Notes,
		Action:     i.Action,
	}
}

// BatchStatusResult is the outcome for one item of a batch update.
type BatchStatusResult struct {
	KegID  string `json:"kegId"`
	QRCode string `json:"qrCode,omitempty"`
	OK     bool   `json:"ok"`
	Keg    *Keg   `json:"keg,omitempty"`
	Error  string `json:"error,omitempty"`
}

// KegStats counts the fleet per status.
type KegStats struct {
	Total    int `json:"total"`
	Full     int `json:"full"`
	Dirty    int `json:"dirty"`
	Clean    int `json:"clean"`
	Deployed int `json:"deployed"`
}

// Add counts one keg in the given status.
func (s *KegStats) Add(status KegStatus) {
	s.Total++
	switch status {
	case KegStatusFull:
		s.Full++
	case KegStatusDirty:
		s.Dirty++
	case KegStatusClean:
		s.Clean++
	case KegStatusDeployed:
		s.Deployed++
	}
}

// Count returns the number of kegs in status.
func (s KegStats) Count(status KegStatus) int {
	switch status {
	case KegStatusFull:
		return s.Full
	case KegStatusDirty:
		return s.Dirty
	case KegStatusClean:
		return s.Clean
	case KegStatusDeployed:
		return s.Deployed
	}
	return 0
}
