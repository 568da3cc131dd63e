package models

import "time"

// ActivityAction labels what happened to a keg.
type ActivityAction string

const (
	ActionFilled   ActivityAction = "filled"
	ActionDeployed ActivityAction = "deployed"
	ActionReturned ActivityAction = "returned"
	ActionCleaned  ActivityAction = "cleaned"
	ActionCreated  ActivityAction = "created"
)

// Activity is one immutable entry of the keg history.
type Activity struct {
	ID             string         `json:"id"`
	KegID          string         `json:"kegId"`
	Action         ActivityAction `json:"action"`
	PreviousStatus *KegStatus     `json:"previousStatus"`
	NewStatus      KegStatus      `json:"newStatus"`
	Location       *string        `json:"location"`
	CustomerID     *string        `json:"customerId"`
	Notes          *string        `json:"notes"`
	Timestamp      time.Time      `json:"timestamp"`
}

// Clone returns a copy that shares no pointers with a.
func (a Activity) Clone() Activity {
	a.PreviousStatus = clonePtr(a.PreviousStatus)
	a.Location = clonePtr(a.Location)
	a.CustomerID = clonePtr(a.CustomerID)
	a.Notes = clonePtr(a.Notes)
	return a
}
