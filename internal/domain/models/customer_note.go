package models

import (
	"strings"
	"time"
)

// NoteCategory groups customer notes on the customer page.
type NoteCategory string

const (
	NoteInteraction NoteCategory = "interaction"
	NoteOrder       NoteCategory = "order"
	NoteDelivery    NoteCategory = "delivery"
	NotePayment     NoteCategory = "payment"
	NoteGeneral     NoteCategory = "general"
)

type CustomerNote struct {
	ID         string       `json:"id"`
	CustomerID string       `json:"customerId"`
	Content    string       `json:"content"`
	Category   NoteCategory `json:"category"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}

type CreateCustomerNoteInput struct {
	CustomerID string       `json:"customerId" validate:"required,max=64"`
	Content    string       `json:"content" validate:"required,max=5000"`
	Category   NoteCategory `json:"category" validate:"omitempty,oneof=interaction order delivery payment general"`
}

type UpdateCustomerNoteInput struct {
	CustomerID *string       `json:"customerId" validate:"omitnil,min=1,max=64"`
	Content    *string       `json:"content" validate:"omitnil,min=1,max=5000"`
	Category   *NoteCategory `json:"category" validate:"omitnil,oneof=interaction order delivery payment general"`
}

// Apply merges the fields present in p over n.
func (n *CustomerNote) Apply(p UpdateCustomerNoteInput) {
	if p.CustomerID != nil {
		n.CustomerID = *p.CustomerID
	}
	if p.Content != nil {
		n.Content = strings.TrimSpace(*p.Content)
	}
	if p.Category != nil {
		n.Category = *p.Category
	}
}
