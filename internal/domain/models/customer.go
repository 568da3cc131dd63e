package models

import (
	"strings"
	"time"
)

// Customer is a bar or shop that receives kegs.
type Customer struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         *string   `json:"email"`
	Phone         *string   `json:"phone"`
	Address       *string   `json:"address"`
	ContactPerson *string   `json:"contactPerson"`
	Notes         *string   `json:"notes"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Clone returns a copy that shares no pointers with c.
func (c Customer) Clone() Customer {
	c.Email = clonePtr(c.Email)
	c.Phone = clonePtr(c.Phone)
	c.Address = clonePtr(c.Address)
	c.ContactPerson = clonePtr(c.ContactPerson)
	c.Notes = clonePtr(c.Notes)
	return c
}

type CreateCustomerInput struct {
	Name          string  `json:"name" validate:"required,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	ContactPerson *string `json:"contactPerson" validate:"omitempty,max=200"`
	Notes         *string `json:"notes" validate:"omitempty,max=5000"`
	IsActive      *bool   `json:"isActive"`
}

type UpdateCustomerInput struct {
	Name          *string `json:"name" validate:"omitnil,min=1,max=200"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone" validate:"omitempty,max=50"`
	Address       *string `json:"address" validate:"omitempty,max=500"`
	ContactPerson *string `json:"contactPerson" validate:"omitempty,max=200"`
	Notes         *string `json:"notes" validate:"omitempty,max=5000"`
	IsActive      *bool   `json:"isActive"`
}

// Apply merges the fields present in p over c.
func (c *Customer) Apply(p UpdateCustomerInput) {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		c.Email = OptionalString(p.Email)
	}
	if p.Phone != nil {
		c.Phone = OptionalString(p.Phone)
	}
	if p.Address != nil {
		c.Address = OptionalString(p.Address)
	}
	if p.ContactPerson != nil {
		c.ContactPerson = OptionalString(p.ContactPerson)
	}
	if p.Notes != nil {
		c.Notes = OptionalString(p.Notes)
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
}
