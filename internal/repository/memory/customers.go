package memory

import (
	"slices"
	"strings"

	"github.com/mamadbah2/stoickegs/internal/domain/models"
)

const customerEntity = "Customer"

func (s *Store) CreateCustomer(in models.CreateCustomerInput) (models.Customer, error) {
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	customer := models.Customer{
		ID:            s.newID(),
		Name:          strings.TrimSpace(in.Name),
		Email:         models.OptionalString(in.Email),
		Phone:         models.OptionalString(in.Phone),
		Address:       models.OptionalString(in.Address),
		ContactPerson: models.OptionalString(in.ContactPerson),
		Notes:         models.OptionalString(in.Notes),
		IsActive:      isActive,
		CreatedAt:     s.timestamp(),
	}
	s.customers[customer.ID] = customer
	return customer.Clone(), nil
}

func (s *Store) GetCustomer(id string) (models.Customer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	customer, ok := s.customers[id]
	if !ok {
		return models.Customer{}, false
	}
	return customer.Clone(), true
}

// ListCustomers returns every customer sorted by name.
func (s *Store) ListCustomers() []models.Customer {
	s.mu.RLock()
	customers := collect(s.customers, nil, models.Customer.Clone)
	s.mu.RUnlock()

	slices.SortFunc(customers, func(a, b models.Customer) int {
		return byName(a.Name, b.Name, a.ID, b.ID)
	})
	return customers
}

func (s *Store) UpdateCustomer(id string, patch models.UpdateCustomerInput) (models.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, ok := s.customers[id]
	if !ok {
		return models.Customer{}, notFound(customerEntity, id)
	}
	customer.Apply(patch)
	s.customers[id] = customer
	return customer.Clone(), nil
}

// DeleteCustomer removes the customer. Kegs, orders and notes keep their
// reference. Deleting a missing customer is not an error.
func (s *Store) DeleteCustomer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.customers, id)
}
