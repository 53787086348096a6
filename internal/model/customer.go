package model

import "strings"

// Status specifies customer payment status
type Status string

const (
	// StatusOpen means customer has an open account
	StatusOpen Status = "Open"
	// StatusInactive means customer account is inactive
	StatusInactive Status = "Inactive"
	// StatusPaid means customer paid in full
	StatusPaid Status = "Paid"
	// StatusDue means customer has payment due
	StatusDue Status = "Due"
)

// Statuses returns all statuses in display order
func Statuses() []Status {
	return []Status{StatusOpen, StatusInactive, StatusPaid, StatusDue}
}

// Valid reports whether status is one of the known statuses
func (s Status) Valid() bool {
	for _, st := range Statuses() {
		if s == st {
			return true
		}
	}
	return false
}

// Customer is customer model entity
type Customer struct {
	ID          string  `json:"id" bson:"_id" msgpack:"id"`
	Name        string  `json:"name" bson:"name" msgpack:"name"`
	Description string  `json:"description" bson:"description" msgpack:"description"`
	Status      Status  `json:"status" bson:"status" msgpack:"status"`
	Rate        float64 `json:"rate" bson:"rate" msgpack:"rate"`
	Balance     float64 `json:"balance" bson:"balance" msgpack:"balance"`
	Deposit     float64 `json:"deposit" bson:"deposit" msgpack:"deposit"`
}

// MergePatch overwrites provided fields, id is never changed
func (c Customer) MergePatch(patch PatchCustomer) Customer {
	if patch.Name != nil {
		c.Name = *patch.Name
	}

	if patch.Description != nil {
		c.Description = *patch.Description
	}

	if patch.Status != nil {
		c.Status = *patch.Status
	}

	if patch.Rate != nil {
		c.Rate = *patch.Rate
	}

	if patch.Balance != nil {
		c.Balance = *patch.Balance
	}

	if patch.Deposit != nil {
		c.Deposit = *patch.Deposit
	}
	return c
}

// Matches reports whether name, description or status contains query ignoring case.
// Query is expected to be trimmed and lower-cased already.
func (c Customer) Matches(query string) bool {
	return strings.Contains(strings.ToLower(c.Name), query) ||
		strings.Contains(strings.ToLower(c.Description), query) ||
		strings.Contains(strings.ToLower(string(c.Status)), query)
}

// Fields returns customer data without id
func (c Customer) Fields() NewCustomer {
	return NewCustomer{
		Name:        c.Name,
		Description: c.Description,
		Status:      c.Status,
		Rate:        c.Rate,
		Balance:     c.Balance,
		Deposit:     c.Deposit,
	}
}

// NewCustomer is customer data submitted for creation
type NewCustomer struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Status      Status  `json:"status"`
	Rate        float64 `json:"rate"`
	Balance     float64 `json:"balance"`
	Deposit     float64 `json:"deposit"`
}

// WithID builds customer entity with provided id
func (nc NewCustomer) WithID(id string) Customer {
	return Customer{
		ID:          id,
		Name:        nc.Name,
		Description: nc.Description,
		Status:      nc.Status,
		Rate:        nc.Rate,
		Balance:     nc.Balance,
		Deposit:     nc.Deposit,
	}
}

// Patch builds patch replacing every field
func (nc NewCustomer) Patch() PatchCustomer {
	return PatchCustomer{
		Name:        &nc.Name,
		Description: &nc.Description,
		Status:      &nc.Status,
		Rate:        &nc.Rate,
		Balance:     &nc.Balance,
		Deposit:     &nc.Deposit,
	}
}

// PatchCustomer holds fields to overwrite, nil fields are kept
type PatchCustomer struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Status      *Status  `json:"status"`
	Rate        *float64 `json:"rate"`
	Balance     *float64 `json:"balance"`
	Deposit     *float64 `json:"deposit"`
}
