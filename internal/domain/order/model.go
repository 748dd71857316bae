package order

import (
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned when no order exists for the requested id.
var ErrNotFound = errors.New("order not found")

// Order maps to the orders table.
type Order struct {
	ID          int64     `db:"id" json:"id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	DateOfBirth time.Time `db:"date_of_birth" json:"date_of_birth"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CreateRequest is the payload for creating an order.
type CreateRequest struct {
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
}

// UpdateRequest is the payload for a partial update; nil fields keep
// their stored value.
type UpdateRequest struct {
	FirstName   *string    `json:"first_name,omitempty"`
	LastName    *string    `json:"last_name,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
}

func (r *CreateRequest) Validate() error {
	if err := validateName("first_name", r.FirstName); err != nil {
		return err
	}
	if err := validateName("last_name", r.LastName); err != nil {
		return err
	}
	if r.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth is required")
	}
	return nil
}

func (r *UpdateRequest) Validate() error {
	if r.FirstName != nil {
		if err := validateName("first_name", *r.FirstName); err != nil {
			return err
		}
	}
	if r.LastName != nil {
		if err := validateName("last_name", *r.LastName); err != nil {
			return err
		}
	}
	if r.DateOfBirth != nil && r.DateOfBirth.IsZero() {
		return fmt.Errorf("date_of_birth must be a valid date")
	}
	return nil
}

func validateName(field, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", field)
	}
	if len(value) > 100 {
		return fmt.Errorf("%s must be at most 100 characters", field)
	}
	return nil
}
