// Package booking holds the reservation domain: the entity, its pricing
// rules, and the repository contract.
package booking

import (
	"errors"
	"time"

	"github.com/aputours/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Validation errors
var (
	ErrEmptyUserID        = errors.New("user id cannot be empty")
	ErrEmptyFullName      = errors.New("full name cannot be empty")
	ErrInvalidServiceType = errors.New("invalid service type")
	ErrNoAdults           = errors.New("booking requires at least one adult")
	ErrNegativeAdults     = errors.New("adult count cannot be negative")
	ErrNegativeChildren   = errors.New("child count cannot be negative")
	ErrNegativeUnitPrice  = errors.New("unit price cannot be negative")
	ErrEndBeforeStart     = errors.New("end date cannot be before start date")
)

// Status defines the booking lifecycle states
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

const confirmationCodeRandomLen = 7

// Booking represents a reservation for a tourism service. The client contact
// fields are snapshotted onto the receipt when one is issued.
type Booking struct {
	ID               uuid.UUID          `json:"id"`
	UserID           string             `json:"user_id"`
	ServiceType      shared.ServiceType `json:"service_type"`
	DestinationID    string             `json:"destination_id,omitempty"`
	DestinationName  string             `json:"destination_name"`
	StartDate        time.Time          `json:"start_date"`
	EndDate          time.Time          `json:"end_date"`
	Adults           int                `json:"adults"`
	Children         int                `json:"children"`
	UnitPrice        float64            `json:"unit_price"`
	TotalPrice       float64            `json:"total_price"`
	Status           Status             `json:"status"`
	FullName         string             `json:"full_name"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Document         string             `json:"document"`
	SpecialRequests  string             `json:"special_requests,omitempty"`
	ConfirmationCode string             `json:"confirmation_code"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// NewBooking validates the input, prices the stay, and assigns a confirmation
// code (APU + 7 alphabet characters). The total is derived from the unit
// price via the day/occupancy rules in pricing.go.
func NewBooking(userID string, serviceType shared.ServiceType, destinationID, destinationName string,
	startDate, endDate time.Time, adults, children int, unitPrice float64,
	fullName, email, phone, document, specialRequests string) (*Booking, error) {

	if userID == "" {
		return nil, ErrEmptyUserID
	}
	if fullName == "" {
		return nil, ErrEmptyFullName
	}
	if !serviceType.Valid() {
		return nil, ErrInvalidServiceType
	}
	if adults < 1 {
		return nil, ErrNoAdults
	}
	if children < 0 {
		return nil, ErrNegativeChildren
	}
	if unitPrice < 0 {
		return nil, ErrNegativeUnitPrice
	}
	if endDate.Before(startDate) {
		return nil, ErrEndBeforeStart
	}

	total, err := Subtotal(unitPrice, Days(startDate, endDate), adults, children)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Booking{
		ID:               uuid.New(),
		UserID:           userID,
		ServiceType:      serviceType,
		DestinationID:    destinationID,
		DestinationName:  destinationName,
		StartDate:        startDate,
		EndDate:          endDate,
		Adults:           adults,
		Children:         children,
		UnitPrice:        unitPrice,
		TotalPrice:       total,
		Status:           StatusPending,
		FullName:         fullName,
		Email:            email,
		Phone:            phone,
		Document:         document,
		SpecialRequests:  specialRequests,
		ConfirmationCode: "APU" + shared.RandomCode(confirmationCodeRandomLen),
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// PersonCount returns the total number of travellers on the booking
func (b *Booking) PersonCount() int {
	return b.Adults + b.Children
}
