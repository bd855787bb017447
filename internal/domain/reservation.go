package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusActive    ReservationStatus = "ACTIVE"
	ReservationStatusCancelled ReservationStatus = "CANCELLED"
	ReservationStatusCompleted ReservationStatus = "COMPLETED"
)

// Reservation holds a material for a user. It stays active only while the
// underlying material is reserved.
type Reservation struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"user_id"`
	MaterialID      int64             `json:"material_id"`
	ReservationDate time.Time         `json:"reservation_date"`
	Status          ReservationStatus `json:"status"`
}

// ReservationDetail is a reservation joined with its material.
type ReservationDetail struct {
	Reservation
	MaterialName string `json:"material_name"`
	Author       string `json:"author"`
}
