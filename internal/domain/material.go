package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type MaterialStatus string

const (
	MaterialStatusUnknown   MaterialStatus = "UNKNOWN"
	MaterialStatusAvailable MaterialStatus = "AVAILABLE"
	MaterialStatusBorrowed  MaterialStatus = "BORROWED"
	MaterialStatusReserved  MaterialStatus = "RESERVED"
)

// Valid reports whether s is one of the closed set of assignable statuses.
// MaterialStatusUnknown is the zero value only and is never stored.
func (s MaterialStatus) Valid() bool {
	switch s {
	case MaterialStatusAvailable, MaterialStatusBorrowed, MaterialStatusReserved:
		return true
	}
	return false
}

// Material is a catalog entry (book, journal, ...). Status is the single
// source of truth for whether the material may be loaned or reserved; it is
// mutated only by the loan and reservation services.
type Material struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Author          string          `json:"author"`
	Publisher       string          `json:"publisher"`
	TypeID          int64           `json:"type_id"`
	PublicationDate *time.Time      `json:"publication_date,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Status          MaterialStatus  `json:"status"`
}
