package domain

import "github.com/shopspring/decimal"

// UserTypeRule is the per-user-type borrowing policy: how many materials a
// user may hold at once, for how long, and the daily rate charged past the
// due date. Read-only reference data; a user type without a configured rule
// is a hard stop for every borrowing operation.
type UserTypeRule struct {
	TypeID           int64           `json:"type_id"`
	TypeName         string          `json:"type_name"`
	MaxBorrowings    int             `json:"max_borrowings"`
	MaxBorrowingDays int             `json:"max_borrowing_days"`
	LateFeePerDay    decimal.Decimal `json:"late_fee_per_day"`
}
