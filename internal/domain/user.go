package domain

type User struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Contact    string `json:"contact"`
	UserTypeID int64  `json:"user_type_id"`
}

// UserProfile is a user annotated with their current borrowing situation.
type UserProfile struct {
	User
	ActiveLoans       []Loan `json:"active_loans"`
	CurrentBorrowings int    `json:"current_borrowings"`
	MaxBorrowings     int    `json:"max_borrowings"`
	MaxBorrowingDays  int    `json:"max_borrowing_days"`
}
