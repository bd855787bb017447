package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is the closed set of failure categories every operation reports.
// The HTTP layer maps codes onto statuses; callers never string-match.
type ErrorCode string

const (
	CodeValidation          ErrorCode = "VALIDATION"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeInvalidTransition   ErrorCode = "INVALID_TRANSITION"
	CodeLimitExceeded       ErrorCode = "LIMIT_EXCEEDED"
	CodeMaterialUnavailable ErrorCode = "MATERIAL_UNAVAILABLE"
	CodeRuleNotConfigured   ErrorCode = "RULE_NOT_CONFIGURED"
	CodeAlreadyPaid         ErrorCode = "ALREADY_PAID"
	CodeNotFullyPaid        ErrorCode = "NOT_FULLY_PAID"
	CodeNothingToPay        ErrorCode = "NOTHING_TO_PAY"
	CodeStore               ErrorCode = "STORE"
)

// Error is the one error type services return. Err carries the underlying
// cause (a driver error for CodeStore) and participates in errors.Is/As
// chains through Unwrap.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(entity string, id int64) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf("%s %d not found", entity, id)}
}

func InvalidTransition(from, to MaterialStatus) *Error {
	return &Error{Code: CodeInvalidTransition, Message: fmt.Sprintf("illegal material transition %s -> %s", from, to)}
}

func LimitExceeded(max int) *Error {
	return &Error{Code: CodeLimitExceeded, Message: fmt.Sprintf("maximum borrowing limit reached (%d materials)", max)}
}

func MaterialUnavailable(materialID int64) *Error {
	return &Error{Code: CodeMaterialUnavailable, Message: fmt.Sprintf("material %d cannot be borrowed or reserved currently", materialID)}
}

func RuleNotConfigured(userTypeID int64) *Error {
	return &Error{Code: CodeRuleNotConfigured, Message: fmt.Sprintf("no borrowing rules configured for user type %d", userTypeID)}
}

func AlreadyPaid(invoiceID int64) *Error {
	return &Error{Code: CodeAlreadyPaid, Message: fmt.Sprintf("invoice %d has already been paid", invoiceID)}
}

func NotFullyPaid(invoiceID int64) *Error {
	return &Error{Code: CodeNotFullyPaid, Message: fmt.Sprintf("invoice %d has not been fully paid", invoiceID)}
}

func NothingToPay(loanID int64) *Error {
	return &Error{Code: CodeNothingToPay, Message: fmt.Sprintf("loan %d has no overdue fee to be paid", loanID)}
}

func NoOverdueFee(userID int64) *Error {
	return &Error{Code: CodeNothingToPay, Message: fmt.Sprintf("user %d has no overdue late fee to be paid", userID)}
}

func StoreError(op string, err error) *Error {
	return &Error{Code: CodeStore, Message: op + " failed", Err: err}
}

// CodeOf extracts the code of any error produced by this package, or
// CodeStore for everything else that reaches the boundary.
func CodeOf(err error) ErrorCode {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeStore
}

func IsCode(err error, code ErrorCode) bool {
	return CodeOf(err) == code
}
