package http

import (
	"net/http"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/service"

	"github.com/gorilla/mux"
)

// LoanHandler exposes borrowing, returning and overdue queries.
type LoanHandler struct {
	loans   service.LoanService
	overdue service.OverdueQueryService
	billing service.BillingService
}

func NewLoanHandler(loans service.LoanService, overdue service.OverdueQueryService, billing service.BillingService) *LoanHandler {
	return &LoanHandler{loans: loans, overdue: overdue, billing: billing}
}

type createLoanRequest struct {
	UserID     int64 `json:"user_id" validate:"required,gt=0"`
	MaterialID int64 `json:"material_id" validate:"required,gt=0"`
}

type returnLoanResponse struct {
	Receipt *domain.ReturnReceipt `json:"receipt"`
	Invoice *domain.Invoice       `json:"invoice,omitempty"`
}

func (h *LoanHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	loan, err := h.loans.CreateLoan(r.Context(), req.UserID, req.MaterialID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

// Return closes the loan and, when it came back late, bills the accrued fee
// as a fresh invoice included in the response.
func (h *LoanHandler) Return(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	receipt, err := h.loans.ReturnLoan(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := returnLoanResponse{Receipt: receipt}
	if receipt.LateFee.IsPositive() {
		reason := "overdue return of material: " + receipt.MaterialName
		invoice, err := h.billing.IssueInvoice(r.Context(), receipt.UserID, receipt.LateFee, reason)
		if err != nil {
			writeError(w, err)
			return
		}
		resp.Invoice = invoice
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *LoanHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	loans, err := h.loans.ListActiveLoans(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

func (h *LoanHandler) ListOverdue(w http.ResponseWriter, r *http.Request) {
	overdue, err := h.overdue.ListOverdue(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overdue)
}

func (h *LoanHandler) ListOverdueByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	overdue, err := h.overdue.ListOverdueByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overdue)
}

func RegisterLoanRoutes(router *mux.Router, loans service.LoanService, overdue service.OverdueQueryService, billing service.BillingService) {
	handler := NewLoanHandler(loans, overdue, billing)
	router.HandleFunc("/loans", handler.Create).Methods("POST")
	router.HandleFunc("/loans/{id}/return", handler.Return).Methods("POST")
	router.HandleFunc("/loans/overdue", handler.ListOverdue).Methods("GET")
	router.HandleFunc("/users/{id}/loans", handler.ListActive).Methods("GET")
	router.HandleFunc("/users/{id}/loans/overdue", handler.ListOverdueByUser).Methods("GET")
}
