package http

import (
	"net/http"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// BillingHandler exposes invoices, payments and overdue settlement.
type BillingHandler struct {
	billing service.BillingService
}

func NewBillingHandler(billing service.BillingService) *BillingHandler {
	return &BillingHandler{billing: billing}
}

type recordPaymentRequest struct {
	Amount string `json:"amount" validate:"required"`
	Method string `json:"method"`
}

func (h *BillingHandler) GenerateLateFeeInvoice(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	invoice, err := h.billing.GenerateLateFeeInvoice(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, invoice)
}

func (h *BillingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req recordPaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		writeError(w, domain.Validation("invalid amount %q", req.Amount))
		return
	}

	payment, err := h.billing.RecordPayment(r.Context(), invoiceID, amount, req.Method)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

func (h *BillingHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	invoiceID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.billing.MarkInvoicePaid(r.Context(), invoiceID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "invoice paid"})
}

// PayOverdueFee settles an overdue loan: fee invoiced, paid and the material
// returned in one transaction.
func (h *BillingHandler) PayOverdueFee(w http.ResponseWriter, r *http.Request) {
	loanID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	receipt, err := h.billing.PayOverdueFee(r.Context(), loanID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// ListUserInvoices defaults to unpaid only; ?include_paid=true widens it.
func (h *BillingHandler) ListUserInvoices(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	includePaid := r.URL.Query().Get("include_paid") == "true"

	invoices, err := h.billing.ListUserInvoices(r.Context(), userID, includePaid)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, invoices)
}

func RegisterBillingRoutes(router *mux.Router, billing service.BillingService) {
	handler := NewBillingHandler(billing)
	router.HandleFunc("/users/{id}/invoices", handler.ListUserInvoices).Methods("GET")
	router.HandleFunc("/users/{id}/invoices/late-fees", handler.GenerateLateFeeInvoice).Methods("POST")
	router.HandleFunc("/invoices/{id}/payments", handler.RecordPayment).Methods("POST")
	router.HandleFunc("/invoices/{id}/pay", handler.MarkPaid).Methods("POST")
	router.HandleFunc("/loans/{id}/pay-overdue", handler.PayOverdueFee).Methods("POST")
}
