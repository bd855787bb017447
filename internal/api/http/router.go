package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

var validate = validator.New()

// Services bundles everything the API layer depends on.
type Services struct {
	Users        service.UserService
	Materials    service.MaterialService
	Loans        service.LoanService
	Overdue      service.OverdueQueryService
	Reservations service.ReservationService
	Billing      service.BillingService
}

// NewRouter wires all handlers under /api/v1.
func NewRouter(svcs Services) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogging)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")

	api := router.PathPrefix("/api/v1").Subrouter()
	RegisterUserRoutes(api, svcs.Users)
	RegisterMaterialRoutes(api, svcs.Materials)
	RegisterLoanRoutes(api, svcs.Loans, svcs.Overdue, svcs.Billing)
	RegisterReservationRoutes(api, svcs.Reservations)
	RegisterBillingRoutes(api, svcs.Billing)

	return router
}

// pathID pulls an int64 path variable, writing a 400 itself on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, domain.Validation("invalid %s %q", name, raw))
		return 0, false
	}
	return id, true
}

// decodeAndValidate parses the JSON body into dst and runs struct validation.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, domain.Validation("invalid request body: %s", err.Error()))
		return false
	}
	if err := validate.Struct(dst); err != nil {
		writeValidationError(w, err)
		return false
	}
	return true
}
