package http

import (
	"net/http"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/service"

	"github.com/gorilla/mux"
)

// UserHandler exposes registration, profile and contact management.
type UserHandler struct {
	users service.UserService
}

func NewUserHandler(users service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type registerUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Contact    string `json:"contact" validate:"required,email"`
	UserTypeID int64  `json:"user_type_id" validate:"required,gt=0"`
}

type updateContactRequest struct {
	Contact string `json:"contact" validate:"required,email"`
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerUserRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user := &domain.User{
		Name:       req.Name,
		Contact:    req.Contact,
		UserTypeID: req.UserTypeID,
	}
	if err := h.users.RegisterUser(r.Context(), user); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	profile, err := h.users.GetUserProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (h *UserHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req updateContactRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.users.UpdateContact(r.Context(), userID, req.Contact); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "contact updated"})
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.users.DeleteUser(r.Context(), userID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func RegisterUserRoutes(router *mux.Router, users service.UserService) {
	handler := NewUserHandler(users)
	router.HandleFunc("/users", handler.Register).Methods("POST")
	router.HandleFunc("/users/{id}", handler.GetProfile).Methods("GET")
	router.HandleFunc("/users/{id}/contact", handler.UpdateContact).Methods("PUT")
	router.HandleFunc("/users/{id}", handler.Delete).Methods("DELETE")
}
