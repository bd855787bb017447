package http

import (
	"net/http"
	"strconv"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

// MaterialHandler exposes the catalog: adding, searching and removing
// materials, plus manual status overrides for librarians.
type MaterialHandler struct {
	materials service.MaterialService
}

func NewMaterialHandler(materials service.MaterialService) *MaterialHandler {
	return &MaterialHandler{materials: materials}
}

type addMaterialRequest struct {
	Name            string `json:"name" validate:"required"`
	Author          string `json:"author" validate:"required"`
	Publisher       string `json:"publisher"`
	TypeID          int64  `json:"type_id" validate:"required,gt=0"`
	PublicationDate string `json:"publication_date" validate:"omitempty,datetime=2006-01-02"`
	Price           string `json:"price" validate:"omitempty"`
}

type setStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *MaterialHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addMaterialRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	material := &domain.Material{
		Name:      req.Name,
		Author:    req.Author,
		Publisher: req.Publisher,
		TypeID:    req.TypeID,
		Status:    domain.MaterialStatusAvailable,
	}
	if req.PublicationDate != "" {
		published, err := time.Parse("2006-01-02", req.PublicationDate)
		if err != nil {
			writeError(w, domain.Validation("invalid publication_date %q", req.PublicationDate))
			return
		}
		material.PublicationDate = &published
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil || price.IsNegative() {
			writeError(w, domain.Validation("invalid price %q", req.Price))
			return
		}
		material.Price = price
	}

	if err := h.materials.AddMaterial(r.Context(), material); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, material)
}

func (h *MaterialHandler) Get(w http.ResponseWriter, r *http.Request) {
	materialID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	material, err := h.materials.GetMaterial(r.Context(), materialID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, material)
}

// Search lists available materials, filtered by ?q= keyword and ?type_id=.
func (h *MaterialHandler) Search(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")

	var typeID *int64
	if raw := r.URL.Query().Get("type_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			writeError(w, domain.Validation("invalid type_id %q", raw))
			return
		}
		typeID = &parsed
	}

	materials, err := h.materials.SearchMaterials(r.Context(), keyword, typeID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, materials)
}

func (h *MaterialHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	materialID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req setStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.materials.SetMaterialStatus(r.Context(), materialID, domain.MaterialStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "status updated"})
}

func (h *MaterialHandler) Delete(w http.ResponseWriter, r *http.Request) {
	materialID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.materials.DeleteMaterial(r.Context(), materialID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusNoContent, nil)
}

func RegisterMaterialRoutes(router *mux.Router, materials service.MaterialService) {
	handler := NewMaterialHandler(materials)
	router.HandleFunc("/materials", handler.Add).Methods("POST")
	router.HandleFunc("/materials", handler.Search).Methods("GET")
	router.HandleFunc("/materials/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/materials/{id}/status", handler.SetStatus).Methods("PUT")
	router.HandleFunc("/materials/{id}", handler.Delete).Methods("DELETE")
}
