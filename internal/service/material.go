package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/repository"
)

type materialService struct {
	store repository.Store
}

func NewMaterialService(store repository.Store) MaterialService {
	return &materialService{store: store}
}

func (s *materialService) AddMaterial(ctx context.Context, material *domain.Material) error {
	if strings.TrimSpace(material.Name) == "" {
		return domain.Validation("material name is required")
	}
	if strings.TrimSpace(material.Author) == "" {
		return domain.Validation("material author is required")
	}
	if material.Status == "" {
		material.Status = domain.MaterialStatusAvailable
	}
	if !material.Status.Valid() {
		return domain.Validation("invalid material status %q", material.Status)
	}

	if err := s.store.Materials().Create(ctx, material); err != nil {
		return domain.StoreError("create material", err)
	}
	logger.Info("Material added", "material_id", material.ID, "name", material.Name)
	return nil
}

func (s *materialService) GetMaterial(ctx context.Context, id int64) (*domain.Material, error) {
	material, err := s.store.Materials().GetByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFound("material", id)
	}
	if err != nil {
		return nil, domain.StoreError("get material", err)
	}
	return material, nil
}

// SearchMaterials lists available materials matching the keyword against
// name and author, optionally narrowed to one material type.
func (s *materialService) SearchMaterials(ctx context.Context, keyword string, typeID *int64) ([]domain.Material, error) {
	materials, err := s.store.Materials().ListAvailable(ctx)
	if err != nil {
		return nil, domain.StoreError("list available materials", err)
	}

	keyword = strings.ToLower(strings.TrimSpace(keyword))
	matched := make([]domain.Material, 0, len(materials))
	for _, m := range materials {
		if typeID != nil && m.TypeID != *typeID {
			continue
		}
		if keyword != "" &&
			!strings.Contains(strings.ToLower(m.Name), keyword) &&
			!strings.Contains(strings.ToLower(m.Author), keyword) {
			continue
		}
		matched = append(matched, m)
	}
	return matched, nil
}

func (s *materialService) SetMaterialStatus(ctx context.Context, id int64, status domain.MaterialStatus) error {
	if !status.Valid() {
		return domain.Validation("invalid material status %q", status)
	}

	err := s.store.Materials().UpdateStatus(ctx, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound("material", id)
	}
	if err != nil {
		return domain.StoreError("update material status", err)
	}
	logger.Info("Material status updated", "material_id", id, "status", status)
	return nil
}

// DeleteMaterial removes a material from the catalog. A borrowed copy is
// still owed back by a user, so it cannot be removed.
func (s *materialService) DeleteMaterial(ctx context.Context, id int64) error {
	return s.store.WithinTx(ctx, func(tx repository.Store) error {
		material, err := tx.Materials().GetByID(ctx, id)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("material", id)
		}
		if err != nil {
			return domain.StoreError("get material", err)
		}
		if material.Status == domain.MaterialStatusBorrowed {
			return domain.Validation("material %d is borrowed and cannot be deleted", id)
		}

		if err := tx.Materials().Delete(ctx, id); err != nil {
			return domain.StoreError("delete material", err)
		}
		logger.Info("Material deleted", "material_id", id)
		return nil
	})
}
