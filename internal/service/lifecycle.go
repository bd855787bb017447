package service

import (
	"context"
	"database/sql"
	"errors"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

// Material lifecycle transitions. Available -> Borrowed and Available ->
// Reserved are guarded; everything returns to Available unconditionally.
// There is no direct path between Borrowed and Reserved. Each helper runs
// inside the caller's transaction scope and never retries: a failed guard
// aborts the whole transaction.

func markBorrowed(ctx context.Context, materials repository.MaterialRepository, materialID int64) error {
	return transition(ctx, materials, materialID, domain.MaterialStatusBorrowed)
}

func markReserved(ctx context.Context, materials repository.MaterialRepository, materialID int64) error {
	return transition(ctx, materials, materialID, domain.MaterialStatusReserved)
}

func markAvailable(ctx context.Context, materials repository.MaterialRepository, materialID int64) error {
	err := materials.UpdateStatus(ctx, materialID, domain.MaterialStatusAvailable)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound("material", materialID)
	}
	if err != nil {
		return domain.StoreError("mark material available", err)
	}
	return nil
}

func transition(ctx context.Context, materials repository.MaterialRepository, materialID int64, to domain.MaterialStatus) error {
	ok, err := materials.TransitionStatus(ctx, materialID, domain.MaterialStatusAvailable, to)
	if err != nil {
		return domain.StoreError("transition material status", err)
	}
	if ok {
		return nil
	}

	// The guarded update missed: distinguish an unknown material from an
	// illegal transition.
	m, err := materials.GetByID(ctx, materialID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NotFound("material", materialID)
	}
	if err != nil {
		return domain.StoreError("get material", err)
	}
	return domain.InvalidTransition(m.Status, to)
}
