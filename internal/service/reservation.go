package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/logger"
	"librarium-backend/internal/repository"
)

type reservationService struct {
	store repository.Store
}

func NewReservationService(store repository.Store) ReservationService {
	return &reservationService{store: store}
}

func (s *reservationService) MakeReservation(ctx context.Context, userID, materialID int64) (*domain.Reservation, error) {
	var reservation *domain.Reservation

	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		if _, err := tx.Users().GetByID(ctx, userID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFound("user", userID)
			}
			return domain.StoreError("get user", err)
		}

		material, err := tx.Materials().GetByID(ctx, materialID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("material", materialID)
		}
		if err != nil {
			return domain.StoreError("get material", err)
		}
		if material.Status != domain.MaterialStatusAvailable {
			return domain.MaterialUnavailable(materialID)
		}

		reservation = &domain.Reservation{
			UserID:          userID,
			MaterialID:      materialID,
			ReservationDate: time.Now(),
			Status:          domain.ReservationStatusActive,
		}
		if err := tx.Reservations().Create(ctx, reservation); err != nil {
			return domain.StoreError("create reservation", err)
		}

		return markReserved(ctx, tx.Materials(), materialID)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Reservation created", "reservation_id", reservation.ID, "user_id", userID, "material_id", materialID)
	return reservation, nil
}

// CancelReservation releases the material held by an active reservation.
// Cancelling a reservation that is not active reports not-found, so the
// material is never freed twice.
func (s *reservationService) CancelReservation(ctx context.Context, reservationID int64) error {
	err := s.store.WithinTx(ctx, func(tx repository.Store) error {
		reservation, err := tx.Reservations().GetByID(ctx, reservationID)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.NotFound("reservation", reservationID)
		}
		if err != nil {
			return domain.StoreError("get reservation", err)
		}
		if reservation.Status != domain.ReservationStatusActive {
			return domain.NotFound("reservation", reservationID)
		}

		if err := tx.Reservations().Cancel(ctx, reservationID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.NotFound("reservation", reservationID)
			}
			return domain.StoreError("cancel reservation", err)
		}

		return markAvailable(ctx, tx.Materials(), reservation.MaterialID)
	})
	if err != nil {
		return err
	}

	logger.Info("Reservation cancelled", "reservation_id", reservationID)
	return nil
}

func (s *reservationService) ListUserReservations(ctx context.Context, userID int64) ([]domain.ReservationDetail, error) {
	reservations, err := s.store.Reservations().ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, domain.StoreError("list reservations", err)
	}
	return reservations, nil
}
