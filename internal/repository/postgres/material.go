package postgres

import (
	"context"
	"database/sql"

	"librarium-backend/internal/domain"
	"librarium-backend/internal/repository"
)

type materialRepository struct {
	q DBTX
}

func NewMaterialRepository(q DBTX) repository.MaterialRepository {
	return &materialRepository{q: q}
}

func (r *materialRepository) Create(ctx context.Context, m *domain.Material) error {
	query := `INSERT INTO materials (material_name, author, publisher, type_id, publication_date, price, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING material_id`
	return r.q.QueryRowContext(ctx, query, m.Name, m.Author, m.Publisher, m.TypeID, m.PublicationDate, m.Price, m.Status).Scan(&m.ID)
}

func (r *materialRepository) GetByID(ctx context.Context, id int64) (*domain.Material, error) {
	m := &domain.Material{}
	query := `SELECT material_id, material_name, author, publisher, type_id, publication_date, price, status
	          FROM materials WHERE material_id = $1`
	err := r.q.QueryRowContext(ctx, query, id).Scan(&m.ID, &m.Name, &m.Author, &m.Publisher, &m.TypeID, &m.PublicationDate, &m.Price, &m.Status)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *materialRepository) ListAvailable(ctx context.Context) ([]domain.Material, error) {
	query := `SELECT material_id, material_name, author, publisher, type_id, publication_date, price, status
	          FROM materials WHERE status = $1 ORDER BY material_id`
	rows, err := r.q.QueryContext(ctx, query, domain.MaterialStatusAvailable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []domain.Material
	for rows.Next() {
		var m domain.Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Author, &m.Publisher, &m.TypeID, &m.PublicationDate, &m.Price, &m.Status); err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	return materials, rows.Err()
}

func (r *materialRepository) UpdateStatus(ctx context.Context, id int64, status domain.MaterialStatus) error {
	result, err := r.q.ExecContext(ctx, `UPDATE materials SET status = $1 WHERE material_id = $2`, status, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *materialRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.MaterialStatus) (bool, error) {
	result, err := r.q.ExecContext(ctx, `UPDATE materials SET status = $1 WHERE material_id = $2 AND status = $3`, to, id, from)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func (r *materialRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q.ExecContext(ctx, `DELETE FROM materials WHERE material_id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}
