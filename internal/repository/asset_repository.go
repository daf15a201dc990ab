package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

type assetRepository struct {
	pool *pgxpool.Pool
}

// NewAssetRepository returns a Postgres-backed implementation.
func NewAssetRepository(pool *pgxpool.Pool) AssetRepository {
	return &assetRepository{pool: pool}
}

func (r *assetRepository) Insert(ctx context.Context, asset *domain.ITAsset) error {
	record, err := encodeRecord(asset, MaxAssetRecordSize)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO asset_records (id, record)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record`
	_, err = r.pool.Exec(ctx, query, int64(asset.ID), record)
	return err
}

func (r *assetRepository) GetByID(ctx context.Context, id uint64) (*domain.ITAsset, error) {
	const query = `SELECT record FROM asset_records WHERE id = $1`

	var record []byte
	if err := r.pool.QueryRow(ctx, query, int64(id)).Scan(&record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var asset domain.ITAsset
	if err := decodeRecord(record, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *assetRepository) List(ctx context.Context) ([]domain.ITAsset, error) {
	const query = `SELECT record FROM asset_records ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []domain.ITAsset
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		var asset domain.ITAsset
		if err := decodeRecord(record, &asset); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, rows.Err()
}
