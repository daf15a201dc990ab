package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation. The username
// column mirrors the encoded record so lookups and the uniqueness constraint
// stay in SQL; the record itself is the source of truth.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Insert(ctx context.Context, user *domain.User) error {
	record, err := encodeRecord(user, MaxUserRecordSize)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO user_records (id, username, record)
        VALUES ($1, $2, $3)
        ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, record = EXCLUDED.record`
	_, err = r.pool.Exec(ctx, query, int64(user.ID), user.Username, record)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	const query = `SELECT record FROM user_records WHERE id = $1`

	var record []byte
	if err := r.pool.QueryRow(ctx, query, int64(id)).Scan(&record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := decodeRecord(record, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]domain.User, error) {
	const query = `SELECT record FROM user_records ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		var user domain.User
		if err := decodeRecord(record, &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *userRepository) FindByCredentials(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	const query = `SELECT record FROM user_records WHERE username = $1`

	var record []byte
	if err := r.pool.QueryRow(ctx, query, username).Scan(&record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := decodeRecord(record, &user); err != nil {
		return nil, err
	}
	if user.Role != role {
		return nil, ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_records WHERE username = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, username).Scan(&exists)
	return exists, err
}

func (r *userRepository) ExistsByID(ctx context.Context, id uint64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM user_records WHERE id = $1)`

	var exists bool
	err := r.pool.QueryRow(ctx, query, int64(id)).Scan(&exists)
	return exists, err
}
