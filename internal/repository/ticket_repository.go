package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository returns a Postgres-backed implementation.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	record, err := encodeRecord(ticket, MaxTicketRecordSize)
	if err != nil {
		return err
	}

	const query = `
        INSERT INTO ticket_records (id, record)
        VALUES ($1, $2)
        ON CONFLICT (id) DO UPDATE SET record = EXCLUDED.record`
	_, err = r.pool.Exec(ctx, query, int64(ticket.ID), record)
	return err
}

func (r *ticketRepository) GetByID(ctx context.Context, id uint64) (*domain.Ticket, error) {
	const query = `SELECT record FROM ticket_records WHERE id = $1`

	var record []byte
	if err := r.pool.QueryRow(ctx, query, int64(id)).Scan(&record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var ticket domain.Ticket
	if err := decodeRecord(record, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	const query = `SELECT record FROM ticket_records ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var record []byte
		if err := rows.Scan(&record); err != nil {
			return nil, err
		}
		var ticket domain.Ticket
		if err := decodeRecord(record, &ticket); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, rows.Err()
}

// Update holds a row lock across the read-mutate-write sequence so status
// updates, assignments and comment additions on the same ticket cannot
// interleave.
func (r *ticketRepository) Update(ctx context.Context, id uint64, mutate func(*domain.Ticket) error) (*domain.Ticket, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const selectQuery = `SELECT record FROM ticket_records WHERE id = $1 FOR UPDATE`

	var record []byte
	if err := tx.QueryRow(ctx, selectQuery, int64(id)).Scan(&record); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var ticket domain.Ticket
	if err := decodeRecord(record, &ticket); err != nil {
		return nil, err
	}
	if err := mutate(&ticket); err != nil {
		return nil, err
	}

	updated, err := encodeRecord(&ticket, MaxTicketRecordSize)
	if err != nil {
		return nil, err
	}

	const updateQuery = `UPDATE ticket_records SET record = $2 WHERE id = $1`
	if _, err := tx.Exec(ctx, updateQuery, int64(id), updated); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &ticket, nil
}
