package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

type cachedTicketRepository struct {
	next   TicketRepository
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedTicketRepository decorates a TicketRepository with a read-through
// Redis cache on point lookups. Every mutation invalidates the cached entry;
// cache failures degrade to the backing store.
func NewCachedTicketRepository(next TicketRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) TicketRepository {
	if client == nil {
		return next
	}
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &cachedTicketRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func ticketCacheKey(id uint64) string {
	return fmt.Sprintf("ticket:%d", id)
}

func (r *cachedTicketRepository) Insert(ctx context.Context, ticket *domain.Ticket) error {
	if err := r.next.Insert(ctx, ticket); err != nil {
		return err
	}
	r.invalidate(ctx, ticket.ID)
	return nil
}

func (r *cachedTicketRepository) GetByID(ctx context.Context, id uint64) (*domain.Ticket, error) {
	if cached, err := r.client.Get(ctx, ticketCacheKey(id)).Bytes(); err == nil {
		var ticket domain.Ticket
		if decodeErr := decodeRecord(cached, &ticket); decodeErr == nil {
			return &ticket, nil
		}
		// Undecodable entry; fall through and repopulate.
		r.invalidate(ctx, id)
	}

	ticket, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record, encodeErr := encodeRecord(ticket, MaxTicketRecordSize); encodeErr == nil {
		if err := r.client.Set(ctx, ticketCacheKey(id), record, r.ttl).Err(); err != nil {
			r.logger.Debug("ticket cache set failed", zap.Uint64("ticket_id", id), zap.Error(err))
		}
	}
	return ticket, nil
}

func (r *cachedTicketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	return r.next.List(ctx)
}

func (r *cachedTicketRepository) Update(ctx context.Context, id uint64, mutate func(*domain.Ticket) error) (*domain.Ticket, error) {
	ticket, err := r.next.Update(ctx, id, mutate)
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx, id)
	return ticket, nil
}

func (r *cachedTicketRepository) invalidate(ctx context.Context, id uint64) {
	if err := r.client.Del(ctx, ticketCacheKey(id)).Err(); err != nil {
		r.logger.Debug("ticket cache invalidation failed", zap.Uint64("ticket_id", id), zap.Error(err))
	}
}
