package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/helpdesk-kit/itsm-service/internal/domain"
)

// In-memory implementations backing STORAGE_DRIVER=memory and deterministic
// unit tests. They hold records in their encoded form so the codec and size
// caps behave exactly as on the durable path; each structure is guarded by
// its own mutex.

type memoryIDAllocator struct {
	mu   sync.Mutex
	next uint64
}

// NewMemoryIDAllocator returns an allocator whose counter starts at 0.
func NewMemoryIDAllocator() IDAllocator {
	return &memoryIDAllocator{}
}

func (a *memoryIDAllocator) NextID(_ context.Context) (uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.next
	a.next++
	return id, nil
}

type memoryUserRepository struct {
	mu      sync.Mutex
	records map[uint64][]byte
}

// NewMemoryUserRepository returns an in-memory UserRepository.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{records: map[uint64][]byte{}}
}

func (r *memoryUserRepository) Insert(_ context.Context, user *domain.User) error {
	record, err := encodeRecord(user, MaxUserRecordSize)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[user.ID] = record
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id uint64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	var user domain.User
	if err := decodeRecord(record, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []domain.User
	for _, id := range sortedKeys(r.records) {
		var user domain.User
		if err := decodeRecord(r.records[id], &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *memoryUserRepository) FindByCredentials(ctx context.Context, username string, role domain.Role) (*domain.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == username && users[i].Role == role {
			return &users[i], nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	users, err := r.List(ctx)
	if err != nil {
		return false, err
	}
	for i := range users {
		if users[i].Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryUserRepository) ExistsByID(_ context.Context, id uint64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.records[id]
	return ok, nil
}

type memoryTicketRepository struct {
	mu      sync.Mutex
	records map[uint64][]byte
}

// NewMemoryTicketRepository returns an in-memory TicketRepository.
func NewMemoryTicketRepository() TicketRepository {
	return &memoryTicketRepository{records: map[uint64][]byte{}}
}

func (r *memoryTicketRepository) Insert(_ context.Context, ticket *domain.Ticket) error {
	record, err := encodeRecord(ticket, MaxTicketRecordSize)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[ticket.ID] = record
	return nil
}

func (r *memoryTicketRepository) GetByID(_ context.Context, id uint64) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	var ticket domain.Ticket
	if err := decodeRecord(record, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *memoryTicketRepository) List(_ context.Context) ([]domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tickets []domain.Ticket
	for _, id := range sortedKeys(r.records) {
		var ticket domain.Ticket
		if err := decodeRecord(r.records[id], &ticket); err != nil {
			return nil, err
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// Update holds the store mutex across the read-mutate-write sequence.
func (r *memoryTicketRepository) Update(_ context.Context, id uint64, mutate func(*domain.Ticket) error) (*domain.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
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
	r.records[id] = updated
	return &ticket, nil
}

type memoryAssetRepository struct {
	mu      sync.Mutex
	records map[uint64][]byte
}

// NewMemoryAssetRepository returns an in-memory AssetRepository.
func NewMemoryAssetRepository() AssetRepository {
	return &memoryAssetRepository{records: map[uint64][]byte{}}
}

func (r *memoryAssetRepository) Insert(_ context.Context, asset *domain.ITAsset) error {
	record, err := encodeRecord(asset, MaxAssetRecordSize)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[asset.ID] = record
	return nil
}

func (r *memoryAssetRepository) GetByID(_ context.Context, id uint64) (*domain.ITAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	var asset domain.ITAsset
	if err := decodeRecord(record, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (r *memoryAssetRepository) List(_ context.Context) ([]domain.ITAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var assets []domain.ITAsset
	for _, id := range sortedKeys(r.records) {
		var asset domain.ITAsset
		if err := decodeRecord(r.records[id], &asset); err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func sortedKeys(records map[uint64][]byte) []uint64 {
	keys := make([]uint64, 0, len(records))
	for id := range records {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
