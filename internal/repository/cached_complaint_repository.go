package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/complaint-service/internal/domain"
)

const complaintCachePrefix = "complaint:"

type cachedComplaint struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	Priority      string    `json:"priority"`
	Status        string    `json:"status"`
	DateSubmitted time.Time `json:"dateSubmitted"`
	LastUpdated   time.Time `json:"lastUpdated"`
}

// cachedComplaintRepository serves GetByID from Redis and evicts on writes.
// Redis failures are logged and the call falls through to the wrapped store.
type cachedComplaintRepository struct {
	next   ComplaintRepository
	client redis.Cmdable
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedComplaintRepository wraps next with a read-through cache. A nil client disables caching.
func NewCachedComplaintRepository(next ComplaintRepository, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) ComplaintRepository {
	if client == nil {
		return next
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &cachedComplaintRepository{next: next, client: client, ttl: ttl, logger: logger}
}

func (r *cachedComplaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	return r.next.Create(ctx, complaint)
}

func (r *cachedComplaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	if err := r.next.Update(ctx, complaint); err != nil {
		return err
	}
	r.evict(ctx, complaint.ID)
	return nil
}

func (r *cachedComplaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	raw, err := r.client.Get(ctx, complaintCachePrefix+id).Bytes()
	switch {
	case err == nil:
		var cached cachedComplaint
		if err := json.Unmarshal(raw, &cached); err == nil {
			complaint := cached.toDomain()
			return &complaint, nil
		}
		r.logger.Warn("discarding unreadable cached complaint", zap.String("complaint_id", id))
	case !errors.Is(err, redis.Nil):
		r.logger.Warn("complaint cache read failed", zap.String("complaint_id", id), zap.Error(err))
	}

	complaint, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	r.store(ctx, complaint)
	return complaint, nil
}

func (r *cachedComplaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]domain.Complaint, error) {
	return r.next.List(ctx, filter)
}

func (r *cachedComplaintRepository) Delete(ctx context.Context, id string) error {
	if err := r.next.Delete(ctx, id); err != nil {
		return err
	}
	r.evict(ctx, id)
	return nil
}

func (r *cachedComplaintRepository) store(ctx context.Context, complaint *domain.Complaint) {
	payload, err := json.Marshal(cachedFromDomain(complaint))
	if err != nil {
		return
	}
	if err := r.client.Set(ctx, complaintCachePrefix+complaint.ID, payload, r.ttl).Err(); err != nil {
		r.logger.Warn("complaint cache write failed", zap.String("complaint_id", complaint.ID), zap.Error(err))
	}
}

func (r *cachedComplaintRepository) evict(ctx context.Context, id string) {
	if err := r.client.Del(ctx, complaintCachePrefix+id).Err(); err != nil {
		r.logger.Warn("complaint cache eviction failed", zap.String("complaint_id", id), zap.Error(err))
	}
}

func cachedFromDomain(c *domain.Complaint) cachedComplaint {
	return cachedComplaint{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Category:      string(c.Category),
		Priority:      string(c.Priority),
		Status:        string(c.Status),
		DateSubmitted: c.DateSubmitted,
		LastUpdated:   c.LastUpdated,
	}
}

func (c cachedComplaint) toDomain() domain.Complaint {
	return domain.Complaint{
		ID:            c.ID,
		Title:         c.Title,
		Description:   c.Description,
		Category:      domain.ComplaintCategory(c.Category),
		Priority:      domain.ComplaintPriority(c.Priority),
		Status:        domain.ComplaintStatus(c.Status),
		DateSubmitted: c.DateSubmitted,
		LastUpdated:   c.LastUpdated,
	}
}
