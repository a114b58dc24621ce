package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"opalclean-api/res/store"

	"gorm.io/gorm"
)

type quoteStore struct {
	*storeImpl
}

func NewQuoteStore(rootStore *storeImpl) *quoteStore {
	return &quoteStore{storeImpl: rootStore}
}

func (qs *quoteStore) Create(ctx context.Context, quote *store.Quote) error {
	result := qs.db.WithContext(ctx).Create(quote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return store.ErrUniqueViolation
		}
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create quote")
	}
	return nil
}

func (qs *quoteStore) Get(ctx context.Context, id string) (*store.Quote, error) {
	var quote store.Quote
	result := qs.db.WithContext(ctx).Preload("Cleaner").Where("id = ?", id).First(&quote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, store.ErrQuoteNotFound
		}
		return nil, result.Error
	}
	return &quote, nil
}

func (qs *quoteStore) ListAll(ctx context.Context, filters store.QuoteFilters) ([]*store.Quote, error) {
	var quotes []*store.Quote
	query := applyQuoteFilters(qs.db.WithContext(ctx), filters)

	orderBy := filters.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}
	query = query.Order(orderBy)

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (qs *quoteStore) Count(ctx context.Context, filters store.QuoteFilters) (int64, error) {
	var count int64
	query := applyQuoteFilters(qs.db.WithContext(ctx).Model(&store.Quote{}), filters)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// validStatusTransitions maps each status to the statuses it may move to
var validStatusTransitions = map[store.QuoteStatus][]store.QuoteStatus{
	store.QuoteStatusNew:       {store.QuoteStatusConfirmed, store.QuoteStatusCancelled},
	store.QuoteStatusConfirmed: {store.QuoteStatusCompleted, store.QuoteStatusCancelled},
}

func (qs *quoteStore) UpdateStatus(ctx context.Context, id string, status store.QuoteStatus) error {
	quote, err := qs.Get(ctx, id)
	if err != nil {
		return err
	}

	allowed := false
	for _, next := range validStatusTransitions[quote.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s -> %s", store.ErrInvalidStatusTransition, quote.Status, status)
	}

	now := time.Now()
	updates := map[string]interface{}{"status": status}
	switch status {
	case store.QuoteStatusConfirmed:
		updates["confirmed_at"] = &now
	case store.QuoteStatusCompleted:
		updates["completed_at"] = &now
	case store.QuoteStatusCancelled:
		updates["cancelled_at"] = &now
	}

	result := qs.db.WithContext(ctx).Model(&store.Quote{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return store.ErrQuoteNotFound
	}
	return nil
}

func (qs *quoteStore) AssignCleaner(ctx context.Context, quoteID, cleanerID string) error {
	if _, err := qs.cleanerStore.Get(ctx, cleanerID); err != nil {
		return err
	}

	result := qs.db.WithContext(ctx).Model(&store.Quote{}).Where("id = ?", quoteID).Update("cleaner_id", cleanerID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return store.ErrQuoteNotFound
	}
	return nil
}

func (qs *quoteStore) Stats(ctx context.Context, since time.Time) (*store.QuoteStats, error) {
	stats := &store.QuoteStats{ByStatus: map[store.QuoteStatus]int64{}}

	type statusCount struct {
		Status store.QuoteStatus
		Count  int64
	}
	var counts []statusCount
	err := qs.db.WithContext(ctx).Model(&store.Quote{}).
		Select("status, count(*) as count").
		Where("created_at >= ?", since).
		Group("status").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	for _, sc := range counts {
		stats.ByStatus[sc.Status] = sc.Count
		stats.Total += sc.Count
	}

	err = qs.db.WithContext(ctx).Model(&store.Quote{}).
		Select("coalesce(sum(total_price), 0)").
		Where("created_at >= ? AND status <> ?", since, store.QuoteStatusCancelled).
		Scan(&stats.Revenue).Error
	if err != nil {
		return nil, err
	}

	err = qs.db.WithContext(ctx).Model(&store.Quote{}).
		Where("created_at >= ? AND same_day = ?", since, true).
		Count(&stats.SameDayCount).Error
	if err != nil {
		return nil, err
	}

	return stats, nil
}

func applyQuoteFilters(query *gorm.DB, filters store.QuoteFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.ServiceID != nil {
		query = query.Where("service_id = ?", *filters.ServiceID)
	}
	if filters.Suburb != nil {
		query = query.Where("suburb = ?", *filters.Suburb)
	}
	if filters.SameDay != nil {
		query = query.Where("same_day = ?", *filters.SameDay)
	}
	if filters.StartDate != nil {
		query = query.Where("created_at >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("created_at <= ?", *filters.EndDate)
	}
	return query
}
