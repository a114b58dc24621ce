package postgresql

import (
	"context"
	"errors"
	"fmt"

	"opalclean-api/res/store"

	"github.com/graph-gophers/dataloader"
	"gorm.io/gorm"
)

type cleanerStore struct {
	*storeImpl

	// Batches concurrent id lookups (e.g. decorating an admin quote list)
	// into a single WHERE id IN query.
	loader *dataloader.Loader
}

func NewCleanerStore(rootStore *storeImpl) *cleanerStore {
	cs := &cleanerStore{storeImpl: rootStore}
	cs.loader = dataloader.NewBatchedLoader(cs.batchGetCleaners, dataloader.WithCache(&dataloader.NoCache{}))
	return cs
}

func (cs *cleanerStore) batchGetCleaners(ctx context.Context, keys dataloader.Keys) []*dataloader.Result {
	ids := keys.Keys()

	var cleaners []*store.Cleaner
	if err := cs.db.WithContext(ctx).Where("id IN ?", ids).Find(&cleaners).Error; err != nil {
		return decorateBatchedQueriesWithError(err, keys)
	}

	byID := make(map[string]*store.Cleaner, len(cleaners))
	for _, cleaner := range cleaners {
		byID[cleaner.ID] = cleaner
	}

	results := make([]*dataloader.Result, len(keys))
	for i, key := range keys {
		cleaner, ok := byID[key.String()]
		if !ok {
			results[i] = &dataloader.Result{Error: store.ErrCleanerNotFound}
			continue
		}
		results[i] = &dataloader.Result{Data: cleaner}
	}
	return results
}

func (cs *cleanerStore) Create(ctx context.Context, cleaner *store.Cleaner) error {
	result := cs.db.WithContext(ctx).Create(cleaner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return store.ErrUniqueViolation
		}
		return result.Error
	}
	if result.RowsAffected != 1 {
		return fmt.Errorf("failed to create cleaner")
	}
	return nil
}

func (cs *cleanerStore) Get(ctx context.Context, id string) (*store.Cleaner, error) {
	thunk := cs.loader.Load(ctx, dataloader.StringKey(id))
	data, err := thunk()
	if err != nil {
		return nil, err
	}
	return data.(*store.Cleaner), nil
}

func (cs *cleanerStore) GetMany(ctx context.Context, ids []string) ([]*store.Cleaner, error) {
	keys := make(dataloader.Keys, len(ids))
	for i, id := range ids {
		keys[i] = dataloader.StringKey(id)
	}

	thunk := cs.loader.LoadMany(ctx, keys)
	data, errs := thunk()

	cleaners := make([]*store.Cleaner, len(ids))
	for i := range data {
		if i < len(errs) && errs[i] != nil {
			if errors.Is(errs[i], store.ErrCleanerNotFound) {
				continue // nil hole for a miss
			}
			return nil, errs[i]
		}
		cleaners[i] = data[i].(*store.Cleaner)
	}
	return cleaners, nil
}

func (cs *cleanerStore) List(ctx context.Context, activeOnly bool) ([]*store.Cleaner, error) {
	var cleaners []*store.Cleaner
	query := cs.db.WithContext(ctx)

	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Order("last_name ASC, first_name ASC").Find(&cleaners).Error; err != nil {
		return nil, err
	}
	return cleaners, nil
}

func (cs *cleanerStore) Update(ctx context.Context, id string, update store.CleanerUpdate) (*store.Cleaner, error) {
	updates := map[string]interface{}{}
	if update.FirstName != nil {
		updates["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		updates["last_name"] = *update.LastName
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.Phone != nil {
		updates["phone"] = *update.Phone
	}
	if update.Suburb != nil {
		updates["suburb"] = *update.Suburb
	}
	if update.Notes != nil {
		updates["notes"] = *update.Notes
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	if len(updates) > 0 {
		result := cs.db.WithContext(ctx).Model(&store.Cleaner{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return nil, store.ErrUniqueViolation
			}
			return nil, result.Error
		}
		if result.RowsAffected != 1 {
			return nil, store.ErrCleanerNotFound
		}
	}

	return cs.Get(ctx, id)
}

func (cs *cleanerStore) Delete(ctx context.Context, id string) error {
	result := cs.db.WithContext(ctx).Where("id = ?", id).Delete(&store.Cleaner{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected != 1 {
		return store.ErrCleanerNotFound
	}
	return nil
}
