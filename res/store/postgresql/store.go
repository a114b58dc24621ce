package postgresql

import (
	"fmt"
	"runtime"
	"time"

	"opalclean-api/res/store"

	"github.com/cenkalti/backoff/v4"
	sqlCommenter "github.com/gouyelliot/gorm-sqlcommenter-plugin"
	"github.com/graph-gophers/dataloader"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type storeImpl struct {
	db *gorm.DB

	quoteStore   *quoteStore
	cleanerStore *cleanerStore
}

func (sImpl *storeImpl) Quotes() store.QuoteStore {
	return sImpl.quoteStore
}

func (sImpl *storeImpl) Cleaners() store.CleanerStore {
	return sImpl.cleanerStore
}

func (sImpl *storeImpl) GetDB() interface{} {
	return sImpl.db
}

func Connect(connectionUrl string) (*storeImpl, error) {
	var db *gorm.DB

	// Managed Postgres can lag behind the app at cold start; retry the
	// initial connection with exponential backoff.
	retryPolicy := backoff.NewExponentialBackOff()
	retryPolicy.MaxElapsedTime = 2 * time.Minute
	retryPolicy.MaxInterval = 15 * time.Second

	err := backoff.Retry(func() error {
		var err error
		db, err = gorm.Open(postgres.Open(connectionUrl), &gorm.Config{TranslateError: true, PrepareStmt: false})
		if err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		return nil
	}, retryPolicy)
	if err != nil {
		return nil, err
	}

	err = db.Use(sqlCommenter.New())
	if err != nil {
		return nil, err
	}

	err = decorateDBOperationsWithAdditionalInfo(db)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&store.Cleaner{},
		&store.Quote{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to auto-migrate tables: %w", err)
	}

	s := &storeImpl{db: db}

	s.quoteStore = NewQuoteStore(s)
	s.cleanerStore = NewCleanerStore(s)

	return s, nil
}

// COMMON UTILITIES

func decorateBatchedQueriesWithError(err error, keys []dataloader.Key) []*dataloader.Result {
	var results []*dataloader.Result

	for i := 0; i < len(keys); i++ {
		results = append(results, &dataloader.Result{Data: nil, Error: err})
	}

	return results
}

func identifyCallee(stackDepth int) string {
	function, _, line, ok := runtime.Caller(stackDepth)
	if !ok {
		return "<missing-runtime-info>"
	}
	return fmt.Sprintf("%s:%d", runtime.FuncForPC(function).Name(), line)
}

func annotateWithInfoHook(db *gorm.DB) {
	info := identifyCallee(4) // Skip the internal gorm calls & the 2 local setup calls
	db.Clauses(sqlCommenter.NewTag("action", info))
}

func decorateDBOperationsWithAdditionalInfo(db *gorm.DB) error {
	return db.Callback().Query().Before("gorm:query").Register("store::annotate_with_info", annotateWithInfoHook)
}
