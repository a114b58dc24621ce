package store

type Store interface {
	Quotes() QuoteStore
	Cleaners() CleanerStore

	// Database access for advanced operations
	GetDB() interface{} // Returns the underlying database connection
}
