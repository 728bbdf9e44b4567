package draftstore

// Store defines the interface for draft persistence operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type Store interface {
	Save(d *Draft, ifMatch string) (string, error)
	Get(clientID string) (*Draft, error)
	Delete(clientID string) error
	List(limit, offset int) ([]Summary, int, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)
