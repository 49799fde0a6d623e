package employee

import "context"

// StoreAPI is the persistence boundary for the employees collection.
// Implementations must treat absence of configuration as a first-class
// state: reads return empty results and writes return ErrNotConfigured.
type StoreAPI interface {
	Create(ctx context.Context, emp Employee) (string, error)
	List(ctx context.Context) ([]Employee, error)
	ListBySite(ctx context.Context, site Site) ([]Employee, error)
	Get(ctx context.Context, id string) (*Employee, error)
	// UpdateFields merges only the provided columns into the record; it
	// must never clobber fields the caller did not name.
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
	ListTeams(ctx context.Context) ([]Team, error)
	LogChange(ctx context.Context, entry ChangeLogEntry) error
	ListChanges(ctx context.Context, limit int) ([]ChangeLogEntry, error)
	// Subscribe invokes fn with the full current collection after every
	// change until the returned unsubscribe func is called or ctx ends.
	Subscribe(ctx context.Context, fn func([]Employee)) (func(), error)
}
