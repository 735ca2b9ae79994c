package unitofwork

import "context"

// RepositoryFactory is implemented by the gorm factory and by the in-memory store.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
