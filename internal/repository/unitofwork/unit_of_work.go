package unitofwork

import (
	"context"
	"errors"

	"insighthub-be/internal/repository/contract"
)

var (
	ErrTxActive = errors.New("transaction already started")
	ErrNoTx     = errors.New("no transaction to commit")
)

// UnitOfWork hands out repositories bound to one transaction once Begin has been
// called, or to the plain connection otherwise. Rollback without an open
// transaction is a no-op, so it can be deferred ahead of Commit.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	WorkspaceRepository() contract.WorkspaceRepository
	SourceRepository() contract.SourceRepository
	DocumentRepository() contract.DocumentRepository
	ChunkRepository() contract.ChunkRepository
	InsightRepository() contract.InsightRepository
	ScorecardRepository() contract.ScorecardRepository
	ScorecardResultRepository() contract.ScorecardResultRepository
}
