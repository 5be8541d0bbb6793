package memory

import (
	"context"
	"sync"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork serializes business operations against the in-memory repository.
// There is no real rollback here; operations against the map are applied as
// they run, which is acceptable because each repository call is atomic and
// the service performs at most one write per Execute. What matters for the
// enqueue contract is hook handling: hooks drain only when fn returns nil and
// are discarded otherwise.
type UnitOfWork struct {
	mu   sync.Mutex
	repo *Repository
}

func NewUnitOfWork(repo *Repository) *UnitOfWork {
	return &UnitOfWork{repo: repo}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	u.mu.Lock()
	tx := &memoryTx{repo: u.repo}
	err := fn(ctx, tx)
	u.mu.Unlock()
	if err != nil {
		return err
	}
	for _, hook := range tx.hooks {
		hook()
	}
	return nil
}

type memoryTx struct {
	repo  *Repository
	hooks []ports.AfterCommitHook
}

func (t *memoryTx) Orders() ports.Repository { return t.repo }

func (t *memoryTx) AfterCommit(hook ports.AfterCommitHook) {
	if hook != nil {
		t.hooks = append(t.hooks, hook)
	}
}
