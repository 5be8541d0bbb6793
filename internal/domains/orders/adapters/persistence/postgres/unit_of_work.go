package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/Apurer/go-order-tracker/internal/domains/orders/ports"
)

var _ ports.UnitOfWork = (*UnitOfWork)(nil)

// UnitOfWork wraps business operations in a single GORM transaction and
// collects after-commit hooks in a transaction-scoped list. Hooks run only
// once db.Transaction has returned without error, i.e. after COMMIT; a
// rollback discards them together with the writes.
type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context, tx ports.Tx) error) error {
	if u == nil || u.db == nil {
		return errors.New("postgres unit of work not configured")
	}
	var hooks []ports.AfterCommitHook
	err := u.db.WithContext(ctx).Transaction(func(gtx *gorm.DB) error {
		tx := &gormTx{repo: NewRepository(gtx)}
		if err := fn(ctx, tx); err != nil {
			return err
		}
		hooks = tx.hooks
		return nil
	})
	if err != nil {
		return err
	}
	for _, hook := range hooks {
		hook()
	}
	return nil
}

type gormTx struct {
	repo  *Repository
	hooks []ports.AfterCommitHook
}

func (t *gormTx) Orders() ports.Repository { return t.repo }

func (t *gormTx) AfterCommit(hook ports.AfterCommitHook) {
	if hook != nil {
		t.hooks = append(t.hooks, hook)
	}
}
