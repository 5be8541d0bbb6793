package ports

import "context"

// AfterCommitHook runs strictly after the enclosing transaction commits.
// Hooks registered in a transaction that rolls back are discarded.
type AfterCommitHook func()

// Tx is the transaction-scoped view handed to business operations.
type Tx interface {
	Orders() Repository
	AfterCommit(hook AfterCommitHook)
}

// UnitOfWork runs a function inside a single storage transaction. A nil
// return from fn commits; any error rolls back. After-commit hooks fire only
// once the commit has durably succeeded. A crash between commit and hook
// execution loses the hooks, which is an accepted gap of this design.
type UnitOfWork interface {
	Execute(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
