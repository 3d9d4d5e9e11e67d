package memory

import "context"

// TxManager runs fn directly; in-memory stores have no transactions.
type TxManager struct{}

func (TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
