package store

import "context"

// RunInOrg wraps ctx with org and calls fn inside the provided TxRunner
func RunInOrg(ctx context.Context, tx TxRunner, orgID string, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithOrg(ctx, orgID)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}

// RunAsSuperadmin wraps ctx as superadmin and calls fn inside the provided TxRunner
func RunAsSuperadmin(ctx context.Context, tx TxRunner, fn func(ctx context.Context, q RowQuerier) error) error {
	ctx = WithSuperadmin(ctx)
	return tx.Tx(ctx, func(q RowQuerier) error {
		return fn(ctx, q)
	})
}
