package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is the query surface shared by the pool and an open transaction, so a
// repository bound with WithDB(tx) runs unchanged inside a transaction.
type DB interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row

	// WithTx runs txFunc in a transaction that commits when txFunc returns
	// nil and rolls back otherwise. Called on a transaction it opens a
	// savepoint.
	WithTx(ctx context.Context, txFunc func(DB) error) error
}

var (
	_ DB = (*Client)(nil)
	_ DB = txDB{}
)

type Client struct {
	*pgxpool.Pool
}

// NewClient creates a new db client.
func NewClient(pool *pgxpool.Pool) *Client {
	return &Client{pool}
}

func (c *Client) WithTx(ctx context.Context, txFunc func(DB) error) error {
	return withTx(ctx, c.Pool, txFunc)
}

type txDB struct {
	pgx.Tx
}

func (t txDB) WithTx(ctx context.Context, txFunc func(DB) error) error {
	return withTx(ctx, t.Tx, txFunc)
}

type beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

func withTx(ctx context.Context, b beginner, txFunc func(DB) error) error {
	return pgx.BeginFunc(ctx, b, func(tx pgx.Tx) error {
		return txFunc(txDB{Tx: tx})
	})
}
