package persistence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/household-ledger/internal/config"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier supports database operations for both pool and transactions
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Conn is a connection source that also opens transactions
type Conn interface {
	Querier
	Begin(ctx context.Context) (pgx.Tx, error)
}

var (
	_ Querier = (pgx.Tx)(nil)
	_ Conn    = (*pgxpool.Pool)(nil)
)

// PostgresDB owns the connection pool. Repositories query through Querier
// outside transactions and through the pgx.Tx handed out by ExecuteTx inside.
type PostgresDB struct {
	conn   Conn
	close  func()
	logger *slog.Logger
}

// NewPostgresDB applies the embedded migrations when cfg.RunMigrations is
// set, then opens and pings the pool.
func NewPostgresDB(ctx context.Context, logger *slog.Logger, cfg *config.PostgresConfig) (*PostgresDB, error) {
	if cfg.RunMigrations {
		if err := RunMigrations(cfg.URL); err != nil {
			return nil, err
		}
		logger.Info("PostgreSQL migrations applied")
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PostgreSQL connection string: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		"max_conns", cfg.MaxConns,
		"min_conns", cfg.MinConns,
	)

	return &PostgresDB{conn: pool, close: pool.Close, logger: logger}, nil
}

// NewPostgresDBWithConn wraps an existing connection source, used by tests with pgxmock
func NewPostgresDBWithConn(logger *slog.Logger, conn Conn) *PostgresDB {
	return &PostgresDB{conn: conn, close: func() {}, logger: logger}
}

// Querier returns the pool for statements outside a transaction
func (db *PostgresDB) Querier() Querier {
	return db.conn
}

func (db *PostgresDB) Close() {
	db.close()
	db.logger.Info("Closed PostgreSQL connection")
}

// ExecuteTx runs fn in a transaction, rolling back on error or panic. The
// error returned by fn is kept in the chain so callers can match it.
func (db *PostgresDB) ExecuteTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := db.conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			db.logger.Error("Failed to roll back transaction", "error", rbErr)
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
