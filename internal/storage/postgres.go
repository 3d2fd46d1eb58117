package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tapan77777/Transpera/models"
)

// Postgres is the database-backed Store.
type Postgres struct {
	db     *sql.DB
	logger zerolog.Logger
}

// ConnectionParams holds PostgreSQL connection parameters.
type ConnectionParams struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// NewPostgres opens a connection, retrying with exponential backoff
// while the database comes up, and creates the schema if needed.
func NewPostgres(params ConnectionParams) (*Postgres, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		params.Host, params.Port, params.User, params.Password, params.DBName, params.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}

	backoffStrategy := backoff.NewExponentialBackOff()
	backoffStrategy.MaxElapsedTime = 30 * time.Second
	if err := backoff.Retry(db.Ping, backoffStrategy); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging postgres after retries: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}

	return &Postgres{
		db:     db,
		logger: log.With().Str("component", "storage").Logger(),
	}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			id TEXT PRIMARY KEY,
			client_id TEXT NOT NULL,
			symbol TEXT NOT NULL,
			side TEXT NOT NULL,
			qty BIGINT NOT NULL,
			price DOUBLE PRECISION NOT NULL,
			ts BIGINT NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS compliance_tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			due TEXT NOT NULL,
			status TEXT NOT NULL,
			category TEXT NOT NULL
		)
	`)
	return err
}

func (p *Postgres) Trades(ctx context.Context) ([]models.Trade, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, client_id, symbol, side, qty, price, ts
		FROM trades
		ORDER BY ts
	`)
	if err != nil {
		return nil, fmt.Errorf("querying trades: %w", err)
	}
	defer rows.Close()

	trades := []models.Trade{}
	for rows.Next() {
		var t models.Trade
		if err := rows.Scan(&t.ID, &t.ClientID, &t.Symbol, &t.Side, &t.Qty, &t.Price, &t.Ts); err != nil {
			return nil, fmt.Errorf("scanning trade: %w", err)
		}
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (p *Postgres) ReplaceTrades(ctx context.Context, all []models.Trade) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trades`); err != nil {
		return fmt.Errorf("clearing trades: %w", err)
	}
	for _, t := range all {
		if err := insertTrade(ctx, tx, t); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (p *Postgres) AppendTrade(ctx context.Context, t models.Trade) error {
	return insertTrade(ctx, p.db, t)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertTrade(ctx context.Context, db execer, t models.Trade) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO trades (id, client_id, symbol, side, qty, price, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, t.ID, t.ClientID, t.Symbol, t.Side, t.Qty, t.Price, t.Ts)
	if err != nil {
		return fmt.Errorf("inserting trade %s: %w", t.ID, err)
	}
	return nil
}

func (p *Postgres) Tasks(ctx context.Context) ([]models.ComplianceTask, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, title, due, status, category
		FROM compliance_tasks
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.ComplianceTask{}
	for rows.Next() {
		var t models.ComplianceTask
		if err := rows.Scan(&t.ID, &t.Title, &t.Due, &t.Status, &t.Category); err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (p *Postgres) ReplaceTasks(ctx context.Context, all []models.ComplianceTask) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM compliance_tasks`); err != nil {
		return fmt.Errorf("clearing tasks: %w", err)
	}
	for _, t := range all {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO compliance_tasks (id, title, due, status, category)
			VALUES ($1, $2, $3, $4, $5)
		`, t.ID, t.Title, t.Due, t.Status, t.Category)
		if err != nil {
			return fmt.Errorf("inserting task %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (p *Postgres) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE compliance_tasks
		SET status = $1
		WHERE id = $2
	`, status, id)
	if err != nil {
		return fmt.Errorf("updating task %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

func (p *Postgres) Close() error {
	p.logger.Debug().Msg("closing database connection")
	return p.db.Close()
}
