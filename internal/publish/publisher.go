// Package publish writes sampled pair lists to the store table the flow
// stage reads from.
package publish

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dbsmedya/framepairs/internal/logger"
	"github.com/dbsmedya/framepairs/internal/sampling"
	"github.com/dbsmedya/framepairs/internal/sqlutil"
)

const (
	// columnsPerRow is the number of bound values per inserted pair.
	columnsPerRow = 4
	// MaxBatchSize keeps one INSERT under SQLite's 32766 bound variable limit.
	MaxBatchSize = 8000
)

// PublishStats describes one publish run.
type PublishStats struct {
	RunID       string
	Job         string
	RowsDeleted int64 // rows of the previous run replaced
	RowsWritten int64
	Batches     int
	Duration    time.Duration
}

// Publisher replaces a job's pair list inside a single transaction.
type Publisher struct {
	db        *sql.DB
	dialect   sqlutil.Dialect
	table     string // quoted
	batchSize int
	logger    *logger.Logger
	newRunID  func() string
}

// NewPublisher creates a publisher writing to table.
func NewPublisher(db *sql.DB, dialect sqlutil.Dialect, table string, batchSize int, log *logger.Logger) (*Publisher, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if batchSize <= 0 || batchSize > MaxBatchSize {
		return nil, fmt.Errorf("batch size must be between 1 and %d, got %d", MaxBatchSize, batchSize)
	}
	quoted, err := dialect.QuoteIdentifierSafe(table)
	if err != nil {
		return nil, fmt.Errorf("pair table: %w", err)
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Publisher{
		db:        db,
		dialect:   dialect,
		table:     quoted,
		batchSize: batchSize,
		logger:    log,
		newRunID:  uuid.NewString,
	}, nil
}

// EnsureSchema creates the pair table if it does not exist.
func (p *Publisher) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements(p.dialect, p.table) {
		if _, err := p.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create pair table %s: %w", p.table, err)
		}
	}
	return nil
}

// Publish replaces the stored pairs of job with pairs. Rows are written in
// sorted order, batchSize pairs per INSERT. On any error the transaction is
// rolled back and the previous list stays in place.
func (p *Publisher) Publish(ctx context.Context, job string, pairs sampling.PairSet) (*PublishStats, error) {
	start := time.Now()
	stats := &PublishStats{RunID: p.newRunID(), Job: job}
	log := p.logger.WithJob(job).WithRun(stats.RunID)

	log.Debug("Starting store transaction")
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if tx != nil {
			log.Warn("Rolling back store transaction")
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Errorf("Failed to rollback transaction: %v", rbErr)
			}
		}
	}()

	res, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s WHERE job = ?", p.table), job)
	if err != nil {
		return nil, fmt.Errorf("failed to clear previous pairs of %q: %w", job, err)
	}
	stats.RowsDeleted, _ = res.RowsAffected()

	sorted := pairs.Sorted()
	for lo := 0; lo < len(sorted); lo += p.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("publish interrupted: %w", err)
		}
		hi := min(lo+p.batchSize, len(sorted))
		n, err := p.insertBatch(ctx, tx, stats.RunID, job, sorted[lo:hi])
		if err != nil {
			return nil, fmt.Errorf("failed to insert batch %d: %w", stats.Batches+1, err)
		}
		stats.Batches++
		stats.RowsWritten += n
	}

	log.Debug("Committing store transaction")
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	tx = nil

	stats.Duration = time.Since(start)
	log.Infof("Published %d pairs in %d batches (replaced %d)", stats.RowsWritten, stats.Batches, stats.RowsDeleted)
	return stats, nil
}

func (p *Publisher) insertBatch(ctx context.Context, tx *sql.Tx, runID, job string, batch []sampling.Pair) (int64, error) {
	query := fmt.Sprintf("INSERT INTO %s (run_id, job, first_frame, second_frame) VALUES %s",
		p.table, sqlutil.Placeholders(len(batch), columnsPerRow))

	args := make([]interface{}, 0, len(batch)*columnsPerRow)
	for _, pair := range batch {
		args = append(args, runID, job, pair.First, pair.Second)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return int64(len(batch)), nil
	}
	return n, nil
}

// Load returns the stored pairs of job.
func (p *Publisher) Load(ctx context.Context, job string) (sampling.PairSet, error) {
	rows, err := p.db.QueryContext(ctx,
		fmt.Sprintf("SELECT first_frame, second_frame FROM %s WHERE job = ?", p.table), job)
	if err != nil {
		return nil, fmt.Errorf("failed to load pairs of %q: %w", job, err)
	}
	defer rows.Close()

	pairs := make(sampling.PairSet)
	for rows.Next() {
		var pair sampling.Pair
		if err := rows.Scan(&pair.First, &pair.Second); err != nil {
			return nil, fmt.Errorf("failed to scan pair of %q: %w", job, err)
		}
		pairs.Add(pair)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pairs of %q: %w", job, err)
	}
	return pairs, nil
}

func schemaStatements(d sqlutil.Dialect, table string) []string {
	if d == sqlutil.SQLite {
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	job TEXT NOT NULL,
	first_frame INTEGER NOT NULL,
	second_frame INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (job, first_frame, second_frame)
)`, table),
			fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (run_id)", d.QuoteIdentifier(indexName(table)), table),
		}
	}
	return []string{fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s ("+
		"`id` BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY, "+
		"`run_id` CHAR(36) NOT NULL, "+
		"`job` VARCHAR(191) NOT NULL, "+
		"`first_frame` INT NOT NULL, "+
		"`second_frame` INT NOT NULL, "+
		"`created_at` TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP, "+
		"UNIQUE KEY `uq_job_pair` (`job`, `first_frame`, `second_frame`), "+
		"KEY `idx_run` (`run_id`)"+
		") ENGINE=InnoDB", table)}
}

// indexName derives the run_id index name from a quoted table name.
func indexName(quotedTable string) string {
	return quotedTable[1:len(quotedTable)-1] + "_run_id"
}
