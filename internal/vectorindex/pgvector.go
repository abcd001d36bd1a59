package vectorindex

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
)

const (
	createVectorExtensionQuery = `CREATE EXTENSION IF NOT EXISTS vector`

	createPointsTableQuery = `
		CREATE TABLE IF NOT EXISTS textbook_points (
			id BIGINT PRIMARY KEY,
			embedding_id TEXT NOT NULL,
			chapter INTEGER NOT NULL,
			section TEXT NOT NULL,
			content TEXT NOT NULL,
			chunk_index INTEGER NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			embedding vector(%d) NOT NULL
		)
	`

	truncatePointsQuery = `TRUNCATE TABLE textbook_points`

	upsertPointQuery = `
		INSERT INTO textbook_points (id, embedding_id, chapter, section, content, chunk_index, source, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			embedding_id = EXCLUDED.embedding_id,
			chapter = EXCLUDED.chapter,
			section = EXCLUDED.section,
			content = EXCLUDED.content,
			chunk_index = EXCLUDED.chunk_index,
			source = EXCLUDED.source,
			embedding = EXCLUDED.embedding
	`

	searchPointsQuery = `
		SELECT id, embedding_id, chapter, section, content, chunk_index, source,
			1 - (embedding <=> $1) AS score
		FROM textbook_points
		ORDER BY embedding <=> $1
		LIMIT $2
	`

	deletePointsQuery = `DELETE FROM textbook_points WHERE id = ANY($1)`

	undefinedTableCode = "42P01"
)

// PGVector keeps points in a postgres table using the pgvector extension.
type PGVector struct {
	pool      *pgxpool.Pool
	dimension int
}

func NewPGVector(pool *pgxpool.Pool, dimension int) *PGVector {
	return &PGVector{pool: pool, dimension: dimension}
}

func (p *PGVector) Name() string {
	return "pgvector"
}

func (p *PGVector) EnsureCollection(ctx context.Context) error {
	if _, err := p.pool.Exec(ctx, createVectorExtensionQuery); err != nil {
		return fmt.Errorf("failed to enable vector extension: %w", err)
	}

	if _, err := p.pool.Exec(ctx, fmt.Sprintf(createPointsTableQuery, p.dimension)); err != nil {
		return fmt.Errorf("failed to create points table: %w", err)
	}

	return nil
}

// empties the table in place so concurrent searches never see it missing
func (p *PGVector) Reset(ctx context.Context) error {
	if err := p.EnsureCollection(ctx); err != nil {
		return err
	}

	if _, err := p.pool.Exec(ctx, truncatePointsQuery); err != nil {
		return fmt.Errorf("failed to truncate points table: %w", err)
	}

	return nil
}

func (p *PGVector) Upsert(ctx context.Context, points []Point) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// no-op once committed
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}
	for _, pt := range points {
		batch.Queue(upsertPointQuery,
			pt.ID,
			pt.Payload.EmbeddingID,
			pt.Payload.Chapter,
			pt.Payload.Section,
			pt.Payload.Content,
			pt.Payload.ChunkIndex,
			pt.Payload.Source,
			pgvector.NewVector(pt.Vector),
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range points {
		if _, err := br.Exec(); err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to upsert point %d: %w", i, err)
		}
	}

	// batch results must be closed before commit
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (p *PGVector) Search(ctx context.Context, vector []float32, limit int) ([]Match, error) {
	if limit <= 0 {
		limit = 5
	}

	rows, err := p.pool.Query(ctx, searchPointsQuery, pgvector.NewVector(vector), limit)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var matches []Match

	for rows.Next() {
		var m Match
		err := rows.Scan(
			&m.ID,
			&m.Payload.EmbeddingID,
			&m.Payload.Chapter,
			&m.Payload.Section,
			&m.Payload.Content,
			&m.Payload.ChunkIndex,
			&m.Payload.Source,
			&m.Score,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return matches, nil
}

func (p *PGVector) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	if _, err := p.pool.Exec(ctx, deletePointsQuery, ids); err != nil {
		return fmt.Errorf("failed to delete points: %w", err)
	}

	return nil
}

func (p *PGVector) Ping(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// a missing points table reads as an empty collection
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode
}
