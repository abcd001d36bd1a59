package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"github.com/jackc/pgx/v5"
)

// inserts all records in a single transaction; either every row lands or none do
func (c *Client) InsertChunks(ctx context.Context, records []ChunkRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for _, r := range records {
		batch.Queue(insertChunkQuery,
			r.Chapter,
			r.Section,
			r.Content,
			r.EmbeddingID,
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := 0; i < len(records); i++ {
		_, err := br.Exec()
		if err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert chunk %d: %w", i, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// empties chunks and chat_sessions
func (c *Client) Truncate(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, truncateAllQuery); err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	return nil
}

// returns the total number of chunks in the database
func (c *Client) GetChunkCount(ctx context.Context) (int, error) {
	var count int

	err := c.pool.QueryRow(ctx, getChunkCountQuery).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get chunk count: %w", err)
	}

	return count, nil
}

// lists distinct (chapter, section) documents, most recently ingested first
func (c *Client) ListDocuments(ctx context.Context, limit int) ([]DocumentSummary, error) {
	rows, err := c.pool.Query(ctx, listDocumentsQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := []DocumentSummary{}

	for rows.Next() {
		var d DocumentSummary
		if err := rows.Scan(&d.ID, &d.Chapter, &d.Section, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}

		documents = append(documents, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating documents: %w", err)
	}

	return documents, nil
}
