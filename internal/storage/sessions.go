package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// appends one row to chat_sessions
func (c *Client) InsertSession(ctx context.Context, s Session) error {
	sources := s.Sources
	if sources == nil {
		sources = []string{}
	}

	data, err := json.Marshal(sources)
	if err != nil {
		return fmt.Errorf("failed to marshal sources: %w", err)
	}

	_, err = c.pool.Exec(ctx, insertSessionQuery,
		s.Query,
		s.Response,
		s.Confidence,
		string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to insert chat session: %w", err)
	}

	return nil
}

func (c *Client) GetSessionCount(ctx context.Context) (int, error) {
	var count int

	if err := c.pool.QueryRow(ctx, getSessionCountQuery).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to get session count: %w", err)
	}

	return count, nil
}
