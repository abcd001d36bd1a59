package storage

const (
	createChunksTableQuery = `
		CREATE TABLE IF NOT EXISTS chunks (
			id SERIAL PRIMARY KEY,
			chapter INT NOT NULL,
			section VARCHAR(255) NOT NULL,
			content TEXT NOT NULL,
			embedding_id VARCHAR(255),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`

	createSessionsTableQuery = `
		CREATE TABLE IF NOT EXISTS chat_sessions (
			id SERIAL PRIMARY KEY,
			query TEXT NOT NULL,
			response TEXT NOT NULL,
			confidence FLOAT,
			sources JSONB,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`

	createChapterIndexQuery = `CREATE INDEX IF NOT EXISTS idx_chapter ON chunks(chapter)`
	createSectionIndexQuery = `CREATE INDEX IF NOT EXISTS idx_section ON chunks(section)`

	insertChunkQuery = `
		INSERT INTO chunks (chapter, section, content, embedding_id)
		VALUES ($1, $2, $3, $4)
	`

	truncateAllQuery = `TRUNCATE TABLE chunks, chat_sessions RESTART IDENTITY`

	getChunkCountQuery = `SELECT COUNT(*) FROM chunks`

	// one row per (chapter, section), newest first
	listDocumentsQuery = `
		SELECT MIN(id) AS id, chapter, section, MAX(created_at) AS created_at
		FROM chunks
		GROUP BY chapter, section
		ORDER BY MAX(created_at) DESC, MIN(id) DESC
		LIMIT $1
	`

	insertSessionQuery = `
		INSERT INTO chat_sessions (query, response, confidence, sources)
		VALUES ($1, $2, $3, $4::jsonb)
	`

	getSessionCountQuery = `SELECT COUNT(*) FROM chat_sessions`
)
