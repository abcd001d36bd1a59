package rag

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/hamza49699/physical-ai-textbook/internal/chunker"
	"github.com/hamza49699/physical-ai-textbook/internal/composer"
	"github.com/hamza49699/physical-ai-textbook/internal/embedder"
	"github.com/hamza49699/physical-ai-textbook/internal/logger"
	"github.com/hamza49699/physical-ai-textbook/internal/retriever"
	"github.com/hamza49699/physical-ai-textbook/internal/storage"
	"github.com/hamza49699/physical-ai-textbook/internal/vectorindex"
	"golang.org/x/sync/errgroup"
)

// Service wires the embedder, index, store and composer into the query and ingest pipelines.
type Service struct {
	store     Store
	index     vectorindex.Index
	embedder  *embedder.HashEmbedder
	retriever *retriever.Retriever
	composer  composer.Composer
	config    Config
}

func New(store Store, index vectorindex.Index, r *retriever.Retriever, c composer.Composer, cfg Config) *Service {
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}

	if cfg.VectorTimeout <= 0 {
		cfg.VectorTimeout = defaultVectorTimeout
	}

	if cfg.Chunking.MaxSize <= 0 {
		cfg.Chunking = chunker.DefaultOptions()
	}

	return &Service{
		store:     store,
		index:     index,
		embedder:  embedder.New(),
		retriever: r,
		composer:  c,
		config:    cfg,
	}
}

func (s *Service) ComposerMode() string {
	return s.composer.Mode()
}

func (s *Service) IndexName() string {
	return s.index.Name()
}

// Query answers a question from the indexed textbook and logs the exchange.
// chapter is recorded for diagnostics only.
func (s *Service) Query(ctx context.Context, query string, chapter *int) (*Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	log := logger.FromContext(ctx)
	start := time.Now()

	vector := s.embedder.Encode(query)

	searchCtx, cancel := context.WithTimeout(ctx, s.config.VectorTimeout)
	result, err := s.retriever.Retrieve(searchCtx, vector, s.config.TopK)
	cancel()

	if err != nil {
		return nil, fmt.Errorf("retrieval failed: %w", err)
	}

	response := s.composer.Compose(ctx, query, result)

	answer := &Answer{
		Query:      query,
		Response:   response,
		Sources:    result.Sources,
		Confidence: result.Confidence,
	}

	s.logSession(ctx, answer)

	attrs := []any{
		"out_of_scope", result.OutOfScope,
		"considered", result.Considered,
		"accepted", len(result.Chunks),
		"total_score", result.TotalScore,
		"confidence", result.Confidence,
		"mode", s.composer.Mode(),
		"duration_ms", time.Since(start).Milliseconds(),
	}
	if chapter != nil {
		attrs = append(attrs, "chapter", *chapter)
	}

	log.Info("query answered", attrs...)

	return answer, nil
}

// session logging never fails the query
func (s *Service) logSession(ctx context.Context, answer *Answer) {
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.StoreTimeout)
	defer cancel()

	err := s.store.InsertSession(storeCtx, storage.Session{
		Query:      answer.Query,
		Response:   answer.Response,
		Confidence: answer.Confidence,
		Sources:    answer.Sources,
	})

	if err != nil {
		logger.FromContext(ctx).Error("failed to save chat session", "error", err)
	}
}

// Ingest chunks, embeds and indexes a document, then records chunk metadata.
// when the metadata write fails the freshly indexed points are removed again.
func (s *Service) Ingest(ctx context.Context, doc Document) (*IngestResult, error) {
	if err := validateDocument(doc); err != nil {
		return nil, err
	}

	chunks := chunker.Split(doc.Content, s.config.Chunking)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%w: content has no words", ErrInvalidDocument)
	}

	vectors := s.embedder.EncodeAll(chunks)

	points := make([]vectorindex.Point, len(chunks))
	records := make([]storage.ChunkRecord, len(chunks))
	ids := make([]int64, len(chunks))

	for i, content := range chunks {
		embeddingID := uuid.NewString()
		ids[i] = vectorindex.NewPointID()

		points[i] = vectorindex.Point{
			ID:     ids[i],
			Vector: vectors[i],
			Payload: vectorindex.Payload{
				EmbeddingID: embeddingID,
				Chapter:     doc.Chapter,
				Section:     doc.Section,
				Content:     content,
				ChunkIndex:  i,
				Source:      doc.Title,
			},
		}

		records[i] = storage.ChunkRecord{
			Chapter:     doc.Chapter,
			Section:     doc.Section,
			Content:     content,
			EmbeddingID: embeddingID,
		}
	}

	vectorCtx, cancel := context.WithTimeout(ctx, s.config.VectorTimeout)
	err := s.index.Upsert(vectorCtx, points)
	cancel()

	if err != nil {
		return nil, fmt.Errorf("failed to index chunks: %w", err)
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	err = s.store.InsertChunks(storeCtx, records)
	cancel()

	if err != nil {
		s.removePoints(ctx, ids)
		return nil, fmt.Errorf("failed to store chunk metadata: %w", err)
	}

	logger.FromContext(ctx).Info("document ingested",
		"title", doc.Title,
		"chapter", doc.Chapter,
		"section", doc.Section,
		"chunks", len(chunks),
	)

	return &IngestResult{
		Title:             doc.Title,
		Chapter:           doc.Chapter,
		Section:           doc.Section,
		ChunksCreated:     len(chunks),
		EmbeddingsCreated: len(vectors),
	}, nil
}

// best effort; a failure leaves orphan points that the next reset clears
func (s *Service) removePoints(ctx context.Context, ids []int64) {
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.config.VectorTimeout)
	defer cancel()

	if err := s.index.Delete(cleanupCtx, ids); err != nil {
		logger.FromContext(ctx).Error("failed to remove orphaned points",
			"points", len(ids),
			"error", err,
		)
	}
}

func validateDocument(doc Document) error {
	var missing []string

	if strings.TrimSpace(doc.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(doc.Section) == "" || utf8.RuneCountInString(doc.Section) > MaxSectionLength {
		missing = append(missing, "section")
	}
	if strings.TrimSpace(doc.Content) == "" {
		missing = append(missing, "content")
	}
	if doc.Chapter < 0 {
		missing = append(missing, "chapter")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, strings.Join(missing, ", "))
	}

	return nil
}

// Reset recreates the vector collection and empties chunks and chat_sessions.
func (s *Service) Reset(ctx context.Context) error {
	vectorCtx, cancel := context.WithTimeout(ctx, s.config.VectorTimeout)
	err := s.index.Reset(vectorCtx)
	cancel()

	if err != nil {
		return fmt.Errorf("failed to reset vector index: %w", err)
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	err = s.store.Truncate(storeCtx)
	cancel()

	if err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}

	logger.FromContext(ctx).Warn("knowledge base reset", "index", s.index.Name())

	return nil
}

// Documents lists distinct ingested (chapter, section) pairs, newest first.
func (s *Service) Documents(ctx context.Context, limit int) ([]storage.DocumentSummary, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	docs, err := s.store.ListDocuments(storeCtx, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	return docs, nil
}

// clamps a documents page size into [1, MaxDocumentsLimit]
func ClampLimit(limit int) int {
	if limit < 1 {
		return 1
	}

	if limit > MaxDocumentsLimit {
		return MaxDocumentsLimit
	}

	return limit
}

func (s *Service) CheckDatabase(ctx context.Context) error {
	storeCtx, cancel := context.WithTimeout(ctx, s.config.StoreTimeout)
	defer cancel()

	return s.store.Ping(storeCtx)
}

func (s *Service) CheckVectorIndex(ctx context.Context) error {
	vectorCtx, cancel := context.WithTimeout(ctx, s.config.VectorTimeout)
	defer cancel()

	return s.index.Ping(vectorCtx)
}

// Health probes both stores concurrently. it never fails; each dependency
// reports "connected" or "error".
func (s *Service) Health(ctx context.Context) HealthReport {
	report := HealthReport{
		Status:         "ok",
		Database:       StatusConnected,
		VectorIndex:    StatusConnected,
		EmbeddingModel: s.embedder.Name(),
		Version:        Version,
	}

	var g errgroup.Group

	g.Go(func() error {
		if err := s.CheckDatabase(ctx); err != nil {
			logger.FromContext(ctx).Warn("database health check failed", "error", err)
			report.Database = StatusDisconnected
		}
		return nil
	})

	g.Go(func() error {
		if err := s.CheckVectorIndex(ctx); err != nil {
			logger.FromContext(ctx).Warn("vector index health check failed", "error", err)
			report.VectorIndex = StatusDisconnected
		}
		return nil
	})

	_ = g.Wait()

	if report.Database != StatusConnected || report.VectorIndex != StatusConnected {
		report.Status = "degraded"
	}

	return report
}
