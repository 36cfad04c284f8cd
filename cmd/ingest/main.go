package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/TruLie13/El-Paso-AI/internal/config"
	"github.com/TruLie13/El-Paso-AI/internal/ingest"
	"github.com/TruLie13/El-Paso-AI/internal/llm"
	"github.com/TruLie13/El-Paso-AI/internal/storage"
	"github.com/TruLie13/El-Paso-AI/internal/vectorstore"
)

func main() {
	corpusFlag := flag.String("corpus", "", "path to the OCR text cache (overrides CORPUS_PATH)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))

	corpusPath := cfg.CorpusPath
	if *corpusFlag != "" {
		corpusPath = *corpusFlag
	}

	corpus, err := os.ReadFile(corpusPath)
	if err != nil {
		log.Fatalf("Failed to read corpus file %s: %v", corpusPath, err)
	}
	slog.Info("Corpus loaded", "path", corpusPath, "bytes", len(corpus))

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	ctx := context.Background()

	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModelName, cfg.QdrantVectorSize, 0)

	pipeline := ingest.NewPipeline(
		storage.NewSectionRepo(db),
		storage.NewChunkRepo(db),
		embedder,
		vectorStore,
		cfg.QdrantCollection,
	)

	stats, err := pipeline.Run(ctx, string(corpus))
	if stats != nil {
		summary, _ := json.MarshalIndent(stats, "", "  ")
		os.Stdout.Write(summary)
		os.Stdout.Write([]byte("\n"))
	}
	if err != nil {
		log.Fatalf("Ingestion failed: %v", err)
	}
	slog.Info("Ingestion finished",
		"sections", stats.SectionsStored, "chunks", stats.ChunksEmbedded)
}
