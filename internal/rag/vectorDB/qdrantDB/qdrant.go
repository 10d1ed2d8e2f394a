package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/qdrant/go-client/qdrant"

	"github.com/nsharath/TravelRAG/internal/config"
	"github.com/nsharath/TravelRAG/internal/rag/vectorDB"
	"github.com/nsharath/TravelRAG/pkg/logger_i"
)

var dimension = uint64(config.EmbeddingOutputDimensionality)

type Index struct {
	client         *qdrant.Client
	collectionName string
	logger         *logger_i.Logger
}

// NewIndex connects to Qdrant over gRPC and makes sure the page collection
// exists with the expected dimension and cosine distance. Host and port come
// from the environment, falling back to the local defaults.
func NewIndex(ctx context.Context) (*Index, error) {
	logger := logger_i.NewLogger("Qdrant")

	host := config.EnvOr("QDRANT_HOST", config.QdrantHost)
	port := config.QdrantGrpcPort
	if p, err := strconv.Atoi(config.EnvOr("QDRANT_PORT", "")); err == nil {
		port = p
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		return nil, fmt.Errorf("could not connect to qdrant: %w", err)
	}

	index := &Index{
		client:         client,
		collectionName: config.CollectionName,
		logger:         logger,
	}
	if err := index.ensureCollection(ctx); err != nil {
		return nil, fmt.Errorf("could not create collection %s: %w", config.CollectionName, err)
	}
	return index, nil
}

func (db *Index) ensureCollection(ctx context.Context) error {
	if db.collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := db.client.CollectionExists(ctx, db.collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	return db.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: db.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
}

func (db *Index) Upsert(ctx context.Context, records []vectorDB.Record) error {
	points := make([]*qdrant.PointStruct, len(records))
	for i, record := range records {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(record.Id),
			Vectors: qdrant.NewVectors(record.Vector...),
			Payload: qdrant.NewValueMap(map[string]any{
				"url":  record.URL,
				"text": record.Text,
			}),
		}
	}

	_, err := db.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: db.collectionName,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}
	return nil
}

func (db *Index) Query(ctx context.Context, vector []float32, k int) ([]vectorDB.Match, error) {
	result, err := db.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: db.collectionName,
		Query:          qdrant.NewQuery(vector...),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		db.logger.Error("Error querying Qdrant", "error", err)
		return nil, err
	}

	matches := make([]vectorDB.Match, 0, len(result))
	for _, hit := range result {
		matches = append(matches, vectorDB.Match{
			Id:    hit.Id.GetUuid(),
			Score: hit.Score,
			URL:   hit.Payload["url"].GetStringValue(),
			Text:  hit.Payload["text"].GetStringValue(),
		})
	}
	return matches, nil
}

// Close releases the underlying gRPC connection.
func (db *Index) Close() error {
	return db.client.Close()
}
