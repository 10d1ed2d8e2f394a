package rag

import "fmt"

// Stage identifies which external dependency failed. Exactly one stage exists
// per external call on the query and ingestion paths.
type Stage string

const (
	StageFetch        Stage = "fetch"
	StageEmbedding    Stage = "embedding"
	StageVectorSearch Stage = "vector_search"
	StageUpsert       Stage = "upsert"
	StageGeneration   Stage = "generation"
	StagePersistence  Stage = "persistence"
)

// StageError wraps a failure from an external call boundary so callers can
// tell which stage failed while keeping the original cause's message.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s error: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage Stage, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
