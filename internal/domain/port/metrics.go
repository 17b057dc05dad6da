package port

import (
	"context"
	"time"
)

// Failure reasons recorded by PredictionMetrics.RecordFailure.
const (
	FailureInvalidInput   = "invalid_input"
	FailureSchemaMismatch = "schema_mismatch"
	FailureScale          = "scale"
	FailurePredict        = "predict"
	FailureSave           = "save"
	FailurePublish        = "publish"
)

// PredictionMetrics records the outcome of prediction cycles.
type PredictionMetrics interface {
	RecordPrediction(ctx context.Context, outcome string, duration time.Duration)
	RecordFailure(ctx context.Context, reason string)
}
