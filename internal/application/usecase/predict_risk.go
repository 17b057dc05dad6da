package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/loanrisk/internal/application/dto"
	"github.com/bibbank/loanrisk/internal/domain/model"
	"github.com/bibbank/loanrisk/internal/domain/port"
	"github.com/bibbank/loanrisk/internal/domain/service"
)

const tracerName = "github.com/bibbank/loanrisk/internal/application/usecase"

// PredictRiskUseCase runs one assemble -> scale -> classify cycle for a raw
// applicant record, persists the result and publishes its events.
type PredictRiskUseCase struct {
	features   model.FeatureList
	assembler  *service.FeatureAssembler
	scaler     port.Scaler
	classifier port.Classifier
	repo       port.PredictionRepository
	publisher  port.EventPublisher
	metrics    port.PredictionMetrics
	tracer     trace.Tracer
	logger     *slog.Logger
}

// NewPredictRiskUseCase wires dependencies. features, scaler and classifier
// are the artifacts loaded at startup and are never mutated.
func NewPredictRiskUseCase(
	features model.FeatureList,
	assembler *service.FeatureAssembler,
	scaler port.Scaler,
	classifier port.Classifier,
	repo port.PredictionRepository,
	publisher port.EventPublisher,
	metrics port.PredictionMetrics,
	logger *slog.Logger,
) *PredictRiskUseCase {
	return &PredictRiskUseCase{
		features:   features,
		assembler:  assembler,
		scaler:     scaler,
		classifier: classifier,
		repo:       repo,
		publisher:  publisher,
		metrics:    metrics,
		tracer:     otel.Tracer(tracerName),
		logger:     logger,
	}
}

// Execute validates the request and runs the full prediction cycle. The
// cycle either completes (saved and published) or returns an error.
func (uc *PredictRiskUseCase) Execute(ctx context.Context, req dto.PredictRiskRequest) (dto.PredictionResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "PredictRisk")
	defer span.End()

	start := time.Now()

	applicant, err := req.ToApplicant()
	if err != nil {
		return uc.fail(ctx, span, port.FailureInvalidInput, fmt.Errorf("invalid request: %w", err))
	}
	span.SetAttributes(attribute.String("loanrisk.purpose", applicant.Purpose.String()))

	if uc.assembler.PurposeColumnMissing(applicant, uc.features) {
		uc.logger.DebugContext(ctx, "purpose column absent from feature list, encoding as baseline",
			"purpose", applicant.Purpose.String(),
			"column", applicant.Purpose.Column(),
		)
	}

	vector, err := uc.assembler.Assemble(applicant, uc.features)
	if err != nil {
		return uc.fail(ctx, span, port.FailureSchemaMismatch, fmt.Errorf("failed to assemble features: %w", err))
	}

	scaled, err := uc.scaler.Transform(vector)
	if err != nil {
		return uc.fail(ctx, span, port.FailureScale, fmt.Errorf("failed to scale features: %w", err))
	}

	label, err := uc.classifier.Predict(scaled)
	if err != nil {
		return uc.fail(ctx, span, port.FailurePredict, fmt.Errorf("failed to predict: %w", err))
	}
	proba, err := uc.classifier.PredictProba(scaled)
	if err != nil {
		return uc.fail(ctx, span, port.FailurePredict, fmt.Errorf("failed to predict probabilities: %w", err))
	}

	prediction, err := model.NewPrediction(applicant, label, proba, vector.Width())
	if err != nil {
		return uc.fail(ctx, span, port.FailurePredict, fmt.Errorf("failed to create prediction: %w", err))
	}

	if err := uc.repo.Save(ctx, prediction); err != nil {
		return uc.fail(ctx, span, port.FailureSave, fmt.Errorf("failed to save prediction: %w", err))
	}

	if events := prediction.DomainEvents(); len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			uc.logger.ErrorContext(ctx, "failed to publish domain events",
				"error", err,
				"prediction_id", prediction.ID(),
				"event_count", len(events),
			)
			return uc.fail(ctx, span, port.FailurePublish, fmt.Errorf("failed to publish events: %w", err))
		}
	}

	uc.metrics.RecordPrediction(ctx, prediction.Outcome().String(), time.Since(start))
	span.SetAttributes(
		attribute.String("loanrisk.prediction_id", prediction.ID().String()),
		attribute.String("loanrisk.outcome", prediction.Outcome().String()),
		attribute.Int("loanrisk.feature_count", prediction.FeatureCount()),
	)

	uc.logger.InfoContext(ctx, "prediction completed",
		"prediction_id", prediction.ID(),
		"outcome", prediction.Outcome().String(),
		"probability", prediction.ProbabilityPercent(),
		"feature_count", prediction.FeatureCount(),
	)

	return dto.FromModel(prediction), nil
}

func (uc *PredictRiskUseCase) fail(ctx context.Context, span trace.Span, reason string, err error) (dto.PredictionResponse, error) {
	uc.metrics.RecordFailure(ctx, reason)
	span.RecordError(err)
	span.SetStatus(codes.Error, reason)

	if !errors.Is(err, model.ErrInvalidApplicant) {
		uc.logger.ErrorContext(ctx, "prediction failed", "reason", reason, "error", err)
	}
	return dto.PredictionResponse{}, err
}
