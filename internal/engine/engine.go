// Package engine composes location intelligence, permit classification, and
// load calculation into a single determination record for downstream
// document generation. The engine is request-scoped and stateless between
// calls.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/permit-engine/internal/classifier"
	"github.com/jonathan/permit-engine/internal/loadcalc"
	"github.com/jonathan/permit-engine/internal/location"
	"github.com/jonathan/permit-engine/internal/observability"
	"github.com/jonathan/permit-engine/internal/types"
)

// Engine is the requirements determination composition root
type Engine struct {
	analyzer   *location.Analyzer
	classifier *classifier.Classifier
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// New wires the engine from its components
func New(analyzer *location.Analyzer, cls *classifier.Classifier, logger *zap.Logger, metrics *observability.Metrics) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &Engine{
		analyzer:   analyzer,
		classifier: cls,
		logger:     logger,
		metrics:    metrics,
	}
}

// AnalyzeLocation resolves an address into a complete location analysis
func (e *Engine) AnalyzeLocation(ctx context.Context, street, city, state, zip string) *types.LocationAnalysis {
	defer e.observe("analyze_location", time.Now())
	return e.analyzer.Analyze(ctx, street, city, state, zip)
}

// ClassifyPermit decides the permit category for a job
func (e *Engine) ClassifyPermit(ctx context.Context, req *types.PermitJobRequest) (*types.PermitClassification, error) {
	defer e.observe("classify_permit", time.Now())
	return e.classifier.Classify(ctx, req)
}

// CalculateLoad runs the requested load calculator against a building
func (e *Engine) CalculateLoad(input *types.BuildingInput, variant types.CalculatorVariant) (*types.LoadCalculationResult, error) {
	defer e.observe("calculate_load", time.Now())
	return loadcalc.ForVariant(variant).Calculate(input)
}

// Determine produces the merged decision record. Location analysis runs
// first; classification and load calculation then run concurrently, with the
// classifier consulting the resolved county and city. The building input is
// optional: without it the decision carries no load result.
func (e *Engine) Determine(ctx context.Context, req *types.PermitJobRequest, building *types.BuildingInput) (*types.Decision, error) {
	if req == nil {
		return nil, fmt.Errorf("permit job request is required")
	}
	defer e.observe("determine", time.Now())

	analysis := e.analyzer.Analyze(ctx, req.Address.Street, req.Address.City, req.Address.State, req.Address.Zip)

	// Classification consults the resolved location without mutating the
	// caller's request
	enriched := *req
	enriched.Address = analysis.Address

	var (
		classification *types.PermitClassification
		load           *types.LoadCalculationResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		classification, err = e.classifier.Classify(gctx, &enriched)
		return err
	})
	if building != nil {
		input := *building
		if input.City == "" {
			input.City = analysis.Address.City
		}
		if input.County == "" {
			input.County = analysis.Address.County
		}
		variant := variantFor(analysis)
		g.Go(func() error {
			var err error
			load, err = loadcalc.ForVariant(variant).Calculate(&input)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.metrics.Determinations.Inc()
	decision := &types.Decision{
		ID:             uuid.New(),
		Location:       analysis,
		Classification: classification,
		Load:           load,
		GeneratedAt:    time.Now().UTC(),
	}
	e.logger.Info("determination complete",
		zap.String("decision_id", decision.ID.String()),
		zap.String("category", classification.Category),
		zap.String("county", analysis.Address.County),
	)
	return decision, nil
}

// variantFor prefers the envelope-physics calculator when the location
// resolved with high confidence, falling back to the rule of thumb otherwise
func variantFor(analysis *types.LocationAnalysis) types.CalculatorVariant {
	if analysis.Confidence == types.ConfidenceHigh {
		return types.CalculatorManualJ
	}
	return types.CalculatorSimplified
}

func (e *Engine) observe(endpoint string, start time.Time) {
	e.metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
