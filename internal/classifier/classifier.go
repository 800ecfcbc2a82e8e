// Package classifier decides the permit category and code for an HVAC job.
// Classification is an explicit two-stage pipeline: a deterministic rule
// table always runs first, and only jobs the confidence predicate marks as
// low are escalated to the AI provider. The decision method is recorded on
// every result so the escalation policy stays auditable.
package classifier

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/permit-engine/internal/llm"
	"github.com/jonathan/permit-engine/internal/observability"
	"github.com/jonathan/permit-engine/internal/prompts"
	"github.com/jonathan/permit-engine/internal/schemas"
	"github.com/jonathan/permit-engine/internal/types"
)

// Disclaimers appended when the low-confidence path cannot use AI
const (
	disclaimerNoAI     = "Rule confidence is low and no AI classifier is configured; manual verification with the permitting office is recommended"
	disclaimerAIFailed = "AI classification was unavailable; result is rule-based and should be verified manually"
)

// Classifier is the permit classification component. Stateless between
// calls; safe for concurrent use.
type Classifier struct {
	ai      llm.Client // nil disables escalation
	tier    llm.ModelTier
	logger  *zap.Logger
	metrics *observability.Metrics
}

// New creates a classifier. A nil AI client disables escalation: low
// confidence jobs then return the rule result with a disclaimer.
func New(ai llm.Client, logger *zap.Logger, metrics *observability.Metrics) *Classifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = observability.NewMetricsForTesting()
	}
	return &Classifier{
		ai:      ai,
		tier:    llm.TierLite,
		logger:  logger,
		metrics: metrics,
	}
}

// Classify runs the two-stage pipeline. The returned classification is
// always internally consistent; AI failures fall back to the rule result
// with an appended disclaimer rather than propagating an error.
func (c *Classifier) Classify(ctx context.Context, req *types.PermitJobRequest) (*types.PermitClassification, error) {
	if req == nil {
		return nil, fmt.Errorf("permit job request is required")
	}

	ruleResult := evaluateRules(req)

	if assessConfidence(req) == confidenceHigh {
		c.metrics.Classifications.WithLabelValues(string(types.DecisionRules)).Inc()
		return ruleResult, nil
	}

	if c.ai == nil {
		ruleResult.SpecialConsiderations = append(ruleResult.SpecialConsiderations, disclaimerNoAI)
		c.metrics.Classifications.WithLabelValues(string(types.DecisionRules)).Inc()
		return ruleResult, nil
	}

	c.metrics.AIEscalations.Inc()
	aiResult, err := c.classifyWithAI(ctx, req)
	if err != nil {
		c.logger.Warn("AI escalation failed, using rule result", zap.Error(err))
		c.metrics.AIFallbacks.Inc()
		ruleResult.SpecialConsiderations = append(ruleResult.SpecialConsiderations, disclaimerAIFailed)
		c.metrics.Classifications.WithLabelValues(string(types.DecisionRules)).Inc()
		return ruleResult, nil
	}

	c.metrics.Classifications.WithLabelValues(string(types.DecisionAI)).Inc()
	return aiResult, nil
}

// classifyWithAI builds the structured prompt, calls the provider, and
// parses the schema-checked response into the shared result shape
func (c *Classifier) classifyWithAI(ctx context.Context, req *types.PermitJobRequest) (*types.PermitClassification, error) {
	prompt := buildClassificationPrompt(req)

	responseText, err := c.ai.GenerateJSON(ctx, prompt, c.tier)
	if err != nil {
		return nil, &AIError{Message: "provider call failed", Cause: err}
	}

	responseText = llm.CleanJSONBlock(responseText)
	if err := schemas.ValidateString(schemas.ClassificationSchema, responseText); err != nil {
		return nil, &ParseError{Message: "response failed schema validation", Cause: err}
	}

	var result types.PermitClassification
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}
	result.DecisionMethod = types.DecisionAI
	if result.SpecialConsiderations == nil {
		result.SpecialConsiderations = []string{}
	}
	return &result, nil
}

// buildClassificationPrompt fills the embedded template with job attributes
func buildClassificationPrompt(req *types.PermitJobRequest) string {
	template := prompts.MustGet("classification.json", "classify-permit")
	return prompts.Format(template, map[string]string{
		"EquipmentType":     string(req.EquipmentType),
		"JobType":           string(req.JobType),
		"BTU":               fmt.Sprintf("%.0f", req.BTU),
		"Tonnage":           fmt.Sprintf("%.1f", req.Tonnage),
		"PropertyType":      string(req.PropertyType),
		"County":            req.Address.County,
		"City":              req.Address.City,
		"AdditionalDetails": req.AdditionalDetails,
	})
}
