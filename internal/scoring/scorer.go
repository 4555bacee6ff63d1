package scoring

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"ngfw-ml-scoring/internal/model"
)

// ModelInfo is implemented by classifiers that can describe their schema.
// The health endpoint degrades gracefully for classifiers that cannot.
type ModelInfo interface {
	Classes() []string
	ColumnNames() []string
}

// Scorer turns request contexts into risk scores using the loaded
// classifier. It holds no mutable per-request state; the classifier handle
// is shared read-only across concurrent requests.
type Scorer struct {
	classifier    model.Classifier
	positiveClass string
	logger        *logrus.Logger
	metrics       *Metrics
	startTime     time.Time
}

// NewScorer creates a new scorer around a loaded classifier. positiveClass
// is the label whose probability becomes ml_risk; it comes from the artifact
// and was validated against the class labels at load time.
func NewScorer(classifier model.Classifier, positiveClass string, logger *logrus.Logger, metrics *Metrics) *Scorer {
	return &Scorer{
		classifier:    classifier,
		positiveClass: positiveClass,
		logger:        logger,
		metrics:       metrics,
		startTime:     time.Now(),
	}
}

// Score builds the single-row feature input from the request context, runs
// probability estimation and derives the risk tier. Any failure is total for
// this request; the scorer stays usable for the next one.
func (s *Scorer) Score(ctx context.Context, req *RequestContext) (*ScoreResult, error) {
	startTime := time.Now()

	row := model.FeatureRow{
		"method":    req.Method,
		"path":      req.Path,
		"role":      req.Role,
		"userId":    req.UserID,
		"userAgent": req.UserAgent,
		"risk_rule": *req.RiskRule,
	}

	probas, err := s.classifier.PredictProba(row)
	if err != nil {
		s.metrics.RecordFailure(time.Since(startTime))
		return nil, fmt.Errorf("probability estimation: %w", err)
	}

	proba, ok := probas[s.positiveClass]
	if !ok {
		s.metrics.RecordFailure(time.Since(startTime))
		return nil, fmt.Errorf("class %q missing from model output", s.positiveClass)
	}

	label := RiskTier(proba)
	s.metrics.RecordSuccess(time.Since(startTime), label)

	s.logger.WithFields(logrus.Fields{
		"ml_risk":     proba,
		"ml_label":    label,
		"duration_ms": time.Since(startTime).Milliseconds(),
	}).Debug("Request scored")

	return &ScoreResult{MLRisk: proba, MLLabel: label}, nil
}

// Health returns the service health report.
func (s *Scorer) Health() *HealthStatus {
	health := &HealthStatus{
		Status:         "ok",
		Service:        ServiceName,
		Version:        Version,
		UptimeSeconds:  time.Since(s.startTime).Seconds(),
		RequestsServed: s.metrics.RequestsServed(),
	}

	if info, ok := s.classifier.(ModelInfo); ok {
		health.ModelClasses = info.Classes()
		health.FeatureColumns = len(info.ColumnNames())
	}

	return health
}
