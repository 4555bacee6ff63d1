package scoring

// ServiceName is the static identity reported by the health endpoint.
const ServiceName = "AI-NGFW ML model"

// Version of the scoring service.
const Version = "1.0.0"

// RequestContext is the incoming record to score. Field names match the
// feature schema the classifier artifact was trained on. RiskRule is a
// pointer so that an absent field fails validation while 0 stays a legal
// value.
type RequestContext struct {
	Method    string   `json:"method" binding:"required"`
	Path      string   `json:"path" binding:"required"`
	Role      string   `json:"role" binding:"required"`
	UserID    string   `json:"userId" binding:"required"`
	UserAgent string   `json:"userAgent" binding:"required"`
	RiskRule  *float64 `json:"risk_rule" binding:"required"`
}

// ScoreResult is the scoring outcome returned to the caller.
type ScoreResult struct {
	MLRisk  float64 `json:"ml_risk"`
	MLLabel string  `json:"ml_label"`
}

// Risk tiers derived from the predicted attack probability.
const (
	TierNormal     = "normal"
	TierMediumRisk = "medium_risk"
	TierHighRisk   = "high_risk"
)

// RiskTier maps an attack probability to its risk tier. Total over [0, 1].
func RiskTier(proba float64) string {
	switch {
	case proba < 0.3:
		return TierNormal
	case proba < 0.6:
		return TierMediumRisk
	default:
		return TierHighRisk
	}
}

// HealthStatus is the extended health report of the scoring service.
type HealthStatus struct {
	Status         string   `json:"status"`
	Service        string   `json:"service"`
	Version        string   `json:"version"`
	UptimeSeconds  float64  `json:"uptime_seconds"`
	RequestsServed int64    `json:"requests_served"`
	ModelClasses   []string `json:"model_classes,omitempty"`
	FeatureColumns int      `json:"feature_columns,omitempty"`
}
