package scoring

import "github.com/credlens/credlens/internal/report"

// FeatureCount is the fixed input width of the scoring model.
const FeatureCount = 5

// Placeholder values substituted when a credit-report document carries no
// rent or subscription information of its own. These are deliberate modeling
// constants inherited from the fitted model's training setup; changing them
// invalidates the recorded score baselines.
const (
	DefaultMonthlyRent         = 20000.0
	DefaultActiveSubscriptions = 2.0
)

// FeatureNames is the canonical feature order the model was fitted against.
var FeatureNames = [FeatureCount]string{
	"credit_utilization",
	"open_accounts",
	"missed_payments",
	"monthly_rent",
	"active_subscriptions",
}

// Vector is a feature vector in canonical order. Its length never varies
// with input.
type Vector [FeatureCount]float64

// ForDocument builds the vector for the document-only path, where the
// report text carries no rent figure or subscription count.
func ForDocument(f report.Fields) Vector {
	return Vector{
		utilizationOrZero(f),
		float64(f.OpenAccounts),
		float64(f.MissedPaymentCount()),
		DefaultMonthlyRent,
		DefaultActiveSubscriptions,
	}
}

// ForSummary builds the vector from a consolidated summary. The detected
// subscription count replaces the placeholder; rent amounts are opaque
// strings at this layer, so the placeholder rent stands in.
func ForSummary(s report.Summary) Vector {
	v := ForDocument(s.Fields)
	v[4] = float64(len(s.ActiveSubscriptions))
	return v
}

// FromMap builds the vector from caller-supplied raw feature values, as on
// the direct-prediction path. Missing names default to zero; values are
// passed through unvalidated.
func FromMap(features map[string]float64) Vector {
	var v Vector
	for i, name := range FeatureNames {
		v[i] = features[name]
	}
	return v
}

func utilizationOrZero(f report.Fields) float64 {
	if f.CreditUtilizationPercent == nil {
		return 0
	}
	return *f.CreditUtilizationPercent
}
