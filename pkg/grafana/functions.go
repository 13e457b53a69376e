package grafana

import (
	"fmt"
	"strings"
)

// FunctionShape identifies one query-assembly strategy. The set is closed:
// every shape the registry hands out is matched exhaustively in Render.
type FunctionShape string

const (
	// FunctionCounterIncrease graphs how often a result was produced.
	FunctionCounterIncrease FunctionShape = "counter-increase"
	// FunctionHistogramQuantile graphs the p99 of a numeric result histogram.
	FunctionHistogramQuantile FunctionShape = "histogram-quantile"
	// FunctionGaugeValue graphs the raw sampled value.
	FunctionGaugeValue FunctionShape = "gauge-value"
)

// Label is a single equality assertion embedded in a query selector.
// The value is emitted exactly as given: callers quote string literals
// themselves, since numeric values must stay unquoted.
type Label struct {
	Key   string
	Value string
}

// Render assembles the query expression for a metric under the given shape.
// Label order is preserved exactly as supplied so that generated dashboards
// are reproducible. Render is pure: no state, no randomness, no escaping.
func Render(shape FunctionShape, metric string, labels []Label) string {
	switch shape {
	case FunctionCounterIncrease:
		return fmt.Sprintf("increase(%s[1m])", selector(metric+"_total", labels))
	case FunctionHistogramQuantile:
		return fmt.Sprintf("histogram_quantile(0.99, sum(rate(%s[1m])) by (le))", selector(metric+"_bucket", labels))
	case FunctionGaugeValue:
		return selector(metric, labels)
	default:
		panic(fmt.Sprintf("unknown query function shape %q", shape))
	}
}

func selector(metric string, labels []Label) string {
	if len(labels) == 0 {
		return metric
	}
	var b strings.Builder
	b.WriteString(metric)
	b.WriteByte('{')
	for i, l := range labels {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(l.Key)
		b.WriteByte('=')
		b.WriteString(l.Value)
	}
	b.WriteByte('}')
	return b.String()
}
