package grafana

import "fmt"

// typeMapping binds one recognized decision value type to the query function
// shape and Y-axis label its panels use. The mapping is fixed at compile time
// and never mutated, so concurrent synthesis calls need no locking.
type typeMapping struct {
	shape FunctionShape
	yAxis string
}

// supportedTypes is the full set of decision value types that yield a panel.
// Types absent from this map are "not recognized", which is an expected
// condition and never an error: the decision is skipped with a warning.
var supportedTypes = map[string]typeMapping{
	"boolean":                   {shape: FunctionCounterIncrease, yAxis: "Occurrences"},
	"string":                    {shape: FunctionCounterIncrease, yAxis: "Occurrences"},
	"number":                    {shape: FunctionHistogramQuantile, yAxis: "Value"},
	"date":                      {shape: FunctionGaugeValue, yAxis: "Seconds since epoch"},
	"date and time":             {shape: FunctionGaugeValue, yAxis: "Seconds since epoch"},
	"time":                      {shape: FunctionGaugeValue, yAxis: "Seconds"},
	"days and time duration":    {shape: FunctionGaugeValue, yAxis: "Seconds"},
	"years and months duration": {shape: FunctionGaugeValue, yAxis: "Months"},
}

// IsSupported reports whether decisions of the given value type are
// visualizable.
func IsSupported(typeName string) bool {
	_, ok := supportedTypes[typeName]
	return ok
}

// FunctionFor returns the query function shape for a supported value type.
// Calling it for an unsupported type is a defect in the registry's own
// construction, not bad input, so it panics rather than returning an error.
func FunctionFor(typeName string) FunctionShape {
	m, ok := supportedTypes[typeName]
	if !ok {
		panic(fmt.Sprintf("no query function registered for supported type %q", typeName))
	}
	return m.shape
}

// YAxisLabelFor returns the Y-axis label for a supported value type. Same
// contract as FunctionFor: only defined for supported types.
func YAxisLabelFor(typeName string) string {
	m, ok := supportedTypes[typeName]
	if !ok {
		panic(fmt.Sprintf("no Y-axis label registered for supported type %q", typeName))
	}
	return m.yAxis
}
