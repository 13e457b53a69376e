package grafana

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/decisionops/dashgen/pkg/types"
)

const writerTemplate = `{
  "id": $id$,
  "uid": "$uid$",
  "title": "$handlerName$",
  "tags": ["$gavArtifactId$", "$gavVersion$"],
  "links": [],
  "panels": []
}`

var testCoord = types.BuildCoordinate{ArtifactID: "acme", Version: "1.0.0"}

func newTestWriter() *Writer {
	return &Writer{
		logger: zap.NewNop(),
		ids:    fakeIdentity{numericID: 99, uniqueID: "test-uid"},
		parse:  defaultParse,
	}
}

func strptr(s string) *string { return &s }

func TestGenerateOperationalDashboard(t *testing.T) {
	out, err := newTestWriter().GenerateOperationalDashboard(writerTemplate, "acme_1.0.0 - checkHandler", "checkHandler", testCoord, false)
	require.NoError(t, err)

	doc := decode(t, out)
	assert.Equal(t, "acme_1.0.0 - checkHandler - Operational Dashboard", doc["title"])
	assert.Equal(t, float64(99), doc["id"])
	assert.Equal(t, "test-uid", doc["uid"])
	assert.Empty(t, doc["links"])
}

func TestGenerateOperationalDashboardAuditLink(t *testing.T) {
	out, err := newTestWriter().GenerateOperationalDashboard(writerTemplate, "d", "h", testCoord, true)
	require.NoError(t, err)

	links := decode(t, out)["links"].([]any)
	require.Len(t, links, 1)
	link := links[0].(map[string]any)
	assert.Equal(t, "Audit UI", link["title"])
	assert.Equal(t, "${{urlPlaceholder}}", link["url"])
}

func TestGenerateDomainDecisionDashboardPanels(t *testing.T) {
	decisions := []types.DecisionDescriptor{
		{Name: "eligibility", ID: "_A", ValueType: strptr("boolean")},
		{Name: "rate", ID: "_B", ValueType: strptr("number")},
		{Name: "applicant", ID: "_C", ValueType: strptr("tPerson")},
		{Name: "untyped", ID: "_D"},
	}

	out, err := newTestWriter().GenerateDomainDecisionDashboard(writerTemplate, "loans", "loanEligibility", testCoord, decisions, false)
	require.NoError(t, err)

	panels := decode(t, out)["panels"].([]any)
	require.Len(t, panels, 2)

	first := panels[0].(map[string]any)
	assert.Equal(t, "Decision eligibility", first["title"])
	expr := first["targets"].([]any)[0].(map[string]any)["expr"].(string)
	assert.Equal(t, `increase(dmn_result_total{endpoint="loanEligibility",decision="eligibility",artifactId="acme",version="1.0.0"}[1m])`, expr)
	assert.Equal(t, "Occurrences", first["yaxes"].([]any)[0].(map[string]any)["label"])

	second := panels[1].(map[string]any)
	assert.Equal(t, "Decision rate", second["title"])
	expr = second["targets"].([]any)[0].(map[string]any)["expr"].(string)
	assert.True(t, strings.HasPrefix(expr, "histogram_quantile(0.99,"), expr)
	assert.Contains(t, expr, `decision="rate"`)
}

func TestGenerateDomainDecisionDashboardSkipsAllUnsupported(t *testing.T) {
	decisions := []types.DecisionDescriptor{
		{Name: "applicant", ID: "_C", ValueType: strptr("tPerson")},
		{Name: "untyped", ID: "_D"},
	}

	out, err := newTestWriter().GenerateDomainDecisionDashboard(writerTemplate, "loans", "loanEligibility", testCoord, decisions, false)
	require.NoError(t, err)

	assert.Empty(t, decode(t, out)["panels"])
}

func TestGenerateDomainRuleDashboard(t *testing.T) {
	out, err := newTestWriter().GenerateDomainRuleDashboard(writerTemplate, "fraud", "fraudCheck", testCoord, true)
	require.NoError(t, err)

	doc := decode(t, out)
	assert.Equal(t, "fraud - Domain Dashboard", doc["title"])
	assert.Empty(t, doc["panels"])
	assert.Len(t, doc["links"].([]any), 1)
}

func TestGenerateFailsOnMalformedTemplate(t *testing.T) {
	_, err := newTestWriter().GenerateOperationalDashboard("{broken", "payments", "h", testCoord, false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTemplateParse))
	assert.Contains(t, err.Error(), "payments")
}

func TestBuildDashboardName(t *testing.T) {
	coord := &types.BuildCoordinate{ArtifactID: "acme", Version: "1.0.0"}
	assert.Equal(t, "acme_1.0.0 - checkHandler", BuildDashboardName(coord, "checkHandler"))
	assert.Equal(t, "checkHandler", BuildDashboardName(nil, "checkHandler"))
}

func decode(t *testing.T, text string) map[string]any {
	t.Helper()
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(text), &doc))
	return doc
}
