package grafana

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIdentity struct {
	numericID int
	uniqueID  string
}

func (f fakeIdentity) NextNumericID() int   { return f.numericID }
func (f fakeIdentity) NextUniqueID() string { return f.uniqueID }

func TestCustomizeTemplateReplacesAllOccurrences(t *testing.T) {
	template := `{"title": "$handlerName$", "panels": [{"title": "Requests on $handlerName$"}]}`

	out := customizeTemplate(template, "loanEligibility", "acme", "1.0.0", fakeIdentity{})

	assert.NotContains(t, out, "$handlerName$")
	assert.Equal(t, 2, strings.Count(out, "loanEligibility"))
}

func TestCustomizeTemplateSubstitutesEveryMarker(t *testing.T) {
	template := `{"id": $id$, "uid": "$uid$", "title": "$handlerName$", "tags": ["$gavArtifactId$", "$gavVersion$"]}`
	ids := fakeIdentity{numericID: 451, uniqueID: "7f3a2c9e-0000-4000-8000-deadbeef0001"}

	out := customizeTemplate(template, "checkHandler", "acme", "1.0.0", ids)

	assert.Equal(t, `{"id": 451, "uid": "7f3a2c9e-0000-4000-8000-deadbeef0001", "title": "checkHandler", "tags": ["acme", "1.0.0"]}`, out)
}

func TestCustomizeTemplateLeavesUnknownMarkersUntouched(t *testing.T) {
	template := `{"url": "${{urlPlaceholder}}", "other": "$notAMarker$"}`

	out := customizeTemplate(template, "h", "a", "v", fakeIdentity{})

	assert.Contains(t, out, "${{urlPlaceholder}}")
	assert.Contains(t, out, "$notAMarker$")
}

// Re-customizing already-substituted text must change nothing: no stray
// markers remain to re-match.
func TestCustomizeTemplateIsIdempotent(t *testing.T) {
	template := `{"id": $id$, "uid": "$uid$", "title": "$handlerName$"}`
	ids := fakeIdentity{numericID: 1, uniqueID: "uid-1"}

	once := customizeTemplate(template, "h", "a", "v", ids)
	twice := customizeTemplate(once, "other", "x", "y", fakeIdentity{numericID: 2, uniqueID: "uid-2"})

	assert.Equal(t, once, twice)
}

func TestRandomIdentityProducesDistinctValues(t *testing.T) {
	template := `{"id": $id$, "uid": "$uid$"}`

	first := customizeTemplate(template, "h", "a", "v", randomIdentity{})
	second := customizeTemplate(template, "h", "a", "v", randomIdentity{})

	require.NotEqual(t, first, second)
}

func TestRandomIdentityUniqueIDIsCanonicalUUID(t *testing.T) {
	uid := randomIdentity{}.NextUniqueID()

	require.Len(t, uid, 36)
	assert.Equal(t, 4, strings.Count(uid, "-"))
}
