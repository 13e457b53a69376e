package grafana

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Placeholder markers recognized in dashboard templates. Substitution is
// textual and global; markers not listed here are left untouched.
const (
	markerHandlerName = "$handlerName$"
	markerID          = "$id$"
	markerUID         = "$uid$"
	markerArtifactID  = "$gavArtifactId$"
	markerVersion     = "$gavVersion$"
)

// IdentitySource supplies the per-dashboard identity values substituted for
// the $id$ and $uid$ markers. Every generated document needs a distinct
// id/uid pair because Grafana treats them as uniqueness keys; tests swap in
// a deterministic source to assert exact output.
type IdentitySource interface {
	NextNumericID() int
	NextUniqueID() string
}

// randomIdentity is the production source: a pseudo-random non-negative
// integer and a random UUID in canonical text form.
type randomIdentity struct{}

func (randomIdentity) NextNumericID() int   { return int(rand.Int31()) }
func (randomIdentity) NextUniqueID() string { return uuid.NewString() }

// customizeTemplate substitutes the fixed placeholder markers. Each marker
// is replaced by a single value at every occurrence, so re-applying the
// customization to already-substituted text is a no-op.
func customizeTemplate(template, handlerName, artifactID, version string, ids IdentitySource) string {
	template = strings.ReplaceAll(template, markerHandlerName, handlerName)
	template = strings.ReplaceAll(template, markerID, strconv.Itoa(ids.NextNumericID()))
	template = strings.ReplaceAll(template, markerUID, ids.NextUniqueID())
	template = strings.ReplaceAll(template, markerArtifactID, artifactID)
	template = strings.ReplaceAll(template, markerVersion, version)
	return template
}
