package types

import "fmt"

// BuildCoordinate identifies the deployable artifact whose endpoints are
// being dashboarded. Queries and dashboard names are namespaced with it.
type BuildCoordinate struct {
	ArtifactID string
	Version    string
}

func (c BuildCoordinate) String() string {
	return fmt.Sprintf("%s_%s", c.ArtifactID, c.Version)
}

// DecisionDescriptor describes one decision output of a deployed decision
// model. ValueType is nil when the model declares no type for the decision;
// such decisions are skipped during dashboard synthesis.
type DecisionDescriptor struct {
	Name      string
	ID        string
	ValueType *string
}

// TypeName returns the declared value-type name and whether one is present.
func (d DecisionDescriptor) TypeName() (string, bool) {
	if d.ValueType == nil {
		return "", false
	}
	return *d.ValueType, true
}
