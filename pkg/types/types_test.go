package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCoordinateString(t *testing.T) {
	c := BuildCoordinate{ArtifactID: "loan-service", Version: "2.1.0"}
	assert.Equal(t, "loan-service_2.1.0", c.String())
}

func TestDecisionDescriptorTypeName(t *testing.T) {
	boolean := "boolean"

	tests := []struct {
		name     string
		desc     DecisionDescriptor
		wantName string
		wantOK   bool
	}{
		{
			name:     "typed decision",
			desc:     DecisionDescriptor{Name: "eligible", ValueType: &boolean},
			wantName: "boolean",
			wantOK:   true,
		},
		{
			name:   "untyped decision",
			desc:   DecisionDescriptor{Name: "eligible"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.desc.TypeName()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantName, got)
		})
	}
}
