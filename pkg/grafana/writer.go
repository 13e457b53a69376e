// Package grafana synthesizes Grafana dashboard documents for deployed
// decision-service endpoints. Given a generic dashboard template, an
// endpoint name and a build coordinate it produces a fully parameterized
// dashboard; for the domain-specific flavor it additionally derives one
// panel per supported decision output, each wired to a query expression
// whose shape depends on the decision's value type.
package grafana

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/decisionops/dashgen/pkg/dashboard"
	"github.com/decisionops/dashgen/pkg/types"
)

const (
	auditLinkName = "Audit UI"
	// The audit URL stays a literal placeholder token inside the generated
	// document; a later deployment stage resolves it.
	auditLinkURL = "${{urlPlaceholder}}"

	decisionMetric = "dmn_result"
)

var (
	// ErrTemplateParse marks a template the document model could not parse.
	// This is a configuration defect: the whole synthesis call aborts.
	ErrTemplateParse = errors.New("could not parse the dashboard template")
	// ErrSerialize marks a document the model could not serialize back.
	ErrSerialize = errors.New("could not serialize the dashboard")
)

// Document is the narrow view of a mutable dashboard document the writer
// needs. The writer assumes nothing about the representation behind it.
type Document interface {
	SetTitle(title string)
	AddLink(name, url string)
	AddPanel(kind dashboard.PanelKind, title, query, yAxisLabel string)
	Serialize() (string, error)
}

// ParseFunc obtains a mutable Document from customized template text.
type ParseFunc func(text string) (Document, error)

func defaultParse(text string) (Document, error) {
	return dashboard.Parse(text)
}

// Writer generates dashboard documents. It holds no per-call state, so a
// single Writer may serve concurrent synthesis calls.
type Writer struct {
	logger *zap.Logger
	ids    IdentitySource
	parse  ParseFunc
}

func NewWriter(log *zap.Logger) *Writer {
	return &Writer{logger: log, ids: randomIdentity{}, parse: defaultParse}
}

// GenerateOperationalDashboard customizes a template for a single endpoint
// and returns the serialized operational dashboard.
func (w *Writer) GenerateOperationalDashboard(templateText, dashboardName, handlerName string, coord types.BuildCoordinate, generateAuditLink bool) (string, error) {
	text := customizeTemplate(templateText, handlerName, coord.ArtifactID, coord.Version, w.ids)

	doc, err := w.initialize(text, fmt.Sprintf("%s - Operational Dashboard", dashboardName), generateAuditLink)
	if err != nil {
		return "", err
	}
	return w.serialize(doc, dashboardName)
}

// GenerateDomainDecisionDashboard customizes a template for an endpoint
// backed by a decision model and adds one graph panel per decision whose
// value type the registry recognizes. Decisions with an absent or
// unrecognized type contribute no panel and only a warning; they never
// abort the synthesis.
func (w *Writer) GenerateDomainDecisionDashboard(templateText, dashboardName, endpoint string, coord types.BuildCoordinate, decisions []types.DecisionDescriptor, generateAuditLink bool) (string, error) {
	text := customizeTemplate(templateText, endpoint, coord.ArtifactID, coord.Version, w.ids)

	doc, err := w.initialize(text, fmt.Sprintf("%s - Domain Dashboard", dashboardName), generateAuditLink)
	if err != nil {
		return "", err
	}

	for _, decision := range decisions {
		typeName, ok := decision.TypeName()
		if !ok {
			w.logger.Warn("Decision has no declared value type, skipping panel",
				zap.String("decision", decision.Name),
				zap.String("nodeID", decision.ID))
			continue
		}
		if !IsSupported(typeName) {
			w.logger.Warn("Decision value type is not visualizable, skipping panel",
				zap.String("decision", decision.Name),
				zap.String("nodeID", decision.ID),
				zap.String("type", typeName))
			continue
		}

		// This label order is fixed: reordering would change the query text
		// of every regenerated dashboard.
		labels := []Label{
			{Key: "endpoint", Value: quote(endpoint)},
			{Key: "decision", Value: quote(decision.Name)},
			{Key: "artifactId", Value: quote(coord.ArtifactID)},
			{Key: "version", Value: quote(coord.Version)},
		}

		query := Render(FunctionFor(typeName), decisionMetric, labels)
		doc.AddPanel(dashboard.PanelKindGraph, "Decision "+decision.Name, query, YAxisLabelFor(typeName))
	}

	return w.serialize(doc, dashboardName)
}

// GenerateDomainRuleDashboard customizes a template for an endpoint backed
// by a rule unit. Rule dashboards carry no per-output panels.
func (w *Writer) GenerateDomainRuleDashboard(templateText, dashboardName, endpoint string, coord types.BuildCoordinate, generateAuditLink bool) (string, error) {
	text := customizeTemplate(templateText, endpoint, coord.ArtifactID, coord.Version, w.ids)

	doc, err := w.initialize(text, fmt.Sprintf("%s - Domain Dashboard", dashboardName), generateAuditLink)
	if err != nil {
		return "", err
	}
	return w.serialize(doc, dashboardName)
}

// BuildDashboardName derives the display name for an endpoint's dashboards.
// With a build coordinate present the name is namespaced by artifact and
// version; without one the handler name is returned unchanged.
func BuildDashboardName(coord *types.BuildCoordinate, handlerName string) string {
	if coord != nil {
		return fmt.Sprintf("%s_%s - %s", coord.ArtifactID, coord.Version, handlerName)
	}
	return handlerName
}

func (w *Writer) initialize(text, title string, generateAuditLink bool) (Document, error) {
	doc, err := w.parse(text)
	if err != nil {
		w.logger.Error("Could not parse the dashboard template", zap.String("dashboard", title), zap.Error(err))
		return nil, fmt.Errorf("dashboard %q: %w: %w", title, ErrTemplateParse, err)
	}
	doc.SetTitle(title)

	if generateAuditLink {
		doc.AddLink(auditLinkName, auditLinkURL)
	}
	return doc, nil
}

func (w *Writer) serialize(doc Document, dashboardName string) (string, error) {
	out, err := doc.Serialize()
	if err != nil {
		w.logger.Error("Could not serialize the dashboard", zap.String("dashboard", dashboardName), zap.Error(err))
		return "", fmt.Errorf("dashboard %q: %w: %w", dashboardName, ErrSerialize, err)
	}
	return out, nil
}

func quote(v string) string {
	return `"` + v + `"`
}
