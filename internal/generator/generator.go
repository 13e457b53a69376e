// Package generator runs dashboard synthesis for every endpoint in a
// manifest: it resolves templates, invokes the writer for the operational
// and domain flavors, writes the resulting documents to the output
// directory, and optionally pushes them to Grafana.
package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/decisionops/dashgen/internal/manifest"
	"github.com/decisionops/dashgen/internal/provisioner"
	"github.com/decisionops/dashgen/internal/templates"
	"github.com/decisionops/dashgen/pkg/grafana"
)

const maxConcurrentEndpoints = 4

type Generator struct {
	logger  *zap.Logger
	writer  *grafana.Writer
	loader  *templates.Loader
	outDir  string
	grafana *provisioner.Grafana // nil when pushing is not requested
	tracer  trace.Tracer
}

func New(log *zap.Logger, outDir string, prov *provisioner.Grafana) *Generator {
	return &Generator{
		logger:  log,
		writer:  grafana.NewWriter(log),
		loader:  templates.NewLoader(),
		outDir:  outDir,
		grafana: prov,
		tracer:  otel.Tracer("dashgen/generator"),
	}
}

// Run generates the dashboards for every endpoint in the manifest.
// Endpoints are independent, so they run concurrently; the first failure
// cancels the remaining ones.
func (g *Generator) Run(ctx context.Context, m *manifest.Manifest) error {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", g.outDir, err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentEndpoints)
	for _, ep := range m.Endpoints {
		eg.Go(func() error {
			return g.generateEndpoint(ctx, m, ep)
		})
	}
	return eg.Wait()
}

// generatedFile pairs an output file name with its serialized contents.
type generatedFile struct {
	name     string
	contents string
}

func (g *Generator) generateEndpoint(ctx context.Context, m *manifest.Manifest, ep manifest.Endpoint) error {
	ctx, span := g.tracer.Start(ctx, "generate_endpoint",
		trace.WithAttributes(attribute.String("endpoint", ep.Name), attribute.String("flavor", string(ep.Flavor))))
	defer span.End()

	coord := m.Coordinate()
	name := grafana.BuildDashboardName(&coord, ep.Name)

	operationalTemplate, err := g.loader.Operational(ep.OperationalTemplate)
	if err != nil {
		return err
	}
	operational, err := g.writer.GenerateOperationalDashboard(operationalTemplate, name, ep.Name, coord, m.AuditLink)
	if err != nil {
		return err
	}

	domainTemplate, err := g.loader.Domain(ep.DomainTemplate)
	if err != nil {
		return err
	}
	var domain string
	switch ep.Flavor {
	case manifest.FlavorDecision:
		domain, err = g.writer.GenerateDomainDecisionDashboard(domainTemplate, name, ep.Name, coord, ep.Descriptors(), m.AuditLink)
	case manifest.FlavorRule:
		domain, err = g.writer.GenerateDomainRuleDashboard(domainTemplate, name, ep.Name, coord, m.AuditLink)
	default:
		err = fmt.Errorf("endpoint %q: unknown flavor %q", ep.Name, ep.Flavor)
	}
	if err != nil {
		return err
	}

	files := []generatedFile{
		{name: ep.Name + "-operational.json", contents: operational},
		{name: ep.Name + "-domain.json", contents: domain},
	}
	for _, f := range files {
		path := filepath.Join(g.outDir, f.name)
		if err := os.WriteFile(path, []byte(f.contents), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		if g.grafana != nil {
			if err := g.grafana.UploadDashboard(ctx, f.contents); err != nil {
				return fmt.Errorf("failed to provision %s: %w", f.name, err)
			}
		}
	}

	g.logger.Info("Generated dashboards for endpoint",
		zap.String("endpoint", ep.Name),
		zap.String("flavor", string(ep.Flavor)),
		zap.Int("decisions", len(ep.Decisions)))
	return nil
}
