package calculation

import (
	"context"
	"fmt"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
)

// CalculationEngine runs every scenario and sweep in a configuration against
// one tax policy.
type CalculationEngine struct {
	Projection *ProjectionEngine
	Sweeps     *SweepRunner
	Logger     Logger
}

// NewCalculationEngine creates an engine with the default tax policy.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithPolicy(domain.DefaultTaxPolicy())
}

// NewCalculationEngineWithPolicy creates an engine with configurable tax constants.
func NewCalculationEngineWithPolicy(policy domain.TaxPolicy) *CalculationEngine {
	projection := NewProjectionEngineWithPolicy(policy)
	return &CalculationEngine{
		Projection: projection,
		Sweeps:     NewSweepRunner(projection),
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger for the engine and its components. If nil is
// provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.Projection.SetLogger(l)
	ce.Sweeps.SetLogger(l)
}

// RunScenario projects and summarizes a single named scenario.
func (ce *CalculationEngine) RunScenario(ctx context.Context, scenario domain.NamedScenario) (*domain.ProjectionReport, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ce.Projection.Project(scenario.Name, scenario.Inputs)
}

// RunSweep evaluates a sweep grid and tallies it.
func (ce *CalculationEngine) RunSweep(ctx context.Context, req domain.SweepRequest) (*domain.SweepReport, error) {
	result, err := ce.Sweeps.Run(ctx, req)
	if err != nil {
		return nil, err
	}
	stats := result.Stats()
	ce.Logger.Infof("sweep %q: %d cells, %d favor buying, %d favor renting",
		req.Name, stats.Total, stats.BuyCount, stats.RentCount)
	return &domain.SweepReport{Result: result, Stats: stats}, nil
}

// RunScenarios runs every scenario, then every sweep, in file order.
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.Report, error) {
	report := &domain.Report{TaxPolicy: ce.Projection.TaxCalc.Policy}

	for _, scenario := range config.Scenarios {
		pr, err := ce.RunScenario(ctx, scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
		}
		report.Projections = append(report.Projections, *pr)
	}

	for _, sweep := range config.Sweeps {
		sr, err := ce.RunSweep(ctx, sweep)
		if err != nil {
			return nil, fmt.Errorf("sweep %q: %w", sweep.Name, err)
		}
		report.Sweeps = append(report.Sweeps, *sr)
	}

	return report, nil
}
