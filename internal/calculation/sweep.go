package calculation

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rentbuy/rentbuy-calculator/internal/domain"
	rbdecimal "github.com/rentbuy/rentbuy-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultSweepWorkers bounds concurrent projections in a sweep.
	DefaultSweepWorkers = 10
	// MaxAxisValues caps how many values one axis may expand to.
	MaxAxisValues = 500

	progressInterval = 20
	axisPrecision    = 4
)

// SweepRunner evaluates a two-axis what-if grid by running the projection
// engine once per cell. Cells are independent and run in parallel.
type SweepRunner struct {
	Engine  *ProjectionEngine
	Workers int
	Logger  Logger
	// Progress, when set, is called every 20 completed cells and once at the
	// end. It is invoked from worker goroutines and must be safe for concurrent use.
	Progress func(completed, total int)
}

// NewSweepRunner creates a runner with the default worker count.
func NewSweepRunner(engine *ProjectionEngine) *SweepRunner {
	if engine == nil {
		engine = NewProjectionEngine()
	}
	return &SweepRunner{
		Engine:  engine,
		Workers: DefaultSweepWorkers,
		Logger:  NopLogger{},
	}
}

// SetLogger sets the logger for the runner. If nil is provided, a no-op logger is used.
func (sr *SweepRunner) SetLogger(l Logger) {
	if l == nil {
		sr.Logger = NopLogger{}
		return
	}
	sr.Logger = l
}

// AxisValues expands a range into evenly spaced values from Min to Max. The
// number of values is round((Max-Min)/Step)+1, and each value is rounded to
// four decimal places.
func AxisValues(r domain.AxisRange) ([]decimal.Decimal, error) {
	if !r.Parameter.Valid() {
		return nil, fmt.Errorf("%w: unknown sweep parameter %q", domain.ErrRangeMisconfiguration, r.Parameter)
	}
	if !r.Step.IsPositive() {
		return nil, fmt.Errorf("%w: %s step must be positive, got %s", domain.ErrRangeMisconfiguration, r.Parameter, r.Step)
	}
	if r.Max.LessThan(r.Min) {
		return nil, fmt.Errorf("%w: %s max %s is below min %s", domain.ErrRangeMisconfiguration, r.Parameter, r.Max, r.Min)
	}
	if r.Max.Equal(r.Min) {
		return []decimal.Decimal{r.Min.Round(axisPrecision)}, nil
	}

	span := r.Max.Sub(r.Min)
	steps := span.Div(r.Step).Round(0).IntPart() + 1
	if steps < 2 {
		steps = 2
	}
	if steps > MaxAxisValues {
		return nil, fmt.Errorf("%w: %s expands to %d values, limit is %d", domain.ErrRangeMisconfiguration, r.Parameter, steps, MaxAxisValues)
	}

	values := make([]decimal.Decimal, steps)
	last := decimal.NewFromInt(steps - 1)
	for i := int64(0); i < steps; i++ {
		offset := span.Mul(decimal.NewFromInt(i)).Div(last)
		values[i] = r.Min.Add(offset).Round(axisPrecision)
	}
	return values, nil
}

// ScenarioForCell derives one cell's inputs from the base scenario. A down
// payment percentage is applied after the home price so both axes compose.
// Horizon values are rounded to whole years.
func ScenarioForCell(base domain.ScenarioInputs, xParam domain.SweepParameter, x decimal.Decimal, yParam domain.SweepParameter, y decimal.Decimal) (domain.ScenarioInputs, error) {
	s := base
	var downPct *decimal.Decimal

	apply := func(p domain.SweepParameter, v decimal.Decimal) error {
		switch p {
		case domain.ParamMortgageRate:
			s.MortgageRate = v
		case domain.ParamHomePrice:
			s.HomePrice = v
		case domain.ParamDownPayment:
			s.DownPayment = v
		case domain.ParamDownPaymentPercent:
			pct := v
			downPct = &pct
		case domain.ParamInvestingHorizon:
			years := int(v.Round(0).IntPart())
			s.InvestingHorizon = &years
		default:
			return fmt.Errorf("%w: unknown sweep parameter %q", domain.ErrRangeMisconfiguration, p)
		}
		return nil
	}
	if err := apply(xParam, x); err != nil {
		return s, err
	}
	if err := apply(yParam, y); err != nil {
		return s, err
	}
	if downPct != nil {
		s.DownPayment = s.HomePrice.Mul(rbdecimal.FromPercent(*downPct)).Round(0)
	}
	return s, nil
}

// Run expands both axes of the request and evaluates the grid.
func (sr *SweepRunner) Run(ctx context.Context, req domain.SweepRequest) (*domain.SweepResult, error) {
	if req.X.Parameter == req.Y.Parameter {
		return nil, fmt.Errorf("%w: both axes use %q", domain.ErrRangeMisconfiguration, req.X.Parameter)
	}
	xValues, err := AxisValues(req.X)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	yValues, err := AxisValues(req.Y)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}

	result, err := sr.RunValues(ctx, req.X.Parameter, xValues, req.Y.Parameter, yValues, req.Base)
	if err != nil {
		return nil, err
	}
	result.Name = req.Name
	return result, nil
}

// RunValues evaluates cell (i, j) with xParam = xValues[j] and
// yParam = yValues[i]. The first failing cell aborts the whole run.
func (sr *SweepRunner) RunValues(ctx context.Context, xParam domain.SweepParameter, xValues []decimal.Decimal,
	yParam domain.SweepParameter, yValues []decimal.Decimal, base domain.ScenarioInputs) (*domain.SweepResult, error) {
	if !xParam.Valid() || !yParam.Valid() {
		return nil, fmt.Errorf("%w: unknown sweep parameter in (%q, %q)", domain.ErrRangeMisconfiguration, xParam, yParam)
	}
	if xParam == yParam {
		return nil, fmt.Errorf("%w: both axes use %q", domain.ErrRangeMisconfiguration, xParam)
	}
	if len(xValues) == 0 || len(yValues) == 0 {
		return nil, fmt.Errorf("%w: axes must each have at least one value", domain.ErrRangeMisconfiguration)
	}
	if err := base.Validate(); err != nil {
		return nil, fmt.Errorf("base scenario: %w", err)
	}

	data := make([][]domain.SweepCell, len(yValues))
	for i := range data {
		data[i] = make([]domain.SweepCell, len(xValues))
	}

	workers := sr.Workers
	if workers <= 0 {
		workers = DefaultSweepWorkers
	}
	total := len(xValues) * len(yValues)
	sr.Logger.Infof("sweep: %d cells (%s x %s) on %d workers", total, xParam, yParam, workers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	var completed atomic.Int64

	for i, y := range yValues {
		for j, x := range xValues {
			i, j, y, x := i, j, y, x // per-iteration copies (pre-Go 1.22 loop semantics)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				cell, err := sr.evaluateCell(base, xParam, x, yParam, y)
				if err != nil {
					return fmt.Errorf("cell %s=%s %s=%s: %w", xParam, x, yParam, y, err)
				}
				data[i][j] = cell

				done := int(completed.Add(1))
				if sr.Progress != nil && (done%progressInterval == 0 || done == total) {
					sr.Progress(done, total)
				}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		sr.Logger.Errorf("sweep aborted: %v", err)
		return nil, err
	}

	return &domain.SweepResult{
		XParameter: xParam,
		YParameter: yParam,
		XValues:    xValues,
		YValues:    yValues,
		Data:       data,
	}, nil
}

func (sr *SweepRunner) evaluateCell(base domain.ScenarioInputs, xParam domain.SweepParameter, x decimal.Decimal,
	yParam domain.SweepParameter, y decimal.Decimal) (domain.SweepCell, error) {
	scenario, err := ScenarioForCell(base, xParam, x, yParam, y)
	if err != nil {
		return domain.SweepCell{}, err
	}
	result, err := sr.Engine.CalculateAll(scenario)
	if err != nil {
		return domain.SweepCell{}, err
	}

	at := result.AtHorizon(scenario.Horizon())
	if !rbdecimal.IsFinite(at.Premium) {
		return domain.SweepCell{}, fmt.Errorf("%w: premium at year %d is out of range", domain.ErrComputationDivergence, at.Year)
	}
	return domain.SweepCell{
		XValue:         x,
		YValue:         y,
		HorizonYear:    at.Year,
		BuyNetWorth:    at.BuyNetWorthReal,
		RentNetWorth:   at.RentNetWorthReal,
		Difference:     at.Premium,
		Classification: domain.Classify(at.Premium),
	}, nil
}
