package domain

import "sort"

// MetricMode selects the denominator/numerator/grouping strategy of a view.
type MetricMode string

const (
	// ModeSpecific counts one occurrence code against the selected code set.
	ModeSpecific MetricMode = "specific"
	// ModeProjection counts delivered plus in-route against the selected code set.
	ModeProjection MetricMode = "projection"
	// ModeFailures counts the failure-code family against everything with an occurrence.
	ModeFailures MetricMode = "failures"
	// ModeNoMovement counts code 50 against everything with an occurrence.
	ModeNoMovement MetricMode = "noMovement"
	// ModeNoDeadline counts deadline-late records against the whole unit.
	ModeNoDeadline MetricMode = "noDeadline"
)

// Well-known occurrence codes.
const (
	CodeDelivered  = "1"
	CodeInRoute    = "59"
	CodeOnFloor    = "82"
	CodeNoMovement = "50"
)

// FailureCodes is the occurrence-code family counted by the failures metric.
var FailureCodes = map[string]struct{}{
	"26": {}, "18": {}, "46": {}, "23": {}, "25": {},
	"27": {}, "28": {}, "65": {}, "66": {}, "33": {},
}

// ProjectionCodes are the codes counted as "moving or done": delivered and in-route.
var ProjectionCodes = map[string]struct{}{
	CodeDelivered: {},
	CodeInRoute:   {},
}

// ModeForMetricCode maps the wire-level metric code to a mode. Reserved
// pseudo-codes select their dedicated strategies; anything else is a
// specific occurrence code. An empty code means projection.
func ModeForMetricCode(metricCode string) (MetricMode, string) {
	switch metricCode {
	case "", "projection":
		return ModeProjection, ""
	case "failures":
		return ModeFailures, ""
	case "noMovement", CodeNoMovement:
		return ModeNoMovement, ""
	case "noDeadline":
		return ModeNoDeadline, ""
	default:
		return ModeSpecific, metricCode
	}
}

// Severity is the traffic-light classification of a percentage.
type Severity string

const (
	SeverityGood Severity = "good"
	SeverityWarn Severity = "warn"
	SeverityBad  Severity = "bad"
	// SeverityNone is used for metric modes without a threshold contract.
	SeverityNone Severity = "none"
)

// Percentage thresholds per metric, enumerated exactly once.
const (
	projectionGoodMin = 97.0
	projectionWarnMin = 95.0
	deliveredGoodMin  = 96.5
	deliveredWarnMin  = 94.0
	inRouteWarnMax    = 5.0
	onFloorWarnMax    = 1.0
)

// Classify maps a percentage to a severity for the given metric. For the
// in-route and on-floor codes lower is better: only exactly zero is good.
func Classify(percentage float64, mode MetricMode, code string) Severity {
	switch {
	case mode == ModeProjection:
		return highIsGood(percentage, projectionGoodMin, projectionWarnMin)
	case mode == ModeSpecific && code == CodeDelivered:
		return highIsGood(percentage, deliveredGoodMin, deliveredWarnMin)
	case mode == ModeSpecific && code == CodeInRoute:
		return lowIsGood(percentage, inRouteWarnMax)
	case mode == ModeSpecific && code == CodeOnFloor:
		return lowIsGood(percentage, onFloorWarnMax)
	default:
		return SeverityNone
	}
}

func highIsGood(pct, goodMin, warnMin float64) Severity {
	switch {
	case pct >= goodMin:
		return SeverityGood
	case pct >= warnMin:
		return SeverityWarn
	default:
		return SeverityBad
	}
}

func lowIsGood(pct, warnMax float64) Severity {
	switch {
	case pct == 0:
		return SeverityGood
	case pct <= warnMax:
		return SeverityWarn
	default:
		return SeverityBad
	}
}

// metricContext carries the bindings shared by every predicate of one
// metric computation.
type metricContext struct {
	cols   *ColumnMap
	sel    FilterSelection
	unit   string
	codes  map[string]struct{}
	lookup DeadlineLookup
}

// inScope is the UF + unit predicate common to every mode.
func (c *metricContext) inScope(r Record) bool {
	if c.sel.UF != All && r.Get(c.cols.UF) != c.sel.UF {
		return false
	}
	return r.Get(c.cols.Unit) == c.unit
}

// base additionally requires an occurrence code to be present.
func (c *metricContext) base(r Record) bool {
	return c.inScope(r) && r.Get(c.cols.OccurrenceCode) != ""
}

// onReferenceDay gates the failures metric when a reference date is set.
func (c *metricContext) onReferenceDay(r Record) bool {
	if c.sel.ReferenceDate.IsZero() {
		return true
	}
	d, ok := ParseFlexibleDate(r.Get(c.cols.LastOccurrenceDate))
	return ok && SameDay(d, c.sel.ReferenceDate)
}

func (c *metricContext) selected(r Record) bool {
	_, ok := c.codes[r.Get(c.cols.OccurrenceCode)]
	return ok
}

// metricStrategy is the per-mode rule table: the denominator and numerator
// predicates drive the calculator, the group filter and key drive the
// drill-down engine. Keeping them side by side is what prevents the two
// call sites from drifting apart.
type metricStrategy struct {
	denominator func(*metricContext, Record) bool
	numerator   func(*metricContext, Record) bool
	groupFilter func(*metricContext, Record) bool
	groupKey    func(*metricContext, Record) (primary, secondary string, late bool)
}

func cityDateKey(c *metricContext, r Record) (string, string, bool) {
	return orNA(r.Get(c.cols.DeliveryCity)), orNA(r.Get(c.cols.LastOccurrenceDate)), false
}

func strategyFor(mode MetricMode) metricStrategy {
	switch mode {
	case ModeFailures:
		return metricStrategy{
			denominator: func(c *metricContext, r Record) bool {
				return c.base(r) && c.onReferenceDay(r)
			},
			numerator: func(c *metricContext, r Record) bool {
				_, ok := FailureCodes[r.Get(c.cols.OccurrenceCode)]
				return ok
			},
			groupFilter: func(c *metricContext, r Record) bool {
				if !c.base(r) || !c.onReferenceDay(r) {
					return false
				}
				_, ok := FailureCodes[r.Get(c.cols.OccurrenceCode)]
				return ok
			},
			groupKey: func(c *metricContext, r Record) (string, string, bool) {
				// the "city" slot carries the failure code in this mode
				return orNA(r.Get(c.cols.OccurrenceCode)), orNA(r.Get(c.cols.LastOccurrenceDate)), false
			},
		}
	case ModeNoMovement:
		return metricStrategy{
			denominator: (*metricContext).base,
			numerator: func(c *metricContext, r Record) bool {
				return r.Get(c.cols.OccurrenceCode) == CodeNoMovement
			},
			groupFilter: func(c *metricContext, r Record) bool {
				return c.base(r) && r.Get(c.cols.OccurrenceCode) == CodeNoMovement
			},
			groupKey: cityDateKey,
		}
	case ModeNoDeadline:
		return metricStrategy{
			denominator: (*metricContext).inScope,
			numerator: func(c *metricContext, r Record) bool {
				eval := EvaluateDeadline(r, c.cols, c.lookup)
				return eval != nil && eval.Late
			},
			groupFilter: func(c *metricContext, r Record) bool {
				return c.inScope(r) && EvaluateDeadline(r, c.cols, c.lookup) != nil
			},
			groupKey: func(c *metricContext, r Record) (string, string, bool) {
				eval := EvaluateDeadline(r, c.cols, c.lookup)
				if eval == nil {
					return "", "", false
				}
				return eval.Label, orNA(r.Get(c.cols.DeliveryCity)), eval.Late
			},
		}
	case ModeSpecific:
		return metricStrategy{
			denominator: func(c *metricContext, r Record) bool {
				return c.base(r) && c.selected(r)
			},
			numerator: func(c *metricContext, r Record) bool {
				return r.Get(c.cols.OccurrenceCode) == c.sel.Code
			},
			groupFilter: func(c *metricContext, r Record) bool {
				return c.base(r) && r.Get(c.cols.OccurrenceCode) == c.sel.Code
			},
			groupKey: cityDateKey,
		}
	default: // ModeProjection
		return metricStrategy{
			denominator: func(c *metricContext, r Record) bool {
				return c.base(r) && c.selected(r)
			},
			numerator: func(c *metricContext, r Record) bool {
				_, ok := ProjectionCodes[r.Get(c.cols.OccurrenceCode)]
				return ok
			},
			groupFilter: func(c *metricContext, r Record) bool {
				if !c.base(r) {
					return false
				}
				_, ok := ProjectionCodes[r.Get(c.cols.OccurrenceCode)]
				return ok
			},
			groupKey: cityDateKey,
		}
	}
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

func newMetricContext(d *Dataset, unit string, sel FilterSelection, lookup DeadlineLookup) (*metricContext, error) {
	cols, err := d.ColumnMap()
	if err != nil {
		return nil, err
	}
	return &metricContext{
		cols:   cols,
		sel:    sel,
		unit:   unit,
		codes:  sel.codeSet(),
		lookup: lookup,
	}, nil
}

// ComputeMetric computes one unit's aggregate row in a single pass.
// It returns nil when the denominator is zero; such rows are dropped,
// never rendered as 0/0.
func ComputeMetric(d *Dataset, unit string, sel FilterSelection, lookup DeadlineLookup) (*AggregateRow, error) {
	ctx, err := newMetricContext(d, unit, sel, lookup)
	if err != nil {
		return nil, err
	}
	strat := strategyFor(sel.Mode)

	count, total := 0, 0
	for _, r := range d.Rows {
		if !strat.denominator(ctx, r) {
			continue
		}
		total++
		if strat.numerator(ctx, r) {
			count++
		}
	}
	if total == 0 {
		return nil, nil
	}

	pct := float64(count) / float64(total) * 100
	return &AggregateRow{
		Unit:       unit,
		Count:      count,
		Total:      total,
		Percentage: pct,
		Severity:   Classify(pct, sel.Mode, sel.Code),
	}, nil
}

// ComputeUnitMetrics computes the aggregate row for every selected unit and
// orders them by percentage, highest first. The sort is stable: units with
// equal percentages keep their selection order.
func ComputeUnitMetrics(d *Dataset, sel FilterSelection, lookup DeadlineLookup) ([]AggregateRow, error) {
	if sel.Disabled() {
		return nil, nil
	}

	rows := make([]AggregateRow, 0, len(sel.Units))
	for _, unit := range sel.Units {
		row, err := ComputeMetric(d, unit, sel, lookup)
		if err != nil {
			return nil, err
		}
		if row != nil {
			rows = append(rows, *row)
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Percentage > rows[j].Percentage
	})
	return rows, nil
}

// FilterRecords returns the records feeding the drill-down view of the given
// unit and metric, in dataset order.
func FilterRecords(d *Dataset, unit string, sel FilterSelection, lookup DeadlineLookup) ([]Record, error) {
	ctx, err := newMetricContext(d, unit, sel, lookup)
	if err != nil {
		return nil, err
	}
	strat := strategyFor(sel.Mode)

	var out []Record
	for _, r := range d.Rows {
		if strat.groupFilter(ctx, r) {
			out = append(out, r)
		}
	}
	return out, nil
}
