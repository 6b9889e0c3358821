package domain

import "fmt"

// DeadlineLookup resolves the contractual delivery lead time in days for a
// delivery city, optionally refined by unit. ok is false when the city is
// not in the reference table.
type DeadlineLookup func(city, unit string) (days int, ok bool)

// Deadline labels. "early"/"late" carry the absolute day distance.
const (
	LabelOnTime    = "on time"
	labelEarlyFmt  = "%d days early"
	labelLateFmt   = "%d days late"
)

// DeadlineEvaluation is the per-record deadline verdict.
type DeadlineEvaluation struct {
	// DeltaDays is predicted delivery minus last manifest, in calendar days.
	DeltaDays int
	// Label is the human bucket: "on time", "N days early" or "N days late".
	Label string
	// Late is true when the record missed its contractual lead time.
	Late bool
}

// EvaluateDeadline computes the signed day distance between the predicted
// delivery and the last manifest and classifies it against the expected
// lead time for the record's city and unit. It returns nil when either date
// is missing or unparseable; such records are excluded from deadline views
// rather than aborting the aggregate.
//
// The lateness rule is asymmetric on purpose: a record is late when it
// arrived on or after the predicted date (delta <= 0), but also when it was
// technically early yet the buffer was smaller than the contractual lead
// time (|delta| < expected). An unknown city can never be flagged late.
func EvaluateDeadline(r Record, cols *ColumnMap, lookup DeadlineLookup) *DeadlineEvaluation {
	predicted, ok := ParseFlexibleDate(r.Get(cols.PredictedDeliveryDate))
	if !ok {
		return nil
	}
	manifest, ok := ParseFlexibleDate(r.Get(cols.LastManifestDate))
	if !ok {
		return nil
	}

	delta := DaysBetween(predicted, manifest)

	label := LabelOnTime
	switch {
	case delta > 0:
		label = fmt.Sprintf(labelEarlyFmt, delta)
	case delta < 0:
		label = fmt.Sprintf(labelLateFmt, -delta)
	}

	late := false
	if lookup != nil {
		if expected, found := lookup(r.Get(cols.DeliveryCity), r.Get(cols.Unit)); found {
			late = delta <= 0 || abs(delta) < expected
		}
	}

	return &DeadlineEvaluation{
		DeltaDays: delta,
		Label:     label,
		Late:      late,
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
