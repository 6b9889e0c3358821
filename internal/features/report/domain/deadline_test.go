package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadlineRecord(predicted, manifest string) (Record, *ColumnMap) {
	r := row{
		ctrc:      "C1",
		city:      "Campinas",
		unit:      "CAMPINAS",
		predicted: predicted,
		manifest:  manifest,
	}.record()
	cm, _ := ResolveColumns(testColumns)
	return r, cm
}

func fixedLookup(days int) DeadlineLookup {
	return func(city, unit string) (int, bool) { return days, true }
}

// TestEvaluateDeadline_EarlyBuffer reproduces the canonical example:
// predicted 2024-01-10, manifest 2024-01-08, delta +2, "2 days early";
// late when the expected lead time is 3, on time when it is 1.
func TestEvaluateDeadline_EarlyBuffer(t *testing.T) {
	r, cm := deadlineRecord("10/01/2024", "08/01/2024")

	eval := EvaluateDeadline(r, cm, fixedLookup(3))
	require.NotNil(t, eval)
	assert.Equal(t, 2, eval.DeltaDays)
	assert.Equal(t, "2 days early", eval.Label)
	assert.True(t, eval.Late, "buffer of 2 is under the required 3")

	eval = EvaluateDeadline(r, cm, fixedLookup(1))
	require.NotNil(t, eval)
	assert.False(t, eval.Late, "buffer of 2 covers the required 1")
}

// TestEvaluateDeadline_OnTime verifies a zero delta is always late when a
// reference exists: there is no early buffer at all.
func TestEvaluateDeadline_OnTime(t *testing.T) {
	r, cm := deadlineRecord("08/01/2024", "08/01/2024")

	eval := EvaluateDeadline(r, cm, fixedLookup(1))
	require.NotNil(t, eval)
	assert.Equal(t, 0, eval.DeltaDays)
	assert.Equal(t, LabelOnTime, eval.Label)
	assert.True(t, eval.Late)
}

// TestEvaluateDeadline_LateArrival verifies a negative delta.
func TestEvaluateDeadline_LateArrival(t *testing.T) {
	r, cm := deadlineRecord("05/01/2024", "08/01/2024")

	eval := EvaluateDeadline(r, cm, fixedLookup(1))
	require.NotNil(t, eval)
	assert.Equal(t, -3, eval.DeltaDays)
	assert.Equal(t, "3 days late", eval.Label)
	assert.True(t, eval.Late)
}

// TestEvaluateDeadline_LookupMiss verifies an unknown city can never be
// flagged late.
func TestEvaluateDeadline_LookupMiss(t *testing.T) {
	r, cm := deadlineRecord("08/01/2024", "08/01/2024")

	miss := func(city, unit string) (int, bool) { return 0, false }
	eval := EvaluateDeadline(r, cm, miss)
	require.NotNil(t, eval)
	assert.False(t, eval.Late)

	eval = EvaluateDeadline(r, cm, nil)
	require.NotNil(t, eval)
	assert.False(t, eval.Late)
}

// TestEvaluateDeadline_UnparseableDates verifies soft exclusion of records
// with missing or malformed dates.
func TestEvaluateDeadline_UnparseableDates(t *testing.T) {
	r, cm := deadlineRecord("", "08/01/2024")
	assert.Nil(t, EvaluateDeadline(r, cm, fixedLookup(1)))

	r, cm = deadlineRecord("10/01/2024", "not a date")
	assert.Nil(t, EvaluateDeadline(r, cm, fixedLookup(1)))
}

// TestEvaluateDeadline_ISODates verifies the evaluator accepts the ISO shape.
func TestEvaluateDeadline_ISODates(t *testing.T) {
	r, cm := deadlineRecord("2024-01-10", "2024-01-08")

	eval := EvaluateDeadline(r, cm, fixedLookup(3))
	require.NotNil(t, eval)
	assert.Equal(t, 2, eval.DeltaDays)
	assert.True(t, eval.Late)
}
