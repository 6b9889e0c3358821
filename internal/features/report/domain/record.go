package domain

import (
	"sync"
	"time"
)

// All is the sentinel accepted for the UF and unit filters.
const All = "all"

// Record is one shipment-tracking row, keyed by column name.
// Cell values are kept as raw strings; empty string means an empty cell.
type Record map[string]string

// Get returns the cell value for the given column, or "" when the column
// is unbound or absent from the row.
func (r Record) Get(column string) string {
	if column == "" {
		return ""
	}
	return r[column]
}

// DatasetMeta is the summary metadata computed once at ingestion.
type DatasetMeta struct {
	// TotalCount is the number of records in the dataset.
	TotalCount int `json:"total_count"`
	// Frequency maps each occurrence code to its record count.
	Frequency map[string]int `json:"frequency"`
	// UFs lists the states present, sorted.
	UFs []string `json:"ufs"`
	// UnitsByUF maps each UF to its units, sorted.
	UnitsByUF map[string][]string `json:"units_by_uf"`
	// CityByCode maps occurrence code to delivery city to record count.
	CityByCode map[string]map[string]int `json:"city_by_code"`
}

// Dataset is an immutable, in-memory shipment export. A new upload replaces
// the dataset entirely; it is never merged or mutated in place.
type Dataset struct {
	// ID uniquely identifies the dataset for the lifetime of the process.
	ID string `json:"id"`
	// Name is the original file name.
	Name string `json:"name"`
	// Columns is the ordered header row. All records share this column set.
	Columns []string `json:"-"`
	// Rows is the ordered sequence of records.
	Rows []Record `json:"-"`
	// Meta is the ingestion-time summary.
	Meta DatasetMeta `json:"meta"`

	resolveOnce sync.Once
	cols        *ColumnMap
	colsErr     error
}

// NewDataset creates a Dataset over already-parsed tabular data.
func NewDataset(name string, columns []string, rows []Record, meta DatasetMeta) *Dataset {
	return &Dataset{
		Name:    name,
		Columns: columns,
		Rows:    rows,
		Meta:    meta,
	}
}

// ColumnMap resolves the semantic columns for this dataset. Resolution runs
// once; the column set is invariant for the dataset's lifetime.
func (d *Dataset) ColumnMap() (*ColumnMap, error) {
	d.resolveOnce.Do(func() {
		d.cols, d.colsErr = ResolveColumns(d.Columns)
	})
	return d.cols, d.colsErr
}

// FilterSelection is the user-selected slice of the dataset a view operates on.
type FilterSelection struct {
	// UF is a state code, or All.
	UF string
	// Units are the unit names under inspection. Containing All disables
	// the per-unit metrics view entirely.
	Units []string
	// Codes is the set of occurrence codes selected in the UI. It scopes
	// the denominator of the specific-code and projection metrics.
	Codes []string
	// Mode selects the metric strategy.
	Mode MetricMode
	// Code is the specific occurrence code when Mode is ModeSpecific.
	Code string
	// ReferenceDate, when set, narrows the failures denominator to records
	// whose last occurrence falls on that calendar day. Zero disables it.
	ReferenceDate time.Time
}

// Disabled reports whether the per-unit metrics view is switched off by the
// selection: no units, the All unit sentinel, or an empty code set for the
// modes that depend on one.
func (s FilterSelection) Disabled() bool {
	if len(s.Units) == 0 {
		return true
	}
	for _, u := range s.Units {
		if u == All {
			return true
		}
	}
	if s.Mode == ModeSpecific || s.Mode == ModeProjection {
		return len(s.Codes) == 0
	}
	return false
}

func (s FilterSelection) codeSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Codes))
	for _, c := range s.Codes {
		set[c] = struct{}{}
	}
	return set
}

// AggregateRow is one unit's computed metric. Rows are computed fresh per
// request and never persisted.
type AggregateRow struct {
	Unit       string  `json:"unit"`
	Count      int     `json:"count"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Severity   Severity `json:"severity"`
}
