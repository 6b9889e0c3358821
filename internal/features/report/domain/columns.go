package domain

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Field names a semantic column the engine needs from the export.
type Field string

const (
	FieldUF                    Field = "uf"
	FieldUnit                  Field = "unit"
	FieldDeliveryCity          Field = "deliveryCity"
	FieldOccurrenceCode        Field = "occurrenceCode"
	FieldLastOccurrenceDate    Field = "lastOccurrenceDate"
	FieldLastManifestDate      Field = "lastManifestDate"
	FieldPredictedDeliveryDate Field = "predictedDeliveryDate"
	FieldShipmentID            Field = "shipmentId"
)

// occurrenceColumnName is matched exactly (after normalization); the export
// writes this header without accents.
const occurrenceColumnName = "codigo da ultima ocorrencia"

// occurrenceFallbackIndex is the 0-based position of the occurrence-code
// column in the legacy export layout (column 33, 1-based).
const occurrenceFallbackIndex = 32

// columnSpec drives name-first resolution with a positional fallback.
// fallbackIndex is 0-based; -1 means the field has no positional contract.
type columnSpec struct {
	fragments     []string
	fallbackIndex int
}

// columnSpecs documents the legacy export layout: each fallback index is tied
// to the fixed column order of the upstream spreadsheet.
var columnSpecs = []struct {
	field Field
	spec  columnSpec
}{
	{FieldShipmentID, columnSpec{fragments: []string{"ctrc"}, fallbackIndex: 1}},
	{FieldDeliveryCity, columnSpec{fragments: []string{"cidade", "entrega"}, fallbackIndex: 49}},
	{FieldUF, columnSpec{fragments: []string{"uf"}, fallbackIndex: 50}},
	{FieldUnit, columnSpec{fragments: []string{"unidade"}, fallbackIndex: 52}},
	{FieldLastOccurrenceDate, columnSpec{fragments: []string{"data", "ultima", "ocorrencia"}, fallbackIndex: 93}},
	{FieldLastManifestDate, columnSpec{fragments: []string{"data", "manifesto"}, fallbackIndex: -1}},
	{FieldPredictedDeliveryDate, columnSpec{fragments: []string{"previsao", "entrega"}, fallbackIndex: -1}},
}

// ColumnMap binds each semantic field to one column name of the dataset.
// An empty binding means the field could not be resolved; reads through it
// yield empty cells and the affected records drop out of dependent
// computations instead of failing the whole dataset.
type ColumnMap struct {
	UF                    string
	Unit                  string
	DeliveryCity          string
	OccurrenceCode        string
	LastOccurrenceDate    string
	LastManifestDate      string
	PredictedDeliveryDate string
	ShipmentID            string
}

// ColumnResolutionError reports a required column that could not be resolved
// by name or by positional fallback. Callers surface it as an invalid file
// structure; it is never retried.
type ColumnResolutionError struct {
	Field Field
}

func (e *ColumnResolutionError) Error() string {
	return fmt.Sprintf("column resolution failed: no column found for field %q", e.Field)
}

// ResolveColumns binds the semantic fields against the dataset's header row.
// Only the occurrence-code column is load-bearing enough to fail resolution.
func ResolveColumns(columns []string) (*ColumnMap, error) {
	normalized := make([]string, len(columns))
	for i, c := range columns {
		normalized[i] = Normalize(c)
	}

	cm := &ColumnMap{}

	code := ""
	for i, n := range normalized {
		if n == occurrenceColumnName {
			code = columns[i]
			break
		}
	}
	if code == "" {
		if len(columns) <= occurrenceFallbackIndex {
			return nil, &ColumnResolutionError{Field: FieldOccurrenceCode}
		}
		code = columns[occurrenceFallbackIndex]
	}
	cm.OccurrenceCode = code

	for _, entry := range columnSpecs {
		name := ""
		for i, n := range normalized {
			if containsAll(n, entry.spec.fragments) {
				name = columns[i]
				break
			}
		}
		if name == "" && entry.spec.fallbackIndex >= 0 && entry.spec.fallbackIndex < len(columns) {
			name = columns[entry.spec.fallbackIndex]
		}
		switch entry.field {
		case FieldShipmentID:
			cm.ShipmentID = name
		case FieldDeliveryCity:
			cm.DeliveryCity = name
		case FieldUF:
			cm.UF = name
		case FieldUnit:
			cm.Unit = name
		case FieldLastOccurrenceDate:
			cm.LastOccurrenceDate = name
		case FieldLastManifestDate:
			cm.LastManifestDate = name
		case FieldPredictedDeliveryDate:
			cm.PredictedDeliveryDate = name
		}
	}

	return cm, nil
}

func containsAll(name string, fragments []string) bool {
	for _, f := range fragments {
		if !strings.Contains(name, f) {
			return false
		}
	}
	return true
}

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a header or lookup key and strips diacritics, so
// "Previsão de Entrega" and "previsao de entrega" compare equal.
func Normalize(s string) string {
	out, _, err := transform.String(stripAccents, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}
